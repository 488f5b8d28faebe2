// Package diff holds the tree produced by comparing two object graphs.
//
// A *ValueDiff holds the two differing values and, when they are composite,
// one child per differing member (*MemberDiff) or item (*IndexDiff). A leaf
// ValueDiff has no children: the values themselves differ. The tree mirrors
// the compared graph, so a node is present only when a differing leaf is
// reachable from it.
package diff
