// Package diffby lists the differences between two object graphs as a
// diff.Diff tree. It walks graphs the way package equalby does but never
// stops early: every differing member and item is reported. Equal graphs
// give diff.Empty.
package diffby
