// Package refpair records pairs of references already visited during one
// traversal, so that reference loops terminate and shared targets created by
// a copy are reused.
package refpair
