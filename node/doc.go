// Package node classifies types by traversal shape and identifies reference
// values. Shapes are resolved once per type and cached, so collection
// strategies and verification never repeat the reflection work.
package node
