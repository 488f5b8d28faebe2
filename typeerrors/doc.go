// Package typeerrors describes why a type cannot be compared, diffed, copied
// or tracked under a given settings instance, and the runtime errors raised
// by copy when instance values break an invariant.
//
// Verification collects every problem into a TypeErrors tree. Entry points
// turn a non empty tree into a *NotSupportedError whose message lists each
// problem and the ways to fix it.
package typeerrors
