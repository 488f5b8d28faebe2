// Package verify proves ahead of any instance work whether a type can be
// compared, diffed, copied or tracked under a settings instance.
//
// The walk is exhaustive: every problem reachable from the root type is
// reported in one *typeerrors.TypeErrors. Results are cached per type,
// settings instance and purpose.
package verify
