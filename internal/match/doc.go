// Package match ranks known names by their similarity to a name that was
// not found, so diagnostics can offer "did you mean" alternatives for type,
// member and policy names.
package match
