// Package options holds the small enumerations shared by every traversal:
// the ReferenceHandling policy, the member visibility BindingFlags and the
// MemberKind that tells fields from accessor properties.
package options
