// Package settings holds the immutable configuration of a traversal: which
// members are visible, which types and members are ignored, which types are
// compared as values or treated as immutable, and how references are handled.
//
// Settings are interned: building settings from the same configuration
// returns the same instance, so results computed for one instance (member
// lists, immutability, verification) can be cached by identity.
//
// Field traversal:
//
//	s := settings.Fields(settings.WithReferenceHandling(options.StructuralWithReferenceLoops))
//
// Property traversal, reading getters and calling SetName setters:
//
//	s := settings.Properties(settings.WithIgnoredMembers(reflect.TypeFor[Order](), "Total"))
package settings
