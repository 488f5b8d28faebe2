// Package equalby compares two object graphs member by member.
//
// FieldValues walks struct fields, PropertyValues walks accessor properties
// (Name/SetName method pairs). Both verify the type first and fail with an
// error matching typeerrors.ErrNotSupported when the type cannot be compared
// under the settings; the message lists every problem and how to fix it.
//
//	ok, err := equalby.FieldValues(x, y,
//		settings.WithReferenceHandling(options.StructuralWithReferenceLoops))
package equalby
