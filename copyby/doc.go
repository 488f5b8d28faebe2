// Package copyby copies the state of one object graph into another.
//
// The target is changed in place and never replaced: it must be a non nil
// pointer, map or slice. Nested references are kept where they exist and
// created where they are missing, so after a copy equalby reports the two
// graphs equal under the same settings.
//
// Copy fails with an error matching typeerrors.ErrInvalidOperation when a
// read only member differs, when a collection that cannot be resized has a
// different length, or when a missing value cannot be created.
package copyby
