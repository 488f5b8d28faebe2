package typeerrors

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrNotSupported     = errors.New("not supported")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrNilArgument      = errors.New("argument is nil")
	ErrSameInstance     = errors.New("source and target are the same instance")
	ErrTypeMismatch     = errors.New("types differ")
	ErrInternal         = errors.New("internal error, this is a bug in graphstate")
)

// NotSupportedError is returned by entry points when verification fails.
type NotSupportedError struct {
	Operation string
	Errors    *TypeErrors
}

func (e *NotSupportedError) Error() string {
	return Report(e.Operation, e.Errors)
}

func (e *NotSupportedError) Is(target error) bool {
	return target == ErrNotSupported
}

// Check wraps te into a *NotSupportedError, or returns nil when te is empty.
func Check(operation string, te *TypeErrors) error {
	if te.IsEmpty() {
		return nil
	}

	return &NotSupportedError{Operation: operation, Errors: te}
}

// ReadonlyMemberDiffersError is returned by copy when a read only member
// holds different values on source and target.
type ReadonlyMemberDiffersError struct {
	Path   string
	Source any
	Target any
}

func (e *ReadonlyMemberDiffersError) Error() string {
	return fmt.Sprintf(
		"the read only member %s differs after copy: source %v, target %v; "+
			"read only members must already be equal, or be excluded with settings.WithIgnoredMembers",
		e.Path, e.Source, e.Target,
	)
}

func (e *ReadonlyMemberDiffersError) Is(target error) bool {
	return target == ErrInvalidOperation
}

// FixedSizeError is returned by copy when a collection that cannot be
// resized has a different length than its source.
type FixedSizeError struct {
	Path        string
	Type        reflect.Type
	SourceCount int
	TargetCount int
}

func (e *FixedSizeError) Error() string {
	where := e.Path
	if where == "" {
		where = "the root"
	}

	return fmt.Sprintf(
		"cannot copy %s at %s: the collection has a fixed size, source count %d, target count %d; "+
			"use a resizable collection such as a slice reached through a settable member",
		e.Type, where, e.SourceCount, e.TargetCount,
	)
}

func (e *FixedSizeError) Is(target error) bool {
	return target == ErrInvalidOperation
}

// CannotCreateInstanceError is returned by copy when a missing target value
// must be created but its type has no zero constructor.
type CannotCreateInstanceError struct {
	Path   string
	Type   reflect.Type
	Reason string
}

func (e *CannotCreateInstanceError) Error() string {
	msg := fmt.Sprintf("cannot create an instance of %s at %s", e.Type, e.Path)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

func (e *CannotCreateInstanceError) Is(target error) bool {
	return target == ErrInvalidOperation
}

// Internal wraps an unexpected condition as ErrInternal.
func Internal(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInternal, fmt.Sprintf(format, args...))
}
