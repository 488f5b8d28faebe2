package diffby

import (
	"fmt"
	"reflect"

	"graphstate/diff"
	"graphstate/internal/engine"
	"graphstate/node"
	"graphstate/settings"
	"graphstate/typeerrors"
	"graphstate/verify"
)

const (
	opFields     = "diffby.FieldValues"
	opProperties = "diffby.PropertyValues"
	opMember     = "diffby.Member"
	opIndex      = "diffby.Index"
)

// FieldValues returns the differences between the fields of x and y.
func FieldValues[T any](x, y T, opts ...settings.Option) (diff.Diff, error) {
	return FieldValuesWith(x, y, settings.Fields(opts...))
}

// FieldValuesWith is FieldValues with prepared settings.
func FieldValuesWith[T any](x, y T, s *settings.FieldsSettings) (diff.Diff, error) {
	if s == nil {
		return nil, fmt.Errorf("%s: settings: %w", opFields, typeerrors.ErrNilArgument)
	}

	return values(opFields, x, y, s)
}

// PropertyValues returns the differences between the properties of x and y.
func PropertyValues[T any](x, y T, opts ...settings.Option) (diff.Diff, error) {
	return PropertyValuesWith(x, y, settings.Properties(opts...))
}

// PropertyValuesWith is PropertyValues with prepared settings.
func PropertyValuesWith[T any](x, y T, s *settings.PropertiesSettings) (diff.Diff, error) {
	if s == nil {
		return nil, fmt.Errorf("%s: settings: %w", opProperties, typeerrors.ErrNilArgument)
	}

	return values(opProperties, x, y, s)
}

// VerifyCanDiffByFieldValues reports whether FieldValues supports T.
func VerifyCanDiffByFieldValues[T any](opts ...settings.Option) error {
	return verify.Check(opFields, reflect.TypeFor[T](), settings.Fields(opts...), verify.ForDiff)
}

// VerifyCanDiffByPropertyValues reports whether PropertyValues supports T.
func VerifyCanDiffByPropertyValues[T any](opts ...settings.Option) error {
	return verify.Check(opProperties, reflect.TypeFor[T](), settings.Properties(opts...), verify.ForDiff)
}

// Member returns the difference found in one member of x and y, structs or
// pointers to structs of the same type.
func Member(x, y any, name string, s settings.MemberSettings) (diff.Diff, error) {
	xv, yv, m, err := engine.ResolveMember(opMember, x, y, name, s, verify.ForDiff)
	if err != nil {
		return nil, err
	}

	w := engine.New(opMember, s, verify.ForDiff)
	defer w.Release()

	d, err := w.DiffMember(xv, yv, m)
	if err != nil {
		return nil, err
	}

	if d == nil {
		return diff.Empty, nil
	}

	return d, nil
}

// Index returns the difference at one position or key of the collections
// x and y. For sets the index is the element.
func Index(x, y, index any, s settings.MemberSettings) (diff.Diff, error) {
	if s == nil {
		return nil, fmt.Errorf("%s: settings: %w", opIndex, typeerrors.ErrNilArgument)
	}

	t := reflect.TypeOf(x)
	if t == nil || t != reflect.TypeOf(y) {
		return nil, fmt.Errorf("%s: %v and %v: %w", opIndex, t, reflect.TypeOf(y), typeerrors.ErrTypeMismatch)
	}

	if !node.IsCollection(t) {
		return nil, fmt.Errorf("%s: %s is not a collection: %w", opIndex, t, typeerrors.ErrInvalidOperation)
	}

	if err := verify.Check(opIndex, t, s, verify.ForDiff); err != nil {
		return nil, err
	}

	key, err := engine.Key(t, index)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opIndex, err)
	}

	w := engine.New(opIndex, s, verify.ForDiff)
	defer w.Release()

	d, err := w.DiffIndex(reflect.ValueOf(x), reflect.ValueOf(y), key)
	if err != nil {
		return nil, err
	}

	if d == nil {
		return diff.Empty, nil
	}

	return d, nil
}

func values[T any](op string, x, y T, s settings.MemberSettings) (diff.Diff, error) {
	if err := verify.Check(op, reflect.TypeFor[T](), s, verify.ForDiff); err != nil {
		return nil, err
	}

	xv, yv, _ := engine.Operands(op, &x, &y, false)

	w := engine.New(op, s, verify.ForDiff)
	defer w.Release()

	d, err := w.Diff(xv, yv)
	if err != nil {
		return nil, err
	}

	return diff.OrEmpty(d), nil
}
