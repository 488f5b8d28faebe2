package equalby

import (
	"fmt"
	"reflect"

	"graphstate/internal/engine"
	"graphstate/settings"
	"graphstate/typeerrors"
	"graphstate/verify"
)

const (
	opFields     = "equalby.FieldValues"
	opProperties = "equalby.PropertyValues"
	opMember     = "equalby.MemberValues"
)

// FieldValues reports whether x and y have structurally equal fields.
func FieldValues[T any](x, y T, opts ...settings.Option) (bool, error) {
	return FieldValuesWith(x, y, settings.Fields(opts...))
}

// FieldValuesWith is FieldValues with prepared settings.
func FieldValuesWith[T any](x, y T, s *settings.FieldsSettings) (bool, error) {
	if s == nil {
		return false, fmt.Errorf("%s: settings: %w", opFields, typeerrors.ErrNilArgument)
	}

	return values(opFields, x, y, s)
}

// PropertyValues reports whether x and y have structurally equal properties.
func PropertyValues[T any](x, y T, opts ...settings.Option) (bool, error) {
	return PropertyValuesWith(x, y, settings.Properties(opts...))
}

// PropertyValuesWith is PropertyValues with prepared settings.
func PropertyValuesWith[T any](x, y T, s *settings.PropertiesSettings) (bool, error) {
	if s == nil {
		return false, fmt.Errorf("%s: settings: %w", opProperties, typeerrors.ErrNilArgument)
	}

	return values(opProperties, x, y, s)
}

// VerifyCanEqualByFieldValues reports whether FieldValues supports T.
func VerifyCanEqualByFieldValues[T any](opts ...settings.Option) error {
	return verify.Check(opFields, reflect.TypeFor[T](), settings.Fields(opts...), verify.ForEqual)
}

// VerifyCanEqualByPropertyValues reports whether PropertyValues supports T.
func VerifyCanEqualByPropertyValues[T any](opts ...settings.Option) error {
	return verify.Check(opProperties, reflect.TypeFor[T](), settings.Properties(opts...), verify.ForEqual)
}

// MemberValues compares one member of x and y, structs or pointers to
// structs of the same type.
func MemberValues(x, y any, name string, s settings.MemberSettings) (bool, error) {
	xv, yv, m, err := engine.ResolveMember(opMember, x, y, name, s, verify.ForEqual)
	if err != nil {
		return false, err
	}

	w := engine.New(opMember, s, verify.ForEqual)
	defer w.Release()

	return w.EqualMember(xv, yv, m)
}

func values[T any](op string, x, y T, s settings.MemberSettings) (bool, error) {
	if err := verify.Check(op, reflect.TypeFor[T](), s, verify.ForEqual); err != nil {
		return false, err
	}

	xv, yv, _ := engine.Operands(op, &x, &y, false)

	w := engine.New(op, s, verify.ForEqual)
	defer w.Release()

	return w.Equal(xv, yv)
}
