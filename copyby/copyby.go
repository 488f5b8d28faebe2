package copyby

import (
	"fmt"
	"reflect"

	"graphstate/internal/engine"
	"graphstate/node"
	"graphstate/settings"
	"graphstate/typeerrors"
	"graphstate/verify"
)

const (
	opFields     = "copyby.FieldValues"
	opProperties = "copyby.PropertyValues"
	opMember     = "copyby.Member"
)

// FieldValues copies the fields of source into target.
func FieldValues[T any](source, target T, opts ...settings.Option) error {
	return FieldValuesWith(source, target, settings.Fields(opts...))
}

// FieldValuesWith is FieldValues with prepared settings.
func FieldValuesWith[T any](source, target T, s *settings.FieldsSettings) error {
	if s == nil {
		return fmt.Errorf("%s: settings: %w", opFields, typeerrors.ErrNilArgument)
	}

	return values(opFields, source, target, s)
}

// PropertyValues copies the properties of source into target.
func PropertyValues[T any](source, target T, opts ...settings.Option) error {
	return PropertyValuesWith(source, target, settings.Properties(opts...))
}

// PropertyValuesWith is PropertyValues with prepared settings.
func PropertyValuesWith[T any](source, target T, s *settings.PropertiesSettings) error {
	if s == nil {
		return fmt.Errorf("%s: settings: %w", opProperties, typeerrors.ErrNilArgument)
	}

	return values(opProperties, source, target, s)
}

// VerifyCanCopyFieldValues reports whether FieldValues supports T.
func VerifyCanCopyFieldValues[T any](opts ...settings.Option) error {
	return verify.Check(opFields, reflect.TypeFor[T](), settings.Fields(opts...), verify.ForCopy)
}

// VerifyCanCopyPropertyValues reports whether PropertyValues supports T.
func VerifyCanCopyPropertyValues[T any](opts ...settings.Option) error {
	return verify.Check(opProperties, reflect.TypeFor[T](), settings.Properties(opts...), verify.ForCopy)
}

// Member copies one member of source into target. target must be a pointer
// to a struct.
func Member(source, target any, name string, s settings.MemberSettings) error {
	sv, tv, m, err := engine.ResolveMember(opMember, source, target, name, s, verify.ForCopy)
	if err != nil {
		return err
	}

	if !tv.CanAddr() {
		return fmt.Errorf("%s: %s target is passed by value, pass a pointer: %w", opMember, tv.Type(), typeerrors.ErrInvalidOperation)
	}

	if sv.CanAddr() && sv.UnsafeAddr() == tv.UnsafeAddr() {
		return fmt.Errorf("%s: %w", opMember, typeerrors.ErrSameInstance)
	}

	w := engine.New(opMember, s, verify.ForCopy)
	defer w.Release()

	return w.CopyMember(sv, tv, m)
}

func values[T any](op string, source, target T, s settings.MemberSettings) error {
	if err := verify.Check(op, reflect.TypeFor[T](), s, verify.ForCopy); err != nil {
		return err
	}

	sv, tv, err := engine.Operands(op, &source, &target, true)
	if err != nil {
		return err
	}

	if sv, tv, err = unwrap(op, sv, tv, s); err != nil {
		return err
	}

	if err := checkArguments(op, sv, tv); err != nil {
		return err
	}

	w := engine.New(op, s, verify.ForCopy)
	defer w.Release()

	return w.Copy(sv, tv)
}

// unwrap replaces interface operands by the values they hold and verifies
// their dynamic type.
func unwrap(op string, sv, tv reflect.Value, s settings.MemberSettings) (reflect.Value, reflect.Value, error) {
	if sv.Kind() != reflect.Interface {
		return sv, tv, nil
	}

	if sv.IsNil() || tv.IsNil() {
		return sv, tv, fmt.Errorf("%s: %w", op, typeerrors.ErrNilArgument)
	}

	sv, tv = sv.Elem(), tv.Elem()
	if err := verify.Dynamic(op, sv.Type(), s, verify.ForCopy); err != nil {
		return sv, tv, err
	}

	return sv, tv, nil
}

// checkArguments rejects targets that copy could not change in place.
func checkArguments(op string, sv, tv reflect.Value) error {
	switch tv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice:
		if sv.IsNil() || tv.IsNil() {
			return fmt.Errorf("%s: %w", op, typeerrors.ErrNilArgument)
		}

		if node.SameReference(sv, tv) {
			return fmt.Errorf("%s: %w", op, typeerrors.ErrSameInstance)
		}

		return nil
	default:
		return fmt.Errorf("%s: %s target is passed by value, pass a pointer: %w", op, tv.Type(), typeerrors.ErrInvalidOperation)
	}
}
