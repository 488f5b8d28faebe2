package engine

import (
	"fmt"
	"reflect"

	"graphstate/member"
	"graphstate/node"
	"graphstate/settings"
	"graphstate/typeerrors"
	"graphstate/verify"
)

// Operands returns x and y as values of T. Interface operands must hold the
// same dynamic type when strict is set.
func Operands[T any](op string, x, y *T, strict bool) (xv, yv reflect.Value, err error) {
	xv, yv = reflect.ValueOf(x).Elem(), reflect.ValueOf(y).Elem()

	if strict && xv.Kind() == reflect.Interface && !xv.IsNil() && !yv.IsNil() && xv.Elem().Type() != yv.Elem().Type() {
		return xv, yv, fmt.Errorf("%s: %s and %s: %w", op, xv.Elem().Type(), yv.Elem().Type(), typeerrors.ErrTypeMismatch)
	}

	return xv, yv, nil
}

// ResolveMember prepares a member level call on x and y, two structs or
// pointers to structs of one type. The owning type is verified for purpose.
func ResolveMember(
	op string, x, y any, name string, s settings.MemberSettings, purpose verify.Purpose,
) (xv, yv reflect.Value, m member.Member, err error) {
	if s == nil {
		return xv, yv, nil, fmt.Errorf("%s: settings: %w", op, typeerrors.ErrNilArgument)
	}

	if x == nil || y == nil {
		return xv, yv, nil, fmt.Errorf("%s: %w", op, typeerrors.ErrNilArgument)
	}

	t := reflect.TypeOf(x)
	if t != reflect.TypeOf(y) {
		return xv, yv, nil, fmt.Errorf("%s: %s and %s: %w", op, t, reflect.TypeOf(y), typeerrors.ErrTypeMismatch)
	}

	if err := verify.Check(op, t, s, purpose); err != nil {
		return xv, yv, nil, err
	}

	xv, yv = reflect.ValueOf(x), reflect.ValueOf(y)
	for xv.Kind() == reflect.Ptr {
		if xv.IsNil() || yv.IsNil() {
			return xv, yv, nil, fmt.Errorf("%s: %w", op, typeerrors.ErrNilArgument)
		}

		xv, yv = xv.Elem(), yv.Elem()
	}

	if xv.Kind() != reflect.Struct {
		return xv, yv, nil, fmt.Errorf("%s: %s is not a struct: %w", op, t, typeerrors.ErrInvalidOperation)
	}

	m, err = FindMember(s, node.Base(t), name)
	if err != nil {
		return xv, yv, nil, fmt.Errorf("%s: %w", op, err)
	}

	return xv, yv, m, nil
}

// FindMember returns the member of struct t called name as s sees it.
func FindMember(s settings.MemberSettings, t reflect.Type, name string) (member.Member, error) {
	for _, m := range s.Members(t) {
		if m.Name() == name {
			if m.IsIndexer() {
				return nil, fmt.Errorf("%s is an indexer: %w", m, typeerrors.ErrInvalidOperation)
			}

			return m, nil
		}
	}

	return nil, fmt.Errorf("%s has no %s %q: %w", t, s.MemberKind(), name, typeerrors.ErrInvalidOperation)
}

// Key converts index into the index type of collection t: an int position
// or a key of a map or set.
func Key(t reflect.Type, index any) (reflect.Value, error) {
	want := node.KeyType(t)
	if want == nil {
		want = reflect.TypeFor[int]()
	}

	v := reflect.ValueOf(index)
	if !v.IsValid() {
		return reflect.Zero(want), nil
	}

	switch {
	case v.Type().AssignableTo(want):
		out := reflect.New(want).Elem()
		out.Set(v)
		return out, nil
	case v.Type().ConvertibleTo(want) && (v.Kind() == reflect.String) == (want.Kind() == reflect.String):
		return v.Convert(want), nil
	default:
		return reflect.Value{}, fmt.Errorf("index %v of type %s cannot index %s: %w", index, v.Type(), t, typeerrors.ErrTypeMismatch)
	}
}
