package member

import (
	"errors"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrIsNotAnAccessor     = errors.New("method is not a recognizable accessor")
	ErrAccessorIsNotMethod = errors.New("accessor must be taken from a type method set")
	ErrExcludedAccessor    = errors.New("method is excluded from properties")
)

// Role tells getters from setters.
type Role int

const (
	RoleGetter Role = iota
	RoleSetter
)

// Accessor describes one half of a property.
type Accessor struct {
	// Property is the property name, without the Set prefix for setters.
	Property string
	Role     Role
	// Params are the indexer arguments, empty for plain properties.
	Params []reflect.Type
	// Value is the property type.
	Value  reflect.Type
	HasErr bool
	Method reflect.Method
}

// IsIndexed reports whether the accessor takes indexer arguments.
func (a Accessor) IsIndexed() bool { return len(a.Params) > 0 }

// excluded are methods with a getter shape that describe the value rather than hold state.
var excluded = map[string]struct{}{
	"String":   {},
	"GoString": {},
	"Error":    {},
}

// ParseAccessor inspects a method taken from a type's method set and returns
// the accessor it implements.
//
// Supports shapes:
//   - func (r) Name() V                      getter
//   - func (r) SetName(v V)                  setter
//   - func (r) SetName(v V) error            setter
//   - func (r) Name(k K, ...) V              indexer getter
//   - func (r) SetName(k K, ..., v V)        indexer setter
func ParseAccessor(m reflect.Method) (Accessor, error) {
	ft := m.Type
	if ft == nil || ft.Kind() != reflect.Func || ft.NumIn() == 0 {
		return Accessor{}, ErrAccessorIsNotMethod
	}

	if !m.IsExported() {
		return Accessor{}, ErrIsNotAnAccessor
	}

	if _, ok := excluded[m.Name]; ok {
		return Accessor{}, ErrExcludedAccessor
	}

	// In(0) is the receiver
	args := make([]reflect.Type, 0, ft.NumIn()-1)
	for i := 1; i < ft.NumIn(); i++ {
		args = append(args, ft.In(i))
	}

	if ft.IsVariadic() {
		return Accessor{}, ErrIsNotAnAccessor
	}

	if name, ok := setterName(m.Name); ok && len(args) > 0 {
		acc := Accessor{
			Property: name,
			Role:     RoleSetter,
			Params:   args[:len(args)-1],
			Value:    args[len(args)-1],
			Method:   m,
		}

		switch {
		case ft.NumOut() == 0:
			return acc, nil
		case ft.NumOut() == 1 && isError(ft.Out(0)):
			acc.HasErr = true
			return acc, nil
		}
	}

	if ft.NumOut() != 1 || isError(ft.Out(0)) {
		return Accessor{}, ErrIsNotAnAccessor
	}

	return Accessor{
		Property: m.Name,
		Role:     RoleGetter,
		Params:   args,
		Value:    ft.Out(0),
		Method:   m,
	}, nil
}

func setterName(name string) (string, bool) {
	rest, ok := strings.CutPrefix(name, "Set")
	if !ok || rest == "" {
		return "", false
	}

	r, _ := utf8.DecodeRuneInString(rest)
	return rest, unicode.IsUpper(r)
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func isError(t reflect.Type) bool {
	if t == nil {
		return false
	}

	return t.Implements(errorType)
}

func sameTypes(a, b []reflect.Type) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
