package node

import "reflect"

// Token identifies a referenced object. The type is part of the token because
// a struct and its first field share an address.
type Token struct {
	Type reflect.Type
	Addr uintptr
	Len  int
}

// Identity returns the token of a reference value. ok is false for nil
// references and for values that are not references.
func Identity(v reflect.Value) (Token, bool) {
	switch v.Kind() {
	case reflect.Ptr, reflect.Map:
		if v.IsNil() {
			return Token{}, false
		}

		return Token{Type: v.Type(), Addr: v.Pointer()}, true
	case reflect.Slice:
		if v.IsNil() {
			return Token{}, false
		}

		return Token{Type: v.Type(), Addr: v.Pointer(), Len: v.Len()}, true
	case reflect.Interface:
		if v.IsNil() {
			return Token{}, false
		}

		return Identity(v.Elem())
	default:
		return Token{}, false
	}
}

// SameReference reports whether x and y are the same reference: both nil,
// the same pointer, map or slice header, or equal non reference values held in
// interfaces. Values that cannot be compared are never the same reference.
func SameReference(x, y reflect.Value) bool {
	if x.Kind() == reflect.Interface {
		if x.IsNil() || y.IsNil() {
			return x.IsNil() && y.IsNil()
		}

		x, y = x.Elem(), y.Elem()
		if x.Type() != y.Type() {
			return false
		}
	}

	switch x.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice:
		if x.IsNil() || y.IsNil() {
			return x.IsNil() && y.IsNil()
		}

		tx, _ := Identity(x)
		ty, _ := Identity(y)
		return tx == ty && (x.Kind() != reflect.Slice || x.Cap() == y.Cap())
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return x.Pointer() == y.Pointer()
	default:
		if !x.Type().Comparable() {
			return false
		}

		return x.Equal(y)
	}
}
