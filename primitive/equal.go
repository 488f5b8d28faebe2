package primitive

import (
	"math"
	"math/cmplx"
	"reflect"
)

// Equal compares two leaf values of the same type. It never calls Interface
// on basic kinds, so values read from unexported fields can be compared.
// NaN equals NaN, which keeps equality reflexive for copied values.
func Equal(x, y reflect.Value) bool {
	if x.Type() != y.Type() {
		return false
	}

	switch FromReflectType(x.Type()) {
	case 0:
		panic("primitive.Equal called with non leaf type " + x.Type().String())
	case KindNullable:
		if x.IsNil() || y.IsNil() {
			return x.IsNil() && y.IsNil()
		}

		return Equal(x.Elem(), y.Elem())
	case KindTime, KindEqualer:
		return callEqual(x, y)
	}

	switch x.Kind() {
	case reflect.Bool:
		return x.Bool() == y.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return x.Int() == y.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return x.Uint() == y.Uint()
	case reflect.Float32, reflect.Float64:
		a, b := x.Float(), y.Float()
		return a == b || (math.IsNaN(a) && math.IsNaN(b))
	case reflect.Complex64, reflect.Complex128:
		a, b := x.Complex(), y.Complex()
		return a == b || (cmplx.IsNaN(a) && cmplx.IsNaN(b))
	case reflect.String:
		return x.String() == y.String()
	default:
		panic("primitive.Equal: unexpected kind " + x.Kind().String())
	}
}

func callEqual(x, y reflect.Value) bool {
	if x.Kind() == reflect.Ptr && (x.IsNil() || y.IsNil()) {
		return x.IsNil() && y.IsNil()
	}

	out := x.MethodByName("Equal").Call([]reflect.Value{y})
	return out[0].Bool()
}
