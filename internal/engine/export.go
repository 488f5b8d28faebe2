package engine

import (
	"reflect"
	"unsafe"
)

// export returns the value held by v as an interface. Values read from
// unexported fields are re-derived from their address.
func export(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}

	if v.CanInterface() {
		return v.Interface()
	}

	if v.CanAddr() {
		return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem().Interface()
	}

	return v.String()
}
