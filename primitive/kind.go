package primitive

import (
	"reflect"
	"strconv"
	"time"
)

type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (not a leaf) value for KindEnum

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindUintptr
	KindFloat32
	KindFloat64
	KindComplex64
	KindComplex128
	KindBool
	KindString
	KindTime
	KindDuration
	KindPrimitiveEnum // named type over any basic kind
	KindEqualer       // type with an `Equal(T) bool` method
	KindNullable      // pointer to any other leaf kind

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

var kindNames = [...]string{
	KindInt:           "KindInt",
	KindInt8:          "KindInt8",
	KindInt16:         "KindInt16",
	KindInt32:         "KindInt32",
	KindInt64:         "KindInt64",
	KindUint:          "KindUint",
	KindUint8:         "KindUint8",
	KindUint16:        "KindUint16",
	KindUint32:        "KindUint32",
	KindUint64:        "KindUint64",
	KindUintptr:       "KindUintptr",
	KindFloat32:       "KindFloat32",
	KindFloat64:       "KindFloat64",
	KindComplex64:     "KindComplex64",
	KindComplex128:    "KindComplex128",
	KindBool:          "KindBool",
	KindString:        "KindString",
	KindTime:          "KindTime",
	KindDuration:      "KindDuration",
	KindPrimitiveEnum: "KindPrimitiveEnum",
	KindEqualer:       "KindEqualer",
	KindNullable:      "KindNullable",
}

func (k KindEnum) String() string {
	if k <= 0 || int(k) >= KindTotal {
		return "KindEnum(" + strconv.Itoa(int(k)) + ")"
	}

	return kindNames[k]
}

// IsLeaf reports whether k denotes an equatable leaf type.
func (k KindEnum) IsLeaf() bool {
	return k > 0 && int(k) < KindTotal
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	boolType     = reflect.TypeOf(false)
)

// FromReflectType classifies rtype as an equatable leaf. The zero KindEnum means
// the type needs structural handling (or is not supported at all).
func FromReflectType(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return 0
	}

	// check if true primitive type
	switch rtype {
	case reflect.TypeOf(int(0)):
		return KindInt
	case reflect.TypeOf(int8(0)):
		return KindInt8
	case reflect.TypeOf(int16(0)):
		return KindInt16
	case reflect.TypeOf(int32(0)):
		return KindInt32
	case reflect.TypeOf(int64(0)):
		return KindInt64
	case reflect.TypeOf(uint(0)):
		return KindUint
	case reflect.TypeOf(uint8(0)):
		return KindUint8
	case reflect.TypeOf(uint16(0)):
		return KindUint16
	case reflect.TypeOf(uint32(0)):
		return KindUint32
	case reflect.TypeOf(uint64(0)):
		return KindUint64
	case reflect.TypeOf(uintptr(0)):
		return KindUintptr
	case reflect.TypeOf(float32(0)):
		return KindFloat32
	case reflect.TypeOf(float64(0)):
		return KindFloat64
	case reflect.TypeOf(complex64(0)):
		return KindComplex64
	case reflect.TypeOf(complex128(0)):
		return KindComplex128
	case boolType:
		return KindBool
	case reflect.TypeOf(""):
		return KindString
	case timeType:
		return KindTime
	case durationType:
		return KindDuration
	}

	if HasEqualMethod(rtype) {
		return KindEqualer
	}

	switch rtype.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return KindPrimitiveEnum
	case reflect.Ptr:
		// only a single level of indirection is nullable, **int is a reference to a reference
		elem := rtype.Elem()
		if elem.Kind() != reflect.Ptr && FromReflectType(elem) != 0 {
			return KindNullable
		}
	}

	return 0
}

// IsEquatable reports whether values of rtype are compared by value without recursion.
func IsEquatable(rtype reflect.Type) bool {
	return FromReflectType(rtype) != 0
}

// HasEqualMethod reports whether rtype declares `Equal(rtype) bool` on its value receiver.
func HasEqualMethod(rtype reflect.Type) bool {
	if rtype == nil || rtype.Kind() == reflect.Interface {
		return false
	}

	m, ok := rtype.MethodByName("Equal")
	if !ok {
		return false
	}

	// receiver is In(0) on method values obtained from a type
	ft := m.Type
	return ft.NumIn() == 2 && ft.In(1) == rtype && ft.NumOut() == 1 && ft.Out(0) == boolType
}
