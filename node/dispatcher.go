package node

import (
	"reflect"
	"sync"

	"graphstate/primitive"
)

var kinds sync.Map // reflect.Type -> Kind

// Dispatch returns the traversal shape of t. The result is cached per type.
func Dispatch(t reflect.Type) Kind {
	if t == nil {
		return KindUnknown
	}

	if cached, ok := kinds.Load(t); ok {
		return cached.(Kind)
	}

	k := dispatch(t)
	kinds.Store(t, k)
	return k
}

func dispatch(t reflect.Type) Kind {
	if primitive.IsEquatable(t) {
		return KindLeaf
	}

	switch t.Kind() {
	case reflect.Struct:
		return KindStruct
	case reflect.Ptr:
		return KindPointer
	case reflect.Interface:
		return KindInterface
	case reflect.Array:
		return KindArray
	case reflect.Slice:
		return KindSlice
	case reflect.Map:
		if isEmptyStruct(t.Elem()) {
			return KindSet
		}

		return KindMap
	case reflect.Func:
		if IsSeq(t) {
			return KindSeq
		}

		return KindUnsupported
	case reflect.Chan, reflect.UnsafePointer:
		return KindUnsupported
	default:
		return KindUnknown
	}
}

func isEmptyStruct(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.NumField() == 0
}

var boolType = reflect.TypeOf(false)

// IsSeq reports whether t has the shape of iter.Seq: func(yield func(T) bool).
func IsSeq(t reflect.Type) bool {
	if t.Kind() != reflect.Func || t.NumIn() != 1 || t.NumOut() != 0 || t.IsVariadic() {
		return false
	}

	yield := t.In(0)
	return yield.Kind() == reflect.Func &&
		yield.NumIn() == 1 && yield.NumOut() == 1 && yield.Out(0) == boolType
}

// IsCollection reports whether t holds items.
func IsCollection(t reflect.Type) bool {
	return Dispatch(t).IsCollection()
}

// IsReference reports whether values of t are shared references.
func IsReference(t reflect.Type) bool {
	return Dispatch(t).IsReference()
}

// ItemType returns the item type of a collection: the element of arrays,
// slices and sequences, the value of maps and the key of sets.
func ItemType(t reflect.Type) reflect.Type {
	switch Dispatch(t) {
	case KindArray, KindSlice, KindMap:
		return t.Elem()
	case KindSet:
		return t.Key()
	case KindSeq:
		return t.In(0).In(0)
	default:
		return nil
	}
}

// KeyType returns the key type of a map or set, nil otherwise.
func KeyType(t reflect.Type) reflect.Type {
	switch Dispatch(t) {
	case KindMap, KindSet:
		return t.Key()
	default:
		return nil
	}
}

// Base strips every pointer level from t.
func Base(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t
}
