package engine

import (
	"reflect"

	"graphstate/member"
	"graphstate/node"
	"graphstate/primitive"
	"graphstate/typeerrors"
)

// Equal compares x and y, two values of the same static type. The root is
// always walked, whatever the reference handling.
func (w *Walker) Equal(x, y reflect.Value) (bool, error) {
	return w.equal(x, y)
}

// EqualMember compares member m of the struct values x and y.
func (w *Walker) EqualMember(x, y reflect.Value, m member.Member) (bool, error) {
	return w.equalNested(m.Get(x), m.Get(y))
}

func (w *Walker) equalNested(x, y reflect.Value) (bool, error) {
	if w.byReference(x.Type()) {
		return node.SameReference(x, y), nil
	}

	return w.equal(x, y)
}

func (w *Walker) equal(x, y reflect.Value) (bool, error) {
	t := x.Type()
	if w.byValue(t) {
		return valueEqual(x, y), nil
	}

	switch kind := node.Dispatch(t); kind {
	case node.KindStruct:
		return w.equalMembers(x, y)
	case node.KindPointer:
		if x.IsNil() || y.IsNil() {
			return x.IsNil() && y.IsNil(), nil
		}

		if x.Pointer() == y.Pointer() || !w.enter(x, y) {
			return true, nil
		}

		return w.equal(x.Elem(), y.Elem())
	case node.KindInterface:
		if x.IsNil() || y.IsNil() {
			return x.IsNil() && y.IsNil(), nil
		}

		xe, ye := x.Elem(), y.Elem()
		if xe.Type() != ye.Type() {
			return false, nil
		}

		if err := w.dynamic(xe.Type()); err != nil {
			return false, err
		}

		return w.equal(xe, ye)
	case node.KindArray, node.KindSlice, node.KindMap, node.KindSet, node.KindSeq:
		return strategyFor(t).equal(w, x, y)
	default:
		return false, typeerrors.Internal("cannot compare %s of kind %s", t, kind)
	}
}

func (w *Walker) equalMembers(x, y reflect.Value) (bool, error) {
	x, y = member.Addressable(x), member.Addressable(y)

	for _, m := range w.s.Members(x.Type()) {
		if m.IsIndexer() {
			continue
		}

		xv, yv := m.Get(x), m.Get(y)
		if pointsTo(xv, x) && pointsTo(yv, y) {
			continue
		}

		eq, err := w.equalNested(xv, yv)
		if err != nil || !eq {
			return false, err
		}
	}

	return true, nil
}

// pointsTo reports whether v is a pointer to the addressable value owner.
func pointsTo(v, owner reflect.Value) bool {
	return v.Kind() == reflect.Ptr && !v.IsNil() && owner.CanAddr() &&
		v.Type().Elem() == owner.Type() && v.Pointer() == owner.UnsafeAddr()
}

func valueEqual(x, y reflect.Value) bool {
	t := x.Type()
	if primitive.IsEquatable(t) {
		return primitive.Equal(x, y)
	}

	if t.Comparable() {
		return x.Equal(y)
	}

	return reflect.DeepEqual(export(x), export(y))
}
