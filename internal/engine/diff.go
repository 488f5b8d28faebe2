package engine

import (
	"reflect"

	"graphstate/diff"
	"graphstate/member"
	"graphstate/node"
	"graphstate/typeerrors"
)

// Diff compares x and y and returns every difference, or nil when they are
// equal.
func (w *Walker) Diff(x, y reflect.Value) (*diff.ValueDiff, error) {
	return w.diff(x, y)
}

// DiffMember diffs member m of the struct values x and y.
func (w *Walker) DiffMember(x, y reflect.Value, m member.Member) (*diff.MemberDiff, error) {
	v, err := w.diffNested(m.Get(x), m.Get(y))
	if err != nil || v == nil {
		return nil, err
	}

	return diff.NewMemberDiff(m, v), nil
}

// DiffIndex diffs the items of collections x and y at index, a position for
// arrays, slices and sequences or a key for maps and sets.
func (w *Walker) DiffIndex(x, y, index reflect.Value) (*diff.IndexDiff, error) {
	return strategyFor(x.Type()).diffIndex(w, x, y, index)
}

func leaf(x, y reflect.Value) *diff.ValueDiff {
	return diff.NewValueDiff(export(x), export(y))
}

func (w *Walker) diffNested(x, y reflect.Value) (*diff.ValueDiff, error) {
	if w.byReference(x.Type()) {
		if node.SameReference(x, y) {
			return nil, nil
		}

		return leaf(x, y), nil
	}

	return w.diff(x, y)
}

func (w *Walker) diff(x, y reflect.Value) (*diff.ValueDiff, error) {
	t := x.Type()
	if w.byValue(t) {
		if valueEqual(x, y) {
			return nil, nil
		}

		return leaf(x, y), nil
	}

	switch kind := node.Dispatch(t); kind {
	case node.KindStruct:
		subs, err := w.diffMembers(x, y)
		if err != nil || len(subs) == 0 {
			return nil, err
		}

		return diff.NewValueDiff(export(x), export(y), subs...), nil
	case node.KindPointer:
		if x.IsNil() || y.IsNil() {
			if x.IsNil() && y.IsNil() {
				return nil, nil
			}

			return leaf(x, y), nil
		}

		if x.Pointer() == y.Pointer() || !w.enter(x, y) {
			return nil, nil
		}

		inner, err := w.diff(x.Elem(), y.Elem())
		return rewrap(x, y, inner, err)
	case node.KindInterface:
		if x.IsNil() || y.IsNil() {
			if x.IsNil() && y.IsNil() {
				return nil, nil
			}

			return leaf(x, y), nil
		}

		xe, ye := x.Elem(), y.Elem()
		if xe.Type() != ye.Type() {
			return leaf(x, y), nil
		}

		if err := w.dynamic(xe.Type()); err != nil {
			return nil, err
		}

		inner, err := w.diff(xe, ye)
		return rewrap(x, y, inner, err)
	case node.KindArray, node.KindSlice, node.KindMap, node.KindSet, node.KindSeq:
		return strategyFor(t).diff(w, x, y)
	default:
		return nil, typeerrors.Internal("cannot diff %s of kind %s", t, kind)
	}
}

// rewrap moves the children found behind a reference onto a node holding
// the references themselves.
func rewrap(x, y reflect.Value, inner *diff.ValueDiff, err error) (*diff.ValueDiff, error) {
	if err != nil || inner == nil {
		return nil, err
	}

	return diff.NewValueDiff(export(x), export(y), inner.Diffs...), nil
}

func (w *Walker) diffMembers(x, y reflect.Value) ([]diff.Sub, error) {
	x, y = member.Addressable(x), member.Addressable(y)

	var subs []diff.Sub
	for _, m := range w.s.Members(x.Type()) {
		if m.IsIndexer() {
			continue
		}

		xv, yv := m.Get(x), m.Get(y)
		if pointsTo(xv, x) && pointsTo(yv, y) {
			continue
		}

		v, err := w.diffNested(xv, yv)
		if err != nil {
			return nil, err
		}

		if v != nil {
			subs = append(subs, diff.NewMemberDiff(m, v))
		}
	}

	return subs, nil
}
