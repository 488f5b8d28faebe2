package engine

import (
	"reflect"

	"go.uber.org/zap"

	"graphstate/diff"
	"graphstate/node"
	"graphstate/typeerrors"
)

// item returns the item at i, or the zero Value past the end.
func item(v reflect.Value, i int) reflect.Value {
	if i < v.Len() {
		return v.Index(i)
	}

	return reflect.Value{}
}

func equalItems(w *Walker, x, y reflect.Value) (bool, error) {
	for i := range x.Len() {
		eq, err := w.equalNested(x.Index(i), y.Index(i))
		if err != nil || !eq {
			return false, err
		}
	}

	return true, nil
}

// diffItems pads the shorter side with diff.Missing.
func diffItems(w *Walker, x, y reflect.Value) ([]diff.Sub, error) {
	var subs []diff.Sub

	for i := range max(x.Len(), y.Len()) {
		d, err := w.itemDiff(i, item(x, i), item(y, i))
		if err != nil {
			return nil, err
		}

		subs = collect(subs, d)
	}

	return subs, nil
}

func diffItemAt(w *Walker, x, y, index reflect.Value) (*diff.IndexDiff, error) {
	if !index.CanInt() {
		return nil, typeerrors.Internal("index of %s must be an int, got %s", x.Type(), index.Type())
	}

	i := int(index.Int())
	return w.itemDiff(i, item(x, i), item(y, i))
}

func copyItems(w *Walker, src, dst reflect.Value, path string) error {
	for i := range src.Len() {
		if err := w.copyValue(src.Index(i), dst.Index(i), itemPath(path, i), true); err != nil {
			return err
		}
	}

	return nil
}

type arrayStrategy struct{ typ reflect.Type }

func (arrayStrategy) equal(w *Walker, x, y reflect.Value) (bool, error) {
	return equalItems(w, x, y)
}

func (arrayStrategy) diff(w *Walker, x, y reflect.Value) (*diff.ValueDiff, error) {
	subs, err := diffItems(w, x, y)
	if err != nil || len(subs) == 0 {
		return nil, err
	}

	return diff.NewValueDiff(export(x), export(y), subs...), nil
}

func (arrayStrategy) diffIndex(w *Walker, x, y, index reflect.Value) (*diff.IndexDiff, error) {
	return diffItemAt(w, x, y, index)
}

func (s arrayStrategy) copy(w *Walker, src, dst reflect.Value, path string, _ bool) error {
	if !dst.CanAddr() {
		return typeerrors.Internal("copy target %s is not addressable", s.typ)
	}

	return copyItems(w, src, dst, path)
}

type sliceStrategy struct{ typ reflect.Type }

func (sliceStrategy) equal(w *Walker, x, y reflect.Value) (bool, error) {
	if x.IsNil() || y.IsNil() {
		return x.IsNil() && y.IsNil(), nil
	}

	if x.Len() != y.Len() {
		return false, nil
	}

	if node.SameReference(x, y) || !w.enter(x, y) {
		return true, nil
	}

	return equalItems(w, x, y)
}

func (sliceStrategy) diff(w *Walker, x, y reflect.Value) (*diff.ValueDiff, error) {
	if x.IsNil() || y.IsNil() {
		if x.IsNil() && y.IsNil() {
			return nil, nil
		}

		return leaf(x, y), nil
	}

	if node.SameReference(x, y) || !w.enter(x, y) {
		return nil, nil
	}

	subs, err := diffItems(w, x, y)
	if err != nil || len(subs) == 0 {
		return nil, err
	}

	return diff.NewValueDiff(export(x), export(y), subs...), nil
}

func (sliceStrategy) diffIndex(w *Walker, x, y, index reflect.Value) (*diff.IndexDiff, error) {
	return diffItemAt(w, x, y, index)
}

// copy resizes dst to the length of src when dst may be replaced, then
// copies positionally. A slice that cannot be replaced has a fixed size.
func (s sliceStrategy) copy(w *Walker, src, dst reflect.Value, path string, settable bool) error {
	if src.IsNil() {
		if dst.IsNil() {
			return nil
		}

		if !settable {
			return readonlyDiffers(path, src, dst)
		}

		dst.Set(reflect.Zero(s.typ))
		return nil
	}

	if node.SameReference(src, dst) {
		return nil
	}

	n := src.Len()

	switch {
	case !dst.IsNil() && dst.Len() == n:
		if !w.enter(src, dst) {
			return nil
		}
	case !settable:
		return &typeerrors.FixedSizeError{Path: path, Type: s.typ, SourceCount: n, TargetCount: dst.Len()}
	case dst.IsNil() || dst.Cap() < n:
		grown := reflect.MakeSlice(s.typ, n, n)
		reflect.Copy(grown, dst)
		w.resized(path, dst.Len(), n)
		dst.Set(grown)
	default:
		old := dst.Len()
		dst.Set(dst.Slice(0, n))

		for i := old; i < n; i++ {
			dst.Index(i).Set(reflect.Zero(s.typ.Elem()))
		}

		w.resized(path, old, n)
	}

	return copyItems(w, src, dst, path)
}

func (w *Walker) resized(path string, from, to int) {
	w.log.Debug("collection resized", zap.String("path", path), zap.Int("from", from), zap.Int("to", to))
}
