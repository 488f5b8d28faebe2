package engine

import (
	"reflect"

	"go.uber.org/zap"

	"graphstate/diff"
	"graphstate/node"
	"graphstate/typeerrors"
)

// mapStrategy aligns dictionaries by the union of their keys.
type mapStrategy struct{ typ reflect.Type }

func (mapStrategy) equal(w *Walker, x, y reflect.Value) (bool, error) {
	if x.IsNil() || y.IsNil() {
		return x.IsNil() && y.IsNil(), nil
	}

	if x.Len() != y.Len() {
		return false, nil
	}

	if node.SameReference(x, y) || !w.enter(x, y) {
		return true, nil
	}

	for _, k := range sortedKeys(x) {
		yv := y.MapIndex(k)
		if !yv.IsValid() {
			return false, nil
		}

		eq, err := w.equalNested(x.MapIndex(k), yv)
		if err != nil || !eq {
			return false, err
		}
	}

	return true, nil
}

func (mapStrategy) diff(w *Walker, x, y reflect.Value) (*diff.ValueDiff, error) {
	if x.IsNil() || y.IsNil() {
		if x.IsNil() && y.IsNil() {
			return nil, nil
		}

		return leaf(x, y), nil
	}

	if node.SameReference(x, y) || !w.enter(x, y) {
		return nil, nil
	}

	var subs []diff.Sub
	for _, e := range unionEntries(x, y) {
		d, err := w.itemDiff(export(e.key), e.x, e.y)
		if err != nil {
			return nil, err
		}

		subs = collect(subs, d)
	}

	if len(subs) == 0 {
		return nil, nil
	}

	return diff.NewValueDiff(export(x), export(y), subs...), nil
}

func (mapStrategy) diffIndex(w *Walker, x, y, key reflect.Value) (*diff.IndexDiff, error) {
	var xv, yv reflect.Value
	if !x.IsNil() {
		xv = x.MapIndex(key)
	}

	if !y.IsNil() {
		yv = y.MapIndex(key)
	}

	return w.itemDiff(export(key), xv, yv)
}

// copy removes the keys missing from src, then copies every value of src.
func (s mapStrategy) copy(w *Walker, src, dst reflect.Value, path string, settable bool) error {
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

	if dst.IsNil() {
		if !settable {
			return &typeerrors.CannotCreateInstanceError{Path: path, Type: s.typ, Reason: "the map is nil and cannot be assigned"}
		}

		w.log.Debug("instance created", zap.String("path", path), zap.Stringer("type", s.typ))
		dst.Set(reflect.MakeMapWithSize(s.typ, src.Len()))
	} else if !w.enter(src, dst) {
		return nil
	}

	var stale []reflect.Value
	for _, k := range dst.MapKeys() {
		if !src.MapIndex(k).IsValid() {
			stale = append(stale, k)
		}
	}

	deleteKeys(dst, stale)

	elem := s.typ.Elem()
	shares := w.shares(elem)

	for _, e := range unionEntries(src, dst) {
		if !e.x.IsValid() {
			continue
		}

		k, sv, existing := e.key, e.x, e.y

		if shares {
			if existing.IsValid() && w.same(sv, existing) {
				continue
			}

			dst.SetMapIndex(k, detach(sv))
			continue
		}

		tmp := reflect.New(elem).Elem()
		if existing.IsValid() {
			tmp.Set(existing)
		}

		if err := w.copyInto(sv, tmp, itemPath(path, export(k)), true); err != nil {
			return err
		}

		dst.SetMapIndex(k, tmp)
	}

	return nil
}
