package engine

import (
	"reflect"

	"go.uber.org/zap"

	"graphstate/diff"
	"graphstate/node"
	"graphstate/typeerrors"
)

var present = reflect.ValueOf(struct{}{})

// setStrategy handles map[K]struct{}. Elements compared by value are looked
// up by key; structural elements are matched pairwise, see match.
type setStrategy struct{ typ reflect.Type }

// byKey reports whether map lookup decides membership: the key type is
// compared by identity, or by a value equality that == agrees with.
func (s setStrategy) byKey(w *Walker) bool {
	k := s.typ.Key()
	if w.byReference(k) {
		return true
	}

	switch k.Kind() {
	case reflect.Ptr, reflect.Struct, reflect.Interface, reflect.Array:
		return false
	default:
		return w.byValue(k)
	}
}

// matching is the outcome of aligning two sets: equal pairs and the
// elements left over on each side.
type matching struct {
	pairs        [][2]reflect.Value
	onlyX, onlyY []reflect.Value
}

// match pairs each element of x with an equal, unmatched element of y.
// Identical keys are paired first. The pairs a rejected candidate entered
// are rolled back so that they do not close loops for later comparisons.
func (s setStrategy) match(w *Walker, x, y reflect.Value) (matching, error) {
	var res matching

	ys := sortedKeys(y)
	used := make([]bool, len(ys))
	var rest []reflect.Value

	for _, xk := range sortedKeys(x) {
		j := indexOfKey(ys, used, xk)
		if j < 0 {
			rest = append(rest, xk)
			continue
		}

		used[j] = true
		res.pairs = append(res.pairs, [2]reflect.Value{xk, ys[j]})
	}

	for _, xk := range rest {
		found := false

		for j, yk := range ys {
			if used[j] {
				continue
			}

			mark := w.pairs.Mark()

			eq, err := w.equal(xk, yk)
			if err != nil {
				return res, err
			}

			if eq {
				used[j], found = true, true
				res.pairs = append(res.pairs, [2]reflect.Value{xk, yk})
				break
			}

			w.pairs.Rollback(mark)
		}

		if !found {
			res.onlyX = append(res.onlyX, xk)
		}
	}

	for j, yk := range ys {
		if !used[j] {
			res.onlyY = append(res.onlyY, yk)
		}
	}

	return res, nil
}

func indexOfKey(keys []reflect.Value, used []bool, k reflect.Value) int {
	for j, key := range keys {
		if !used[j] && key.Equal(k) {
			return j
		}
	}

	return -1
}

func (s setStrategy) equal(w *Walker, x, y reflect.Value) (bool, error) {
	if x.IsNil() || y.IsNil() {
		return x.IsNil() && y.IsNil(), nil
	}

	if x.Len() != y.Len() {
		return false, nil
	}

	if node.SameReference(x, y) || !w.enter(x, y) {
		return true, nil
	}

	if s.byKey(w) {
		for _, k := range x.MapKeys() {
			if !y.MapIndex(k).IsValid() {
				return false, nil
			}
		}

		return true, nil
	}

	m, err := s.match(w, x, y)
	if err != nil {
		return false, err
	}

	return len(m.onlyX) == 0 && len(m.onlyY) == 0, nil
}

// leftovers returns the elements present on one side only.
func (s setStrategy) leftovers(w *Walker, x, y reflect.Value) (onlyX, onlyY []reflect.Value, err error) {
	if s.byKey(w) {
		for _, k := range sortedKeys(x) {
			if !y.MapIndex(k).IsValid() {
				onlyX = append(onlyX, k)
			}
		}

		for _, k := range sortedKeys(y) {
			if !x.MapIndex(k).IsValid() {
				onlyY = append(onlyY, k)
			}
		}

		return onlyX, onlyY, nil
	}

	m, err := s.match(w, x, y)
	return m.onlyX, m.onlyY, err
}

// diff reports each element found on one side only, keyed by the element.
func (s setStrategy) diff(w *Walker, x, y reflect.Value) (*diff.ValueDiff, error) {
	if x.IsNil() || y.IsNil() {
		if x.IsNil() && y.IsNil() {
			return nil, nil
		}

		return leaf(x, y), nil
	}

	if node.SameReference(x, y) || !w.enter(x, y) {
		return nil, nil
	}

	onlyX, onlyY, err := s.leftovers(w, x, y)
	if err != nil || len(onlyX)+len(onlyY) == 0 {
		return nil, err
	}

	subs := make([]diff.Sub, 0, len(onlyX)+len(onlyY))
	for _, k := range onlyX {
		e := export(k)
		subs = append(subs, diff.NewIndexDiff(e, diff.NewValueDiff(e, diff.Missing)))
	}

	for _, k := range onlyY {
		e := export(k)
		subs = append(subs, diff.NewIndexDiff(e, diff.NewValueDiff(diff.Missing, e)))
	}

	return diff.NewValueDiff(export(x), export(y), subs...), nil
}

func (s setStrategy) diffIndex(w *Walker, x, y, elem reflect.Value) (*diff.IndexDiff, error) {
	d, err := s.diff(w, x, y)
	if err != nil || d == nil {
		return nil, err
	}

	want := export(elem)
	for _, sub := range d.Diffs {
		if id, ok := sub.(*diff.IndexDiff); ok && reflect.ValueOf(id.Index).Equal(reflect.ValueOf(want)) {
			return id, nil
		}
	}

	return nil, nil
}

// copy makes dst hold elements equal to those of src. Structural elements
// that have no equal in dst are copied into leftover pointer elements of dst
// in place, or created.
func (s setStrategy) copy(w *Walker, src, dst reflect.Value, path string, settable bool) error {
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
			return &typeerrors.CannotCreateInstanceError{Path: path, Type: s.typ, Reason: "the set is nil and cannot be assigned"}
		}

		w.log.Debug("instance created", zap.String("path", path), zap.Stringer("type", s.typ))
		dst.Set(reflect.MakeMapWithSize(s.typ, src.Len()))
	} else if !w.enter(src, dst) {
		return nil
	}

	onlySrc, onlyDst, err := s.leftovers(w, src, dst)
	if err != nil {
		return err
	}

	byKey := s.byKey(w)
	elem := s.typ.Key()

	// pointer elements copied in place keep their identity as keys
	reuse := 0
	if !byKey && elem.Kind() == reflect.Ptr && !w.shares(elem) {
		reuse = min(len(onlySrc), len(onlyDst))
	}

	deleteKeys(dst, onlyDst[reuse:])

	for i, e := range onlySrc {
		if byKey {
			dst.SetMapIndex(e, present)
			continue
		}

		target := reflect.New(elem).Elem()
		if i < reuse {
			target.Set(onlyDst[i])
		}

		if err := w.copyValue(e, target, itemPath(path, export(e)), true); err != nil {
			return err
		}

		dst.SetMapIndex(target, present)
	}

	return nil
}
