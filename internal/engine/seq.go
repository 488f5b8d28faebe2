package engine

import (
	"reflect"

	"graphstate/diff"
	"graphstate/typeerrors"
)

// seqStrategy compares iter.Seq values in enumeration order. Sequences have
// no insertion semantics and cannot be copy targets.
type seqStrategy struct{ typ reflect.Type }

var yes = []reflect.Value{reflect.ValueOf(true)}

// items enumerates seq into a slice.
func items(seq reflect.Value) []reflect.Value {
	if seq.IsNil() {
		return nil
	}

	var out []reflect.Value
	yield := reflect.MakeFunc(seq.Type().In(0), func(args []reflect.Value) []reflect.Value {
		out = append(out, args[0])
		return yes
	})

	seq.Call([]reflect.Value{yield})
	return out
}

func itemAt(list []reflect.Value, i int) reflect.Value {
	if i < len(list) {
		return list[i]
	}

	return reflect.Value{}
}

func (seqStrategy) equal(w *Walker, x, y reflect.Value) (bool, error) {
	if x.IsNil() || y.IsNil() {
		return x.IsNil() && y.IsNil(), nil
	}

	xs, ys := items(x), items(y)
	if len(xs) != len(ys) {
		return false, nil
	}

	for i := range xs {
		eq, err := w.equalNested(xs[i], ys[i])
		if err != nil || !eq {
			return false, err
		}
	}

	return true, nil
}

func (seqStrategy) diff(w *Walker, x, y reflect.Value) (*diff.ValueDiff, error) {
	if x.IsNil() || y.IsNil() {
		if x.IsNil() && y.IsNil() {
			return nil, nil
		}

		return leaf(x, y), nil
	}

	xs, ys := items(x), items(y)

	var subs []diff.Sub
	for i := range max(len(xs), len(ys)) {
		d, err := w.itemDiff(i, itemAt(xs, i), itemAt(ys, i))
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

func (seqStrategy) diffIndex(w *Walker, x, y, index reflect.Value) (*diff.IndexDiff, error) {
	if !index.CanInt() {
		return nil, typeerrors.Internal("index of %s must be an int, got %s", x.Type(), index.Type())
	}

	i := int(index.Int())
	return w.itemDiff(i, itemAt(items(x), i), itemAt(items(y), i))
}

func (s seqStrategy) copy(*Walker, reflect.Value, reflect.Value, string, bool) error {
	return typeerrors.Internal("%s is a sequence and cannot be a copy target", s.typ)
}
