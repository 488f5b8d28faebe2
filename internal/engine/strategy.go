package engine

import (
	"reflect"
	"sync"

	"graphstate/diff"
	"graphstate/node"
)

// strategy aligns the items of two collections of one type.
type strategy interface {
	equal(w *Walker, x, y reflect.Value) (bool, error)
	diff(w *Walker, x, y reflect.Value) (*diff.ValueDiff, error)
	diffIndex(w *Walker, x, y, index reflect.Value) (*diff.IndexDiff, error)
	copy(w *Walker, src, dst reflect.Value, path string, settable bool) error
}

var strategies sync.Map // reflect.Type -> strategy

func strategyFor(t reflect.Type) strategy {
	if cached, ok := strategies.Load(t); ok {
		return cached.(strategy)
	}

	var s strategy
	switch node.Dispatch(t) {
	case node.KindArray:
		s = arrayStrategy{typ: t}
	case node.KindSlice:
		s = sliceStrategy{typ: t}
	case node.KindMap:
		s = mapStrategy{typ: t}
	case node.KindSet:
		s = setStrategy{typ: t}
	case node.KindSeq:
		s = seqStrategy{typ: t}
	default:
		s = unsupportedStrategy{typ: t}
	}

	actual, _ := strategies.LoadOrStore(t, s)
	return actual.(strategy)
}

// itemDiff diffs two items, either of which may be absent.
func (w *Walker) itemDiff(index any, x, y reflect.Value) (*diff.IndexDiff, error) {
	switch {
	case !x.IsValid() && !y.IsValid():
		return nil, nil
	case !x.IsValid():
		return diff.NewIndexDiff(index, diff.NewValueDiff(diff.Missing, export(y))), nil
	case !y.IsValid():
		return diff.NewIndexDiff(index, diff.NewValueDiff(export(x), diff.Missing)), nil
	}

	v, err := w.diffNested(x, y)
	if err != nil || v == nil {
		return nil, err
	}

	return diff.NewIndexDiff(index, v), nil
}

func collect(subs []diff.Sub, d *diff.IndexDiff) []diff.Sub {
	if d == nil {
		return subs
	}

	return append(subs, d)
}

func itemPath(path string, index any) string {
	return path + "[" + diff.Render(index) + "]"
}
