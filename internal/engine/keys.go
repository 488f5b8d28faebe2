package engine

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
)

// sortedKeys returns the keys of map m in a stable order so diffs and copies
// are deterministic.
func sortedKeys(m reflect.Value) []reflect.Value {
	keys := m.MapKeys()
	slices.SortFunc(keys, compareKeys)
	return keys
}

// entry is a map key with the values stored under it in x and y. A side
// that lacks the key holds an invalid value.
type entry struct {
	key, x, y reflect.Value
}

// unionEntries returns the entries of x followed by those only in y, sorted
// by key. Values are read while ranging, so a key that is not equal to
// itself, such as NaN, still reports the value it holds.
func unionEntries(x, y reflect.Value) []entry {
	var out []entry
	for it := x.MapRange(); it.Next(); {
		out = append(out, entry{key: it.Key(), x: it.Value(), y: y.MapIndex(it.Key())})
	}

	for it := y.MapRange(); it.Next(); {
		if !x.MapIndex(it.Key()).IsValid() {
			out = append(out, entry{key: it.Key(), y: it.Value()})
		}
	}

	slices.SortFunc(out, func(a, b entry) int { return compareKeys(a.key, b.key) })
	return out
}

// deleteKeys removes keys from map m. Keys that are not equal to themselves
// cannot be looked up, so the map is rebuilt without them.
func deleteKeys(m reflect.Value, keys []reflect.Value) {
	stuck := false
	for _, k := range keys {
		if !k.Equal(k) {
			stuck = true
			continue
		}

		m.SetMapIndex(k, reflect.Value{})
	}

	if !stuck {
		return
	}

	var kept []entry
	for it := m.MapRange(); it.Next(); {
		if it.Key().Equal(it.Key()) {
			kept = append(kept, entry{key: it.Key(), x: it.Value()})
		}
	}

	m.Clear()
	for _, e := range kept {
		m.SetMapIndex(e.key, e.x)
	}
}

func compareKeys(a, b reflect.Value) int {
	if a.Kind() == b.Kind() {
		switch {
		case a.CanInt():
			return cmp.Compare(a.Int(), b.Int())
		case a.CanUint():
			return cmp.Compare(a.Uint(), b.Uint())
		case a.CanFloat():
			return cmp.Compare(a.Float(), b.Float())
		case a.Kind() == reflect.String:
			return cmp.Compare(a.String(), b.String())
		case a.Kind() == reflect.Bool:
			return cmp.Compare(boolRank(a.Bool()), boolRank(b.Bool()))
		}
	}

	return cmp.Compare(fmt.Sprint(export(a)), fmt.Sprint(export(b)))
}

func boolRank(b bool) int {
	if b {
		return 1
	}

	return 0
}
