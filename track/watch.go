package track

import (
	"reflect"

	"graphstate/node"
	"graphstate/notify"
	"graphstate/settings"
)

var collectionNotifierType = reflect.TypeFor[notify.CollectionNotifier]()

// watcher subscribes to every notifier reachable from a value. Each
// reference is subscribed once, so loops terminate.
type watcher struct {
	s       settings.MemberSettings
	seen    map[node.Token]struct{}
	cancels []func()
}

func newWatcher(s settings.MemberSettings) *watcher {
	return &watcher{s: s, seen: map[node.Token]struct{}{}}
}

// cancel removes every subscription made so far.
func (w *watcher) cancel() {
	if w == nil {
		return
	}

	for _, c := range w.cancels {
		c()
	}

	w.cancels = nil
	clear(w.seen)
}

// watch subscribes changed to every notifier found in v. A collection
// directly in v reports through items when items is not nil.
func (w *watcher) watch(v reflect.Value, changed func(), items func(notify.Change)) {
	if !v.IsValid() || w.s.IsIgnoringType(v.Type()) || w.s.IsImmutable(v.Type()) {
		return
	}

	if token, ok := node.Identity(v); ok {
		if _, seen := w.seen[token]; seen {
			return
		}

		w.seen[token] = struct{}{}
	}

	switch kind := node.Dispatch(v.Type()); kind {
	case node.KindPointer:
		if v.IsNil() {
			return
		}

		if n, ok := v.Interface().(notify.Notifier); ok {
			w.cancels = append(w.cancels, n.OnChanged(func(string) { changed() }))
		}

		w.watch(v.Elem(), changed, nil)
	case node.KindInterface:
		if !v.IsNil() {
			w.watch(v.Elem(), changed, nil)
		}
	case node.KindStruct:
		for _, m := range w.s.Members(v.Type()) {
			if !m.IsIndexer() {
				w.watch(m.Get(v), changed, nil)
			}
		}
	case node.KindArray, node.KindSlice, node.KindMap, node.KindSet:
		if cn, ok := collectionNotifier(v); ok {
			w.cancels = append(w.cancels, cn.OnCollectionChanged(func(c notify.Change) {
				if items != nil {
					items(c)
					return
				}

				changed()
			}))
		}

		w.watchItems(v, kind, changed)
	}
}

func (w *watcher) watchItems(v reflect.Value, kind node.Kind, changed func()) {
	switch kind {
	case node.KindArray, node.KindSlice:
		for i := range v.Len() {
			w.watch(v.Index(i), changed, nil)
		}
	case node.KindMap:
		iter := v.MapRange()
		for iter.Next() {
			w.watch(iter.Value(), changed, nil)
		}
	case node.KindSet:
		for _, k := range v.MapKeys() {
			w.watch(k, changed, nil)
		}
	}
}

// collectionNotifier finds the notifier of a collection, declared on the
// collection type or on a pointer to it.
func collectionNotifier(v reflect.Value) (notify.CollectionNotifier, bool) {
	if v.Type().Implements(collectionNotifierType) {
		cn, ok := v.Interface().(notify.CollectionNotifier)
		return cn, ok
	}

	if v.CanAddr() && reflect.PointerTo(v.Type()).Implements(collectionNotifierType) {
		cn, ok := v.Addr().Interface().(notify.CollectionNotifier)
		return cn, ok
	}

	return nil, false
}
