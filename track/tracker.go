package track

import (
	"fmt"
	"reflect"
	"slices"
	"sync"

	"go.uber.org/zap"

	"graphstate/diff"
	"graphstate/internal/engine"
	"graphstate/member"
	"graphstate/notify"
	"graphstate/options"
	"graphstate/settings"
	"graphstate/typeerrors"
	"graphstate/verify"
)

// Names reported to OnChanged listeners of a DirtyTracker.
const (
	MemberDiff    = "Diff"
	MemberIsDirty = "IsDirty"
)

// DirtyTracker holds the difference between two graphs and keeps it up to
// date from their change notifications. It is safe for concurrent use.
type DirtyTracker struct {
	mu  sync.Mutex
	s   settings.MemberSettings
	log *zap.Logger

	// x and y are the structs behind the tracked pointers
	x, y    reflect.Value
	members []member.Member
	byName  map[string]member.Member
	diffs   map[string]*diff.MemberDiff
	watches map[string]*watcher
	root    *watcher
	err     error
	closed  bool

	listeners listeners
}

// Track starts tracking the difference between x and y, pointers to structs
// of the same type that implement Notifier.
func Track[T any](x, y T, s settings.MemberSettings) (*DirtyTracker, error) {
	if s == nil {
		return nil, fmt.Errorf("%s: settings: %w", opTrack, typeerrors.ErrNilArgument)
	}

	if err := VerifyCanTrack(reflect.TypeFor[T](), s); err != nil {
		return nil, err
	}

	xv, yv, err := pointers(opTrack, x, y)
	if err != nil {
		return nil, err
	}

	t := &DirtyTracker{
		s:       s,
		log:     s.Logger(),
		x:       xv.Elem(),
		y:       yv.Elem(),
		byName:  map[string]member.Member{},
		diffs:   map[string]*diff.MemberDiff{},
		watches: map[string]*watcher{},
		root:    newWatcher(s),
	}

	for _, m := range s.Members(t.x.Type()) {
		if !m.IsIndexer() {
			t.members = append(t.members, m)
			t.byName[m.Name()] = m
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, m := range t.members {
		if err := t.refresh(m); err != nil {
			t.closeLocked()
			return nil, err
		}
	}

	for _, v := range []reflect.Value{xv, yv} {
		n := v.Interface().(notify.Notifier)
		t.root.cancels = append(t.root.cancels, n.OnChanged(t.memberChanged))
	}

	return t, nil
}

// pointers checks that x and y are distinct non nil pointers.
func pointers[T any](op string, x, y T) (xv, yv reflect.Value, err error) {
	xv, yv = reflect.ValueOf(x), reflect.ValueOf(y)

	if !xv.IsValid() || !yv.IsValid() || xv.IsNil() || yv.IsNil() {
		return xv, yv, fmt.Errorf("%s: %w", op, typeerrors.ErrNilArgument)
	}

	if xv.Pointer() == yv.Pointer() {
		return xv, yv, fmt.Errorf("%s: %w", op, typeerrors.ErrSameInstance)
	}

	return xv, yv, nil
}

// IsDirty reports whether the graphs differ.
func (t *DirtyTracker) IsDirty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.isDirty()
}

func (t *DirtyTracker) isDirty() bool {
	return len(t.diffs) > 0
}

// Diff returns the current difference, diff.Empty when the graphs are equal.
func (t *DirtyTracker) Diff() diff.Diff {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.isDirty() {
		return diff.Empty
	}

	subs := make([]diff.Sub, 0, len(t.diffs))
	for _, m := range t.members {
		if d, ok := t.diffs[m.Name()]; ok {
			subs = append(subs, d)
		}
	}

	return diff.NewValueDiff(t.x.Addr().Interface(), t.y.Addr().Interface(), subs...)
}

// Err returns the last error met while handling a notification.
func (t *DirtyTracker) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.err
}

// OnChanged registers fn to be called with MemberDiff whenever the difference
// changes, and with MemberIsDirty when IsDirty flips.
func (t *DirtyTracker) OnChanged(fn func(member string)) (cancel func()) {
	return t.listeners.add(fn)
}

// MemberChanged recomputes the difference of one member. Notifications call
// it; call it directly for changes made without a notification.
func (t *DirtyTracker) MemberChanged(name string) {
	t.memberChanged(name)
}

func (t *DirtyTracker) memberChanged(name string) {
	t.update(func() (bool, error) {
		m, ok := t.byName[name]
		if !ok {
			return false, nil
		}

		return true, t.refresh(m)
	})
}

func (t *DirtyTracker) itemChanged(name string, c notify.Change) {
	t.update(func() (bool, error) {
		m := t.byName[name]
		if c.Action != notify.ActionReplace || c.Index == nil || t.s.ReferenceHandling() == options.References {
			return true, t.refresh(m)
		}

		return true, t.refreshItem(m, c.Index)
	})
}

// Refresh recomputes the whole difference.
func (t *DirtyTracker) Refresh() error {
	var err error

	t.update(func() (bool, error) {
		for _, m := range t.members {
			if err = t.refresh(m); err != nil {
				return true, err
			}
		}

		return true, nil
	})

	return err
}

// update runs fn under the lock and notifies listeners once it is released.
func (t *DirtyTracker) update(fn func() (bool, error)) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}

	wasDirty := t.isDirty()

	changed, err := fn()
	if err != nil {
		t.err = err
		t.log.Debug("tracking update failed", zap.String("op", opTrack), zap.Error(err))
	}

	flipped := wasDirty != t.isDirty()
	t.mu.Unlock()

	if changed {
		t.listeners.notify(MemberDiff)
	}

	if flipped {
		t.listeners.notify(MemberIsDirty)
	}
}

// refresh resubscribes the member on both sides and recomputes its diff.
func (t *DirtyTracker) refresh(m member.Member) error {
	t.rewatch(m)

	walker := engine.New(opTrack, t.s, verify.ForDiff)
	defer walker.Release()

	d, err := walker.DiffMember(t.x, t.y, m)
	if err != nil {
		return err
	}

	t.set(m.Name(), d)
	return nil
}

func (t *DirtyTracker) rewatch(m member.Member) {
	name := m.Name()
	t.watches[name].cancel()

	w := newWatcher(t.s)
	changed := func() { t.memberChanged(name) }
	items := func(c notify.Change) { t.itemChanged(name, c) }
	w.watch(m.Get(t.x), changed, items)
	w.watch(m.Get(t.y), changed, items)
	t.watches[name] = w
}

// refreshItem recomputes the item at index of a collection member. Items of
// the member diff that were not reported stay as they are.
func (t *DirtyTracker) refreshItem(m member.Member, index any) error {
	key, err := engine.Key(m.Type(), index)
	if err != nil {
		return err
	}

	xv, yv := m.Get(t.x), m.Get(t.y)
	if xv.Kind() != reflect.Array && (xv.IsNil() || yv.IsNil()) {
		return t.refresh(m)
	}

	t.rewatch(m)

	walker := engine.New(opTrack, t.s, verify.ForDiff)
	defer walker.Release()

	id, err := walker.DiffIndex(xv, yv, key)
	if err != nil {
		return err
	}

	var subs []diff.Sub
	if old, ok := t.diffs[m.Name()]; ok {
		for _, sub := range old.Diffs {
			if other, ok := sub.(*diff.IndexDiff); !ok || !sameIndex(other.Index, key.Interface()) {
				subs = append(subs, sub)
			}
		}
	}

	if id != nil {
		subs = insertIndex(subs, id)
	}

	if len(subs) == 0 {
		t.set(m.Name(), nil)
		return nil
	}

	t.set(m.Name(), diff.NewMemberDiff(m, diff.NewValueDiff(xv.Interface(), yv.Interface(), subs...)))
	return nil
}

// insertIndex keeps positional item diffs in ascending order.
func insertIndex(subs []diff.Sub, id *diff.IndexDiff) []diff.Sub {
	at, ok := id.Index.(int)
	if !ok {
		return append(subs, id)
	}

	i := slices.IndexFunc(subs, func(sub diff.Sub) bool {
		other, ok := sub.(*diff.IndexDiff)
		if !ok {
			return false
		}

		n, ok := other.Index.(int)
		return ok && n > at
	})
	if i < 0 {
		return append(subs, id)
	}

	return slices.Insert(subs, i, diff.Sub(id))
}

func sameIndex(a, b any) bool {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	return av.IsValid() && bv.IsValid() && av.Type() == bv.Type() && av.Comparable() && av.Equal(bv)
}

func (t *DirtyTracker) set(name string, d *diff.MemberDiff) {
	if d == nil {
		delete(t.diffs, name)
		return
	}

	t.diffs[name] = d
}

// Close removes every subscription. A closed tracker keeps its last diff.
func (t *DirtyTracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closeLocked()
}

func (t *DirtyTracker) closeLocked() {
	if t.closed {
		return
	}

	t.closed = true
	t.root.cancel()

	for _, w := range t.watches {
		w.cancel()
	}
}

// listeners is a registry of OnChanged callbacks.
type listeners struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(string)
}

func (l *listeners) add(fn func(string)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fns == nil {
		l.fns = map[int]func(string){}
	}

	id := l.next
	l.next++
	l.fns[id] = fn

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()

		delete(l.fns, id)
	}
}

func (l *listeners) notify(name string) {
	l.mu.Lock()
	fns := make([]func(string), 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(name)
	}
}
