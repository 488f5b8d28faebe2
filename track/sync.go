package track

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"graphstate/internal/engine"
	"graphstate/member"
	"graphstate/notify"
	"graphstate/settings"
	"graphstate/typeerrors"
	"graphstate/verify"
)

// Synchronizer copies every change reported by a source graph into a target
// graph. It is safe for concurrent use.
type Synchronizer struct {
	mu  sync.Mutex
	s   settings.MemberSettings
	log *zap.Logger

	source, target reflect.Value
	byName         map[string]member.Member
	watches        map[string]*watcher
	root           *watcher
	err            error
	closed         bool
}

// Synchronize copies source into target, then keeps target in sync with
// the changes source reports. Both are pointers to structs of the same type.
func Synchronize[T any](source, target T, s settings.MemberSettings) (*Synchronizer, error) {
	if s == nil {
		return nil, fmt.Errorf("%s: settings: %w", opSynchronize, typeerrors.ErrNilArgument)
	}

	if err := VerifyCanSynchronize(reflect.TypeFor[T](), s); err != nil {
		return nil, err
	}

	sv, tv, err := pointers(opSynchronize, source, target)
	if err != nil {
		return nil, err
	}

	w := engine.New(opSynchronize, s, verify.ForCopy)
	err = w.Copy(sv, tv)
	w.Release()

	if err != nil {
		return nil, err
	}

	sy := &Synchronizer{
		s:       s,
		log:     s.Logger(),
		source:  sv.Elem(),
		target:  tv.Elem(),
		byName:  map[string]member.Member{},
		watches: map[string]*watcher{},
		root:    newWatcher(s),
	}

	sy.mu.Lock()
	defer sy.mu.Unlock()

	for _, m := range s.Members(sy.source.Type()) {
		if m.IsIndexer() {
			continue
		}

		sy.byName[m.Name()] = m
		sy.rewatch(m)
	}

	n := sv.Interface().(notify.Notifier)
	sy.root.cancels = append(sy.root.cancels, n.OnChanged(sy.memberChanged))

	return sy, nil
}

// Err returns the last error met while copying a change.
func (sy *Synchronizer) Err() error {
	sy.mu.Lock()
	defer sy.mu.Unlock()

	return sy.err
}

// MemberChanged copies one member. Notifications call it; call it directly
// for changes made without a notification.
func (sy *Synchronizer) MemberChanged(name string) {
	sy.memberChanged(name)
}

func (sy *Synchronizer) memberChanged(name string) {
	sy.mu.Lock()
	defer sy.mu.Unlock()

	m, ok := sy.byName[name]
	if sy.closed || !ok {
		return
	}

	w := engine.New(opSynchronize, sy.s, verify.ForCopy)
	defer w.Release()

	if err := w.CopyMember(sy.source, sy.target, m); err != nil {
		sy.err = err
		sy.log.Debug("synchronization failed", zap.String("member", name), zap.Error(err))
	}

	sy.rewatch(m)
}

func (sy *Synchronizer) rewatch(m member.Member) {
	name := m.Name()
	sy.watches[name].cancel()

	w := newWatcher(sy.s)
	w.watch(m.Get(sy.source), func() { sy.memberChanged(name) }, nil)
	sy.watches[name] = w
}

// Close stops copying changes.
func (sy *Synchronizer) Close() {
	sy.mu.Lock()
	defer sy.mu.Unlock()

	if sy.closed {
		return
	}

	sy.closed = true
	sy.root.cancel()

	for _, w := range sy.watches {
		w.cancel()
	}
}
