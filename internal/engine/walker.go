package engine

import (
	"reflect"

	"go.uber.org/zap"

	"graphstate/internal/refpair"
	"graphstate/node"
	"graphstate/options"
	"graphstate/settings"
	"graphstate/verify"
)

// Walker traverses graphs for one top level call. It is not safe for
// concurrent use and must be released.
type Walker struct {
	op      string
	s       settings.MemberSettings
	purpose verify.Purpose
	pairs   *refpair.Pairs
	log     *zap.Logger
}

// New returns a walker for operation op. Loop tracking is enabled when s
// uses StructuralWithReferenceLoops.
func New(op string, s settings.MemberSettings, purpose verify.Purpose) *Walker {
	return &Walker{
		op:      op,
		s:       s,
		purpose: purpose,
		pairs:   refpair.Borrow(s.ReferenceHandling()),
		log:     s.Logger(),
	}
}

// Release returns the pair tracker to its pool.
func (w *Walker) Release() {
	w.pairs.Release()
	w.pairs = nil
}

// Settings returns the settings the walker was created with.
func (w *Walker) Settings() settings.MemberSettings { return w.s }

// fresh returns a walker sharing settings but not visited pairs.
func (w *Walker) fresh(purpose verify.Purpose) *Walker {
	return New(w.op, w.s, purpose)
}

// byValue reports whether values of t are compared with primitive equality
// and assigned as a whole.
func (w *Walker) byValue(t reflect.Type) bool {
	return w.s.IsEquatable(t)
}

// byReference reports whether nested values of t are compared by identity.
func (w *Walker) byReference(t reflect.Type) bool {
	return w.s.ReferenceHandling() == options.References && node.IsReference(t) && !w.s.IsEquatable(t)
}

// shares reports whether copy assigns values of t instead of walking them.
func (w *Walker) shares(t reflect.Type) bool {
	return w.byValue(t) || w.byReference(t) || w.s.IsImmutable(t)
}

// dynamic verifies a type found behind an interface.
func (w *Walker) dynamic(t reflect.Type) error {
	return verify.Dynamic(w.op, t, w.s, w.purpose)
}

// enter records the pair x, y before its members are walked. It reports false
// when the pair was already entered: the loop is closed and the pair counts
// as equal.
func (w *Walker) enter(x, y reflect.Value) bool {
	if w.pairs.Add(x, y) {
		return true
	}

	w.log.Debug("reference loop closed",
		zap.String("op", w.op),
		zap.Stringer("type", x.Type()),
	)

	return false
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}

	return path + "." + name
}
