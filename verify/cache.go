package verify

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"graphstate/settings"
	"graphstate/typeerrors"
)

type cacheKey struct {
	typ      reflect.Type
	settings uint64
	purpose  Purpose
}

// Cache memoizes verification results. Concurrent misses on one key run a
// single walk and share its result. The zero value is ready to use.
type Cache struct {
	results sync.Map // cacheKey -> *typeerrors.TypeErrors
	group   singleflight.Group
}

// Default is the process wide cache used by the package level functions.
var Default = &Cache{}

// Verify returns the cached result for t, walking it on a miss.
func (c *Cache) Verify(t reflect.Type, s settings.MemberSettings, purpose Purpose) *typeerrors.TypeErrors {
	key := cacheKey{typ: t, settings: s.ID(), purpose: purpose}
	if cached, ok := c.results.Load(key); ok {
		return cached.(*typeerrors.TypeErrors)
	}

	flight := fmt.Sprintf("%p|%d|%d", t, key.settings, purpose)
	v, _, _ := c.group.Do(flight, func() (any, error) {
		if cached, ok := c.results.Load(key); ok {
			return cached, nil
		}

		errs := Walk(t, s, purpose)
		s.Logger().Debug("verified type",
			zap.Stringer("type", t),
			zap.Stringer("purpose", purpose),
			zap.Uint64("settings", key.settings),
			zap.Int("problems", len(errs.All())),
		)

		actual, _ := c.results.LoadOrStore(key, errs)
		return actual, nil
	})

	return v.(*typeerrors.TypeErrors)
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	n := 0
	c.results.Range(func(_, _ any) bool {
		n++
		return true
	})

	return n
}

// Verify verifies t with the default cache. Nil means t is supported.
func Verify(t reflect.Type, s settings.MemberSettings, purpose Purpose) *typeerrors.TypeErrors {
	return Default.Verify(t, s, purpose)
}

// Check verifies t and converts problems into a *typeerrors.NotSupportedError
// naming operation.
func Check(operation string, t reflect.Type, s settings.MemberSettings, purpose Purpose) error {
	return typeerrors.Check(operation, Verify(t, s, purpose))
}

// Dynamic verifies the dynamic type of a value found behind an interface.
func Dynamic(operation string, t reflect.Type, s settings.MemberSettings, purpose Purpose) error {
	return typeerrors.Check(operation, Verify(t, s, purpose))
}
