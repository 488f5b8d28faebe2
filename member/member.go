package member

import (
	"errors"
	"reflect"
	"sync"

	"graphstate/options"
)

// TagName is the struct tag key read for member options.
const TagName = "graph"

var (
	ErrReadOnly       = errors.New("member is read-only")
	ErrNotAddressable = errors.New("owner value is not addressable")
	ErrIndexer        = errors.New("indexer cannot be accessed without arguments")
	ErrNilEmbedded    = errors.New("member is promoted through a nil embedded interface")
)

// Member is a named, typed slot on a declaring type.
type Member interface {
	Name() string
	Kind() options.MemberKind
	// DeclaringType is the struct type that declares the member, for promoted
	// members it is the embedded struct type.
	DeclaringType() reflect.Type
	// Type is the static type of the member value.
	Type() reflect.Type
	IsReadOnly() bool
	IsIndexer() bool
	IsExported() bool
	// Get reads the member from owner, a struct value of the owning type.
	// The returned value can always be used with Interface and Set.
	Get(owner reflect.Value) reflect.Value
	// Set writes value into owner, which must be addressable.
	Set(owner, value reflect.Value) error
	String() string
}

type cacheKey struct {
	typ     reflect.Type
	kind    options.MemberKind
	binding options.BindingFlags
}

var cache sync.Map // cacheKey -> []Member

// Of returns the visible members of t for the given kind and binding.
// The slice is shared and must not be modified.
func Of(t reflect.Type, kind options.MemberKind, binding options.BindingFlags) []Member {
	key := cacheKey{typ: t, kind: kind, binding: binding}
	if cached, ok := cache.Load(key); ok {
		return cached.([]Member)
	}

	var members []Member
	switch kind {
	case options.MemberField:
		members = buildFields(t, binding)
	case options.MemberProperty:
		members = buildProperties(t, binding)
	}

	actual, _ := cache.LoadOrStore(key, members)
	return actual.([]Member)
}

// Fields is shorthand for Of(t, options.MemberField, binding).
func Fields(t reflect.Type, binding options.BindingFlags) []Member {
	return Of(t, options.MemberField, binding)
}

// Properties is shorthand for Of(t, options.MemberProperty, binding).
func Properties(t reflect.Type, binding options.BindingFlags) []Member {
	return Of(t, options.MemberProperty, binding)
}

// Find returns the member of t named name.
func Find(t reflect.Type, kind options.MemberKind, binding options.BindingFlags, name string) (Member, bool) {
	for _, m := range Of(t, kind, binding) {
		if m.Name() == name {
			return m, true
		}
	}

	return nil, false
}

// Addressable returns v itself when it is addressable, otherwise an addressable copy.
func Addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v
	}

	tmp := reflect.New(v.Type()).Elem()
	tmp.Set(v)
	return tmp
}

func typeName(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}

	return t.String()
}
