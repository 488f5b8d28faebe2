package settings

import (
	"reflect"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"graphstate/member"
	"graphstate/node"
	"graphstate/options"
	"graphstate/primitive"
)

// MemberSettings is the configuration shared by field and property traversal.
type MemberSettings interface {
	ReferenceHandling() options.ReferenceHandling
	Binding() options.BindingFlags
	MemberKind() options.MemberKind
	// Members returns the visible, not ignored members of struct type t.
	Members(t reflect.Type) []member.Member
	IsIgnoringMember(m member.Member) bool
	IsIgnoringDeclaringType(t reflect.Type) bool
	IsIgnoringType(t reflect.Type) bool
	IsEquatable(t reflect.Type) bool
	IsImmutable(t reflect.Type) bool
	Logger() *zap.Logger
	// ID is unique per instance and stable for its lifetime.
	ID() uint64
}

// FieldsSettings traverses struct fields.
type FieldsSettings struct{ base }

// PropertiesSettings traverses getter and setter methods.
type PropertiesSettings struct{ base }

type memberKey struct {
	declaring reflect.Type
	name      string
}

type base struct {
	id       uint64
	kind     options.MemberKind
	handling options.ReferenceHandling
	binding  options.BindingFlags
	logger   *zap.Logger

	ignoredTypes   map[reflect.Type]struct{}
	ignoredMembers map[memberKey]struct{}
	immutable      map[reflect.Type]struct{}
	equatable      map[reflect.Type]struct{}

	members    sync.Map // reflect.Type -> []member.Member
	immutables sync.Map // reflect.Type -> bool
	equatables sync.Map // reflect.Type -> bool
}

var (
	interned sync.Map // string -> MemberSettings
	lastID   atomic.Uint64
)

// Fields returns the interned field settings for opts.
func Fields(opts ...Option) *FieldsSettings {
	c := newConfig(opts)
	key := c.key(options.MemberField)

	if cached, ok := interned.Load(key); ok {
		return cached.(*FieldsSettings)
	}

	s := &FieldsSettings{}
	s.init(options.MemberField, &c)

	actual, loaded := interned.LoadOrStore(key, s)
	if !loaded {
		s.logCreated()
	}

	return actual.(*FieldsSettings)
}

// Properties returns the interned property settings for opts.
func Properties(opts ...Option) *PropertiesSettings {
	c := newConfig(opts)
	key := c.key(options.MemberProperty)

	if cached, ok := interned.Load(key); ok {
		return cached.(*PropertiesSettings)
	}

	s := &PropertiesSettings{}
	s.init(options.MemberProperty, &c)

	actual, loaded := interned.LoadOrStore(key, s)
	if !loaded {
		s.logCreated()
	}

	return actual.(*PropertiesSettings)
}

// Of returns the interned settings for kind.
func Of(kind options.MemberKind, opts ...Option) MemberSettings {
	if kind == options.MemberProperty {
		return Properties(opts...)
	}

	return Fields(opts...)
}

func (b *base) init(kind options.MemberKind, c *config) {
	b.id = lastID.Add(1)
	b.kind = kind
	b.handling = c.handling
	b.binding = c.binding
	b.logger = c.logger
	b.ignoredTypes = typeSet(c.ignoredTypes)
	b.immutable = typeSet(c.immutable)
	b.equatable = typeSet(c.equatable)
	b.ignoredMembers = make(map[memberKey]struct{}, len(c.ignoredMembers))

	for _, ref := range c.ignoredMembers {
		b.ignoredMembers[b.resolveMember(ref)] = struct{}{}
	}
}

// resolveMember keys a member by the type declaring it, so that ignoring a
// promoted member ignores it wherever it is promoted to.
func (b *base) resolveMember(ref memberRef) memberKey {
	t := ref.typ
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t != nil && t.Kind() == reflect.Struct {
		if m, ok := member.Find(t, b.kind, options.BindingAll, ref.name); ok {
			return memberKey{declaring: m.DeclaringType(), name: m.Name()}
		}
	}

	return memberKey{declaring: t, name: ref.name}
}

func (b *base) logCreated() {
	b.logger.Debug("settings created",
		zap.Uint64("id", b.id),
		zap.Stringer("kind", b.kind),
		zap.Stringer("reference_handling", b.handling),
		zap.Stringer("binding", b.binding),
	)
}

func typeSet(types []reflect.Type) map[reflect.Type]struct{} {
	set := make(map[reflect.Type]struct{}, len(types))
	for _, t := range types {
		if t != nil {
			set[t] = struct{}{}
		}
	}

	return set
}

func (b *base) ID() uint64                                   { return b.id }
func (b *base) ReferenceHandling() options.ReferenceHandling { return b.handling }
func (b *base) Binding() options.BindingFlags                { return b.binding }
func (b *base) MemberKind() options.MemberKind               { return b.kind }
func (b *base) Logger() *zap.Logger                          { return b.logger }

func (b *base) Members(t reflect.Type) []member.Member {
	if cached, ok := b.members.Load(t); ok {
		return cached.([]member.Member)
	}

	var out []member.Member
	if t.Kind() == reflect.Struct && !b.IsIgnoringDeclaringType(t) {
		for _, m := range member.Of(t, b.kind, b.binding) {
			if !b.IsIgnoringMember(m) {
				out = append(out, m)
			}
		}
	}

	actual, _ := b.members.LoadOrStore(t, out)
	return actual.([]member.Member)
}

func (b *base) IsIgnoringMember(m member.Member) bool {
	if b.IsIgnoringDeclaringType(m.DeclaringType()) {
		return true
	}

	if _, ok := b.ignoredMembers[memberKey{declaring: m.DeclaringType(), name: m.Name()}]; ok {
		return true
	}

	return b.IsIgnoringType(m.Type())
}

func (b *base) IsIgnoringDeclaringType(t reflect.Type) bool {
	if t == nil {
		return false
	}

	if _, ok := b.ignoredTypes[t]; ok {
		return true
	}

	_, ok := b.ignoredTypes[reflect.PointerTo(t)]
	return ok
}

func (b *base) IsIgnoringType(t reflect.Type) bool {
	if t == nil {
		return false
	}

	if _, ok := b.ignoredTypes[t]; ok {
		return true
	}

	if bt := node.Base(t); bt != t {
		_, ok := b.ignoredTypes[bt]
		return ok
	}

	return false
}

func (b *base) IsEquatable(t reflect.Type) bool {
	if t == nil {
		return false
	}

	if cached, ok := b.equatables.Load(t); ok {
		return cached.(bool)
	}

	eq := primitive.IsEquatable(t)
	if !eq {
		_, eq = b.equatable[t]
	}

	if !eq && t.Kind() == reflect.Ptr && t.Elem().Kind() != reflect.Ptr {
		_, eq = b.equatable[t.Elem()]
	}

	b.equatables.Store(t, eq)
	return eq
}

func (b *base) IsImmutable(t reflect.Type) bool {
	if t == nil {
		return false
	}

	if cached, ok := b.immutables.Load(t); ok {
		return cached.(bool)
	}

	result := b.isImmutable(t, map[reflect.Type]struct{}{})
	actual, _ := b.immutables.LoadOrStore(t, result)
	return actual.(bool)
}
