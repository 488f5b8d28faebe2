package settings

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"go.uber.org/zap"

	"graphstate/options"
)

// Option configures settings built by Fields or Properties.
type Option func(*config)

type memberRef struct {
	typ  reflect.Type
	name string
}

type config struct {
	handling       options.ReferenceHandling
	binding        options.BindingFlags
	ignoredTypes   []reflect.Type
	ignoredMembers []memberRef
	immutable      []reflect.Type
	equatable      []reflect.Type
	logger         *zap.Logger
}

var nop = zap.NewNop()

func newConfig(opts []Option) config {
	c := config{
		handling: options.DefaultReferenceHandling,
		binding:  options.BindingDefault,
		logger:   nop,
	}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// WithReferenceHandling sets how reference members are traversed.
func WithReferenceHandling(h options.ReferenceHandling) Option {
	return func(c *config) { c.handling = h }
}

// WithBinding sets which members are visible.
func WithBinding(b options.BindingFlags) Option {
	return func(c *config) { c.binding = b }
}

// WithIgnoredTypes ignores members declared by the types and members whose
// value is of one of the types.
func WithIgnoredTypes(types ...reflect.Type) Option {
	return func(c *config) { c.ignoredTypes = append(c.ignoredTypes, types...) }
}

// WithIgnoredMembers ignores the named members of t. A member promoted from
// an embedded struct is ignored on the struct that declares it, and so on
// every type embedding that struct.
func WithIgnoredMembers(t reflect.Type, names ...string) Option {
	return func(c *config) {
		for _, name := range names {
			c.ignoredMembers = append(c.ignoredMembers, memberRef{typ: t, name: name})
		}
	}
}

// WithImmutableTypes treats the types as immutable: they are assigned, not
// traversed, by copy and never need a loop check.
func WithImmutableTypes(types ...reflect.Type) Option {
	return func(c *config) { c.immutable = append(c.immutable, types...) }
}

// WithEquatableTypes compares the types as values.
func WithEquatableTypes(types ...reflect.Type) Option {
	return func(c *config) { c.equatable = append(c.equatable, types...) }
}

// WithLogger sets the logger receiving debug events. Nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// key renders the configuration tuple. Types are keyed by identity.
func (c *config) key(kind options.MemberKind) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%d|%d|%d|%p", kind, c.handling, c.binding, c.logger)
	writeTypes(&sb, "ignore", c.ignoredTypes)
	writeTypes(&sb, "immutable", c.immutable)
	writeTypes(&sb, "equatable", c.equatable)

	refs := make([]string, 0, len(c.ignoredMembers))
	for _, ref := range c.ignoredMembers {
		refs = append(refs, fmt.Sprintf("%p.%s", ref.typ, ref.name))
	}

	slices.Sort(refs)
	refs = slices.Compact(refs)
	sb.WriteString("|members:")
	sb.WriteString(strings.Join(refs, ","))

	return sb.String()
}

func writeTypes(sb *strings.Builder, label string, types []reflect.Type) {
	ids := make([]string, 0, len(types))
	for _, t := range types {
		if t != nil {
			ids = append(ids, fmt.Sprintf("%p", t))
		}
	}

	slices.Sort(ids)
	ids = slices.Compact(ids)
	sb.WriteString("|" + label + ":")
	sb.WriteString(strings.Join(ids, ","))
}
