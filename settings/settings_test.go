package settings_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"graphstate/member"
	"graphstate/options"
	"graphstate/settings"
)

type Base struct {
	ID   int
	Name string
}

type Order struct {
	Base
	Lines []Line
	Total int
	Audit *Audit
}

type Line struct {
	SKU string
	Qty int
}

type Audit struct{ By string }

type Money struct {
	Amount   int    `graph:"readonly"`
	Currency string `graph:"readonly"`
}

type Self struct {
	Value *Self  `graph:"readonly"`
	Name  string `graph:"readonly"`
}

type Mutable struct{ A int }

type withSetter struct {
	value int `graph:"readonly"`
}

func (w *withSetter) Value() int     { return w.value }
func (w *withSetter) SetValue(v int) { w.value = v }

type sealedHidden struct {
	count int
}

func (s *sealedHidden) Count() int { return s.count }

func names(members []member.Member) []string {
	out := make([]string, 0, len(members))
	for _, m := range members {
		out = append(out, m.Name())
	}

	return out
}

func TestInterning(t *testing.T) {
	a := settings.Fields()
	b := settings.Fields()
	assert.Same(t, a, b)
	assert.Equal(t, a.ID(), b.ID())

	loops := settings.Fields(settings.WithReferenceHandling(options.StructuralWithReferenceLoops))
	assert.NotSame(t, a, loops)
	assert.NotEqual(t, a.ID(), loops.ID())

	x := settings.Fields(settings.WithIgnoredTypes(reflect.TypeFor[Audit](), reflect.TypeFor[Base]()))
	y := settings.Fields(settings.WithIgnoredTypes(reflect.TypeFor[Base]()), settings.WithIgnoredTypes(reflect.TypeFor[Audit]()))
	assert.Same(t, x, y)

	p := settings.Properties()
	assert.NotEqual(t, a.ID(), p.ID())
	assert.Equal(t, options.MemberProperty, p.MemberKind())
	assert.Equal(t, options.MemberField, a.MemberKind())
}

func TestDefaults(t *testing.T) {
	s := settings.Fields()

	assert.Equal(t, options.Structural, s.ReferenceHandling())
	assert.Equal(t, options.BindingExported, s.Binding())
	require.NotNil(t, s.Logger())
}

func TestWithLogger(t *testing.T) {
	logger := zap.NewExample()
	s := settings.Fields(settings.WithLogger(logger))

	assert.Same(t, logger, s.Logger())
	assert.Same(t, s, settings.Fields(settings.WithLogger(logger)))
	assert.NotSame(t, s, settings.Fields())
}

func TestMembers(t *testing.T) {
	orderType := reflect.TypeFor[Order]()

	tests := []struct {
		name string
		s    settings.MemberSettings
		want []string
	}{
		{"default", settings.Fields(), []string{"ID", "Name", "Lines", "Total", "Audit"}},
		{"ignored declaring type", settings.Fields(settings.WithIgnoredTypes(reflect.TypeFor[Base]())), []string{"Lines", "Total", "Audit"}},
		{"ignored member", settings.Fields(settings.WithIgnoredMembers(orderType, "Total")), []string{"ID", "Name", "Lines", "Audit"}},
		{"ignored promoted member", settings.Fields(settings.WithIgnoredMembers(orderType, "Name")), []string{"ID", "Lines", "Total", "Audit"}},
		{"ignored value type", settings.Fields(settings.WithIgnoredTypes(reflect.TypeFor[Audit]())), []string{"ID", "Name", "Lines", "Total"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(tt.s.Members(orderType)))
		})
	}
}

func TestIgnoredMemberOnDeclaringType(t *testing.T) {
	// ignoring Order.Name resolves to Base.Name, so Base is affected too
	s := settings.Fields(settings.WithIgnoredMembers(reflect.TypeFor[Order](), "Name"))

	assert.Equal(t, []string{"ID"}, names(s.Members(reflect.TypeFor[Base]())))
}

func TestIsEquatable(t *testing.T) {
	s := settings.Fields(settings.WithEquatableTypes(reflect.TypeFor[Line]()))

	tests := []struct {
		typ  reflect.Type
		want bool
	}{
		{reflect.TypeFor[int](), true},
		{reflect.TypeFor[*int](), true},
		{reflect.TypeFor[time.Time](), true},
		{reflect.TypeFor[options.ReferenceHandling](), true},
		{reflect.TypeFor[Line](), true},
		{reflect.TypeFor[*Line](), true},
		{reflect.TypeFor[Audit](), false},
		{reflect.TypeFor[[]int](), false},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, s.IsEquatable(tt.typ))
		})
	}
}

func TestIsImmutable(t *testing.T) {
	s := settings.Fields(
		settings.WithImmutableTypes(reflect.TypeFor[*Mutable]()),
		settings.WithIgnoredTypes(reflect.TypeFor[Audit]()),
	)

	tests := []struct {
		typ  reflect.Type
		want bool
	}{
		{reflect.TypeFor[string](), true},
		{reflect.TypeFor[Line](), true},
		{reflect.TypeFor[*Line](), false},
		{reflect.TypeFor[*Money](), true},
		{reflect.TypeFor[Money](), false},
		{reflect.TypeFor[*Self](), true},
		{reflect.TypeFor[*Mutable](), true},
		{reflect.TypeFor[*Audit](), true},
		{reflect.TypeFor[*withSetter](), false},
		{reflect.TypeFor[*sealedHidden](), true},
		{reflect.TypeFor[Order](), false},
		{reflect.TypeFor[[]int](), false},
		{reflect.TypeFor[[2]int](), false},
		{reflect.TypeFor[map[string]int](), false},
		{reflect.TypeFor[any](), false},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, s.IsImmutable(tt.typ))
		})
	}
}

type withSkipped struct {
	A int
	B int `graph:"-"`
}

func TestIsImmutable_ValueStructCoverage(t *testing.T) {
	line := reflect.TypeFor[Line]()
	hidden := reflect.TypeFor[sealedHidden]()

	assert.True(t, settings.Fields().IsImmutable(line))
	assert.False(t, settings.Fields(settings.WithIgnoredMembers(line, "Qty")).IsImmutable(line))
	assert.False(t, settings.Fields().IsImmutable(hidden))
	assert.True(t, settings.Fields(settings.WithBinding(options.BindingAll)).IsImmutable(hidden))
	assert.False(t, settings.Fields().IsImmutable(reflect.TypeFor[withSkipped]()))
	assert.False(t, settings.Properties().IsImmutable(line))
	assert.True(t, settings.Properties(settings.WithImmutableTypes(line)).IsImmutable(line))
}
