package member_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphstate/member"
	"graphstate/options"
)

type Base struct {
	ID   int
	Name string
}

type Derived struct {
	Base
	Name   string // hides Base.Name
	Extra  *Base
	secret int
	Skip   int `graph:"-"`
	Frozen int `graph:"readonly"`
}

type withPointerEmbed struct {
	*Base
	Value int
}

type tagged struct {
	Base `graph:"readonly"`
}

func names(members []member.Member) []string {
	out := make([]string, 0, len(members))
	for _, m := range members {
		out = append(out, m.String())
	}
	return out
}

func TestFields_FlattensValueEmbedding(t *testing.T) {
	fields := member.Fields(reflect.TypeFor[Derived](), options.BindingDefault)

	assert.Equal(t, []string{"Base.ID", "Derived.Name", "Derived.Extra", "Derived.Frozen"}, names(fields))
}

func TestFields_Binding(t *testing.T) {
	typ := reflect.TypeFor[Derived]()

	assert.Equal(t, []string{"Derived.secret"}, names(member.Fields(typ, options.BindingUnexported)))
	assert.Len(t, member.Fields(typ, options.BindingAll), 5)
	assert.Empty(t, member.Fields(typ, options.BindingNone))
}

func TestFields_PointerEmbeddingIsAMember(t *testing.T) {
	fields := member.Fields(reflect.TypeFor[withPointerEmbed](), options.BindingDefault)

	require.Len(t, fields, 2)
	assert.Equal(t, "Base", fields[0].Name())
	assert.Equal(t, reflect.TypeFor[*Base](), fields[0].Type())
}

func TestFields_ReadOnly(t *testing.T) {
	fields := member.Fields(reflect.TypeFor[Derived](), options.BindingDefault)
	frozen := fields[3]
	assert.True(t, frozen.IsReadOnly())
	assert.False(t, fields[0].IsReadOnly())

	for _, f := range member.Fields(reflect.TypeFor[tagged](), options.BindingDefault) {
		assert.True(t, f.IsReadOnly(), f.String())
		assert.Equal(t, reflect.TypeFor[Base](), f.DeclaringType())
	}
}

func TestFields_GetSetUnexported(t *testing.T) {
	d := Derived{secret: 3}
	f, ok := member.Find(reflect.TypeFor[Derived](), options.MemberField, options.BindingAll, "secret")
	require.True(t, ok)

	owner := reflect.ValueOf(&d).Elem()
	assert.Equal(t, 3, f.Get(owner).Interface())

	require.NoError(t, f.Set(owner, reflect.ValueOf(5)))
	assert.Equal(t, 5, d.secret)

	// a copy of a non addressable owner can be read but not written
	byValue := reflect.ValueOf(d)
	assert.Equal(t, 5, f.Get(byValue).Interface())
	assert.ErrorIs(t, f.Set(byValue, reflect.ValueOf(1)), member.ErrNotAddressable)
}

func TestFields_Cached(t *testing.T) {
	typ := reflect.TypeFor[Derived]()
	a := member.Fields(typ, options.BindingDefault)
	b := member.Fields(typ, options.BindingDefault)

	require.NotEmpty(t, a)
	assert.Same(t, a[0], b[0])
}

type account struct {
	balance int
	owner   string
	rates   map[string]float64
}

func (a *account) Balance() int                { return a.balance }
func (a *account) SetBalance(v int)            { a.balance = v }
func (a *account) Owner() string               { return a.owner }
func (a *account) String() string              { return a.owner }
func (a *account) Rate(k string) float64       { return a.rates[k] }
func (a *account) SetRate(k string, v float64) { a.rates[k] = v }
func (a *account) Lookup(k string) float64     { return a.rates[k] }
func (a *account) Close() error                { return nil }

type savings struct {
	account
	Interest int
}

func (s *savings) Owner() string { return "bank" }

func TestProperties(t *testing.T) {
	props := member.Properties(reflect.TypeFor[account](), options.BindingDefault)

	require.Equal(t, []string{"account.Balance", "account.Owner", "account.Rate"}, names(props))

	balance, owner, rate := props[0], props[1], props[2]
	assert.False(t, balance.IsReadOnly())
	assert.True(t, owner.IsReadOnly())
	assert.True(t, rate.IsIndexer())
	assert.Equal(t, reflect.TypeFor[float64](), rate.Type())
}

func TestProperties_GetSet(t *testing.T) {
	a := account{balance: 10}
	balance, ok := member.Find(reflect.TypeFor[account](), options.MemberProperty, options.BindingDefault, "Balance")
	require.True(t, ok)

	owner := reflect.ValueOf(&a).Elem()
	assert.Equal(t, 10, balance.Get(owner).Interface())
	require.NoError(t, balance.Set(owner, reflect.ValueOf(20)))
	assert.Equal(t, 20, a.balance)

	readonly, _ := member.Find(reflect.TypeFor[account](), options.MemberProperty, options.BindingDefault, "Owner")
	assert.ErrorIs(t, readonly.Set(owner, reflect.ValueOf("x")), member.ErrReadOnly)
}

func TestProperties_DeclaringType(t *testing.T) {
	props := member.Properties(reflect.TypeFor[savings](), options.BindingDefault)
	byName := map[string]member.Member{}
	for _, p := range props {
		byName[p.Name()] = p
	}

	require.Contains(t, byName, "Balance")
	assert.Equal(t, reflect.TypeFor[account](), byName["Balance"].DeclaringType())
	// Owner is redeclared on savings and hides the promoted one
	assert.Equal(t, reflect.TypeFor[savings](), byName["Owner"].DeclaringType())
}

func TestProperties_NoUnexportedAccessors(t *testing.T) {
	assert.Empty(t, member.Properties(reflect.TypeFor[account](), options.BindingUnexported))
}

type ledger struct {
	*account
	Note string
}

type describer interface{ Label() string }

type labelled struct {
	describer
}

func TestProperties_NilEmbeddedPointer(t *testing.T) {
	balance, ok := member.Find(reflect.TypeFor[ledger](), options.MemberProperty, options.BindingDefault, "Balance")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[account](), balance.DeclaringType())

	var l ledger
	owner := reflect.ValueOf(&l).Elem()

	assert.NotPanics(t, func() {
		assert.Equal(t, 0, balance.Get(owner).Interface())
	})

	require.NoError(t, balance.Set(owner, reflect.ValueOf(7)))
	require.NotNil(t, l.account)
	assert.Equal(t, 7, l.balance)
	assert.Equal(t, 7, balance.Get(owner).Interface())
}

func TestProperties_NilEmbeddedInterface(t *testing.T) {
	label, ok := member.Find(reflect.TypeFor[labelled](), options.MemberProperty, options.BindingDefault, "Label")
	require.True(t, ok)

	var l labelled
	assert.NotPanics(t, func() {
		assert.Equal(t, "", label.Get(reflect.ValueOf(l)).Interface())
	})
}
