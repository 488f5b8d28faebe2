package equalby_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphstate/equalby"
	"graphstate/options"
	"graphstate/settings"
	"graphstate/typeerrors"
)

type SplitOptions int

const (
	None SplitOptions = iota
	RemoveEmptyEntries
)

type Simple struct {
	IntValue         int
	NullableIntValue *int
	StringValue      string
	EnumValue        SplitOptions
}

type Parent struct {
	Name  string
	Child *Child
}

type Child struct {
	Value  int
	Parent *Parent
}

type Order struct {
	ID    int
	Lines []*Line
	Tags  map[string]struct{}
	Notes map[string]string
	Meta  any
}

type Line struct {
	SKU string
	Qty int
}

// Counter exposes its state through accessors only.
type Counter struct {
	count int
	label string
}

func (c *Counter) Count() int          { return c.count }
func (c *Counter) SetCount(v int)      { c.count = v }
func (c *Counter) Label() string       { return c.label }
func (c *Counter) SetLabel(v string)   { c.label = v }
func (c *Counter) Describe(string) int { return 0 }

func ptr[T any](v T) *T { return &v }

func loop(name string, value int) *Parent {
	p := &Parent{Name: name}
	p.Child = &Child{Value: value, Parent: p}
	return p
}

func ExampleFieldValues() {
	x := &Simple{IntValue: 1, NullableIntValue: ptr(2), StringValue: "3"}
	y := &Simple{IntValue: 1, NullableIntValue: ptr(2), StringValue: "3"}

	ok, err := equalby.FieldValues(x, y)
	fmt.Println(ok, err)

	y.EnumValue = RemoveEmptyEntries
	ok, _ = equalby.FieldValues(x, y)
	fmt.Println(ok)

	// Output:
	// true <nil>
	// false
}

func ExampleVerifyCanEqualByFieldValues() {
	err := equalby.VerifyCanEqualByFieldValues[*Parent]()
	fmt.Print(err)

	// Output:
	// equalby.FieldValues(x, y) failed.
	// The type *equalby_test.Parent is not supported:
	//   - Child.Parent: the type *equalby_test.Parent forms a reference loop
	// Solutions:
	//   * Use ReferenceHandling StructuralWithReferenceLoops to close reference loops.
	//   * Use ReferenceHandling References to compare by identity or Structural to traverse the graph.
	//   * Exclude the member with settings.WithIgnoredMembers.
	//   * Register the type with settings.WithImmutableTypes or settings.WithEquatableTypes.
}

func order() *Order {
	return &Order{
		ID:    1,
		Lines: []*Line{{"a", 1}, {"b", 2}},
		Tags:  map[string]struct{}{"new": {}},
		Notes: map[string]string{"by": "me"},
		Meta:  &Line{"m", 3},
	}
}

func TestFieldValues(t *testing.T) {
	tests := []struct {
		name   string
		change func(o *Order)
		want   bool
	}{
		{"unchanged", func(*Order) {}, true},
		{"id", func(o *Order) { o.ID = 2 }, false},
		{"line qty", func(o *Order) { o.Lines[1].Qty = 5 }, false},
		{"line added", func(o *Order) { o.Lines = append(o.Lines, &Line{"c", 1}) }, false},
		{"lines nil", func(o *Order) { o.Lines = nil }, false},
		{"lines empty", func(o *Order) { o.Lines = []*Line{} }, false},
		{"tag", func(o *Order) { o.Tags["old"] = struct{}{} }, false},
		{"note", func(o *Order) { o.Notes["by"] = "you" }, false},
		{"meta value", func(o *Order) { o.Meta = &Line{"m", 4} }, false},
		{"meta type", func(o *Order) { o.Meta = "m" }, false},
		{"meta nil", func(o *Order) { o.Meta = nil }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := order(), order()
			tt.change(y)

			got, err := equalby.FieldValues(x, y)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			back, err := equalby.FieldValues(y, x)
			require.NoError(t, err)
			assert.Equal(t, got, back, "symmetry")
		})
	}
}

func TestFieldValues_Reflexive(t *testing.T) {
	x := order()

	for _, h := range []options.ReferenceHandling{options.References, options.Structural, options.StructuralWithReferenceLoops} {
		got, err := equalby.FieldValues(x, x, settings.WithReferenceHandling(h))
		require.NoError(t, err, h.String())
		assert.True(t, got, h.String())
	}

	l := loop("p", 1)
	got, err := equalby.FieldValues(l, l, settings.WithReferenceHandling(options.StructuralWithReferenceLoops))
	require.NoError(t, err)
	assert.True(t, got)
}

func TestFieldValues_References(t *testing.T) {
	x, y := order(), order()
	y.Lines, y.Tags, y.Notes, y.Meta = x.Lines, x.Tags, x.Notes, x.Meta

	got, err := equalby.FieldValues(x, y, settings.WithReferenceHandling(options.References))
	require.NoError(t, err)
	assert.True(t, got)

	y.Lines = []*Line{x.Lines[0], x.Lines[1]}
	got, err = equalby.FieldValues(x, y, settings.WithReferenceHandling(options.References))
	require.NoError(t, err)
	assert.False(t, got)
}

func TestFieldValues_Loops(t *testing.T) {
	loops := settings.WithReferenceHandling(options.StructuralWithReferenceLoops)

	got, err := equalby.FieldValues(loop("p", 1), loop("p", 1), loops)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = equalby.FieldValues(loop("p", 1), loop("p", 2), loops)
	require.NoError(t, err)
	assert.False(t, got)

	_, err = equalby.FieldValues(loop("p", 1), loop("p", 1))
	assert.ErrorIs(t, err, typeerrors.ErrNotSupported)
}

func TestFieldValues_NotSupported(t *testing.T) {
	_, err := equalby.FieldValues(order(), order(), settings.WithReferenceHandling(options.Throw))
	require.ErrorIs(t, err, typeerrors.ErrNotSupported)

	var nse *typeerrors.NotSupportedError
	require.ErrorAs(t, err, &nse)
	assert.True(t, nse.Errors.Has(typeerrors.CodeRequiresReferenceHandling))
	assert.Contains(t, err.Error(), "Lines: the collection []*equalby_test.Line requires a ReferenceHandling other than Throw")

	ignored := settings.WithIgnoredMembers(reflect.TypeFor[Order](), "Lines", "Tags", "Notes", "Meta")
	got, err := equalby.FieldValues(order(), order(), settings.WithReferenceHandling(options.Throw), ignored)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestFieldValues_IgnoredMember(t *testing.T) {
	x, y := order(), order()
	y.Notes["by"] = "you"

	got, err := equalby.FieldValues(x, y, settings.WithIgnoredMembers(reflect.TypeFor[Order](), "Notes"))
	require.NoError(t, err)
	assert.True(t, got)
}

func TestFieldValues_Roots(t *testing.T) {
	got, err := equalby.FieldValues([]int{1, 2}, []int{1, 2})
	require.NoError(t, err)
	assert.True(t, got)

	got, err = equalby.FieldValues[any](1, "1")
	require.NoError(t, err)
	assert.False(t, got)

	got, err = equalby.FieldValues(Simple{IntValue: 1}, Simple{IntValue: 1})
	require.NoError(t, err)
	assert.True(t, got)

	got, err = equalby.FieldValues[*Simple](nil, &Simple{})
	require.NoError(t, err)
	assert.False(t, got)
}

func TestPropertyValues(t *testing.T) {
	x := &Counter{count: 1, label: "a"}
	y := &Counter{count: 1, label: "a"}

	got, err := equalby.PropertyValues(x, y)
	require.NoError(t, err)
	assert.True(t, got)

	y.label = "b"
	got, err = equalby.PropertyValues(x, y)
	require.NoError(t, err)
	assert.False(t, got)

	require.NoError(t, equalby.VerifyCanEqualByPropertyValues[*Counter]())
}

func TestFieldValuesWith_NilSettings(t *testing.T) {
	_, err := equalby.FieldValuesWith(1, 1, nil)
	assert.ErrorIs(t, err, typeerrors.ErrNilArgument)

	_, err = equalby.PropertyValuesWith(1, 1, nil)
	assert.ErrorIs(t, err, typeerrors.ErrNilArgument)
}

func TestMemberValues(t *testing.T) {
	s := settings.Fields()
	x, y := order(), order()
	y.Lines[0].Qty = 9

	got, err := equalby.MemberValues(x, y, "ID", s)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = equalby.MemberValues(x, y, "Lines", s)
	require.NoError(t, err)
	assert.False(t, got)

	_, err = equalby.MemberValues(x, y, "Missing", s)
	assert.ErrorIs(t, err, typeerrors.ErrInvalidOperation)

	_, err = equalby.MemberValues(x, &Line{}, "ID", s)
	assert.ErrorIs(t, err, typeerrors.ErrTypeMismatch)

	_, err = equalby.MemberValues(x, nil, "ID", s)
	assert.ErrorIs(t, err, typeerrors.ErrNilArgument)
}
