package copyby_test

import (
	"fmt"
	"iter"
	"maps"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphstate/copyby"
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

func (o SplitOptions) String() string {
	if o == RemoveEmptyEntries {
		return "RemoveEmptyEntries"
	}

	return "None"
}

// WithSimpleProperties keeps its state behind accessors.
type WithSimpleProperties struct {
	intValue         int
	nullableIntValue *int
	stringValue      string
	enumValue        SplitOptions
}

func (w *WithSimpleProperties) IntValue() int                   { return w.intValue }
func (w *WithSimpleProperties) SetIntValue(v int)               { w.intValue = v }
func (w *WithSimpleProperties) NullableIntValue() *int          { return w.nullableIntValue }
func (w *WithSimpleProperties) SetNullableIntValue(v *int)      { w.nullableIntValue = v }
func (w *WithSimpleProperties) StringValue() string             { return w.stringValue }
func (w *WithSimpleProperties) SetStringValue(v string)         { w.stringValue = v }
func (w *WithSimpleProperties) EnumValue() SplitOptions         { return w.enumValue }
func (w *WithSimpleProperties) SetEnumValue(v SplitOptions)     { w.enumValue = v }
func (w *WithSimpleProperties) Summary(prefix string) string    { return prefix + w.stringValue }
func (w *WithSimpleProperties) SetSummary(prefix, value string) {}

type WithReadonly struct {
	Value int `graph:"readonly"`
	Name  string
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

type Node struct {
	Name string
	Next *Node
}

type WithSeq struct{ Values iter.Seq[int] }

type Flat struct{ A, B int }

type Outer struct {
	ID int
	In Flat
}

type Hidden struct {
	A      int
	hidden int
}

func ptr[T any](v T) *T { return &v }

func order() *Order {
	return &Order{
		ID:    1,
		Lines: []*Line{{"a", 1}, {"b", 2}},
		Tags:  map[string]struct{}{"new": {}},
		Notes: map[string]string{"by": "me"},
		Meta:  &Line{"m", 3},
	}
}

func ExampleFieldValues() {
	source := map[int]string{1: "one"}
	target := map[int]string{1: "one", 2: "two"}

	if err := copyby.FieldValues(source, target); err != nil {
		panic(err)
	}

	fmt.Println(target)

	// Output:
	// map[1:one]
}

func TestPropertyValues_SimpleProperties(t *testing.T) {
	x := &WithSimpleProperties{intValue: 1, nullableIntValue: ptr(2), stringValue: "3", enumValue: RemoveEmptyEntries}
	y := &WithSimpleProperties{intValue: 3, nullableIntValue: ptr(4)}

	s := settings.Properties(settings.WithIgnoredMembers(reflect.TypeFor[WithSimpleProperties](), "Summary"))
	require.NoError(t, copyby.PropertyValuesWith(x, y, s))

	assert.Equal(t, 1, y.IntValue())
	assert.Equal(t, 2, *y.NullableIntValue())
	assert.NotSame(t, x.NullableIntValue(), y.NullableIntValue())
	assert.Equal(t, "3", y.StringValue())
	assert.Equal(t, RemoveEmptyEntries, y.EnumValue())

	eq, err := equalby.PropertyValuesWith(x, y, s)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestPropertyValues_Indexer(t *testing.T) {
	x, y := &WithSimpleProperties{}, &WithSimpleProperties{}

	err := copyby.PropertyValues(x, y)
	require.ErrorIs(t, err, typeerrors.ErrNotSupported)
	assert.Contains(t, err.Error(), "Summary: the indexer on")
}

func TestFieldValues_Readonly(t *testing.T) {
	err := copyby.FieldValues(&WithReadonly{Value: 1}, &WithReadonly{Value: 2})
	require.ErrorIs(t, err, typeerrors.ErrInvalidOperation)

	var rde *typeerrors.ReadonlyMemberDiffersError
	require.ErrorAs(t, err, &rde)
	assert.Equal(t, "Value", rde.Path)
	assert.Contains(t, err.Error(), "Value")

	target := &WithReadonly{Value: 1}
	require.NoError(t, copyby.FieldValues(&WithReadonly{Value: 1, Name: "n"}, target))
	assert.Equal(t, WithReadonly{Value: 1, Name: "n"}, *target)
}

func TestFieldValues_ListShrink(t *testing.T) {
	source := []int{1, 2, 3}
	target := []int{1, 2, 3, 4}

	require.NoError(t, copyby.FieldValues(&source, &target))
	assert.Equal(t, []int{1, 2, 3}, target)
}

func TestFieldValues_ListGrow(t *testing.T) {
	source := &Order{Lines: []*Line{{"a", 1}, {"b", 2}, {"c", 3}}}
	target := &Order{Lines: []*Line{{"x", 0}}}
	first := target.Lines[0]

	require.NoError(t, copyby.FieldValues(source, target))
	assert.Empty(t, cmp.Diff(source, target))
	assert.Same(t, first, target.Lines[0])
}

func TestFieldValues_DictionaryKeyRemoval(t *testing.T) {
	source := map[int]string{1: "one"}
	target := map[int]string{1: "one", 2: "two"}

	require.NoError(t, copyby.FieldValues(source, target))
	assert.Equal(t, map[int]string{1: "one"}, target)
}

func TestFieldValues_FixedSize(t *testing.T) {
	err := copyby.FieldValues([]int{1, 2, 3}, []int{0})
	require.ErrorIs(t, err, typeerrors.ErrInvalidOperation)

	var fse *typeerrors.FixedSizeError
	require.ErrorAs(t, err, &fse)
	assert.Equal(t, 3, fse.SourceCount)
	assert.Equal(t, 1, fse.TargetCount)
	assert.Contains(t, err.Error(), "source count 3, target count 1")
}

func TestFieldValues_CopyThenEqual(t *testing.T) {
	tests := []struct {
		name   string
		target *Order
	}{
		{"empty", &Order{}},
		{"same shape", order()},
		{"different", &Order{
			ID:    9,
			Lines: []*Line{{"z", 9}},
			Tags:  map[string]struct{}{"old": {}},
			Notes: map[string]string{"to": "you"},
			Meta:  "text",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := order()

			require.NoError(t, copyby.FieldValues(source, tt.target))
			assert.Empty(t, cmp.Diff(source, tt.target))

			eq, err := equalby.FieldValues(source, tt.target)
			require.NoError(t, err)
			assert.True(t, eq)

			assert.NotSame(t, source.Lines[0], tt.target.Lines[0])
			assert.NotSame(t, source.Meta, tt.target.Meta)
		})
	}
}

func TestFieldValues_Idempotent(t *testing.T) {
	source, target := order(), &Order{}

	require.NoError(t, copyby.FieldValues(source, target))
	lines := append([]*Line(nil), target.Lines...)
	meta := target.Meta

	require.NoError(t, copyby.FieldValues(source, target))
	assert.Empty(t, cmp.Diff(source, target))
	assert.Equal(t, lines, target.Lines)
	for i := range lines {
		assert.Same(t, lines[i], target.Lines[i])
	}

	assert.Same(t, meta, target.Meta)
}

func TestFieldValues_References(t *testing.T) {
	source, target := order(), &Order{}

	require.NoError(t, copyby.FieldValues(source, target, settings.WithReferenceHandling(options.References)))
	assert.Same(t, source.Lines[0], target.Lines[0])
	assert.Equal(t, reflect.ValueOf(source.Notes).Pointer(), reflect.ValueOf(target.Notes).Pointer())
}

func TestFieldValues_Loops(t *testing.T) {
	source := &Node{Name: "a"}
	source.Next = &Node{Name: "b", Next: source}

	target := &Node{Name: "x"}
	require.NoError(t, copyby.FieldValues(source, target, settings.WithReferenceHandling(options.StructuralWithReferenceLoops)))

	assert.Equal(t, "a", target.Name)
	require.NotNil(t, target.Next)
	assert.Equal(t, "b", target.Next.Name)
	assert.Same(t, target, target.Next.Next)

	err := copyby.FieldValues(source, target)
	assert.ErrorIs(t, err, typeerrors.ErrNotSupported)
}

func TestFieldValues_Arguments(t *testing.T) {
	x := order()

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"nil target", func() error { return copyby.FieldValues(x, nil) }, typeerrors.ErrNilArgument},
		{"nil source", func() error { return copyby.FieldValues(nil, x) }, typeerrors.ErrNilArgument},
		{"same instance", func() error { return copyby.FieldValues(x, x) }, typeerrors.ErrSameInstance},
		{"struct by value", func() error { return copyby.FieldValues(Line{"a", 1}, Line{}) }, typeerrors.ErrInvalidOperation},
		{"nil map", func() error { return copyby.FieldValues(map[int]int{}, nil) }, typeerrors.ErrNilArgument},
		{"nil interface", func() error { return copyby.FieldValues[any](x, nil) }, typeerrors.ErrNilArgument},
		{"dynamic types", func() error { return copyby.FieldValues[any](x, &Line{}) }, typeerrors.ErrTypeMismatch},
		{"nil settings", func() error { return copyby.FieldValuesWith(x, x, nil) }, typeerrors.ErrNilArgument},
		{"sequence", func() error { return copyby.FieldValues(&WithSeq{}, &WithSeq{}) }, typeerrors.ErrNotSupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(), tt.want)
		})
	}
}

func TestFieldValues_Interface(t *testing.T) {
	var source, target any = &Line{"a", 1}, &Line{}

	require.NoError(t, copyby.FieldValues(source, target))
	assert.Equal(t, &Line{"a", 1}, target)
}

func TestMember(t *testing.T) {
	s := settings.Fields()
	source, target := order(), &Order{ID: 5}

	require.NoError(t, copyby.Member(source, target, "Lines", s))
	assert.Equal(t, 5, target.ID)
	assert.Empty(t, cmp.Diff(source.Lines, target.Lines))

	assert.ErrorIs(t, copyby.Member(source, source, "ID", s), typeerrors.ErrSameInstance)
	assert.ErrorIs(t, copyby.Member(*source, *target, "ID", s), typeerrors.ErrInvalidOperation)
	assert.ErrorIs(t, copyby.Member(source, target, "Nope", s), typeerrors.ErrInvalidOperation)
}

func TestVerifyCanCopy(t *testing.T) {
	require.NoError(t, copyby.VerifyCanCopyFieldValues[*Order]())
	require.NoError(t, copyby.VerifyCanCopyFieldValues[*Node](settings.WithReferenceHandling(options.StructuralWithReferenceLoops)))

	err := copyby.VerifyCanCopyFieldValues[*WithSeq]()
	require.ErrorIs(t, err, typeerrors.ErrNotSupported)
	assert.Contains(t, err.Error(), "a sequence cannot be a copy target")

	ignored := settings.WithIgnoredMembers(reflect.TypeFor[WithSimpleProperties](), "Summary")
	require.NoError(t, copyby.VerifyCanCopyPropertyValues[*WithSimpleProperties](ignored))
}

func TestFieldValues_UnexportedBinding(t *testing.T) {
	source := &WithSimpleProperties{intValue: 1, nullableIntValue: ptr(2), stringValue: "3"}
	target := &WithSimpleProperties{}

	require.NoError(t, copyby.FieldValues(source, target, settings.WithBinding(options.BindingAll)))
	assert.Empty(t, cmp.Diff(source, target, cmpopts.EquateEmpty(), cmp.AllowUnexported(WithSimpleProperties{})))
}

func TestFieldValues_IgnoredMembers(t *testing.T) {
	ignored := settings.WithIgnoredMembers(reflect.TypeFor[Flat](), "B")

	t.Run("root", func(t *testing.T) {
		target := &Flat{A: 0, B: 9}
		require.NoError(t, copyby.FieldValues(&Flat{A: 1, B: 2}, target, ignored))
		assert.Equal(t, Flat{A: 1, B: 9}, *target)
	})

	t.Run("nested", func(t *testing.T) {
		target := &Outer{In: Flat{A: 0, B: 9}}
		require.NoError(t, copyby.FieldValues(&Outer{ID: 1, In: Flat{A: 1, B: 2}}, target, ignored))
		assert.Equal(t, Outer{ID: 1, In: Flat{A: 1, B: 9}}, *target)
	})

	t.Run("unexported under default binding", func(t *testing.T) {
		target := &Hidden{hidden: 9}
		require.NoError(t, copyby.FieldValues(&Hidden{A: 1, hidden: 2}, target))
		assert.Equal(t, Hidden{A: 1, hidden: 9}, *target)
	})
}

func TestFieldValues_NullableSet(t *testing.T) {
	source := map[*int]struct{}{ptr(1): {}, ptr(2): {}}
	target := map[*int]struct{}{ptr(2): {}, ptr(5): {}}

	require.NoError(t, copyby.FieldValues(source, target))
	require.Len(t, target, 2)

	eq, err := equalby.FieldValues(source, target)
	require.NoError(t, err)
	assert.True(t, eq)

	for k := range source {
		_, shared := target[k]
		assert.False(t, shared, "keys are copied, not aliased")
	}

	before := maps.Clone(target)
	require.NoError(t, copyby.FieldValues(source, target))

	require.Len(t, target, 2)
	for k := range target {
		_, kept := before[k]
		assert.True(t, kept, "a second copy keeps the keys")
	}
}
