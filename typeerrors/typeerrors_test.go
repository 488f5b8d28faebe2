package typeerrors_test

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphstate/typeerrors"
)

type node struct{ Next *node }

func ExampleReport() {
	root := typeerrors.New(reflect.TypeFor[*node]())
	root.Add(typeerrors.CodeReferenceLoop, reflect.TypeFor[*node](), "Next")

	fmt.Print(typeerrors.Report("equalby.FieldValues", root))

	// Output:
	// equalby.FieldValues(x, y) failed.
	// The type *typeerrors_test.node is not supported:
	//   - Next: the type *typeerrors_test.node forms a reference loop
	// Solutions:
	//   * Use ReferenceHandling StructuralWithReferenceLoops to close reference loops.
	//   * Use ReferenceHandling References to compare by identity or Structural to traverse the graph.
	//   * Exclude the member with settings.WithIgnoredMembers.
	//   * Register the type with settings.WithImmutableTypes or settings.WithEquatableTypes.
}

func TestTypeErrors_Empty(t *testing.T) {
	var nilTree *typeerrors.TypeErrors
	assert.True(t, nilTree.IsEmpty())
	assert.Nil(t, nilTree.OrNil())

	root := typeerrors.New(reflect.TypeFor[node]())
	root.Merge(typeerrors.New(reflect.TypeFor[int]()))
	assert.True(t, root.IsEmpty())
	assert.Empty(t, root.Children)
	assert.NoError(t, typeerrors.Check("op", root))
}

func TestTypeErrors_AllDeduplicates(t *testing.T) {
	typ := reflect.TypeFor[[]int]()

	a := typeerrors.New(reflect.TypeFor[node]())
	a.Add(typeerrors.CodeRequiresReferenceHandling, typ, "Items")

	b := typeerrors.New(reflect.TypeFor[node]())
	b.Add(typeerrors.CodeRequiresReferenceHandling, typ, "Items")
	b.Add(typeerrors.CodeUnsupportedIndexer, reflect.TypeFor[node](), "At")

	root := typeerrors.New(reflect.TypeFor[*node]())
	root.Merge(a)
	root.Merge(b)

	all := root.All()
	require.Len(t, all, 2)
	assert.Equal(t, typeerrors.CodeRequiresReferenceHandling, all[0].Code)
	assert.Equal(t, typeerrors.CodeUnsupportedIndexer, all[1].Code)
	assert.True(t, root.Has(typeerrors.CodeUnsupportedIndexer))
	assert.False(t, root.Has(typeerrors.CodeReferenceLoop))
}

func TestErrorsIs(t *testing.T) {
	root := typeerrors.New(reflect.TypeFor[node]())
	root.Add(typeerrors.CodeUnsupportedType, reflect.TypeFor[node](), "")

	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"not supported", typeerrors.Check("op", root), typeerrors.ErrNotSupported},
		{"readonly", &typeerrors.ReadonlyMemberDiffersError{Path: "A"}, typeerrors.ErrInvalidOperation},
		{"fixed size", &typeerrors.FixedSizeError{SourceCount: 3, TargetCount: 1}, typeerrors.ErrInvalidOperation},
		{"create", &typeerrors.CannotCreateInstanceError{Path: "A"}, typeerrors.ErrInvalidOperation},
		{"internal", typeerrors.Internal("unexpected %s", "shape"), typeerrors.ErrInternal},
		{"wrapped", fmt.Errorf("copy: %w", &typeerrors.FixedSizeError{}), typeerrors.ErrInvalidOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.target))
		})
	}
}

func TestFixedSizeError_Message(t *testing.T) {
	err := &typeerrors.FixedSizeError{Type: reflect.TypeFor[[3]int](), SourceCount: 3, TargetCount: 1}
	assert.Contains(t, err.Error(), "source count 3")
	assert.Contains(t, err.Error(), "target count 1")
	assert.Contains(t, err.Error(), "the root")
}
