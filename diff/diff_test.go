package diff_test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphstate/diff"
	"graphstate/member"
	"graphstate/options"
)

type Order struct {
	ID    int
	Lines []*Line
	Note  string
}

type Line struct {
	SKU string
	Qty int
}

func field(t reflect.Type, name string) member.Member {
	for _, m := range member.Fields(t, options.BindingDefault) {
		if m.Name() == name {
			return m
		}
	}

	panic("no field " + name)
}

// sample is the diff of two orders differing in Lines[1].Qty and Note.
func sample() *diff.ValueDiff {
	orderType, lineType := reflect.TypeFor[Order](), reflect.TypeFor[Line]()

	qty := diff.NewMemberDiff(field(lineType, "Qty"), diff.NewValueDiff(2, 3))
	line := diff.NewIndexDiff(1, diff.NewValueDiff(&Line{"b", 2}, &Line{"b", 3}, qty))
	added := diff.NewIndexDiff(2, diff.NewValueDiff(diff.Missing, &Line{"c", 1}))
	lines := diff.NewMemberDiff(field(orderType, "Lines"), diff.NewValueDiff([]*Line{}, []*Line{}, line, added))
	note := diff.NewMemberDiff(field(orderType, "Note"), diff.NewValueDiff("a", diff.Missing))

	return diff.NewValueDiff(&Order{}, &Order{}, lines, note)
}

func ExampleFormat() {
	var sb strings.Builder
	diff.Format(&sb, sample())
	fmt.Print(sb.String())

	// Output:
	// Lines
	//   [1]
	//     Qty x: 2 y: 3
	//   [2] x: missing item y: <*>{c 1}
	// Note x: "a" y: missing item
}

func TestString(t *testing.T) {
	assert.Equal(t, "Empty", diff.Empty.String())
	assert.True(t, diff.Empty.IsEmpty())
	assert.Equal(t, "Empty", (*diff.ValueDiff)(nil).String())

	leaf := diff.NewValueDiff(1, 2)
	assert.Equal(t, "x: 1 y: 2", leaf.String())
	assert.False(t, leaf.IsEmpty())
	assert.True(t, leaf.IsLeaf())

	d := sample()
	assert.Equal(t, "Qty x: 2 y: 3", d.Diffs[0].Value().Diffs[0].Value().String())
	assert.Equal(t, "Lines", d.Diffs[0].Key())
	assert.Equal(t, "[1]", d.Diffs[0].Value().Diffs[0].Key())
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{"nil", nil, "nil"},
		{"missing", diff.Missing, "missing item"},
		{"string", "a\"b", `"a\"b"`},
		{"int", 42, "42"},
		{"nil pointer", (*Line)(nil), "nil"},
		{"nil map", map[string]int(nil), "nil"},
		{"pointer", &Line{"a", 1}, "<*>{a 1}"},
		{"stringer", options.References, "references"},
		{"slice", []int{1, 2}, "[1 2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, diff.Render(tt.v))
		})
	}
}

func TestKeys(t *testing.T) {
	assert.Equal(t, `["k"]`, diff.NewIndexDiff("k", diff.NewValueDiff(1, 2)).Key())
	assert.Equal(t, "[3]", diff.NewIndexDiff(3, diff.NewValueDiff(1, 2)).Key())
}

func TestMissing(t *testing.T) {
	assert.True(t, diff.IsMissing(diff.Missing))
	assert.False(t, diff.IsMissing(nil))
	assert.False(t, diff.IsMissing("missing item"))
}

func TestOrEmpty(t *testing.T) {
	assert.Equal(t, diff.Empty, diff.OrEmpty(nil))

	d := diff.NewValueDiff(1, 2)
	assert.Same(t, d, diff.OrEmpty(d).(*diff.ValueDiff))
}

func TestWalk(t *testing.T) {
	var visited []string
	diff.Walk(sample(), func(path diff.Path, _ *diff.ValueDiff) bool {
		visited = append(visited, path.String())
		return true
	})

	assert.Equal(t, []string{"", "Lines", "Lines[1]", "Lines[1].Qty", "Lines[2]", "Note"}, visited)

	visited = nil
	diff.Walk(sample(), func(path diff.Path, _ *diff.ValueDiff) bool {
		visited = append(visited, path.String())
		return len(path) == 0
	})

	assert.Equal(t, []string{"", "Lines", "Note"}, visited)

	diff.Walk(nil, func(diff.Path, *diff.ValueDiff) bool {
		require.Fail(t, "nil diffs have no nodes")
		return false
	})
}

func TestLeaves(t *testing.T) {
	var paths []string
	for _, p := range diff.Leaves(sample()) {
		paths = append(paths, p.String())
	}

	assert.Equal(t, []string{"Lines[1].Qty", "Lines[2]", "Note"}, paths)
	assert.Empty(t, diff.Leaves(nil))
}
