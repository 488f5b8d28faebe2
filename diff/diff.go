package diff

import (
	"strings"

	"graphstate/member"
)

// Diff is a node of a diff tree.
type Diff interface {
	IsEmpty() bool
	String() string
}

type empty struct{}

func (empty) IsEmpty() bool  { return true }
func (empty) String() string { return "Empty" }

// Empty is the result of comparing equal graphs.
var Empty Diff = empty{}

type missing struct{}

func (missing) String() string { return "missing item" }

// Missing stands for the absent side of a positional or keyed difference.
// It differs from nil, which is a legitimate item value.
var Missing any = missing{}

// IsMissing reports whether v is the Missing sentinel.
func IsMissing(v any) bool {
	_, ok := v.(missing)
	return ok
}

// Sub is a child of a ValueDiff: a *MemberDiff or an *IndexDiff.
type Sub interface {
	Diff
	// Key names the child, a member name or a formatted index.
	Key() string
	Value() *ValueDiff
}

// ValueDiff holds two differing values and the differences found inside them.
type ValueDiff struct {
	X, Y  any
	Diffs []Sub
}

// NewValueDiff returns a node for x and y with the given children.
func NewValueDiff(x, y any, diffs ...Sub) *ValueDiff {
	return &ValueDiff{X: x, Y: y, Diffs: diffs}
}

// IsEmpty is always false: a ValueDiff exists only for differing values.
func (d *ValueDiff) IsEmpty() bool { return d == nil }

// IsLeaf reports whether the values differ without child differences.
func (d *ValueDiff) IsLeaf() bool { return len(d.Diffs) == 0 }

func (d *ValueDiff) String() string {
	if d == nil {
		return Empty.String()
	}

	var sb strings.Builder
	Format(&sb, d)
	return strings.TrimRight(sb.String(), "\n")
}

// MemberDiff is the difference found in one member.
type MemberDiff struct {
	Member member.Member
	*ValueDiff
}

// NewMemberDiff wraps v as the difference of m.
func NewMemberDiff(m member.Member, v *ValueDiff) *MemberDiff {
	return &MemberDiff{Member: m, ValueDiff: v}
}

func (d *MemberDiff) Key() string       { return d.Member.Name() }
func (d *MemberDiff) Value() *ValueDiff { return d.ValueDiff }

// IndexDiff is the difference found at one index or key of a collection.
// For sets the index is the element itself.
type IndexDiff struct {
	Index any
	*ValueDiff
}

// NewIndexDiff wraps v as the difference at index.
func NewIndexDiff(index any, v *ValueDiff) *IndexDiff {
	return &IndexDiff{Index: index, ValueDiff: v}
}

func (d *IndexDiff) Key() string       { return "[" + render(d.Index) + "]" }
func (d *IndexDiff) Value() *ValueDiff { return d.ValueDiff }

// OrEmpty returns d, or Empty when d is nil.
func OrEmpty(d *ValueDiff) Diff {
	if d == nil {
		return Empty
	}

	return d
}
