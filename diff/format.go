package diff

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

var printer = spew.ConfigState{
	Indent:                  " ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	MaxDepth:                3,
}

// Format writes d as an indented tree, one differing member or item per line.
// Leaves show both values.
//
//	Lines
//	  [1]
//	    Qty x: 2 y: 3
//	Note x: "a" y: missing item
func Format(w io.Writer, d *ValueDiff) {
	if d == nil {
		return
	}

	if d.IsLeaf() {
		fmt.Fprintf(w, "x: %s y: %s\n", render(d.X), render(d.Y))
		return
	}

	formatChildren(w, d, 0)
}

func formatChildren(w io.Writer, d *ValueDiff, depth int) {
	indent := strings.Repeat("  ", depth)

	for _, sub := range d.Diffs {
		v := sub.Value()
		if v.IsLeaf() {
			fmt.Fprintf(w, "%s%s x: %s y: %s\n", indent, sub.Key(), render(v.X), render(v.Y))
			continue
		}

		fmt.Fprintf(w, "%s%s\n", indent, sub.Key())
		formatChildren(w, v, depth+1)
	}
}

// Render formats a value the way diff output shows it.
func Render(v any) string {
	return render(v)
}

func render(v any) string {
	if IsMissing(v) {
		return Missing.(fmt.Stringer).String()
	}

	if v == nil {
		return "nil"
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return strconv.Quote(rv.String())
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return "nil"
		}
	}

	if s, ok := v.(fmt.Stringer); ok && rv.Kind() != reflect.Ptr {
		return s.String()
	}

	return strings.TrimSpace(printer.Sprintf("%v", v))
}
