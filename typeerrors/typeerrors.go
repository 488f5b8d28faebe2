package typeerrors

import (
	"fmt"
	"reflect"
	"strings"
)

// Error is one verification problem.
type Error struct {
	Code Code
	// Type is the offending type.
	Type reflect.Type
	// Path is the member path from the verified root, for example
	// "Parent.Children[].Next". Empty for the root itself.
	Path string
	// Detail is an optional free form addition to the message.
	Detail string
}

// String returns a formatted problem line.
func (e Error) String() string {
	var msg string

	switch e.Code {
	case CodeUnsupportedType:
		msg = fmt.Sprintf("the type %s is neither equatable nor immutable", e.Type)
	case CodeRequiresReferenceHandling:
		msg = fmt.Sprintf("the collection %s requires a ReferenceHandling other than Throw", e.Type)
	case CodeUnsupportedIndexer:
		msg = fmt.Sprintf("the indexer on %s is not supported", e.Type)
	case CodeReferenceLoop:
		msg = fmt.Sprintf("the type %s forms a reference loop", e.Type)
	case CodeCollectionMustNotify:
		msg = fmt.Sprintf("the collection %s does not notify changes", e.Type)
	case CodeTypeMustNotify:
		msg = fmt.Sprintf("the type %s does not notify member changes", e.Type)
	case CodeUnsupportedMember:
		msg = fmt.Sprintf("the member type %s is not supported", e.Type)
	default:
		msg = fmt.Sprintf("the type %s is not supported", e.Type)
	}

	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}

	if e.Path != "" {
		return e.Path + ": " + msg
	}

	return msg
}

// TypeErrors is the verification result of one type: its own problems and
// the results of the member and item types it reaches.
type TypeErrors struct {
	Type     reflect.Type
	Errors   []Error
	Children []*TypeErrors
}

// New returns an empty node for t.
func New(t reflect.Type) *TypeErrors {
	return &TypeErrors{Type: t}
}

// Add attaches a problem to the node.
func (te *TypeErrors) Add(code Code, t reflect.Type, path string) *Error {
	te.Errors = append(te.Errors, Error{Code: code, Type: t, Path: path})
	return &te.Errors[len(te.Errors)-1]
}

// Merge attaches child as a nested result. Empty children are dropped.
func (te *TypeErrors) Merge(child *TypeErrors) {
	if child.IsEmpty() {
		return
	}

	te.Children = append(te.Children, child)
}

// IsEmpty reports whether the tree holds no problem. A nil tree is empty.
func (te *TypeErrors) IsEmpty() bool {
	if te == nil {
		return true
	}

	if len(te.Errors) > 0 {
		return false
	}

	for _, c := range te.Children {
		if !c.IsEmpty() {
			return false
		}
	}

	return true
}

// OrNil returns te, or nil when it is empty.
func (te *TypeErrors) OrNil() *TypeErrors {
	if te.IsEmpty() {
		return nil
	}

	return te
}

type errorKey struct {
	code Code
	typ  reflect.Type
	path string
}

// All returns every problem of the tree depth first, without duplicates.
func (te *TypeErrors) All() []Error {
	var (
		out  []Error
		seen = map[errorKey]struct{}{}
	)

	var walk func(*TypeErrors)
	walk = func(n *TypeErrors) {
		if n == nil {
			return
		}

		for _, e := range n.Errors {
			key := errorKey{code: e.Code, typ: e.Type, path: e.Path}
			if _, ok := seen[key]; ok {
				continue
			}

			seen[key] = struct{}{}
			out = append(out, e)
		}

		for _, c := range n.Children {
			walk(c)
		}
	}

	walk(te)
	return out
}

// Has reports whether the tree holds a problem with the given code.
func (te *TypeErrors) Has(code Code) bool {
	for _, e := range te.All() {
		if e.Code == code {
			return true
		}
	}

	return false
}

// Report renders the itemised message for a failed operation: the failing
// call, one line per problem, then the deduplicated remediations.
func Report(operation string, te *TypeErrors) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s(x, y) failed.\n", operation)

	if te.IsEmpty() {
		sb.WriteString("No problems were reported.\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "The type %s is not supported:\n", te.Type)

	var (
		fixes []Fix
		seen  = map[Fix]struct{}{}
	)

	for _, e := range te.All() {
		sb.WriteString("  - ")
		sb.WriteString(e.String())
		sb.WriteByte('\n')

		for _, f := range e.Code.Fixes() {
			if _, ok := seen[f]; !ok {
				seen[f] = struct{}{}
				fixes = append(fixes, f)
			}
		}
	}

	sb.WriteString("Solutions:\n")

	for _, f := range fixes {
		sb.WriteString("  * ")
		sb.WriteString(f.String())
		sb.WriteByte('\n')
	}

	return sb.String()
}
