package settings

import (
	"reflect"

	"graphstate/member"
	"graphstate/node"
	"graphstate/options"
)

// isImmutable classifies t. Types already on the path count as immutable,
// so a self referencing type is decided by its other members.
func (b *base) isImmutable(t reflect.Type, path map[reflect.Type]struct{}) bool {
	if b.IsEquatable(t) {
		return true
	}

	if _, ok := b.immutable[t]; ok {
		return true
	}

	if b.IsIgnoringType(t) {
		return true
	}

	if _, ok := path[t]; ok {
		return true
	}

	switch node.Dispatch(t) {
	case node.KindStruct:
		path[t] = struct{}{}
		defer delete(path, t)

		return b.coversStorage(t) && !hasSetters(t) && b.fieldsImmutable(t, false, path)
	case node.KindPointer:
		elem := t.Elem()
		if elem.Kind() != reflect.Struct {
			return false
		}

		if _, ok := b.immutable[elem]; ok {
			return true
		}

		path[t] = struct{}{}
		defer delete(path, t)

		return !hasSetters(elem) && b.fieldsImmutable(elem, true, path)
	default:
		// collections, interfaces and functions can always change
		return false
	}
}

// fieldsImmutable reports whether every field of struct t has an immutable
// type. With sealed, exported fields must also be tagged readonly. Without
// it, no field may be readonly: such a value is copied member by member so
// that copy can check the readonly ones.
func (b *base) fieldsImmutable(t reflect.Type, sealed bool, path map[reflect.Type]struct{}) bool {
	for _, m := range member.Fields(t, options.BindingAll) {
		if sealed && m.IsExported() && !m.IsReadOnly() {
			return false
		}

		if !sealed && m.IsReadOnly() {
			return false
		}

		if !b.isImmutable(m.Type(), path) {
			return false
		}
	}

	return true
}

// coversStorage reports whether the members of struct t under b are all of
// its fields. A value struct is only assigned as a whole when no ignored,
// hidden or skipped field would be overwritten by the assignment.
func (b *base) coversStorage(t reflect.Type) bool {
	if b.kind != options.MemberField || member.HasSkippedFields(t) {
		return false
	}

	return len(b.Members(t)) == len(member.Fields(t, options.BindingAll))
}

func hasSetters(t reflect.Type) bool {
	for _, m := range member.Properties(t, options.BindingAll) {
		if !m.IsReadOnly() {
			return true
		}
	}

	return false
}
