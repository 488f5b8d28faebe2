package member

import (
	"reflect"
	"strings"
	"unsafe"

	"graphstate/options"
	"graphstate/primitive"
)

// Field is a struct field member.
type Field struct {
	field     reflect.StructField
	declaring reflect.Type
	readOnly  bool
}

func (f *Field) Name() string                { return f.field.Name }
func (f *Field) Kind() options.MemberKind    { return options.MemberField }
func (f *Field) DeclaringType() reflect.Type { return f.declaring }
func (f *Field) Type() reflect.Type          { return f.field.Type }
func (f *Field) IsReadOnly() bool            { return f.readOnly }
func (f *Field) IsIndexer() bool             { return false }
func (f *Field) IsExported() bool            { return f.field.IsExported() }
func (f *Field) String() string              { return typeName(f.declaring) + "." + f.field.Name }

// Index is the field index sequence relative to the enumerated struct.
func (f *Field) Index() []int { return f.field.Index }

func (f *Field) Get(owner reflect.Value) reflect.Value {
	return f.value(Addressable(owner))
}

func (f *Field) Set(owner, value reflect.Value) error {
	if !owner.CanAddr() {
		return ErrNotAddressable
	}

	f.value(owner).Set(value)
	return nil
}

// value resolves the field on an addressable owner and strips the read-only
// flag that reflect puts on unexported fields.
func (f *Field) value(owner reflect.Value) reflect.Value {
	return writable(owner.FieldByIndex(f.field.Index))
}

// writable strips the read-only flag of an addressable value.
func writable(v reflect.Value) reflect.Value {
	if v.CanSet() {
		return v
	}

	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
}

type tagOptions struct {
	skip     bool
	readOnly bool
}

func parseTag(tag reflect.StructTag) tagOptions {
	var opts tagOptions
	for _, part := range strings.Split(tag.Get(TagName), ",") {
		switch strings.TrimSpace(part) {
		case "-":
			opts.skip = true
		case "readonly":
			opts.readOnly = true
		}
	}

	return opts
}

// HasSkippedFields reports whether a field visible in struct t is tagged
// to be skipped, so that its field members do not cover all of its storage.
func HasSkippedFields(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}

	for _, sf := range reflect.VisibleFields(t) {
		if parseTag(sf.Tag).skip {
			return true
		}
	}

	return false
}

// flattens reports whether an embedded field of type t contributes its fields
// to the embedding struct instead of being a member itself.
func flattens(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && !primitive.IsEquatable(t)
}

func buildFields(t reflect.Type, binding options.BindingFlags) []Member {
	if t.Kind() != reflect.Struct {
		return nil
	}

	var out []Member
	for _, sf := range reflect.VisibleFields(t) {
		if sf.Anonymous && flattens(sf.Type) {
			continue
		}

		declaring, inherited, ok := walkEmbedding(t, sf.Index)
		if !ok {
			continue
		}

		opts := parseTag(sf.Tag)
		if opts.skip {
			continue
		}

		if sf.IsExported() && !binding.Has(options.BindingExported) {
			continue
		}

		if !sf.IsExported() && !binding.Has(options.BindingUnexported) {
			continue
		}

		out = append(out, &Field{
			field:     sf,
			declaring: declaring,
			readOnly:  opts.readOnly || inherited.readOnly,
		})
	}

	return out
}

// walkEmbedding follows the embedded structs named by index and reports the
// declaring struct of the final field. ok is false when the field is promoted
// through something that is not flattened (embedded pointer, leaf struct) or
// through an embedded field tagged "-".
func walkEmbedding(t reflect.Type, index []int) (declaring reflect.Type, inherited tagOptions, ok bool) {
	declaring = t
	for _, i := range index[:len(index)-1] {
		sf := declaring.Field(i)
		if !sf.Anonymous || !flattens(sf.Type) {
			return nil, tagOptions{}, false
		}

		opts := parseTag(sf.Tag)
		if opts.skip {
			return nil, tagOptions{}, false
		}

		inherited.readOnly = inherited.readOnly || opts.readOnly
		declaring = sf.Type
	}

	return declaring, inherited, true
}
