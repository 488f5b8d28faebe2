package member

import (
	"reflect"
	"runtime"
	"sort"

	"graphstate/options"
)

// Property is a getter method with an optional setter.
type Property struct {
	name      string
	declaring reflect.Type
	typ       reflect.Type
	getter    Accessor
	setter    *Accessor
	// embedded is the field index path to the declaring struct when the
	// accessors are promoted.
	embedded []int
}

func (p *Property) Name() string                { return p.name }
func (p *Property) Kind() options.MemberKind    { return options.MemberProperty }
func (p *Property) DeclaringType() reflect.Type { return p.declaring }
func (p *Property) Type() reflect.Type          { return p.typ }
func (p *Property) IsReadOnly() bool            { return p.setter == nil }
func (p *Property) IsIndexer() bool             { return p.getter.IsIndexed() }
func (p *Property) IsExported() bool            { return true }
func (p *Property) String() string              { return typeName(p.declaring) + "." + p.name }

// Params returns the indexer argument types.
func (p *Property) Params() []reflect.Type { return p.getter.Params }

func (p *Property) Get(owner reflect.Value) reflect.Value {
	if p.IsIndexer() {
		panic(ErrIndexer)
	}

	owner = Addressable(owner)
	if !p.reachable(owner) {
		return reflect.New(p.typ).Elem()
	}

	return Addressable(p.getter.Method.Func.Call([]reflect.Value{owner.Addr()})[0])
}

func (p *Property) Set(owner, value reflect.Value) error {
	if p.IsIndexer() {
		return ErrIndexer
	}

	if p.setter == nil {
		return ErrReadOnly
	}

	if !owner.CanAddr() {
		return ErrNotAddressable
	}

	if err := p.allocate(owner); err != nil {
		return err
	}

	out := p.setter.Method.Func.Call([]reflect.Value{owner.Addr(), value})
	if p.setter.HasErr && !out[0].IsNil() {
		return out[0].Interface().(error)
	}

	return nil
}

// reachable reports whether every embedded pointer or interface on the
// promotion path is set in owner.
func (p *Property) reachable(owner reflect.Value) bool {
	v := owner
	for _, i := range p.embedded {
		v = v.Field(i)

		switch v.Kind() {
		case reflect.Ptr:
			if v.IsNil() {
				return false
			}

			v = v.Elem()
		case reflect.Interface:
			return !v.IsNil()
		}
	}

	return true
}

// allocate creates the nil embedded structs on the promotion path. A nil
// embedded interface cannot be created.
func (p *Property) allocate(owner reflect.Value) error {
	v := owner
	for _, i := range p.embedded {
		v = v.Field(i)

		switch v.Kind() {
		case reflect.Ptr:
			if v.IsNil() {
				writable(v).Set(reflect.New(v.Type().Elem()))
			}

			v = v.Elem()
		case reflect.Interface:
			if v.IsNil() {
				return ErrNilEmbedded
			}

			return nil
		}
	}

	return nil
}

func buildProperties(t reflect.Type, binding options.BindingFlags) []Member {
	if t.Kind() != reflect.Struct || !binding.Has(options.BindingExported) {
		return nil
	}

	pt := reflect.PointerTo(t)
	getters := map[string]Accessor{}
	setters := map[string]Accessor{}

	for i := 0; i < pt.NumMethod(); i++ {
		acc, err := ParseAccessor(pt.Method(i))
		if err != nil {
			continue
		}

		switch acc.Role {
		case RoleGetter:
			getters[acc.Property] = acc
		case RoleSetter:
			setters[acc.Property] = acc
		}
	}

	names := make([]string, 0, len(getters))
	for name := range getters {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []Member
	for _, name := range names {
		getter := getters[name]
		declaring, embedded := promotion(t, name)
		p := &Property{
			name:      name,
			declaring: declaring,
			typ:       getter.Value,
			getter:    getter,
			embedded:  embedded,
		}

		if setter, ok := setters[name]; ok && setter.Value == getter.Value && sameTypes(setter.Params, getter.Params) {
			p.setter = &setter
		}

		// a getter with arguments is only a property when it can also be set
		if getter.IsIndexed() && p.setter == nil {
			continue
		}

		out = append(out, p)
	}

	return out
}

const autogenerated = "<autogenerated>"

// promotion finds the struct that declares method name and the embedded
// field indexes leading to it from t. Methods promoted from embedded fields
// show up in t's method set as compiler generated wrappers.
func promotion(t reflect.Type, name string) (reflect.Type, []int) {
	if ownsMethod(t, name) || ownsMethod(reflect.PointerTo(t), name) {
		return t, nil
	}

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.Anonymous {
			continue
		}

		base := sf.Type
		if base.Kind() == reflect.Ptr {
			base = base.Elem()
		}

		switch base.Kind() {
		case reflect.Struct:
			if _, ok := reflect.PointerTo(base).MethodByName(name); ok {
				declaring, rest := promotion(base, name)
				return declaring, append([]int{i}, rest...)
			}
		case reflect.Interface:
			if _, ok := base.MethodByName(name); ok {
				return t, []int{i}
			}
		}
	}

	return t, nil
}

func ownsMethod(t reflect.Type, name string) bool {
	m, ok := t.MethodByName(name)
	if !ok {
		return false
	}

	pc := m.Func.Pointer()
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return false
	}

	file, _ := fn.FileLine(pc)
	return file != autogenerated
}
