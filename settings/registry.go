package settings

import (
	"reflect"
	"sort"
	"strings"
	"sync"
)

// Registry resolves type names found in settings files. Types must be
// registered because a running program cannot look types up by name.
type Registry struct {
	mu    sync.RWMutex
	types map[string]reflect.Type // full name -> type
}

// NewRegistry returns a registry holding types.
func NewRegistry(types ...reflect.Type) *Registry {
	r := &Registry{types: make(map[string]reflect.Type)}
	r.Register(types...)
	return r
}

// Register adds types. Pointer types register their element type.
func (r *Registry) Register(types ...reflect.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range types {
		for t != nil && t.Kind() == reflect.Ptr {
			t = t.Elem()
		}

		if t == nil || t.Name() == "" {
			continue
		}

		r.types[fullName(t)] = t
	}
}

// Names returns the full names of every registered type, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Resolve resolves a type name like:
// - "graphstate/model.Order" (full)
// - "model.Order" (short)
// - "Order" (name only, must be unique)
// Each leading '*' wraps the result in a pointer.
func (r *Registry) Resolve(name string) (reflect.Type, bool) {
	depth := 0
	for strings.HasPrefix(name, "*") {
		depth++
		name = name[1:]
	}

	t, ok := r.resolve(name)
	if !ok {
		return nil, false
	}

	for range depth {
		t = reflect.PointerTo(t)
	}

	return t, true
}

func (r *Registry) resolve(name string) (reflect.Type, bool) {
	found := r.matches(name)
	if len(found) != 1 {
		return nil, false
	}

	return found[0], true
}

// matches returns every registered type name could refer to.
func (r *Registry) matches(name string) []reflect.Type {
	if name == "" {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	// 1) exact match (for fully qualified import path)
	if t, ok := r.types[name]; ok {
		return []reflect.Type{t}
	}

	var found []reflect.Type

	lastDot := strings.LastIndex(name, ".")
	for _, t := range r.types {
		if lastDot < 0 {
			// name only
			if t.Name() == name {
				found = append(found, t)
			}

			continue
		}

		// 2) suffix match (for short forms like "model.Order")
		pkg, typeName := name[:lastDot], name[lastDot+1:]
		if t.Name() == typeName && (t.PkgPath() == pkg || strings.HasSuffix(t.PkgPath(), "/"+pkg)) {
			found = append(found, t)
		}
	}

	sort.Slice(found, func(i, j int) bool { return fullName(found[i]) < fullName(found[j]) })
	return found
}

// ShortName returns the last path element of the package followed by the type name.
func ShortName(t reflect.Type) string {
	pkg := t.PkgPath()
	if i := strings.LastIndex(pkg, "/"); i >= 0 {
		pkg = pkg[i+1:]
	}

	if pkg == "" {
		return t.Name()
	}

	return pkg + "." + t.Name()
}

func fullName(t reflect.Type) string {
	if t.PkgPath() == "" {
		return t.Name()
	}

	return t.PkgPath() + "." + t.Name()
}
