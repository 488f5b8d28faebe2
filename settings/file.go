package settings

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"graphstate/options"
)

// File is a settings document.
//
//	kind: fields
//	reference_handling: structural_with_reference_loops
//	binding: [exported]
//	ignored_types: [model.Audit]
//	ignored_members:
//	  - type: model.Order
//	    names: [CachedTotal]
//	immutable_types: [model.Money]
//	equatable_types: [model.SKU]
type File struct {
	Version           string      `yaml:"version,omitempty"`
	Kind              string      `yaml:"kind,omitempty"`
	ReferenceHandling string      `yaml:"reference_handling,omitempty"`
	Binding           []string    `yaml:"binding,omitempty"`
	IgnoredTypes      []string    `yaml:"ignored_types,omitempty"`
	IgnoredMembers    []MemberRef `yaml:"ignored_members,omitempty"`
	ImmutableTypes    []string    `yaml:"immutable_types,omitempty"`
	EquatableTypes    []string    `yaml:"equatable_types,omitempty"`
}

// MemberRef names members of one type.
type MemberRef struct {
	Type  string   `yaml:"type"`
	Names []string `yaml:"names"`
}

// LoadFile loads and parses a YAML settings file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	if f.Kind == "" {
		f.Kind = options.MemberField.String()
	}

	if f.ReferenceHandling == "" {
		f.ReferenceHandling = options.DefaultReferenceHandling.String()
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// Options converts the document into options, resolving type names in reg.
// extra options are applied after the document's.
func (f *File) Options(reg *Registry, extra ...Option) ([]Option, error) {
	if d := Validate(f, reg); !d.IsValid() {
		return nil, d.Error()
	}

	handling, _ := options.ParseReferenceHandling(f.ReferenceHandling)
	binding, _ := options.ParseBindingFlags(f.Binding)

	opts := []Option{
		WithReferenceHandling(handling),
		WithBinding(binding),
		WithIgnoredTypes(mustResolve(reg, f.IgnoredTypes)...),
		WithImmutableTypes(mustResolve(reg, f.ImmutableTypes)...),
		WithEquatableTypes(mustResolve(reg, f.EquatableTypes)...),
	}

	for _, ref := range f.IgnoredMembers {
		t, _ := reg.Resolve(ref.Type)
		opts = append(opts, WithIgnoredMembers(t, ref.Names...))
	}

	return append(opts, extra...), nil
}

// Settings builds the interned settings described by the document.
func (f *File) Settings(reg *Registry, extra ...Option) (MemberSettings, error) {
	opts, err := f.Options(reg, extra...)
	if err != nil {
		return nil, err
	}

	kind, _ := parseKind(f.Kind)
	return Of(kind, opts...), nil
}

func mustResolve(reg *Registry, names []string) []reflect.Type {
	out := make([]reflect.Type, 0, len(names))
	for _, name := range names {
		if t, ok := reg.Resolve(name); ok {
			out = append(out, t)
		}
	}

	return out
}

func parseKind(s string) (options.MemberKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "field", "fields":
		return options.MemberField, true
	case "property", "properties":
		return options.MemberProperty, true
	default:
		return options.MemberField, false
	}
}
