package settings

import (
	"fmt"
	"reflect"
	"strings"

	"graphstate/internal/diagnostic"
	"graphstate/internal/match"
	"graphstate/member"
	"graphstate/options"
)

const maxSuggestions = 3

// Validate checks a settings document against the registered types. It
// reports every problem, not only the first.
func Validate(f *File, reg *Registry) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("settings_is_nil", "settings file is nil", "", "")
		return res
	}

	if reg == nil {
		res.AddError("registry_is_nil", "type registry is nil", "", "")
		return res
	}

	if f.Version != "1" {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported version %q", f.Version), "", "version")
	}

	kind, ok := parseKind(f.Kind)
	if !ok {
		res.AddSuggestedError("invalid_kind", fmt.Sprintf("invalid kind %q", f.Kind), "", "kind",
			match.Suggest(f.Kind, []string{"fields", "properties"}, 1))
	}

	if _, err := options.ParseReferenceHandling(f.ReferenceHandling); err != nil {
		names := make([]string, 0, options.ReferenceHandlingTotal)
		for h := range options.ReferenceHandlingTotal {
			names = append(names, options.ReferenceHandling(h).String())
		}

		res.AddSuggestedError("invalid_reference_handling", err.Error(), "", "reference_handling",
			match.Suggest(f.ReferenceHandling, names, 1))
	}

	if _, err := options.ParseBindingFlags(f.Binding); err != nil {
		res.AddError("invalid_binding", err.Error(), "", "binding")
	}

	validateTypes(res, reg, "ignored_types", f.IgnoredTypes)
	validateTypes(res, reg, "immutable_types", f.ImmutableTypes)
	validateTypes(res, reg, "equatable_types", f.EquatableTypes)

	for i, ref := range f.IgnoredMembers {
		key := fmt.Sprintf("ignored_members[%d]", i)

		t, ok := validateType(res, reg, key+".type", ref.Type)
		if !ok {
			continue
		}

		if len(ref.Names) == 0 {
			res.AddWarning("no_member_names", "no member names listed", ref.Type, key+".names")
		}

		validateMembers(res, t, kind, ref, key)
	}

	return res
}

func validateTypes(res *diagnostic.Diagnostics, reg *Registry, key string, names []string) {
	seen := map[string]struct{}{}

	for i, name := range names {
		path := fmt.Sprintf("%s[%d]", key, i)

		if _, dup := seen[name]; dup {
			res.AddWarning("duplicate_type", fmt.Sprintf("type %q listed twice", name), name, path)
			continue
		}

		seen[name] = struct{}{}
		validateType(res, reg, path, name)
	}
}

func validateType(res *diagnostic.Diagnostics, reg *Registry, path, name string) (reflect.Type, bool) {
	bare := strings.TrimLeft(name, "*")

	switch found := reg.matches(bare); len(found) {
	case 0:
		res.AddSuggestedError("type_not_found", fmt.Sprintf("type %q not found", name), name, path,
			match.Suggest(bare, shortNames(reg, strings.Contains(bare, ".")), maxSuggestions))
		return nil, false
	case 1:
		return reg.Resolve(name)
	default:
		alternatives := make([]string, 0, len(found))
		for _, t := range found {
			alternatives = append(alternatives, fullName(t))
		}

		res.AddSuggestedError("ambiguous_type", fmt.Sprintf("type %q is ambiguous", name), name, path, alternatives)
		return nil, false
	}
}

func validateMembers(res *diagnostic.Diagnostics, t reflect.Type, kind options.MemberKind, ref MemberRef, key string) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		res.AddError("not_a_struct", fmt.Sprintf("type %s has no members", t), ref.Type, key+".type")
		return
	}

	members := member.Of(t, kind, options.BindingAll)
	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name())
	}

	for j, name := range ref.Names {
		if _, ok := member.Find(t, kind, options.BindingAll, name); ok {
			continue
		}

		res.AddSuggestedError("member_not_found",
			fmt.Sprintf("%s %q not found on %s", kind, name, ShortName(t)),
			ref.Type, fmt.Sprintf("%s.names[%d]", key, j),
			match.Suggest(name, names, maxSuggestions))
	}
}

// shortNames lists registered types as "pkg.Name", or as bare names when
// the name being looked up is not qualified.
func shortNames(reg *Registry, qualified bool) []string {
	full := reg.Names()
	out := make([]string, 0, len(full))

	for _, name := range full {
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}

		if i := strings.LastIndex(name, "."); !qualified && i >= 0 {
			name = name[i+1:]
		}

		out = append(out, name)
	}

	return out
}
