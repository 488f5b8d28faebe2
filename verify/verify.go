package verify

import (
	"reflect"

	"graphstate/node"
	"graphstate/notify"
	"graphstate/options"
	"graphstate/settings"
	"graphstate/typeerrors"
)

var (
	notifierType           = reflect.TypeFor[notify.Notifier]()
	collectionNotifierType = reflect.TypeFor[notify.CollectionNotifier]()
)

// Walk verifies t without consulting any cache. Nil means t is supported.
func Walk(t reflect.Type, s settings.MemberSettings, purpose Purpose) *typeerrors.TypeErrors {
	w := walker{
		s:       s,
		purpose: purpose,
		onPath:  map[reflect.Type]struct{}{},
		clean:   map[reflect.Type]struct{}{},
	}

	root := typeerrors.New(t)
	if purpose == ForTrack {
		w.trackRoot(root, t)
	}

	root.Merge(w.visit(t, "", true))

	return root.OrNil()
}

type walker struct {
	s       settings.MemberSettings
	purpose Purpose
	onPath  map[reflect.Type]struct{}
	// clean holds types whose walk found no problem
	clean map[reflect.Type]struct{}
}

func (w *walker) handling() options.ReferenceHandling {
	return w.s.ReferenceHandling()
}

func (w *walker) visit(t reflect.Type, path string, root bool) *typeerrors.TypeErrors {
	if !root && w.s.IsImmutable(t) {
		return nil
	}

	kind := node.Dispatch(t)
	errs := typeerrors.New(t)

	switch {
	case kind == node.KindLeaf:
		return nil
	case kind == node.KindUnsupported || kind == node.KindUnknown:
		errs.Add(typeerrors.CodeUnsupportedMember, t, path)
		return errs
	case kind.IsCollection() && w.handling() == options.Throw:
		errs.Add(typeerrors.CodeRequiresReferenceHandling, t, path)
		return errs
	case !root && kind.IsReference() && w.handling() == options.Throw:
		errs.Add(typeerrors.CodeUnsupportedType, t, path)
		return errs
	case !root && kind.IsReference() && w.handling() == options.References:
		return w.trackReference(t, kind, path)
	}

	if _, ok := w.clean[t]; ok {
		return nil
	}

	if _, ok := w.onPath[t]; ok {
		if w.handling() == options.Structural {
			errs.Add(typeerrors.CodeReferenceLoop, t, path)
			return errs
		}

		return nil
	}

	w.onPath[t] = struct{}{}
	defer delete(w.onPath, t)

	if w.purpose == ForTrack && !root {
		w.trackRules(errs, t, kind, path)
	}

	switch kind {
	case node.KindStruct:
		w.members(errs, t, path)
	case node.KindPointer:
		errs.Merge(w.visit(t.Elem(), path, root))
	case node.KindInterface:
		// dynamic types are verified when a value is seen
	case node.KindArray, node.KindSlice, node.KindMap, node.KindSet:
		errs.Merge(w.visit(node.ItemType(t), itemPath(path), false))
	case node.KindSeq:
		if w.purpose == ForCopy {
			e := errs.Add(typeerrors.CodeUnsupportedMember, t, path)
			e.Detail = "a sequence cannot be a copy target"
		}

		errs.Merge(w.visit(node.ItemType(t), itemPath(path), false))
	}

	if errs.IsEmpty() {
		w.clean[t] = struct{}{}
		return nil
	}

	return errs
}

// trackReference applies the References policy: the value is compared by
// identity, so only tracking needs to look at it.
func (w *walker) trackReference(t reflect.Type, kind node.Kind, path string) *typeerrors.TypeErrors {
	if w.purpose != ForTrack {
		return nil
	}

	errs := typeerrors.New(t)
	w.trackRules(errs, t, kind, path)
	return errs.OrNil()
}

func (w *walker) members(errs *typeerrors.TypeErrors, t reflect.Type, path string) {
	for _, m := range w.s.Members(t) {
		memberPath := joinPath(path, m.Name())

		if m.IsIndexer() {
			errs.Add(typeerrors.CodeUnsupportedIndexer, t, memberPath)
			continue
		}

		errs.Merge(w.visit(m.Type(), memberPath, false))
	}
}

func (w *walker) trackRoot(root *typeerrors.TypeErrors, t reflect.Type) {
	if w.handling() == options.Throw {
		e := root.Add(typeerrors.CodeRequiresReferenceHandling, t, "")
		e.Detail = "tracking needs References, Structural or StructuralWithReferenceLoops"
	}

	if t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
		e := root.Add(typeerrors.CodeUnsupportedType, t, "")
		e.Detail = "only pointers to structs can be tracked"
		return
	}

	if !t.Implements(notifierType) {
		root.Add(typeerrors.CodeTypeMustNotify, t, "")
	}
}

func (w *walker) trackRules(errs *typeerrors.TypeErrors, t reflect.Type, kind node.Kind, path string) {
	switch kind {
	case node.KindPointer:
		if t.Elem().Kind() == reflect.Struct && !t.Implements(notifierType) {
			errs.Add(typeerrors.CodeTypeMustNotify, t, path)
		}
	case node.KindSlice, node.KindMap, node.KindSet:
		if !t.Implements(collectionNotifierType) && !reflect.PointerTo(t).Implements(collectionNotifierType) {
			errs.Add(typeerrors.CodeCollectionMustNotify, t, path)
		}
	case node.KindSeq:
		errs.Add(typeerrors.CodeCollectionMustNotify, t, path)
	}
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}

	return path + "." + name
}

func itemPath(path string) string {
	return path + "[]"
}
