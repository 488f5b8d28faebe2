package engine

import (
	"reflect"

	"go.uber.org/zap"

	"graphstate/member"
	"graphstate/node"
	"graphstate/primitive"
	"graphstate/typeerrors"
	"graphstate/verify"
)

// Copy makes dst structurally equal to src. The root is never replaced: dst
// must be a non nil pointer or map, a slice whose length matches, or an
// addressable struct or array.
func (w *Walker) Copy(src, dst reflect.Value) error {
	return w.copyInto(src, dst, "", false)
}

// CopyMember copies member m of the struct value src into the addressable
// struct value dst.
func (w *Walker) CopyMember(src, dst reflect.Value, m member.Member) error {
	if !dst.CanAddr() {
		return typeerrors.Internal("copy target %s is not addressable", dst.Type())
	}

	return w.copyMember(member.Addressable(src), dst, m, m.Name())
}

// copyValue copies a nested value. settable tells whether dst may be
// replaced; when it may not, only in place changes are allowed.
func (w *Walker) copyValue(src, dst reflect.Value, path string, settable bool) error {
	if w.shares(src.Type()) {
		return w.assign(src, dst, path, settable)
	}

	return w.copyInto(src, dst, path, settable)
}

func (w *Walker) assign(src, dst reflect.Value, path string, settable bool) error {
	if w.same(src, dst) {
		return nil
	}

	if !settable {
		return readonlyDiffers(path, src, dst)
	}

	dst.Set(detach(src))
	return nil
}

// detach gives a nullable leaf its own pointer so the copy does not alias
// the source.
func detach(v reflect.Value) reflect.Value {
	if v.Kind() != reflect.Ptr || v.IsNil() || primitive.FromReflectType(v.Type()) != primitive.KindNullable {
		return v
	}

	clone := reflect.New(v.Type().Elem())
	clone.Elem().Set(v.Elem())
	return clone
}

func (w *Walker) copyInto(src, dst reflect.Value, path string, settable bool) error {
	t := src.Type()

	switch kind := node.Dispatch(t); kind {
	case node.KindLeaf:
		return w.assign(src, dst, path, settable)
	case node.KindStruct:
		return w.copyMembers(src, dst, path)
	case node.KindPointer:
		return w.copyPointer(src, dst, path, settable)
	case node.KindInterface:
		return w.copyInterface(src, dst, path, settable)
	case node.KindArray, node.KindSlice, node.KindMap, node.KindSet:
		return strategyFor(t).copy(w, src, dst, path, settable)
	default:
		return typeerrors.Internal("cannot copy %s of kind %s", t, kind)
	}
}

func (w *Walker) copyMembers(src, dst reflect.Value, path string) error {
	if !dst.CanAddr() {
		return typeerrors.Internal("copy target %s is not addressable", dst.Type())
	}

	src = member.Addressable(src)

	for _, m := range w.s.Members(src.Type()) {
		if m.IsIndexer() {
			continue
		}

		if err := w.copyMember(src, dst, m, joinPath(path, m.Name())); err != nil {
			return err
		}
	}

	return nil
}

// copyMember copies into a working value of the member, then writes it back
// when the copy changed it. Read only members accept only in place changes.
func (w *Walker) copyMember(src, dst reflect.Value, m member.Member, path string) error {
	sv, dv := m.Get(src), m.Get(dst)
	if pointsTo(sv, src) && pointsTo(dv, dst) {
		return nil
	}

	readonly := m.IsReadOnly()

	if w.shares(m.Type()) {
		if w.same(sv, dv) {
			return nil
		}

		if readonly {
			return readonlyDiffers(path, sv, dv)
		}

		return m.Set(dst, detach(sv))
	}

	tmp := reflect.New(m.Type()).Elem()
	tmp.Set(dv)

	if err := w.copyInto(sv, tmp, path, !readonly); err != nil {
		return err
	}

	if w.unchanged(tmp, dv) {
		return nil
	}

	if readonly {
		return readonlyDiffers(path, sv, dv)
	}

	return m.Set(dst, tmp)
}

func (w *Walker) copyPointer(src, dst reflect.Value, path string, settable bool) error {
	t := src.Type()

	if src.IsNil() {
		if dst.IsNil() {
			return nil
		}

		if !settable {
			return readonlyDiffers(path, src, dst)
		}

		dst.Set(reflect.Zero(t))
		return nil
	}

	if !dst.IsNil() && src.Pointer() == dst.Pointer() {
		return nil
	}

	if mapped, ok := w.pairs.Target(src); ok {
		if !dst.IsNil() && mapped.Pointer() == dst.Pointer() {
			return nil
		}

		if settable {
			dst.Set(mapped)
			return nil
		}
	}

	if dst.IsNil() {
		if !settable {
			return readonlyDiffers(path, src, dst)
		}

		created := reflect.New(t.Elem())
		w.log.Debug("instance created", zap.String("path", path), zap.Stringer("type", t.Elem()))

		w.pairs.Add(src, created)
		w.pairs.Map(src, created)

		if err := w.copyValue(src.Elem(), created.Elem(), path, true); err != nil {
			return err
		}

		dst.Set(created)
		return nil
	}

	if !w.enter(src, dst) {
		return nil
	}

	w.pairs.Map(src, dst)
	return w.copyValue(src.Elem(), dst.Elem(), path, true)
}

func (w *Walker) copyInterface(src, dst reflect.Value, path string, settable bool) error {
	if src.IsNil() {
		if dst.IsNil() {
			return nil
		}

		if !settable {
			return readonlyDiffers(path, src, dst)
		}

		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}

	se := src.Elem()
	dynamic := se.Type()

	if err := w.dynamic(dynamic); err != nil {
		return err
	}

	tmp := reflect.New(dynamic).Elem()
	reuse := !dst.IsNil() && dst.Elem().Type() == dynamic
	if reuse {
		tmp.Set(dst.Elem())
	}

	if err := w.copyValue(se, tmp, path, true); err != nil {
		return err
	}

	if reuse && node.SameReference(tmp, dst.Elem()) {
		return nil
	}

	if !settable {
		return readonlyDiffers(path, src, dst)
	}

	dst.Set(tmp)
	return nil
}

// same reports whether a shared value needs no assignment.
func (w *Walker) same(x, y reflect.Value) bool {
	t := x.Type()

	switch {
	case w.byValue(t):
		return valueEqual(x, y)
	case w.byReference(t):
		return node.SameReference(x, y)
	case node.IsReference(t) && node.SameReference(x, y):
		return true
	default:
		return w.equalFresh(x, y)
	}
}

// unchanged reports whether the working value of a member still matches
// the member: by identity for references, structurally for values.
func (w *Walker) unchanged(tmp, dv reflect.Value) bool {
	if node.IsReference(tmp.Type()) {
		return node.SameReference(tmp, dv)
	}

	return w.equalFresh(tmp, dv)
}

// equalFresh compares without touching the pairs of the running copy.
func (w *Walker) equalFresh(x, y reflect.Value) bool {
	eq := w.fresh(verify.ForEqual)
	defer eq.Release()

	ok, err := eq.equal(x, y)
	return err == nil && ok
}

func readonlyDiffers(path string, src, dst reflect.Value) error {
	return &typeerrors.ReadonlyMemberDiffersError{
		Path:   path,
		Source: export(src),
		Target: export(dst),
	}
}
