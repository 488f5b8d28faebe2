package engine

import (
	"reflect"

	"graphstate/diff"
	"graphstate/typeerrors"
)

type unsupportedStrategy struct{ typ reflect.Type }

func (s unsupportedStrategy) err() error {
	return typeerrors.Internal("%s is not a collection", s.typ)
}

func (s unsupportedStrategy) equal(*Walker, reflect.Value, reflect.Value) (bool, error) {
	return false, s.err()
}

func (s unsupportedStrategy) diff(*Walker, reflect.Value, reflect.Value) (*diff.ValueDiff, error) {
	return nil, s.err()
}

func (s unsupportedStrategy) diffIndex(*Walker, reflect.Value, reflect.Value, reflect.Value) (*diff.IndexDiff, error) {
	return nil, s.err()
}

func (s unsupportedStrategy) copy(*Walker, reflect.Value, reflect.Value, string, bool) error {
	return s.err()
}
