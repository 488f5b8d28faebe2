// Package notify declares the change notification contracts that tracked
// types implement. Tracking subscribes through these interfaces and never
// inspects how a type raises its notifications.
package notify

import "strconv"

// Notifier is implemented by types that report member changes.
type Notifier interface {
	// OnChanged registers fn to be called with the name of each changed
	// member. The returned function removes the registration.
	OnChanged(fn func(member string)) (cancel func())
}

// CollectionNotifier is implemented by collections that report item changes.
type CollectionNotifier interface {
	// OnCollectionChanged registers fn to be called on every change.
	// The returned function removes the registration.
	OnCollectionChanged(fn func(Change)) (cancel func())
}

// Action is the kind of a collection change.
type Action int

const (
	ActionAdd Action = iota
	ActionRemove
	ActionReplace
	ActionMove
	ActionReset
)

var actionNames = [...]string{
	ActionAdd:     "add",
	ActionRemove:  "remove",
	ActionReplace: "replace",
	ActionMove:    "move",
	ActionReset:   "reset",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Action(" + strconv.Itoa(int(a)) + ")"
	}

	return actionNames[a]
}

// Change describes one collection change. Index is the affected position
// for slices, or the key for maps; OldIndex is only set by ActionMove.
type Change struct {
	Action   Action
	Index    any
	OldIndex any
}
