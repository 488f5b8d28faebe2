package track

import (
	"reflect"

	"graphstate/notify"
	"graphstate/settings"
	"graphstate/verify"
)

type (
	Notifier           = notify.Notifier
	CollectionNotifier = notify.CollectionNotifier
	Change             = notify.Change
	Action             = notify.Action
)

const (
	ActionAdd     = notify.ActionAdd
	ActionRemove  = notify.ActionRemove
	ActionReplace = notify.ActionReplace
	ActionMove    = notify.ActionMove
	ActionReset   = notify.ActionReset
)

const (
	opTrack       = "track.Track"
	opSynchronize = "track.Synchronize"
)

// VerifyCanTrack reports whether graphs of type t can be tracked under s:
// t must be a pointer to a struct and every mutable part of the graph must
// notify its changes.
func VerifyCanTrack(t reflect.Type, s settings.MemberSettings) error {
	return verify.Check(opTrack, t, s, verify.ForTrack)
}

// VerifyCanSynchronize is VerifyCanTrack plus the checks of copy.
func VerifyCanSynchronize(t reflect.Type, s settings.MemberSettings) error {
	if err := verify.Check(opSynchronize, t, s, verify.ForTrack); err != nil {
		return err
	}

	return verify.Check(opSynchronize, t, s, verify.ForCopy)
}
