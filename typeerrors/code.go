package typeerrors

import "strconv"

// Code identifies the kind of a verification problem.
type Code int

const (
	CodeUnknown                   Code = iota
	CodeUnsupportedType                // not equatable or immutable under Throw
	CodeRequiresReferenceHandling      // collection under Throw
	CodeUnsupportedIndexer
	CodeReferenceLoop
	CodeCollectionMustNotify
	CodeTypeMustNotify
	CodeUnsupportedMember // func, chan, unsafe pointer or a sequence copy target

	CodeTotal = int(iota)
)

var codeNames = [...]string{
	CodeUnknown:                   "unknown",
	CodeUnsupportedType:           "unsupported_type",
	CodeRequiresReferenceHandling: "requires_reference_handling",
	CodeUnsupportedIndexer:        "unsupported_indexer",
	CodeReferenceLoop:             "reference_loop",
	CodeCollectionMustNotify:      "collection_must_notify",
	CodeTypeMustNotify:            "type_must_notify",
	CodeUnsupportedMember:         "unsupported_member",
}

func (c Code) String() string {
	if c < 0 || int(c) >= CodeTotal {
		return "Code(" + strconv.Itoa(int(c)) + ")"
	}

	return codeNames[c]
}

// Fix is a remediation offered for a problem.
type Fix int

const (
	FixImplementEqual Fix = iota
	FixMarkImmutable
	FixChangeReferenceHandling
	FixUseLoopHandling
	FixExcludeType
	FixExcludeMember
	FixImplementNotifier
	FixImplementCollectionNotifier
)

var fixText = [...]string{
	FixImplementEqual:              "Implement an Equal(T) bool method on the type so it is compared as a value.",
	FixMarkImmutable:               "Register the type with settings.WithImmutableTypes or settings.WithEquatableTypes.",
	FixChangeReferenceHandling:     "Use ReferenceHandling References to compare by identity or Structural to traverse the graph.",
	FixUseLoopHandling:             "Use ReferenceHandling StructuralWithReferenceLoops to close reference loops.",
	FixExcludeType:                 "Exclude the type with settings.WithIgnoredTypes.",
	FixExcludeMember:               "Exclude the member with settings.WithIgnoredMembers.",
	FixImplementNotifier:           "Implement track.Notifier on the type.",
	FixImplementCollectionNotifier: "Use a named collection type that implements track.CollectionNotifier.",
}

func (f Fix) String() string {
	if f < 0 || int(f) >= len(fixText) {
		return "Fix(" + strconv.Itoa(int(f)) + ")"
	}

	return fixText[f]
}

// Fixes returns the remediations for c, most specific first.
func (c Code) Fixes() []Fix {
	switch c {
	case CodeUnsupportedType:
		return []Fix{FixImplementEqual, FixMarkImmutable, FixChangeReferenceHandling, FixExcludeType, FixExcludeMember}
	case CodeRequiresReferenceHandling:
		return []Fix{FixChangeReferenceHandling, FixExcludeType, FixExcludeMember}
	case CodeUnsupportedIndexer:
		return []Fix{FixExcludeMember, FixExcludeType}
	case CodeReferenceLoop:
		return []Fix{FixUseLoopHandling, FixChangeReferenceHandling, FixExcludeMember, FixMarkImmutable}
	case CodeCollectionMustNotify:
		return []Fix{FixImplementCollectionNotifier, FixExcludeMember, FixExcludeType}
	case CodeTypeMustNotify:
		return []Fix{FixImplementNotifier, FixMarkImmutable, FixExcludeType, FixExcludeMember}
	case CodeUnsupportedMember:
		return []Fix{FixExcludeMember, FixExcludeType}
	default:
		return nil
	}
}
