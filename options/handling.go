package options

import (
	"fmt"
	"strings"
)

// ReferenceHandling controls how reference-typed members (pointers, maps,
// slices, interfaces and sequences) are treated during a traversal.
type ReferenceHandling int

const (
	// Throw reports every mutable reference-typed member as unsupported.
	Throw ReferenceHandling = iota
	// References compares and copies reference-typed members by identity only.
	References
	// Structural traverses reference-typed members. A type graph that can
	// loop back on itself is rejected during verification.
	Structural
	// StructuralWithReferenceLoops traverses like Structural but closes loops:
	// a pair of references seen twice in one call is treated as equal.
	StructuralWithReferenceLoops

	// ReferenceHandlingTotal is the number of defined policies.
	ReferenceHandlingTotal = int(iota)
)

// DefaultReferenceHandling is used when no policy is configured.
const DefaultReferenceHandling = Structural

var referenceHandlingNames = [...]string{
	Throw:                        "throw",
	References:                   "references",
	Structural:                   "structural",
	StructuralWithReferenceLoops: "structural_with_reference_loops",
}

func (h ReferenceHandling) String() string {
	if !h.IsValid() {
		return fmt.Sprintf("ReferenceHandling(%d)", int(h))
	}

	return referenceHandlingNames[h]
}

// IsValid reports whether h is one of the defined policies.
func (h ReferenceHandling) IsValid() bool {
	return h >= 0 && int(h) < ReferenceHandlingTotal
}

// IsStructural reports whether reference-typed members are traversed.
func (h ReferenceHandling) IsStructural() bool {
	return h == Structural || h == StructuralWithReferenceLoops
}

// ParseReferenceHandling parses a policy name. Case, '-', '_' and spaces are ignored,
// so "StructuralWithReferenceLoops" and "structural-with-reference-loops" are equivalent.
func ParseReferenceHandling(s string) (ReferenceHandling, error) {
	key := squash(s)
	for h, name := range referenceHandlingNames {
		if squash(name) == key {
			return ReferenceHandling(h), nil
		}
	}

	return 0, fmt.Errorf("unknown reference handling %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (h ReferenceHandling) MarshalText() ([]byte, error) {
	if !h.IsValid() {
		return nil, fmt.Errorf("invalid reference handling %d", int(h))
	}

	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *ReferenceHandling) UnmarshalText(text []byte) error {
	parsed, err := ParseReferenceHandling(string(text))
	if err != nil {
		return err
	}

	*h = parsed
	return nil
}

func squash(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}
