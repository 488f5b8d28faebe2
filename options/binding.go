package options

import (
	"fmt"
	"strings"
)

// BindingFlags selects which members are visible to a traversal.
type BindingFlags int

const (
	BindingExported   BindingFlags = 1 << iota // exported fields and accessor methods
	BindingUnexported                          // unexported fields (methods are never visible through reflection)

	BindingAll     = (1 << iota) - 1 // all flags combined
	BindingNone    = 0               // nothing is visible
	BindingDefault = BindingExported // public instance members only
)

// Has reports whether every bit of flag is set.
func (b BindingFlags) Has(flag BindingFlags) bool {
	return b&flag == flag
}

func (b BindingFlags) String() string {
	if b == BindingNone {
		return "none"
	}

	var parts []string
	if b.Has(BindingExported) {
		parts = append(parts, "exported")
	}

	if b.Has(BindingUnexported) {
		parts = append(parts, "unexported")
	}

	if rest := b &^ BindingAll; rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", int(rest)))
	}

	return strings.Join(parts, "|")
}

// ParseBindingFlags combines named flags: "exported", "unexported", "all".
// An empty list yields BindingDefault.
func ParseBindingFlags(names []string) (BindingFlags, error) {
	if len(names) == 0 {
		return BindingDefault, nil
	}

	var b BindingFlags
	for _, name := range names {
		switch squash(name) {
		case "exported", "public":
			b |= BindingExported
		case "unexported", "nonpublic", "private":
			b |= BindingUnexported
		case "all":
			b |= BindingAll
		default:
			return BindingNone, fmt.Errorf("unknown binding flag %q", name)
		}
	}

	return b, nil
}

// MemberKind selects whether a traversal walks struct fields or accessor properties.
type MemberKind int

const (
	MemberField MemberKind = iota
	MemberProperty
)

func (k MemberKind) String() string {
	switch k {
	case MemberField:
		return "field"
	case MemberProperty:
		return "property"
	default:
		return fmt.Sprintf("MemberKind(%d)", int(k))
	}
}
