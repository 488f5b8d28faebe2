package verify

import "strconv"

// Purpose selects the operation a type is verified for.
type Purpose int

const (
	ForEqual Purpose = iota
	ForDiff
	ForCopy
	ForTrack
)

var purposeNames = [...]string{
	ForEqual: "equal",
	ForDiff:  "diff",
	ForCopy:  "copy",
	ForTrack: "track",
}

func (p Purpose) String() string {
	if p < 0 || int(p) >= len(purposeNames) {
		return "Purpose(" + strconv.Itoa(int(p)) + ")"
	}

	return purposeNames[p]
}
