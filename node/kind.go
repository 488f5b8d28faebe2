package node

import "strconv"

// Kind is the traversal shape of a type.
type Kind int

const (
	KindUnknown     Kind = iota
	KindLeaf             // compared by value, see primitive.IsEquatable
	KindStruct           // struct value, walked member by member
	KindPointer          // pointer to a non leaf type
	KindInterface        // dynamic type decided per value
	KindArray            // fixed size collection
	KindSlice            // resizable list
	KindMap              // dictionary
	KindSet              // map[K]struct{}
	KindSeq              // iter.Seq[T], enumeration only
	KindUnsupported      // chan, func, unsafe.Pointer

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

var kindNames = [...]string{
	KindUnknown:     "unknown",
	KindLeaf:        "leaf",
	KindStruct:      "struct",
	KindPointer:     "pointer",
	KindInterface:   "interface",
	KindArray:       "array",
	KindSlice:       "slice",
	KindMap:         "map",
	KindSet:         "set",
	KindSeq:         "seq",
	KindUnsupported: "unsupported",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= KindTotal {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}

	return kindNames[k]
}

// IsCollection reports whether k holds items.
func (k Kind) IsCollection() bool {
	switch k {
	case KindArray, KindSlice, KindMap, KindSet, KindSeq:
		return true
	default:
		return false
	}
}

// IsReference reports whether values of kind k are references that may be
// shared between owners and can therefore form loops.
func (k Kind) IsReference() bool {
	switch k {
	case KindPointer, KindInterface, KindSlice, KindMap, KindSet, KindSeq:
		return true
	default:
		return false
	}
}
