// Package member abstracts "a field or a property" into one accessor type.
//
// Fields are struct fields. Fields promoted from value-embedded structs are
// flattened into the embedding struct, keeping the embedded struct as their
// declaring type, the same way inherited members keep their base class.
// Fields promoted through embedded pointers are not flattened: the embedded
// pointer itself is the member.
//
// Properties are accessor methods on the pointer method set:
//
//	func (o *Order) Total() int      // getter
//	func (o *Order) SetTotal(v int)  // optional setter, absent means read-only
//
// A getter that takes arguments and has a matching setter taking the same
// arguments plus the value is an indexer; indexers are enumerated but cannot
// be read.
//
// Struct tag options (key "graph"):
//
//	Name string `graph:"-"`        // never a member
//	ID   int    `graph:"readonly"` // init-only member
//
// Member lists are built once per (type, kind, binding) and cached.
package member
