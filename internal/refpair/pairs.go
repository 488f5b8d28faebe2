package refpair

import (
	"reflect"
	"sync"

	"graphstate/node"
	"graphstate/options"
)

// Pair is an ordered pair of identities. Pair{x, y} and Pair{y, x} differ.
type Pair struct {
	X, Y node.Token
}

// Mark is a position in the visit log, see Pairs.Rollback.
type Mark int

// Pairs is the set of visited reference pairs of a single top level call.
// It is not safe for concurrent use.
type Pairs struct {
	seen    map[Pair]struct{}
	log     []Pair
	targets map[node.Token]reflect.Value
}

var pool = sync.Pool{
	New: func() any {
		return &Pairs{
			seen:    make(map[Pair]struct{}),
			targets: make(map[node.Token]reflect.Value),
		}
	},
}

// Borrow returns an empty tracker when handling resolves loops, and nil
// otherwise. A nil *Pairs is valid and records nothing.
func Borrow(handling options.ReferenceHandling) *Pairs {
	if handling != options.StructuralWithReferenceLoops {
		return nil
	}

	return pool.Get().(*Pairs)
}

// Release clears p and puts it back in the pool.
func (p *Pairs) Release() {
	if p == nil {
		return
	}

	clear(p.seen)
	clear(p.targets)
	p.log = p.log[:0]
	pool.Put(p)
}

// Contains reports whether the pair of x and y was added. Values that are
// not references are never contained.
func (p *Pairs) Contains(x, y reflect.Value) bool {
	if p == nil {
		return false
	}

	pair, ok := pairOf(x, y)
	if !ok {
		return false
	}

	_, exists := p.seen[pair]
	return exists
}

// Add records the pair of x and y and reports whether it was new.
// Values that are not references are ignored and reported as new.
func (p *Pairs) Add(x, y reflect.Value) bool {
	if p == nil {
		return true
	}

	pair, ok := pairOf(x, y)
	if !ok {
		return true
	}

	if _, exists := p.seen[pair]; exists {
		return false
	}

	p.seen[pair] = struct{}{}
	p.log = append(p.log, pair)
	return true
}

// Mark returns the current position in the log.
func (p *Pairs) Mark() Mark {
	if p == nil {
		return 0
	}

	return Mark(len(p.log))
}

// Rollback forgets every pair added after m.
func (p *Pairs) Rollback(m Mark) {
	if p == nil || int(m) >= len(p.log) {
		return
	}

	for _, pair := range p.log[m:] {
		delete(p.seen, pair)
	}

	p.log = p.log[:m]
}

// Len returns the number of recorded pairs.
func (p *Pairs) Len() int {
	if p == nil {
		return 0
	}

	return len(p.seen)
}

// Map remembers that target was created as the copy of source.
func (p *Pairs) Map(source, target reflect.Value) {
	if p == nil {
		return
	}

	if token, ok := node.Identity(source); ok {
		p.targets[token] = target
	}
}

// Target returns the copy created for source, if any.
func (p *Pairs) Target(source reflect.Value) (reflect.Value, bool) {
	if p == nil {
		return reflect.Value{}, false
	}

	token, ok := node.Identity(source)
	if !ok {
		return reflect.Value{}, false
	}

	target, ok := p.targets[token]
	return target, ok
}

func pairOf(x, y reflect.Value) (Pair, bool) {
	tx, okx := node.Identity(x)
	ty, oky := node.Identity(y)
	if !okx || !oky {
		return Pair{}, false
	}

	return Pair{X: tx, Y: ty}, true
}
