// Package faulttree implements the fault-tree data model: an arena of
// elements addressed by dense integer identifiers, with logic gates whose
// failed state is derived by recursing into their children and basic events
// that carry the only mutable status in the tree.
package faulttree

// ElementID identifies an element within one tree. Identifiers are dense,
// zero-based, assigned once by an IDGenerator, and double as the index into
// the tree's element arena.
type ElementID int

// Status is the mutable state of a basic event. Gates never hold a status;
// theirs is derived from their children on every query.
type Status int

const (
	StatusAlive Status = iota
	StatusDead
	// StatusDynamic is reserved for spare-gate elements that track their own
	// active child. No current element kind uses it.
	StatusDynamic
)

// String returns the status name for diagnostics.
func (s Status) String() string {
	switch s {
	case StatusAlive:
		return "alive"
	case StatusDead:
		return "dead"
	case StatusDynamic:
		return "dynamic"
	default:
		return "invalid"
	}
}

// Kind distinguishes the structural role of an element.
type Kind int

const (
	// KindBasic marks a leaf component with stochastic failure/repair timing.
	KindBasic Kind = iota
	// KindStatic marks a logic gate whose state is a pure function of its
	// children.
	KindStatic
)

// Element is the uniform surface shared by gates and basic events. Failed
// receives the owning tree so gates can resolve child identifiers without
// holding references.
//
// setStatus is unexported: only event application inside this package may
// mutate status, and gates reject the call outright.
type Element interface {
	Failed(t *Tree) bool
	ID() ElementID
	Kind() Kind
	setStatus(s Status)
}

// IDGenerator hands out element identifiers in strictly increasing order
// starting at zero. One generator must be shared across all elements of a
// tree so identifiers line up with arena slots.
type IDGenerator struct {
	next ElementID
}

// NewIDGenerator returns a generator starting at identifier 0.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Next returns the next unused identifier.
func (g *IDGenerator) Next() ElementID {
	id := g.next
	g.next++
	return id
}
