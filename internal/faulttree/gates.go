package faulttree

// Gates hold child identifiers, never child references; the tree resolves
// identifiers on every query. Child order has no effect on gate semantics
// but is preserved for determinism and diagnostics.

// AndGate fails iff every child is failed. An empty child set is not failed;
// vacuous truth does not apply here.
type AndGate struct {
	id       ElementID
	children []ElementID
}

// NewAndGate creates an AND gate over the given children.
func NewAndGate(id ElementID, children []ElementID) *AndGate {
	return &AndGate{id: id, children: children}
}

// Failed reports whether the gate has children and all of them are failed.
func (g *AndGate) Failed(t *Tree) bool {
	if len(g.children) == 0 {
		return false
	}
	for _, child := range g.children {
		if !t.mustFailed(child) {
			return false
		}
	}
	return true
}

// ID returns the element identifier.
func (g *AndGate) ID() ElementID { return g.id }

// Kind returns KindStatic.
func (g *AndGate) Kind() Kind { return KindStatic }

// Children returns the child identifiers in attachment order.
func (g *AndGate) Children() []ElementID { return g.children }

func (g *AndGate) setStatus(Status) {
	panic("faulttree: AND gate status is derived and cannot be set")
}

// OrGate fails iff any child is failed.
type OrGate struct {
	id       ElementID
	children []ElementID
}

// NewOrGate creates an OR gate over the given children.
func NewOrGate(id ElementID, children []ElementID) *OrGate {
	return &OrGate{id: id, children: children}
}

// Failed reports whether at least one child is failed.
func (g *OrGate) Failed(t *Tree) bool {
	for _, child := range g.children {
		if t.mustFailed(child) {
			return true
		}
	}
	return false
}

// ID returns the element identifier.
func (g *OrGate) ID() ElementID { return g.id }

// Kind returns KindStatic.
func (g *OrGate) Kind() Kind { return KindStatic }

// Children returns the child identifiers in attachment order.
func (g *OrGate) Children() []ElementID { return g.children }

func (g *OrGate) setStatus(Status) {
	panic("faulttree: OR gate status is derived and cannot be set")
}

// VoteGate fails iff more than half of its children are failed. The
// threshold is a fixed majority, not a configurable k-of-n: with n children
// the gate fails once the failed count exceeds n/2 (integer division).
type VoteGate struct {
	id       ElementID
	children []ElementID
}

// NewVoteGate creates a majority-vote gate over the given children.
func NewVoteGate(id ElementID, children []ElementID) *VoteGate {
	return &VoteGate{id: id, children: children}
}

// Failed reports whether a strict majority of children are failed.
func (g *VoteGate) Failed(t *Tree) bool {
	threshold := len(g.children) / 2
	failed := 0
	for _, child := range g.children {
		if t.mustFailed(child) {
			failed++
		}
	}
	return failed > threshold
}

// ID returns the element identifier.
func (g *VoteGate) ID() ElementID { return g.id }

// Kind returns KindStatic.
func (g *VoteGate) Kind() Kind { return KindStatic }

// Children returns the child identifiers in attachment order.
func (g *VoteGate) Children() []ElementID { return g.children }

func (g *VoteGate) setStatus(Status) {
	panic("faulttree: VOTE gate status is derived and cannot be set")
}
