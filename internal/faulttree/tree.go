package faulttree

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var (
	// ErrUnknownElement is returned when an identifier does not name an
	// element of the tree.
	ErrUnknownElement = errors.New("unknown element")

	// ErrNotBasicEvent is returned when a sampling operation names a gate.
	ErrNotBasicEvent = errors.New("not a basic event")

	// ErrIDOutOfOrder is returned when an element is added whose identifier
	// does not match the next free arena slot.
	ErrIDOutOfOrder = errors.New("element id out of order")
)

// Tree owns every element of one fault tree in an arena indexed by
// ElementID, plus the identifier of the root. Structure is fixed once built;
// only basic-event statuses mutate during simulation.
type Tree struct {
	root     ElementID
	elements []Element
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{}
}

// AddElement inserts e at its own identifier slot. Identifiers come from a
// single shared IDGenerator, so insertion must always land on the next free
// slot; anything else means ids were minted out of band.
func (t *Tree) AddElement(e Element) error {
	if int(e.ID()) != len(t.elements) {
		return fmt.Errorf("%w: got id %d, next slot is %d", ErrIDOutOfOrder, e.ID(), len(t.elements))
	}
	t.elements = append(t.elements, e)
	return nil
}

// SetRoot designates the top element. The id must already be in the arena.
func (t *Tree) SetRoot(id ElementID) error {
	if !t.contains(id) {
		return fmt.Errorf("%w: id %d", ErrUnknownElement, id)
	}
	t.root = id
	return nil
}

// Root returns the identifier of the top element.
func (t *Tree) Root() ElementID { return t.root }

// Len returns the number of elements in the arena.
func (t *Tree) Len() int { return len(t.elements) }

func (t *Tree) contains(id ElementID) bool {
	return id >= 0 && int(id) < len(t.elements)
}

// Failed evaluates the failed state of the element named by id, recursing
// through gate children transparently.
func (t *Tree) Failed(id ElementID) (bool, error) {
	if !t.contains(id) {
		return false, fmt.Errorf("%w: id %d", ErrUnknownElement, id)
	}
	return t.elements[id].Failed(t), nil
}

// mustFailed is the recursion path used by gates. Children are resolved at
// construction time, so an unknown id here is a broken tree, not a caller
// error.
func (t *Tree) mustFailed(id ElementID) bool {
	if !t.contains(id) {
		panic(fmt.Sprintf("faulttree: gate references unknown element %d", id))
	}
	return t.elements[id].Failed(t)
}

// BasicEvents returns the identifiers of all basic events in id order.
func (t *Tree) BasicEvents() []ElementID {
	var ids []ElementID
	for i, e := range t.elements {
		if e.Kind() == KindBasic {
			ids = append(ids, ElementID(i))
		}
	}
	return ids
}

// basicEvent resolves id to a basic event or reports why it cannot.
func (t *Tree) basicEvent(id ElementID) (*BasicEvent, error) {
	if !t.contains(id) {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownElement, id)
	}
	be, ok := t.elements[id].(*BasicEvent)
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNotBasicEvent, id)
	}
	return be, nil
}

// SampleFailure draws a failure interval for the basic event named by id.
func (t *Tree) SampleFailure(id ElementID, rng *rand.Rand) (float64, error) {
	be, err := t.basicEvent(id)
	if err != nil {
		return 0, err
	}
	return be.SampleFailure(rng), nil
}

// SampleRepair draws a repair interval for the basic event named by id.
func (t *Tree) SampleRepair(id ElementID, rng *rand.Rand) (float64, error) {
	be, err := t.basicEvent(id)
	if err != nil {
		return 0, err
	}
	return be.SampleRepair(rng), nil
}

// ApplyEvent mutates the named element's status: dead on failure, alive on
// repair. An unrecognized event kind means the schedule is corrupt, which is
// not recoverable.
func (t *Tree) ApplyEvent(ev Event) error {
	if !t.contains(ev.Element) {
		return fmt.Errorf("%w: id %d", ErrUnknownElement, ev.Element)
	}
	switch ev.Kind {
	case EventFailure:
		t.elements[ev.Element].setStatus(StatusDead)
	case EventRepair:
		t.elements[ev.Element].setStatus(StatusAlive)
	default:
		panic(fmt.Sprintf("faulttree: corrupt event kind %d", int(ev.Kind)))
	}
	return nil
}

// ResetBasicEvents sets every basic event back to alive. Called between
// trials; gates are untouched since their state is derived.
func (t *Tree) ResetBasicEvents() {
	for _, e := range t.elements {
		if e.Kind() == KindBasic {
			e.setStatus(StatusAlive)
		}
	}
}
