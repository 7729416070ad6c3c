package faulttree

import "fmt"

// EventKind labels a scheduled state transition.
type EventKind int

const (
	EventFailure EventKind = iota
	EventRepair
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventFailure:
		return "failure"
	case EventRepair:
		return "repair"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one pending transition: at Time, Element fails or is repaired.
// Events are ephemeral; they are created when an interval is sampled and
// discarded once applied.
type Event struct {
	Time    float64
	Element ElementID
	Kind    EventKind
}
