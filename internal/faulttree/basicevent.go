package faulttree

import (
	"fmt"
	"math/rand/v2"

	"github.com/nvandessel/ftsim/internal/dist"
)

// BasicEvent is a leaf component. It alternates between alive and dead as
// failure and repair events are applied, and owns the two samplers that
// produce its failure and repair intervals.
type BasicEvent struct {
	id      ElementID
	status  Status
	failure *dist.Sampler
	repair  *dist.Sampler
}

// NewBasicEvent creates an alive basic event with the given samplers.
// The failure law must be a real distribution; a component that never fails
// has no place in a fault tree, so a none failure law rejects construction.
func NewBasicEvent(id ElementID, failure, repair *dist.Sampler) (*BasicEvent, error) {
	if failure == nil || repair == nil {
		return nil, fmt.Errorf("basic event %d: failure and repair samplers are required", id)
	}
	if failure.Law() == dist.LawNone {
		return nil, fmt.Errorf("basic event %d: %w: none is not a valid failure law", id, dist.ErrInvalidParameters)
	}
	return &BasicEvent{id: id, status: StatusAlive, failure: failure, repair: repair}, nil
}

// Failed reports whether the component is currently dead. A status outside
// {alive, dead} means event processing has corrupted the tree; that is not
// recoverable.
func (e *BasicEvent) Failed(_ *Tree) bool {
	switch e.status {
	case StatusAlive:
		return false
	case StatusDead:
		return true
	default:
		panic(fmt.Sprintf("faulttree: basic event %d has corrupt status %d", e.id, int(e.status)))
	}
}

// ID returns the element identifier.
func (e *BasicEvent) ID() ElementID { return e.id }

// Kind returns KindBasic.
func (e *BasicEvent) Kind() Kind { return KindBasic }

// Status returns the current status.
func (e *BasicEvent) Status() Status { return e.status }

func (e *BasicEvent) setStatus(s Status) { e.status = s }

// SampleFailure draws the component's next time-to-failure interval.
// Defined regardless of current status; the schedule decides when intervals
// are requested.
func (e *BasicEvent) SampleFailure(rng *rand.Rand) float64 {
	if e.failure.Law() == dist.LawNone {
		panic(fmt.Sprintf("faulttree: basic event %d has a none failure law", e.id))
	}
	return e.failure.Sample(rng)
}

// SampleRepair draws the component's next time-to-repair interval. A zero
// interval (the none law) means the component is never repaired.
func (e *BasicEvent) SampleRepair(rng *rand.Rand) float64 {
	return e.repair.Sample(rng)
}
