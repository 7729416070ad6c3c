// Package sim drives Monte-Carlo trials against a fault tree: a time-ordered
// event schedule, the per-trial simulation loop, and the campaign driver that
// runs many independent trials.
package sim

import (
	"errors"
	"slices"

	"github.com/nvandessel/ftsim/internal/faulttree"
)

// ErrEmptyQueue is returned by PopEarliest on an empty schedule. Under
// correct trial operation the schedule never drains before the root fails,
// so seeing this mid-trial indicates a bug.
var ErrEmptyQueue = errors.New("empty event queue")

// Schedule is the pending-event queue of one trial, kept sorted ascending by
// time with order-preserving insertion.
type Schedule struct {
	events []faulttree.Event
}

// NewSchedule returns an empty schedule.
func NewSchedule() *Schedule {
	return &Schedule{}
}

// Insert places ev before the first record whose time is not strictly less
// than ev's. Among equal timestamps the newest record therefore pops first;
// the tie order carries no model meaning but is deterministic.
func (s *Schedule) Insert(ev faulttree.Event) {
	i := 0
	for i < len(s.events) && ev.Time > s.events[i].Time {
		i++
	}
	s.events = slices.Insert(s.events, i, ev)
}

// PopEarliest removes and returns the record with the smallest time.
func (s *Schedule) PopEarliest() (faulttree.Event, error) {
	if len(s.events) == 0 {
		return faulttree.Event{}, ErrEmptyQueue
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, nil
}

// Len returns the number of pending records.
func (s *Schedule) Len() int { return len(s.events) }
