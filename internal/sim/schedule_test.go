package sim

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/nvandessel/ftsim/internal/faulttree"
)

func TestSchedulePopEmpty(t *testing.T) {
	sched := NewSchedule()
	if _, err := sched.PopEarliest(); !errors.Is(err, ErrEmptyQueue) {
		t.Errorf("PopEarliest on empty schedule: err = %v, want ErrEmptyQueue", err)
	}
}

func TestScheduleOrdering(t *testing.T) {
	sched := NewSchedule()
	times := []float64{5.0, 1.0, 3.0, 2.0, 4.0}
	for i, tm := range times {
		sched.Insert(faulttree.Event{Time: tm, Element: faulttree.ElementID(i), Kind: faulttree.EventFailure})
	}

	if sched.Len() != len(times) {
		t.Fatalf("Len() = %d, want %d", sched.Len(), len(times))
	}

	prev := -1.0
	for sched.Len() > 0 {
		ev, err := sched.PopEarliest()
		if err != nil {
			t.Fatalf("PopEarliest: %v", err)
		}
		if ev.Time < prev {
			t.Fatalf("popped time %g after %g, want non-decreasing", ev.Time, prev)
		}
		prev = ev.Time
	}
}

func TestScheduleRandomizedOrdering(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 9))
	sched := NewSchedule()
	const n = 500
	for i := 0; i < n; i++ {
		sched.Insert(faulttree.Event{
			Time:    rng.Float64() * 1000,
			Element: faulttree.ElementID(i),
			Kind:    faulttree.EventFailure,
		})
	}

	prev := -1.0
	for i := 0; i < n; i++ {
		ev, err := sched.PopEarliest()
		if err != nil {
			t.Fatalf("PopEarliest %d: %v", i, err)
		}
		if ev.Time < prev {
			t.Fatalf("popped time %g after %g, want non-decreasing", ev.Time, prev)
		}
		prev = ev.Time
	}
	if sched.Len() != 0 {
		t.Errorf("Len() = %d after draining, want 0", sched.Len())
	}
}

func TestScheduleTieOrder(t *testing.T) {
	// Among equal timestamps the most recently inserted record pops first.
	sched := NewSchedule()
	sched.Insert(faulttree.Event{Time: 2.0, Element: 0, Kind: faulttree.EventFailure})
	sched.Insert(faulttree.Event{Time: 2.0, Element: 1, Kind: faulttree.EventFailure})
	sched.Insert(faulttree.Event{Time: 2.0, Element: 2, Kind: faulttree.EventFailure})

	wantOrder := []faulttree.ElementID{2, 1, 0}
	for i, want := range wantOrder {
		ev, err := sched.PopEarliest()
		if err != nil {
			t.Fatalf("PopEarliest %d: %v", i, err)
		}
		if ev.Element != want {
			t.Errorf("pop %d: element = %d, want %d", i, ev.Element, want)
		}
	}
}

func TestScheduleInterleavedInsertPop(t *testing.T) {
	sched := NewSchedule()
	sched.Insert(faulttree.Event{Time: 10, Element: 0, Kind: faulttree.EventFailure})
	sched.Insert(faulttree.Event{Time: 5, Element: 1, Kind: faulttree.EventFailure})

	ev, err := sched.PopEarliest()
	if err != nil {
		t.Fatalf("PopEarliest: %v", err)
	}
	if ev.Element != 1 {
		t.Fatalf("first pop element = %d, want 1", ev.Element)
	}

	// A later insert with an earlier time must jump the queue.
	sched.Insert(faulttree.Event{Time: 7, Element: 2, Kind: faulttree.EventRepair})
	ev, err = sched.PopEarliest()
	if err != nil {
		t.Fatalf("PopEarliest: %v", err)
	}
	if ev.Element != 2 || ev.Kind != faulttree.EventRepair {
		t.Errorf("second pop = element %d kind %v, want element 2 repair", ev.Element, ev.Kind)
	}
}
