package sim

import (
	"fmt"
	"math/rand/v2"

	"github.com/nvandessel/ftsim/internal/faulttree"
	"github.com/nvandessel/ftsim/internal/logging"
)

// Trial simulates one realization of the stochastic process: from every
// component alive to the first instant the root evaluates failed.
type Trial struct {
	tree  *faulttree.Tree
	rng   *rand.Rand
	trace *logging.TraceLogger
}

// NewTrial creates a trial bound to tree and rng. trace may be nil.
func NewTrial(tree *faulttree.Tree, rng *rand.Rand, trace *logging.TraceLogger) *Trial {
	return &Trial{tree: tree, rng: rng, trace: trace}
}

// Run seeds the schedule with every basic event's first failure time, then
// pops and applies events until a failure event makes the root evaluate
// failed. It returns that event's time.
//
// A failure that does not fail the root schedules the component's repair,
// unless the sampled repair interval is zero (the none law), in which case
// the component stays dead for the rest of the trial. A repair re-arms the
// component's next failure, so the schedule never drains while the tree is
// satisfiable.
func (t *Trial) Run() (float64, error) {
	sched := NewSchedule()

	for _, id := range t.tree.BasicEvents() {
		interval, err := t.tree.SampleFailure(id, t.rng)
		if err != nil {
			return 0, fmt.Errorf("seeding element %d: %w", id, err)
		}
		sched.Insert(faulttree.Event{Time: interval, Element: id, Kind: faulttree.EventFailure})
	}

	for {
		ev, err := sched.PopEarliest()
		if err != nil {
			return 0, fmt.Errorf("schedule drained before system failure: %w", err)
		}
		if err := t.tree.ApplyEvent(ev); err != nil {
			return 0, fmt.Errorf("applying %s event for element %d: %w", ev.Kind, ev.Element, err)
		}
		t.trace.Log(map[string]any{
			"event":   ev.Kind.String(),
			"element": int(ev.Element),
			"t":       ev.Time,
		})

		switch ev.Kind {
		case faulttree.EventFailure:
			failed, err := t.tree.Failed(t.tree.Root())
			if err != nil {
				return 0, fmt.Errorf("evaluating root: %w", err)
			}
			if failed {
				return ev.Time, nil
			}
			interval, err := t.tree.SampleRepair(ev.Element, t.rng)
			if err != nil {
				return 0, fmt.Errorf("sampling repair for element %d: %w", ev.Element, err)
			}
			if interval > 0 {
				sched.Insert(faulttree.Event{
					Time:    ev.Time + interval,
					Element: ev.Element,
					Kind:    faulttree.EventRepair,
				})
			}

		case faulttree.EventRepair:
			interval, err := t.tree.SampleFailure(ev.Element, t.rng)
			if err != nil {
				return 0, fmt.Errorf("sampling failure for element %d: %w", ev.Element, err)
			}
			sched.Insert(faulttree.Event{
				Time:    ev.Time + interval,
				Element: ev.Element,
				Kind:    faulttree.EventFailure,
			})
		}
	}
}
