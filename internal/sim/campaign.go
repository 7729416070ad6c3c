package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/nvandessel/ftsim/internal/faulttree"
	"github.com/nvandessel/ftsim/internal/logging"
)

// DefaultTrials is the trial count used when neither the model nor the
// caller specifies one.
const DefaultTrials = 10000

// progressEvery is how many trials pass between debug progress lines.
const progressEvery = 1000

// Campaign runs a batch of independent trials against one tree and collects
// the system-failure time of each. The tree and rng are owned exclusively by
// the campaign for the duration of Run; trials are sequential, so no locking
// is needed.
type Campaign struct {
	tree   *faulttree.Tree
	trials int
	rng    *rand.Rand
	logger *slog.Logger
	trace  *logging.TraceLogger
}

// NewCampaign creates a campaign of the given trial count. A trials value
// of zero or less falls back to DefaultTrials. A nil logger falls back to
// slog.Default; trace may be nil.
func NewCampaign(tree *faulttree.Tree, trials int, rng *rand.Rand, logger *slog.Logger, trace *logging.TraceLogger) *Campaign {
	if trials <= 0 {
		trials = DefaultTrials
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Campaign{tree: tree, trials: trials, rng: rng, logger: logger, trace: trace}
}

// Trials returns the number of trials the campaign will run.
func (c *Campaign) Trials() int { return c.trials }

// Run executes the trials in order and returns one failure time per trial.
// Basic events are reset to alive after every trial, so the tree ends the
// campaign in its initial state. The context is only checked between trials;
// a trial always runs to completion.
func (c *Campaign) Run(ctx context.Context) ([]float64, error) {
	times := make([]float64, 0, c.trials)
	trial := NewTrial(c.tree, c.rng, c.trace)

	for i := 0; i < c.trials; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("campaign cancelled after %d trials: %w", i, err)
		}

		t, err := trial.Run()
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", i, err)
		}
		times = append(times, t)
		c.tree.ResetBasicEvents()

		if (i+1)%progressEvery == 0 {
			c.logger.Debug("campaign progress", "completed", i+1, "total", c.trials)
		}
	}

	return times, nil
}
