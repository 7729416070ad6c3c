package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/nvandessel/ftsim/internal/config"
	"github.com/nvandessel/ftsim/internal/logging"
	"github.com/nvandessel/ftsim/internal/model"
	"github.com/nvandessel/ftsim/internal/results"
	"github.com/nvandessel/ftsim/internal/sim"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <model-file>",
		Short: "Run a Monte-Carlo campaign over a fault-tree model",
		Long: `Run a Monte-Carlo time-to-failure campaign over a fault-tree model.

Each trial simulates the system forward through its failure and repair
events until the tree root fails, yielding one failure time. The full
stream of failure times is written to the output file (space-separated,
one campaign per file) and summary statistics are printed.

Trial count precedence: --trials flag, then the model file's trials
setting, then the configured default.

Example:
  ftsim run plant.yaml --trials 10000 --seed 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			trials, _ := cmd.Flags().GetInt("trials")
			seed, _ := cmd.Flags().GetUint64("seed")
			output, _ := cmd.Flags().GetString("output")
			noHistory, _ := cmd.Flags().GetBool("no-history")

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			logger := logging.NewLogger(cfg.Logging.Level, os.Stderr)

			m, err := model.Load(args[0])
			if err != nil {
				return fmt.Errorf("failed to load model: %w", err)
			}

			tree, err := m.Build(logger)
			if err != nil {
				return fmt.Errorf("failed to build fault tree: %w", err)
			}

			if trials <= 0 {
				trials = m.Trials
			}
			if trials <= 0 {
				trials = cfg.Simulation.Trials
			}
			if output == "" {
				output = cfg.Simulation.Output
			}
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}
			rng := rand.New(rand.NewPCG(seed, seed))

			var trace *logging.TraceLogger
			if dir, err := config.Dir(); err == nil {
				trace = logging.NewTraceLogger(dir, cfg.Logging.Level)
				defer trace.Close()
			}

			logger.Info("starting campaign",
				"model", m.Name, "trials", trials, "seed", seed)

			campaign := sim.NewCampaign(tree, trials, rng, logger, trace)
			start := time.Now()
			times, err := campaign.Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("campaign failed: %w", err)
			}
			elapsed := time.Since(start)

			if err := results.WriteTimes(output, times); err != nil {
				return fmt.Errorf("failed to write results: %w", err)
			}

			summary := results.Summarize(times)

			var historyID int64
			if cfg.History.Enabled && !noHistory {
				historyID, err = saveHistory(cmd.Context(), m.Name, campaign.Trials(), seed, summary, times)
				if err != nil {
					// A failed history write should not discard the campaign.
					logger.Warn("failed to save campaign history", "error", err)
				}
			}

			logger.Info("campaign complete",
				"trials", campaign.Trials(), "elapsed", elapsed, "output", output)

			if jsonOut {
				result := map[string]interface{}{
					"model":   m.Name,
					"trials":  campaign.Trials(),
					"seed":    seed,
					"output":  output,
					"summary": summary,
				}
				if historyID > 0 {
					result["history_id"] = historyID
				}
				return json.NewEncoder(os.Stdout).Encode(result)
			}

			fmt.Printf("Campaign: %s\n", m.Name)
			fmt.Printf("  Trials: %d (seed %d)\n", campaign.Trials(), seed)
			fmt.Printf("  Output: %s\n\n", output)
			printSummary(summary)
			return nil
		},
	}

	cmd.Flags().Int("trials", 0, "Number of trials (default: model setting, then config)")
	cmd.Flags().Uint64("seed", 0, "RNG seed for reproducible campaigns (default: time-derived)")
	cmd.Flags().String("output", "", "Failure-time output file (default: config setting)")
	cmd.Flags().Bool("no-history", false, "Skip recording this campaign in history")

	return cmd
}

// saveHistory records a completed campaign in the history database.
func saveHistory(ctx context.Context, name string, trials int, seed uint64, summary results.Summary, times []float64) (int64, error) {
	dir, err := config.Dir()
	if err != nil {
		return 0, err
	}
	store, err := results.OpenHistory(dir)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	return store.Save(ctx, results.Record{
		Model:   name,
		Trials:  trials,
		Seed:    seed,
		Summary: summary,
		Samples: times,
	})
}

// printSummary renders summary statistics for human consumption.
func printSummary(s results.Summary) {
	fmt.Println("Time to failure:")
	fmt.Printf("  Mean:   %.4g\n", s.Mean)
	fmt.Printf("  Median: %.4g\n", s.Median)
	fmt.Printf("  StdDev: %.4g\n", s.StdDev)
	fmt.Printf("  Min:    %.4g\n", s.Min)
	fmt.Printf("  Max:    %.4g\n", s.Max)
	fmt.Printf("  P10:    %.4g\n", s.P10)
	fmt.Printf("  P90:    %.4g\n", s.P90)
}
