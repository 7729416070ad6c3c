package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nvandessel/ftsim/internal/config"
	"github.com/nvandessel/ftsim/internal/results"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [campaign-id]",
		Short: "Show past campaigns",
		Long: `Show campaigns recorded in the history database (~/.ftsim/history.db).

Without arguments, lists recent campaigns newest first. With a campaign
id, shows that campaign including its raw failure times.

Examples:
  ftsim history
  ftsim history --limit 5
  ftsim history 3 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			limit, _ := cmd.Flags().GetInt("limit")

			dir, err := config.Dir()
			if err != nil {
				return fmt.Errorf("failed to locate history: %w", err)
			}
			store, err := results.OpenHistory(dir)
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer store.Close()

			if len(args) == 1 {
				var id int64
				if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
					return fmt.Errorf("invalid campaign id %q", args[0])
				}
				rec, err := store.Get(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("failed to get campaign: %w", err)
				}
				if jsonOut {
					return json.NewEncoder(os.Stdout).Encode(rec)
				}
				printRecord(rec)
				return nil
			}

			records, err := store.List(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to list campaigns: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
					"campaigns": records,
					"count":     len(records),
				})
			}

			if len(records) == 0 {
				fmt.Println("No campaigns recorded yet.")
				return nil
			}

			fmt.Printf("Recorded campaigns (%d):\n\n", len(records))
			for _, rec := range records {
				fmt.Printf("%d. %s  (%s)\n", rec.ID, rec.Model,
					rec.CreatedAt.Local().Format(time.RFC3339))
				fmt.Printf("   Trials: %d  Seed: %d\n", rec.Trials, rec.Seed)
				fmt.Printf("   Mean: %.4g  Median: %.4g  StdDev: %.4g\n\n",
					rec.Summary.Mean, rec.Summary.Median, rec.Summary.StdDev)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "Maximum number of campaigns to list")

	return cmd
}

func printRecord(rec *results.Record) {
	fmt.Printf("Campaign %d: %s\n", rec.ID, rec.Model)
	fmt.Printf("  Recorded: %s\n", rec.CreatedAt.Local().Format(time.RFC3339))
	fmt.Printf("  Trials:   %d (seed %d)\n\n", rec.Trials, rec.Seed)
	printSummary(rec.Summary)
	fmt.Printf("\nSamples: %d failure times\n", len(rec.Samples))
}
