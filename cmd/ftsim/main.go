package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "ftsim",
		Short: "Fault-tree Monte-Carlo time-to-failure simulator",
		Long: `ftsim estimates a system's time-to-failure distribution by Monte-Carlo
simulation over a fault-tree model.

Basic events fail and repair according to configured probability
distributions; AND, OR, and majority-vote gates combine them into a
system-level failure condition. Each trial runs the event schedule
forward until the tree root fails, and the campaign collects one
failure time per trial.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for machine consumption)")

	// Add subcommands
	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newValidateCmd(),
		newHistoryCmd(),
		newMCPServerCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(os.Stdout).Encode(map[string]string{"version": version})
			} else {
				fmt.Printf("ftsim version %s\n", version)
			}
		},
	}
}
