package main

import (
	"fmt"
	"os"

	"github.com/nvandessel/ftsim/internal/config"
	"github.com/nvandessel/ftsim/internal/logging"
	"github.com/nvandessel/ftsim/internal/mcp"
	"github.com/spf13/cobra"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Run ftsim as an MCP server over stdio",
		Long: `Run ftsim as an MCP (Model Context Protocol) server over stdio.

Exposes fault-tree simulation as MCP tools:
  - ftsim_run:      run a campaign over a model file
  - ftsim_validate: validate a model file
  - ftsim_history:  inspect past campaigns

This command is meant to be launched by an MCP client; it blocks until
the client disconnects.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			var historyDir string
			if cfg.History.Enabled {
				if dir, err := config.Dir(); err == nil {
					historyDir = dir
				}
			}

			server, err := mcp.NewServer(&mcp.Config{
				Name:          "ftsim",
				Version:       version,
				HistoryDir:    historyDir,
				DefaultTrials: cfg.Simulation.Trials,
				Logger:        logging.NewLogger(cfg.Logging.Level, os.Stderr),
			})
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}

			return server.Run(cmd.Context())
		},
	}
}
