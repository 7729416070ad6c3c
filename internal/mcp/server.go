// Package mcp provides an MCP (Model Context Protocol) server for ftsim.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nvandessel/ftsim/internal/results"
)

// Server wraps the MCP SDK server and exposes fault-tree simulation tools.
type Server struct {
	server        *sdk.Server
	history       *results.HistoryStore
	logger        *slog.Logger
	defaultTrials int
}

// Config holds server configuration.
type Config struct {
	Name          string       // Server name (e.g., "ftsim")
	Version       string       // Server version
	HistoryDir    string       // Directory holding history.db; empty disables history
	DefaultTrials int          // Trial count when neither input nor model sets one
	Logger        *slog.Logger // Operational logger; nil means slog.Default
}

// NewServer creates a new MCP server with ftsim tools.
func NewServer(cfg *Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var history *results.HistoryStore
	if cfg.HistoryDir != "" {
		var err error
		history, err = results.OpenHistory(cfg.HistoryDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open history store: %w", err)
		}
	}

	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &sdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, req *sdk.InitializedRequest) {
			// Client initialized, ready to serve
		},
	})

	s := &Server{
		server:        mcpServer,
		history:       history,
		logger:        logger,
		defaultTrials: cfg.DefaultTrials,
	}

	if err := s.registerTools(); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Run starts the MCP server over stdio transport.
// This blocks until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	err := s.server.Run(ctx, &sdk.StdioTransport{})

	s.Close()

	return err
}

// Close closes the server and releases resources.
func (s *Server) Close() error {
	if s.history != nil {
		return s.history.Close()
	}
	return nil
}
