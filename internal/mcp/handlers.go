package mcp

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nvandessel/ftsim/internal/model"
	"github.com/nvandessel/ftsim/internal/results"
	"github.com/nvandessel/ftsim/internal/sim"
)

const defaultHistoryLimit = 20

// registerTools registers all ftsim MCP tools with the server.
func (s *Server) registerTools() error {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "ftsim_run",
		Description: "Run a Monte-Carlo time-to-failure campaign over a fault-tree model file and return summary statistics",
	}, s.handleRun)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "ftsim_validate",
		Description: "Validate a fault-tree model file without running a campaign",
	}, s.handleValidate)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "ftsim_history",
		Description: "List past campaigns from the history database, or fetch one by id including its raw samples",
	}, s.handleHistory)

	return nil
}

// handleRun loads a model, runs a campaign, and records it in history.
func (s *Server) handleRun(ctx context.Context, req *sdk.CallToolRequest, args RunInput) (_ *sdk.CallToolResult, _ RunOutput, retErr error) {
	if args.Model == "" {
		return nil, RunOutput{}, fmt.Errorf("model path is required")
	}

	m, err := model.Load(args.Model)
	if err != nil {
		return nil, RunOutput{}, fmt.Errorf("failed to load model: %w", err)
	}

	tree, err := m.Build(s.logger)
	if err != nil {
		return nil, RunOutput{}, fmt.Errorf("failed to build fault tree: %w", err)
	}

	// Same precedence as the run command: input, then the model file's
	// trials setting, then the configured default.
	trials := args.Trials
	if trials <= 0 {
		trials = m.Trials
	}
	if trials <= 0 {
		trials = s.defaultTrials
	}

	seed := args.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	campaign := sim.NewCampaign(tree, trials, rng, s.logger, nil)
	times, err := campaign.Run(ctx)
	if err != nil {
		return nil, RunOutput{}, fmt.Errorf("campaign failed: %w", err)
	}

	summary := results.Summarize(times)

	out := RunOutput{
		Model:   m.Name,
		Trials:  campaign.Trials(),
		Seed:    seed,
		Summary: summary,
	}

	if s.history != nil {
		id, err := s.history.Save(ctx, results.Record{
			Model:   m.Name,
			Trials:  campaign.Trials(),
			Seed:    seed,
			Summary: summary,
			Samples: times,
		})
		if err != nil {
			return nil, RunOutput{}, fmt.Errorf("failed to save campaign: %w", err)
		}
		out.HistoryID = id
	}

	return nil, out, nil
}

// handleValidate checks a model file and reports what it contains.
// Validation failures are reported in the output rather than as tool
// errors so clients can distinguish a bad model from a broken server.
func (s *Server) handleValidate(ctx context.Context, req *sdk.CallToolRequest, args ValidateInput) (_ *sdk.CallToolResult, _ ValidateOutput, retErr error) {
	if args.Model == "" {
		return nil, ValidateOutput{}, fmt.Errorf("model path is required")
	}

	m, err := model.Load(args.Model)
	if err != nil {
		return nil, ValidateOutput{Valid: false, Error: err.Error()}, nil
	}

	// Build rather than Validate so distribution parameter errors are
	// caught here instead of surfacing on the first run.
	if _, err := m.Build(s.logger); err != nil {
		return nil, ValidateOutput{Valid: false, Name: m.Name, Error: err.Error()}, nil
	}

	return nil, ValidateOutput{
		Valid:  true,
		Name:   m.Name,
		Events: len(m.Events),
		Gates:  len(m.Gates),
	}, nil
}

// handleHistory lists recorded campaigns or fetches one by id.
func (s *Server) handleHistory(ctx context.Context, req *sdk.CallToolRequest, args HistoryInput) (_ *sdk.CallToolResult, _ HistoryOutput, retErr error) {
	if s.history == nil {
		return nil, HistoryOutput{}, fmt.Errorf("campaign history is disabled")
	}

	if args.ID > 0 {
		rec, err := s.history.Get(ctx, args.ID)
		if err != nil {
			return nil, HistoryOutput{}, fmt.Errorf("failed to get campaign: %w", err)
		}
		return nil, HistoryOutput{Campaign: rec, Count: 1}, nil
	}

	limit := args.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	records, err := s.history.List(ctx, limit)
	if err != nil {
		return nil, HistoryOutput{}, fmt.Errorf("failed to list campaigns: %w", err)
	}

	items := make([]CampaignListItem, len(records))
	for i, rec := range records {
		items[i] = CampaignListItem{
			ID:        rec.ID,
			Model:     rec.Model,
			Trials:    rec.Trials,
			Seed:      rec.Seed,
			Mean:      rec.Summary.Mean,
			Median:    rec.Summary.Median,
			CreatedAt: rec.CreatedAt,
		}
	}

	return nil, HistoryOutput{Campaigns: items, Count: len(items)}, nil
}
