// Package mcp provides an MCP (Model Context Protocol) server for ftsim.
package mcp

import (
	"time"

	"github.com/nvandessel/ftsim/internal/results"
)

// RunInput defines the input for the ftsim_run tool.
type RunInput struct {
	Model  string `json:"model" jsonschema:"Path to the fault-tree model YAML file"`
	Trials int    `json:"trials,omitempty" jsonschema:"Number of trials to run (default: model setting or 10000)"`
	Seed   uint64 `json:"seed,omitempty" jsonschema:"RNG seed for reproducible campaigns (default: time-derived)"`
}

// RunOutput defines the output for the ftsim_run tool.
type RunOutput struct {
	Model     string          `json:"model" jsonschema:"Model name from the file"`
	Trials    int             `json:"trials" jsonschema:"Number of trials executed"`
	Seed      uint64          `json:"seed" jsonschema:"Seed the campaign ran with"`
	Summary   results.Summary `json:"summary" jsonschema:"Time-to-failure summary statistics"`
	HistoryID int64           `json:"history_id,omitempty" jsonschema:"History record id (0 if history is disabled)"`
}

// ValidateInput defines the input for the ftsim_validate tool.
type ValidateInput struct {
	Model string `json:"model" jsonschema:"Path to the fault-tree model YAML file"`
}

// ValidateOutput defines the output for the ftsim_validate tool.
type ValidateOutput struct {
	Valid  bool   `json:"valid" jsonschema:"Whether the model is valid"`
	Name   string `json:"name,omitempty" jsonschema:"Model name from the file"`
	Events int    `json:"events,omitempty" jsonschema:"Number of basic events"`
	Gates  int    `json:"gates,omitempty" jsonschema:"Number of gates"`
	Error  string `json:"error,omitempty" jsonschema:"Validation error message if invalid"`
}

// HistoryInput defines the input for the ftsim_history tool.
type HistoryInput struct {
	Limit int   `json:"limit,omitempty" jsonschema:"Maximum number of campaigns to return (default: 20)"`
	ID    int64 `json:"id,omitempty" jsonschema:"Return one campaign by id including its raw samples"`
}

// HistoryOutput defines the output for the ftsim_history tool.
type HistoryOutput struct {
	Campaigns []CampaignListItem `json:"campaigns,omitempty" jsonschema:"List of recorded campaigns, newest first"`
	Campaign  *results.Record    `json:"campaign,omitempty" jsonschema:"Single campaign when an id was given"`
	Count     int                `json:"count" jsonschema:"Number of campaigns returned"`
}

// CampaignListItem provides a list view of a recorded campaign.
type CampaignListItem struct {
	ID        int64     `json:"id"`
	Model     string    `json:"model"`
	Trials    int       `json:"trials"`
	Seed      uint64    `json:"seed"`
	Mean      float64   `json:"mean"`
	Median    float64   `json:"median"`
	CreatedAt time.Time `json:"created_at"`
}
