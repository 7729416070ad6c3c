package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const testModel = `
name: mcp-test
trials: 10
events:
  - name: sensor
    failure: {dist: exponential, rate: 1}
    repair: {dist: none}
gates:
  - name: top
    type: or
    inputs: [sensor]
root: top
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(&Config{
		Name:       "ftsim",
		Version:    "test",
		HistoryDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func writeModel(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing model: %v", err)
	}
	return path
}

func TestHandleRun(t *testing.T) {
	s := newTestServer(t)
	modelPath := writeModel(t, testModel)

	_, out, err := s.handleRun(context.Background(), nil, RunInput{
		Model: modelPath,
		Seed:  42,
	})
	if err != nil {
		t.Fatalf("handleRun failed: %v", err)
	}

	if out.Model != "mcp-test" {
		t.Errorf("Model = %q, want mcp-test", out.Model)
	}
	if out.Trials != 10 {
		t.Errorf("Trials = %d, want 10 (from model)", out.Trials)
	}
	if out.Seed != 42 {
		t.Errorf("Seed = %d, want 42", out.Seed)
	}
	if out.Summary.Trials != 10 {
		t.Errorf("Summary.Trials = %d, want 10", out.Summary.Trials)
	}
	if out.HistoryID == 0 {
		t.Error("HistoryID = 0, want a recorded campaign")
	}
}

func TestHandleRunTrialsOverride(t *testing.T) {
	s := newTestServer(t)
	modelPath := writeModel(t, testModel)

	_, out, err := s.handleRun(context.Background(), nil, RunInput{
		Model:  modelPath,
		Trials: 3,
		Seed:   1,
	})
	if err != nil {
		t.Fatalf("handleRun failed: %v", err)
	}
	if out.Trials != 3 {
		t.Errorf("Trials = %d, want 3 (input overrides model)", out.Trials)
	}
}

func TestHandleRunConfigDefaultTrials(t *testing.T) {
	// Neither the input nor the model sets a trial count, so the server's
	// configured default applies.
	s, err := NewServer(&Config{
		Name:          "ftsim",
		Version:       "test",
		DefaultTrials: 7,
	})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	defer s.Close()

	modelPath := writeModel(t, `
name: no-trials
events:
  - name: sensor
    failure: {dist: exponential, rate: 1}
    repair: {dist: none}
gates:
  - name: top
    type: or
    inputs: [sensor]
root: top
`)

	_, out, err := s.handleRun(context.Background(), nil, RunInput{Model: modelPath, Seed: 3})
	if err != nil {
		t.Fatalf("handleRun failed: %v", err)
	}
	if out.Trials != 7 {
		t.Errorf("Trials = %d, want 7 (configured default)", out.Trials)
	}
}

func TestHandleRunErrors(t *testing.T) {
	s := newTestServer(t)

	if _, _, err := s.handleRun(context.Background(), nil, RunInput{}); err == nil {
		t.Error("handleRun without a model path succeeded")
	}
	if _, _, err := s.handleRun(context.Background(), nil, RunInput{Model: "/nonexistent.yaml"}); err == nil {
		t.Error("handleRun with a missing model file succeeded")
	}
}

func TestHandleValidate(t *testing.T) {
	s := newTestServer(t)

	t.Run("valid model", func(t *testing.T) {
		modelPath := writeModel(t, testModel)
		_, out, err := s.handleValidate(context.Background(), nil, ValidateInput{Model: modelPath})
		if err != nil {
			t.Fatalf("handleValidate failed: %v", err)
		}
		if !out.Valid {
			t.Errorf("Valid = false, error = %q", out.Error)
		}
		if out.Events != 1 || out.Gates != 1 {
			t.Errorf("Events, Gates = %d, %d, want 1, 1", out.Events, out.Gates)
		}
	})

	t.Run("bad distribution parameters", func(t *testing.T) {
		// Structurally sound but unbuildable: validation must catch what a
		// run would reject, not just the model's shape.
		modelPath := writeModel(t, `
name: bad-params
events:
  - name: e
    failure: {dist: weibull, shape: 0, scale: 100}
    repair: {dist: none}
gates:
  - name: g
    type: or
    inputs: [e]
root: g`)
		_, out, err := s.handleValidate(context.Background(), nil, ValidateInput{Model: modelPath})
		if err != nil {
			t.Fatalf("handleValidate returned a tool error: %v", err)
		}
		if out.Valid {
			t.Error("Valid = true for a zero Weibull shape")
		}
		if out.Error == "" {
			t.Error("Error is empty for a zero Weibull shape")
		}
	})

	t.Run("invalid model", func(t *testing.T) {
		modelPath := writeModel(t, `
events:
  - name: e
    failure: {dist: none}
    repair: {dist: none}
gates:
  - name: g
    type: or
    inputs: [e]
root: g`)
		_, out, err := s.handleValidate(context.Background(), nil, ValidateInput{Model: modelPath})
		if err != nil {
			t.Fatalf("handleValidate returned a tool error: %v", err)
		}
		if out.Valid {
			t.Error("Valid = true for a model with a none failure law")
		}
		if out.Error == "" {
			t.Error("Error is empty for an invalid model")
		}
	})
}

func TestHandleHistory(t *testing.T) {
	s := newTestServer(t)
	modelPath := writeModel(t, testModel)
	ctx := context.Background()

	_, ran, err := s.handleRun(ctx, nil, RunInput{Model: modelPath, Trials: 2, Seed: 9})
	if err != nil {
		t.Fatalf("handleRun failed: %v", err)
	}

	_, out, err := s.handleHistory(ctx, nil, HistoryInput{})
	if err != nil {
		t.Fatalf("handleHistory failed: %v", err)
	}
	if out.Count != 1 {
		t.Fatalf("Count = %d, want 1", out.Count)
	}
	if out.Campaigns[0].Model != "mcp-test" {
		t.Errorf("Model = %q, want mcp-test", out.Campaigns[0].Model)
	}

	_, single, err := s.handleHistory(ctx, nil, HistoryInput{ID: ran.HistoryID})
	if err != nil {
		t.Fatalf("handleHistory by id failed: %v", err)
	}
	if single.Campaign == nil {
		t.Fatal("Campaign is nil for an id lookup")
	}
	if len(single.Campaign.Samples) != 2 {
		t.Errorf("got %d samples, want 2", len(single.Campaign.Samples))
	}
}

func TestHandleHistoryDisabled(t *testing.T) {
	s, err := NewServer(&Config{Name: "ftsim", Version: "test"})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	defer s.Close()

	if _, _, err := s.handleHistory(context.Background(), nil, HistoryInput{}); err == nil {
		t.Error("handleHistory with history disabled succeeded")
	}
}
