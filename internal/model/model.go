// Package model loads fault-tree definitions from YAML files and builds the
// runtime tree. Elements are declared by name; identifiers are assigned
// densely at build time, basic events first, then gates, each in file order.
package model

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nvandessel/ftsim/internal/dist"
)

// Distribution is a law plus parameters as written in a model file.
type Distribution struct {
	Dist  string  `yaml:"dist"`
	Rate  float64 `yaml:"rate,omitempty"`
	Shape float64 `yaml:"shape,omitempty"`
	Scale float64 `yaml:"scale,omitempty"`
}

// Spec converts the YAML form to a dist.Spec.
func (d Distribution) Spec() (dist.Spec, error) {
	law, err := dist.ParseLaw(d.Dist)
	if err != nil {
		return dist.Spec{}, err
	}
	return dist.Spec{Law: law, Rate: d.Rate, Shape: d.Shape, Scale: d.Scale}, nil
}

// EventDef declares one basic event: a named component with failure and
// repair timing laws.
type EventDef struct {
	Name    string       `yaml:"name"`
	Failure Distribution `yaml:"failure"`
	Repair  Distribution `yaml:"repair"`
}

// GateDef declares one logic gate over named inputs. Type is "and", "or",
// or "vote" (fixed majority). Inputs may name events or other gates,
// regardless of declaration order.
type GateDef struct {
	Name   string   `yaml:"name"`
	Type   string   `yaml:"type"`
	Inputs []string `yaml:"inputs"`
}

// Model is a complete fault-tree definition.
type Model struct {
	Name   string     `yaml:"name"`
	Trials int        `yaml:"trials,omitempty"`
	Events []EventDef `yaml:"events"`
	Gates  []GateDef  `yaml:"gates"`
	Root   string     `yaml:"root"`
}

// Load reads and parses a model file. The result is not yet validated.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// Parse parses model YAML.
func Parse(data []byte) (*Model, error) {
	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing model: %w", err)
	}
	return &m, nil
}

// Validate checks the model's structure: names must be unique and non-empty,
// gate inputs must resolve, gate types must be known, the root must name a
// gate, gates must not form cycles, failure laws must be real distributions,
// the none law may only appear as a repair law, and trial count must be
// non-negative.
func (m *Model) Validate() error {
	if len(m.Events) == 0 {
		return fmt.Errorf("model has no events")
	}
	if m.Trials < 0 {
		return fmt.Errorf("trials must be non-negative, got %d", m.Trials)
	}

	names := make(map[string]bool, len(m.Events)+len(m.Gates))
	gates := make(map[string]GateDef, len(m.Gates))

	for _, ev := range m.Events {
		if ev.Name == "" {
			return fmt.Errorf("event with empty name")
		}
		if names[ev.Name] {
			return fmt.Errorf("duplicate element name %q", ev.Name)
		}
		names[ev.Name] = true

		fspec, err := ev.Failure.Spec()
		if err != nil {
			return fmt.Errorf("event %q failure: %w", ev.Name, err)
		}
		if fspec.Law == dist.LawNone {
			return fmt.Errorf("event %q: none is not a valid failure law", ev.Name)
		}
		if _, err := ev.Repair.Spec(); err != nil {
			return fmt.Errorf("event %q repair: %w", ev.Name, err)
		}
	}

	for _, g := range m.Gates {
		if g.Name == "" {
			return fmt.Errorf("gate with empty name")
		}
		if names[g.Name] {
			return fmt.Errorf("duplicate element name %q", g.Name)
		}
		names[g.Name] = true
		gates[g.Name] = g

		switch strings.ToLower(g.Type) {
		case "and", "or", "vote":
		default:
			return fmt.Errorf("gate %q has unknown type %q (want and, or, or vote)", g.Name, g.Type)
		}
		if len(g.Inputs) == 0 {
			// An inputless gate can never fail, so a trial through it
			// would never terminate.
			return fmt.Errorf("gate %q has no inputs", g.Name)
		}
	}

	for _, g := range m.Gates {
		for _, in := range g.Inputs {
			if !names[in] {
				return fmt.Errorf("gate %q references unknown element %q", g.Name, in)
			}
		}
	}

	if m.Root == "" {
		return fmt.Errorf("model has no root")
	}
	if _, ok := gates[m.Root]; !ok {
		return fmt.Errorf("root %q must name a gate", m.Root)
	}

	return checkCycles(gates)
}

// checkCycles rejects gate definitions that reach themselves through their
// inputs; evaluation recurses through children, so a cycle would never
// terminate.
func checkCycles(gates map[string]GateDef) error {
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int, len(gates))

	var visit func(name string) error
	visit = func(name string) error {
		g, ok := gates[name]
		if !ok {
			return nil // basic event, always a leaf
		}
		switch state[name] {
		case visiting:
			return fmt.Errorf("gate %q is part of a cycle", name)
		case done:
			return nil
		}
		state[name] = visiting
		for _, in := range g.Inputs {
			if err := visit(in); err != nil {
				return err
			}
		}
		state[name] = done
		return nil
	}

	for name := range gates {
		if err := visit(name); err != nil {
			return err
		}
	}
	return nil
}
