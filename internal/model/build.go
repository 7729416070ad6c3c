package model

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/nvandessel/ftsim/internal/dist"
	"github.com/nvandessel/ftsim/internal/faulttree"
)

// Build validates the model and assembles the runtime tree. Identifiers are
// minted by one shared generator: basic events first, then gates, each in
// declaration order, so ids are dense and insertion order matches id order.
// The logger receives distribution parameter warnings; nil means
// slog.Default.
func (m *Model) Build(logger *slog.Logger) (*faulttree.Tree, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	gen := faulttree.NewIDGenerator()
	ids := make(map[string]faulttree.ElementID, len(m.Events)+len(m.Gates))
	for _, ev := range m.Events {
		ids[ev.Name] = gen.Next()
	}
	for _, g := range m.Gates {
		ids[g.Name] = gen.Next()
	}

	tree := faulttree.New()

	for _, ev := range m.Events {
		fspec, err := ev.Failure.Spec()
		if err != nil {
			return nil, fmt.Errorf("event %q failure: %w", ev.Name, err)
		}
		failure, err := dist.New(fspec, logger)
		if err != nil {
			return nil, fmt.Errorf("event %q failure: %w", ev.Name, err)
		}

		rspec, err := ev.Repair.Spec()
		if err != nil {
			return nil, fmt.Errorf("event %q repair: %w", ev.Name, err)
		}
		repair, err := dist.New(rspec, logger)
		if err != nil {
			return nil, fmt.Errorf("event %q repair: %w", ev.Name, err)
		}

		be, err := faulttree.NewBasicEvent(ids[ev.Name], failure, repair)
		if err != nil {
			return nil, fmt.Errorf("event %q: %w", ev.Name, err)
		}
		if err := tree.AddElement(be); err != nil {
			return nil, fmt.Errorf("event %q: %w", ev.Name, err)
		}
	}

	for _, g := range m.Gates {
		children := make([]faulttree.ElementID, len(g.Inputs))
		for i, in := range g.Inputs {
			children[i] = ids[in]
		}

		var gate faulttree.Element
		switch strings.ToLower(g.Type) {
		case "and":
			gate = faulttree.NewAndGate(ids[g.Name], children)
		case "or":
			gate = faulttree.NewOrGate(ids[g.Name], children)
		case "vote":
			gate = faulttree.NewVoteGate(ids[g.Name], children)
		default:
			return nil, fmt.Errorf("gate %q has unknown type %q", g.Name, g.Type)
		}
		if err := tree.AddElement(gate); err != nil {
			return nil, fmt.Errorf("gate %q: %w", g.Name, err)
		}
	}

	if err := tree.SetRoot(ids[m.Root]); err != nil {
		return nil, fmt.Errorf("root %q: %w", m.Root, err)
	}
	return tree, nil
}
