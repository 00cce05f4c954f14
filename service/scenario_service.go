package service

import (
	"context"

	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/ludo-technologies/buildcheck/internal/dsm"
	"github.com/ludo-technologies/buildcheck/internal/scenario"
)

// ScenarioServiceImpl analyzes the deterministic synthetic graphs used by
// the demo subcommand and by tests that need a reproducible fixture.
type ScenarioServiceImpl struct{}

// NewScenarioService creates a new ScenarioServiceImpl.
func NewScenarioService() *ScenarioServiceImpl {
	return &ScenarioServiceImpl{}
}

// Analyze looks up req.Pattern and runs the full DSM analysis over it.
func (s *ScenarioServiceImpl) Analyze(ctx context.Context, req domain.DemoRequest) (*domain.DemoResponse, error) {
	scan, err := scenario.Build(req.Pattern)
	if err != nil {
		return nil, err
	}

	results := dsm.Analyze(scan, dsm.Options{Advanced: true})

	return &domain.DemoResponse{
		Pattern: req.Pattern,
		Results: results,
	}, nil
}

// ListPatterns returns every registered scenario name.
func (s *ScenarioServiceImpl) ListPatterns() []string {
	return scenario.ListPatterns()
}
