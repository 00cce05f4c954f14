package diff

import (
	"testing"

	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDetectsAddedHeaderAndCycle(t *testing.T) {
	baseline := domain.DSMAnalysisResults{
		SortedHeaders: []string{"a.hpp", "b.hpp"},
		Metrics: map[string]domain.DSMMetrics{
			"a.hpp": {FanOut: 1, FanIn: 0, Coupling: 1, Stability: 1.0},
			"b.hpp": {FanOut: 0, FanIn: 1, Coupling: 1, Stability: 0.0},
		},
	}
	current := domain.DSMAnalysisResults{
		SortedHeaders:   []string{"a.hpp", "b.hpp", "c.hpp"},
		HeadersInCycles: []string{"a.hpp", "b.hpp"},
		Cycles:          []domain.Cycle{{Members: []string{"a.hpp", "b.hpp"}}},
		Metrics: map[string]domain.DSMMetrics{
			"a.hpp": {FanOut: 2, FanIn: 1, Coupling: 3, Stability: 0.67},
			"b.hpp": {FanOut: 1, FanIn: 1, Coupling: 2, Stability: 0.5},
			"c.hpp": {FanOut: 0, FanIn: 0, Coupling: 0, Stability: 0.5},
		},
	}

	delta := Compute(baseline, current, 0, 0)

	assert.Equal(t, []string{"c.hpp"}, delta.HeadersAdded)
	assert.Empty(t, delta.HeadersRemoved)
	require.Len(t, delta.CyclesAdded, 1)
	assert.Equal(t, domain.SeverityCritical, delta.ArchitecturalInsights.Severity)
	assert.Equal(t, 2, delta.CouplingIncreased["a.hpp"])
	assert.Equal(t, 1, delta.CouplingIncreased["b.hpp"])
}

func TestComputeNoChangeIsNeutral(t *testing.T) {
	results := domain.DSMAnalysisResults{
		SortedHeaders: []string{"a.hpp"},
		Metrics:       map[string]domain.DSMMetrics{"a.hpp": {Coupling: 1, Stability: 0.5}},
	}
	delta := Compute(results, results, 0, 0)
	assert.Equal(t, domain.SeverityNeutral, delta.ArchitecturalInsights.Severity)
	assert.Empty(t, delta.HeadersAdded)
	assert.Empty(t, delta.HeadersRemoved)
}

func TestComputeCycleRemovalIsPositive(t *testing.T) {
	baseline := domain.DSMAnalysisResults{
		SortedHeaders: []string{"a.hpp", "b.hpp"},
		Cycles:        []domain.Cycle{{Members: []string{"a.hpp", "b.hpp"}}},
		Metrics: map[string]domain.DSMMetrics{
			"a.hpp": {Coupling: 2, Stability: 0.5},
			"b.hpp": {Coupling: 2, Stability: 0.5},
		},
	}
	current := domain.DSMAnalysisResults{
		SortedHeaders: []string{"a.hpp", "b.hpp"},
		Metrics: map[string]domain.DSMMetrics{
			"a.hpp": {Coupling: 2, Stability: 0.5},
			"b.hpp": {Coupling: 2, Stability: 0.5},
		},
	}
	delta := Compute(baseline, current, 0, 0)
	assert.Equal(t, domain.SeverityPositive, delta.ArchitecturalInsights.Severity)
	require.Len(t, delta.CyclesRemoved, 1)
}

func TestComputeRebuildPercentage(t *testing.T) {
	empty := domain.DSMAnalysisResults{}
	delta := Compute(empty, empty, 5, 20)
	assert.Equal(t, 25.0, delta.ArchitecturalInsights.OngoingRebuildDeltaPercentage)
}
