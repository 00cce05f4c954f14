package dsm

import (
	"testing"

	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildScan(includeGraph map[string][]string) *domain.ScanResult {
	seen := make(map[string]struct{})
	for h, deps := range includeGraph {
		seen[h] = struct{}{}
		for _, d := range deps {
			seen[d] = struct{}{}
		}
	}
	headers := make([]string, 0, len(seen))
	for h := range seen {
		headers = append(headers, h)
	}
	return &domain.ScanResult{IncludeGraph: includeGraph, AllHeaders: headers}
}

func TestComputeMetricsCouplingAndStability(t *testing.T) {
	scan := buildScan(map[string][]string{
		"a.hpp": {"b.hpp", "c.hpp"},
		"b.hpp": {"c.hpp"},
		"c.hpp": nil,
	})
	g := NewGraph(scan)
	metrics := ComputeMetrics(g)

	require.Contains(t, metrics, "a.hpp")
	assert.Equal(t, 2, metrics["a.hpp"].FanOut)
	assert.Equal(t, 0, metrics["a.hpp"].FanIn)
	assert.Equal(t, 2, metrics["a.hpp"].Coupling)
	assert.Equal(t, 1.0, metrics["a.hpp"].Stability)

	assert.Equal(t, 0, metrics["c.hpp"].FanOut)
	assert.Equal(t, 2, metrics["c.hpp"].FanIn)
	assert.Equal(t, 0.0, metrics["c.hpp"].Stability)

	for h, m := range metrics {
		assert.Equal(t, m.FanIn+m.FanOut, m.Coupling, "coupling mismatch for %s", h)
		assert.GreaterOrEqual(t, m.Stability, 0.0)
		assert.LessOrEqual(t, m.Stability, 1.0)
	}
}

func TestComputeMetricsIsolatedHeaderStabilityIsHalf(t *testing.T) {
	scan := buildScan(map[string][]string{"solo.hpp": nil})
	g := NewGraph(scan)
	metrics := ComputeMetrics(g)
	assert.Equal(t, 0, metrics["solo.hpp"].Coupling)
	assert.Equal(t, 0.5, metrics["solo.hpp"].Stability)
}

func TestFanOutSumEqualsFanInSumEqualsEdgeCount(t *testing.T) {
	scan := buildScan(map[string][]string{
		"a.hpp": {"b.hpp", "c.hpp"},
		"b.hpp": {"c.hpp"},
		"c.hpp": {"a.hpp"},
	})
	g := NewGraph(scan)
	metrics := ComputeMetrics(g)

	totalFanOut, totalFanIn := 0, 0
	for _, m := range metrics {
		totalFanOut += m.FanOut
		totalFanIn += m.FanIn
	}
	assert.Equal(t, g.EdgeCount(), totalFanOut)
	assert.Equal(t, g.EdgeCount(), totalFanIn)
}

func TestDetectCyclesFindsSimpleCycle(t *testing.T) {
	scan := buildScan(map[string][]string{
		"a.hpp": {"b.hpp"},
		"b.hpp": {"c.hpp"},
		"c.hpp": {"a.hpp"},
		"d.hpp": {"a.hpp"},
	})
	g := NewGraph(scan)
	cycles, inCycles, feedback := DetectCycles(g)

	require.Len(t, cycles, 1)
	assert.ElementsMatch(t, []string{"a.hpp", "b.hpp", "c.hpp"}, cycles[0].Members)
	assert.ElementsMatch(t, []string{"a.hpp", "b.hpp", "c.hpp"}, inCycles)
	require.Len(t, feedback, 1)
	assert.Contains(t, cycles[0].Members, feedback[0].From)
	assert.Contains(t, cycles[0].Members, feedback[0].To)
}

func TestDetectCyclesSelfLoop(t *testing.T) {
	scan := buildScan(map[string][]string{"a.hpp": {"a.hpp"}})
	g := NewGraph(scan)
	cycles, inCycles, feedback := DetectCycles(g)

	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"a.hpp"}, cycles[0].Members)
	assert.Equal(t, []string{"a.hpp"}, inCycles)
	require.Len(t, feedback, 1)
	assert.Equal(t, "a.hpp", feedback[0].From)
	assert.Equal(t, "a.hpp", feedback[0].To)
}

func TestDetectCyclesNoCyclesInDAG(t *testing.T) {
	scan := buildScan(map[string][]string{
		"a.hpp": {"b.hpp"},
		"b.hpp": {"c.hpp"},
		"c.hpp": nil,
	})
	g := NewGraph(scan)
	cycles, inCycles, feedback := DetectCycles(g)
	assert.Empty(t, cycles)
	assert.Empty(t, inCycles)
	assert.Empty(t, feedback)
}

func TestComputeLayersLeafAtZeroAndOrderingRespected(t *testing.T) {
	scan := buildScan(map[string][]string{
		"a.hpp": {"b.hpp"},
		"b.hpp": {"c.hpp"},
		"c.hpp": nil,
	})
	g := NewGraph(scan)
	layers, headerToLayer := ComputeLayers(g)

	assert.Equal(t, 0, headerToLayer["c.hpp"])
	assert.Equal(t, 1, headerToLayer["b.hpp"])
	assert.Equal(t, 2, headerToLayer["a.hpp"])
	require.Len(t, layers, 3)

	// every non-intra-SCC edge must point from a higher layer to a lower
	// or equal layer (includer depends on something no deeper in the DAG).
	for h, deps := range g.Adjacency {
		for _, d := range deps {
			assert.GreaterOrEqual(t, headerToLayer[h], headerToLayer[d])
		}
	}
}

func TestComputeLayersSCCSharesLayer(t *testing.T) {
	scan := buildScan(map[string][]string{
		"a.hpp": {"b.hpp"},
		"b.hpp": {"a.hpp"},
	})
	g := NewGraph(scan)
	_, headerToLayer := ComputeLayers(g)
	assert.Equal(t, headerToLayer["a.hpp"], headerToLayer["b.hpp"])
}

func TestComputeStatsHealthBuckets(t *testing.T) {
	scan := buildScan(map[string][]string{"a.hpp": nil, "b.hpp": nil})
	g := NewGraph(scan)
	stats := ComputeStats(g, 0, 0)
	assert.Equal(t, domain.HealthExcellent, stats.Health)
	assert.Equal(t, 2, stats.TotalHeaders)
	assert.Equal(t, 0, stats.TotalActualDeps)
	assert.Equal(t, 2, stats.TotalPossibleDeps)
	assert.Equal(t, 1.0, stats.Sparsity)
}

func TestComputeStatsDegradesWithCyclesAndGodObjects(t *testing.T) {
	scan := buildScan(map[string][]string{"a.hpp": {"b.hpp"}, "b.hpp": {"a.hpp"}})
	g := NewGraph(scan)
	stats := ComputeStats(g, 1, 0)
	assert.NotEqual(t, domain.HealthExcellent, stats.Health)
}

func TestAnalyzeEndToEnd(t *testing.T) {
	scan := buildScan(map[string][]string{
		"core/widget.hpp": {"core/base.hpp"},
		"core/base.hpp":   nil,
		"ui/button.hpp":    {"core/widget.hpp"},
	})
	results := Analyze(scan, Options{})

	assert.Len(t, results.SortedHeaders, 3)
	assert.False(t, results.HasCycles)
	assert.Empty(t, results.Cycles)
	assert.Equal(t, domain.HealthPoor, results.Stats.Health)
	assert.Nil(t, results.Advanced)
}

func TestAnalyzeWithAdvancedMetrics(t *testing.T) {
	scan := buildScan(map[string][]string{
		"core/widget.hpp": {"core/base.hpp"},
		"core/base.hpp":   nil,
		"ui/button.hpp":    {"core/widget.hpp"},
	})
	results := Analyze(scan, Options{Advanced: true, BetweennessSeed: 42})
	require.NotNil(t, results.Advanced)
	assert.Len(t, results.Advanced, 3)
	for _, a := range results.Advanced {
		assert.GreaterOrEqual(t, a.PageRank, 0.0)
		assert.GreaterOrEqual(t, a.Betweenness, 0.0)
	}
}
