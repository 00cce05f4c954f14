package dsm

import (
	"sort"

	"github.com/ludo-technologies/buildcheck/domain"
)

// Options configures a single DSM analysis pass over an already-built
// include graph.
type Options struct {
	Advanced        bool
	BetweennessSeed int64
}

// Analyze runs the full L3 pipeline over a scan result: metrics, cycle
// detection with feedback-edge suggestions, SCC-condensed layering, whole-
// system statistics, and optionally gonum-backed advanced metrics.
func Analyze(scan *domain.ScanResult, opts Options) domain.DSMAnalysisResults {
	g := NewGraph(scan)
	metrics := ComputeMetrics(g)
	cycles, headersInCycles, feedback := DetectCycles(g)
	layers, headerToLayer := ComputeLayers(g)

	godObjects := 0
	for _, m := range metrics {
		if m.FanOut >= domain.DefaultGodObjectThreshold {
			godObjects++
		}
	}
	stats := ComputeStats(g, len(cycles), godObjects)

	var advanced map[string]domain.AdvancedMetrics
	if opts.Advanced {
		seed := opts.BetweennessSeed
		if seed == 0 {
			seed = domain.DefaultBetweennessSeed
		}
		advanced = ComputeAdvanced(g, metrics, seed)
	}

	reverseDeps := make(map[string][]string, len(g.Headers))
	for h, deps := range g.ReverseAdj {
		if len(deps) == 0 {
			continue
		}
		cp := make([]string, len(deps))
		copy(cp, deps)
		reverseDeps[h] = cp
	}

	headerToHeaders := make(map[string][]string, len(g.Headers))
	for h, deps := range g.Adjacency {
		if len(deps) == 0 {
			continue
		}
		cp := make([]string, len(deps))
		copy(cp, deps)
		headerToHeaders[h] = cp
	}

	directed := make(map[string][]string, len(g.Headers))
	for h, deps := range g.Adjacency {
		directed[h] = deps
	}

	sorted := make([]string, len(g.Headers))
	copy(sorted, g.Headers)
	sort.Strings(sorted)

	return domain.DSMAnalysisResults{
		SortedHeaders:   sorted,
		Metrics:         metrics,
		Advanced:        advanced,
		DirectedGraph:   directed,
		Cycles:          cycles,
		HeadersInCycles: headersInCycles,
		FeedbackEdges:   feedback,
		Layers:          layers,
		HeaderToLayer:   headerToLayer,
		HeaderToHeaders: headerToHeaders,
		ReverseDeps:     reverseDeps,
		Stats:           stats,
		HasCycles:       len(cycles) > 0,
	}
}
