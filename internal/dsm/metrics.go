package dsm

import (
	"math"

	"github.com/ludo-technologies/buildcheck/domain"
)

// ComputeMetrics derives the per-header DSMMetrics quadruple, grounded on
// the module-level coupling/stability calculation: coupling is always
// fan_in+fan_out, and stability is fan_out/coupling, defined as 0.5 for an
// isolated header (coupling 0) so it sorts as neither stable nor unstable.
func ComputeMetrics(g *Graph) map[string]domain.DSMMetrics {
	out := make(map[string]domain.DSMMetrics, len(g.Headers))
	for _, h := range g.Headers {
		fanOut := len(g.Adjacency[h])
		fanIn := len(g.ReverseAdj[h])
		coupling := fanOut + fanIn
		stability := 0.5
		if coupling > 0 {
			stability = float64(fanOut) / float64(coupling)
		}
		out[h] = domain.DSMMetrics{
			FanOut:    fanOut,
			FanIn:     fanIn,
			Coupling:  coupling,
			Stability: stability,
		}
	}
	return out
}

// ComputeStats derives the whole-system MatrixStatistics from the graph and
// cycle/god-object counts, applying the health bucket thresholds.
func ComputeStats(g *Graph, cycleCount, godObjectCount int) domain.MatrixStatistics {
	total := len(g.Headers)
	actual := g.EdgeCount()
	possible := 0
	if total > 1 {
		possible = total * (total - 1)
	}
	sparsity := 1.0
	if possible > 0 {
		sparsity = 1.0 - float64(actual)/float64(possible)
	}
	avgDeps := 0.0
	if total > 0 {
		avgDeps = float64(actual) / float64(total)
	}

	health, color := bucketHealth(sparsity, cycleCount, godObjectCount)

	return domain.MatrixStatistics{
		TotalHeaders:      total,
		TotalActualDeps:   actual,
		TotalPossibleDeps: possible,
		Sparsity:          round3(sparsity),
		AvgDeps:           round3(avgDeps),
		Health:            health,
		HealthColor:       color,
	}
}

// bucketHealth applies the spec's documented default thresholds: a bucket
// is reached only when sparsity, cycle count, and god-object count are all
// within its band; the first (strictest) band satisfied by all three wins,
// else it degrades to poor.
func bucketHealth(sparsity float64, cycles, godObjects int) (domain.HealthBucket, string) {
	switch {
	case sparsity >= domain.DefaultHealthExcellentMaxSparsity &&
		cycles <= domain.DefaultHealthExcellentMaxCycles &&
		godObjects <= domain.DefaultHealthExcellentMaxGodObjects:
		return domain.HealthExcellent, "green"
	case sparsity >= domain.DefaultHealthGoodMaxSparsity &&
		cycles <= domain.DefaultHealthGoodMaxCycles &&
		godObjects <= domain.DefaultHealthGoodMaxGodObjects:
		return domain.HealthGood, "green"
	case sparsity >= domain.DefaultHealthFairMaxSparsity &&
		cycles <= domain.DefaultHealthFairMaxCycles &&
		godObjects <= domain.DefaultHealthFairMaxGodObjects:
		return domain.HealthFair, "yellow"
	default:
		return domain.HealthPoor, "red"
	}
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
