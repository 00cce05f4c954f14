package dsm

import (
	"math"
	"math/rand"

	"github.com/ludo-technologies/buildcheck/domain"
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
)

// intGraph is the gonum representation of a Graph, built once and reused
// for both the PageRank and betweenness passes.
type intGraph struct {
	g        *simple.DirectedGraph
	reversed *simple.DirectedGraph
	idToNode map[string]int64
	nodeToID map[int64]string
}

func buildIntGraph(g *Graph) *intGraph {
	dg := simple.NewDirectedGraph()
	reversed := simple.NewDirectedGraph()
	idToNode := make(map[string]int64, len(g.Headers))
	nodeToID := make(map[int64]string, len(g.Headers))

	for _, h := range g.Headers {
		n := dg.NewNode()
		dg.AddNode(n)
		reversed.AddNode(simple.Node(n.ID()))
		idToNode[h] = n.ID()
		nodeToID[n.ID()] = h
	}
	for h, deps := range g.Adjacency {
		u := idToNode[h]
		for _, d := range deps {
			v := idToNode[d]
			dg.SetEdge(dg.NewEdge(simple.Node(u), simple.Node(v)))
			// The reversed graph points from dependency to includer, so
			// PageRank on it accumulates at headers that include many
			// (transitively important) others, rather than at the headers
			// they include.
			reversed.SetEdge(reversed.NewEdge(simple.Node(v), simple.Node(u)))
		}
	}
	return &intGraph{g: dg, reversed: reversed, idToNode: idToNode, nodeToID: nodeToID}
}

// ComputeAdvanced derives the optional per-header AdvancedMetrics: PageRank
// (on the reverse graph), betweenness centrality (exact below the sample
// cutoff, sampled above it), and the hub / god-object / stable-interface /
// outlier classifications driven by the documented default thresholds.
func ComputeAdvanced(g *Graph, metrics map[string]domain.DSMMetrics, seed int64) map[string]domain.AdvancedMetrics {
	ig := buildIntGraph(g)

	pagerank := network.PageRank(ig.reversed, 0.85, 1e-6)

	var betweenness map[int64]float64
	if len(g.Headers) <= domain.DefaultBetweennessExactCutoff {
		betweenness = network.Betweenness(ig.g)
	} else {
		betweenness = sampledBetweenness(ig, seed, domain.DefaultBetweennessSampleSize)
	}

	mean, stddev := couplingMoments(metrics)

	out := make(map[string]domain.AdvancedMetrics, len(g.Headers))
	for _, h := range g.Headers {
		id := ig.idToNode[h]
		m := metrics[h]

		z := 0.0
		if stddev > 0 {
			z = (float64(m.Coupling) - mean) / stddev
		}

		out[h] = domain.AdvancedMetrics{
			PageRank:    pagerank[id],
			Betweenness: betweenness[id],
			ZScore:      round3(z),
			IsHub:       m.Coupling >= domain.DefaultHubThreshold,
			IsGodObject: m.FanOut >= domain.DefaultGodObjectThreshold,
			IsInterface: m.FanIn > 0 && m.Stability < domain.DefaultStableInterfaceThreshold,
			IsOutlier:   math.Abs(z) > domain.DefaultOutlierZScore,
		}
	}
	return out
}

func couplingMoments(metrics map[string]domain.DSMMetrics) (mean, stddev float64) {
	n := len(metrics)
	if n == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, m := range metrics {
		sum += float64(m.Coupling)
	}
	mean = sum / float64(n)

	variance := 0.0
	for _, m := range metrics {
		d := float64(m.Coupling) - mean
		variance += d * d
	}
	variance /= float64(n)
	return mean, math.Sqrt(variance)
}

// sampledBetweenness approximates betweenness centrality above the exact
// cutoff by running Brandes' algorithm from a deterministic, seeded sample
// of source nodes and scaling the accumulated dependency counts by the
// ratio of total to sampled nodes, per Brandes & Pich's sampling scheme.
func sampledBetweenness(ig *intGraph, seed int64, sampleSize int) map[int64]float64 {
	nodes := ig.g.Nodes()
	var ids []int64
	for nodes.Next() {
		ids = append(ids, nodes.Node().ID())
	}
	if sampleSize <= 0 || sampleSize >= len(ids) {
		return network.Betweenness(ig.g)
	}

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(len(ids))
	sources := make([]int64, sampleSize)
	for i := 0; i < sampleSize; i++ {
		sources[i] = ids[perm[i]]
	}

	scores := make(map[int64]float64, len(ids))
	for _, id := range ids {
		scores[id] = 0
	}

	for _, s := range sources {
		accumulateBrandes(ig.g, s, scores)
	}

	scale := float64(len(ids)) / float64(sampleSize)
	for id := range scores {
		scores[id] *= scale
	}
	return scores
}

// accumulateBrandes runs a single-source pass of Brandes' algorithm
// (unweighted BFS variant) and adds the resulting dependency-weighted
// shortest-path counts into scores.
func accumulateBrandes(g *simple.DirectedGraph, s int64, scores map[int64]float64) {
	sigma := map[int64]float64{s: 1}
	dist := map[int64]int{s: 0}
	var order []int64
	queue := []int64{s}
	preds := make(map[int64][]int64)

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		order = append(order, v)

		to := g.From(v)
		for to.Next() {
			w := to.Node().ID()
			if _, visited := dist[w]; !visited {
				dist[w] = dist[v] + 1
				queue = append(queue, w)
			}
			if dist[w] == dist[v]+1 {
				sigma[w] += sigma[v]
				preds[w] = append(preds[w], v)
			}
		}
	}

	delta := make(map[int64]float64)
	for i := len(order) - 1; i >= 0; i-- {
		w := order[i]
		for _, v := range preds[w] {
			delta[v] += (sigma[v] / sigma[w]) * (1 + delta[w])
		}
		if w != s {
			scores[w] += delta[w]
		}
	}
}
