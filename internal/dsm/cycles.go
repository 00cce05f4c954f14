package dsm

import (
	"sort"

	"github.com/ludo-technologies/buildcheck/domain"
)

// DetectCycles runs Tarjan's algorithm over the graph and returns every
// cycle (SCC of size >= 2, or a single self-including header) together
// with the sorted union of headers participating in any cycle and one
// suggested feedback edge per cycle.
func DetectCycles(g *Graph) (cycles []domain.Cycle, headersInCycles []string, feedback []domain.FeedbackEdge) {
	finder := newSCC(g.Adjacency)
	components := finder.findComponents()

	seen := make(map[string]bool)
	for _, comp := range components {
		isCycle := len(comp) >= 2
		if len(comp) == 1 && hasSelfLoop(g.Adjacency, comp[0]) {
			isCycle = true
		}
		if !isCycle {
			continue
		}
		cycles = append(cycles, domain.Cycle{Members: comp})
		for _, h := range comp {
			if !seen[h] {
				seen[h] = true
				headersInCycles = append(headersInCycles, h)
			}
		}
		feedback = append(feedback, selectFeedbackEdge(g, comp))
	}

	sort.Strings(headersInCycles)
	sort.Slice(cycles, func(i, j int) bool { return cycles[i].Members[0] < cycles[j].Members[0] })
	sort.Slice(feedback, func(i, j int) bool {
		if feedback[i].From != feedback[j].From {
			return feedback[i].From < feedback[j].From
		}
		return feedback[i].To < feedback[j].To
	})
	return cycles, headersInCycles, feedback
}

// selectFeedbackEdge picks, among the edges internal to a cycle, the one
// whose removal leaves the fewest headers still participating in a cycle.
// Ties break on lower combined fan_in+fan_out of the two endpoints, then
// lexicographic (from, to) order.
func selectFeedbackEdge(g *Graph, component []string) domain.FeedbackEdge {
	member := make(map[string]bool, len(component))
	for _, h := range component {
		member[h] = true
	}

	var candidates []domain.FeedbackEdge
	for _, from := range component {
		for _, to := range g.Adjacency[from] {
			if member[to] {
				candidates = append(candidates, domain.FeedbackEdge{From: from, To: to})
			}
		}
	}
	if len(candidates) == 0 {
		return domain.FeedbackEdge{From: component[0], To: component[0]}
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	type scored struct {
		edge           domain.FeedbackEdge
		remaining      int
		combinedCoupling int
	}
	scoredEdges := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		remaining := remainingCycleParticipation(g, component, c)
		coupling := len(g.Adjacency[c.From]) + len(g.ReverseAdj[c.From]) +
			len(g.Adjacency[c.To]) + len(g.ReverseAdj[c.To])
		scoredEdges = append(scoredEdges, scored{edge: c, remaining: remaining, combinedCoupling: coupling})
	}

	sort.Slice(scoredEdges, func(i, j int) bool {
		a, b := scoredEdges[i], scoredEdges[j]
		if a.remaining != b.remaining {
			return a.remaining < b.remaining
		}
		if a.combinedCoupling != b.combinedCoupling {
			return a.combinedCoupling < b.combinedCoupling
		}
		if a.edge.From != b.edge.From {
			return a.edge.From < b.edge.From
		}
		return a.edge.To < b.edge.To
	})
	return scoredEdges[0].edge
}

// remainingCycleParticipation re-runs Tarjan's algorithm over the
// component with edge removed and counts how many headers still belong
// to a component of size >= 2.
func remainingCycleParticipation(g *Graph, component []string, removed domain.FeedbackEdge) int {
	sub := make(map[string][]string, len(component))
	member := make(map[string]bool, len(component))
	for _, h := range component {
		member[h] = true
	}
	for _, h := range component {
		for _, d := range g.Adjacency[h] {
			if !member[d] {
				continue
			}
			if h == removed.From && d == removed.To {
				continue
			}
			sub[h] = append(sub[h], d)
		}
	}

	finder := newSCC(sub)
	components := finder.findComponents()
	count := 0
	for _, comp := range components {
		if len(comp) >= 2 {
			count += len(comp)
		}
	}
	return count
}
