package dsm

import (
	"sort"

	"github.com/ludo-technologies/buildcheck/domain"
)

// Graph is the directed include graph the DSM core operates over: headers
// as nodes, #include edges pointing from includer to included.
type Graph struct {
	Headers     []string
	Adjacency   map[string][]string
	ReverseAdj  map[string][]string
}

// NewGraph builds a Graph from a scan result's resolved include graph,
// deriving the reverse-adjacency map and a stable sorted header list.
func NewGraph(scan *domain.ScanResult) *Graph {
	headers := make([]string, len(scan.AllHeaders))
	copy(headers, scan.AllHeaders)
	sort.Strings(headers)

	adjacency := make(map[string][]string, len(headers))
	reverse := make(map[string][]string, len(headers))
	for _, h := range headers {
		adjacency[h] = nil
		reverse[h] = nil
	}
	for h, deps := range scan.IncludeGraph {
		if _, known := adjacency[h]; !known {
			continue
		}
		var kept []string
		for _, d := range deps {
			if _, known := adjacency[d]; !known {
				continue
			}
			kept = append(kept, d)
			reverse[d] = append(reverse[d], h)
		}
		sort.Strings(kept)
		adjacency[h] = kept
	}
	for h := range reverse {
		sort.Strings(reverse[h])
	}

	return &Graph{Headers: headers, Adjacency: adjacency, ReverseAdj: reverse}
}

// EdgeCount returns the total number of directed edges in the graph.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, deps := range g.Adjacency {
		n += len(deps)
	}
	return n
}
