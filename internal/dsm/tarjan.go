// Package dsm is the DSM analysis core: directed-graph construction,
// coupling/stability metrics, cycle detection via Tarjan's algorithm,
// SCC-condensed topological layering, and optional advanced metrics.
package dsm

import "sort"

// scc is an internal Tarjan's-algorithm runner operating on an adjacency
// map of absolute header paths, grounded on the module-level circular
// dependency detector but applied at header granularity.
type scc struct {
	adjacency map[string][]string

	index    int
	stack    []string
	inStack  map[string]bool
	indices  map[string]int
	lowLinks map[string]int

	components [][]string
}

func newSCC(adjacency map[string][]string) *scc {
	return &scc{
		adjacency: adjacency,
		inStack:   make(map[string]bool),
		indices:   make(map[string]int),
		lowLinks:  make(map[string]int),
	}
}

// findComponents runs Tarjan's algorithm over all nodes reachable as keys
// of adjacency, returning every strongly connected component (including
// singletons, so self-loop detection can be layered on by the caller).
func (s *scc) findComponents() [][]string {
	var nodes []string
	seen := make(map[string]bool)
	for n, deps := range s.adjacency {
		if !seen[n] {
			seen[n] = true
			nodes = append(nodes, n)
		}
		for _, d := range deps {
			if !seen[d] {
				seen[d] = true
				nodes = append(nodes, d)
			}
		}
	}
	sort.Strings(nodes)

	for _, n := range nodes {
		if _, visited := s.indices[n]; !visited {
			s.strongConnect(n)
		}
	}
	return s.components
}

func (s *scc) strongConnect(node string) {
	s.indices[node] = s.index
	s.lowLinks[node] = s.index
	s.index++
	s.stack = append(s.stack, node)
	s.inStack[node] = true

	for _, dep := range s.adjacency[node] {
		if _, visited := s.indices[dep]; !visited {
			s.strongConnect(dep)
			s.lowLinks[node] = min(s.lowLinks[node], s.lowLinks[dep])
		} else if s.inStack[dep] {
			s.lowLinks[node] = min(s.lowLinks[node], s.indices[dep])
		}
	}

	if s.lowLinks[node] == s.indices[node] {
		var component []string
		for {
			top := s.stack[len(s.stack)-1]
			s.stack = s.stack[:len(s.stack)-1]
			s.inStack[top] = false
			component = append(component, top)
			if top == node {
				break
			}
		}
		sort.Strings(component)
		s.components = append(s.components, component)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// hasSelfLoop reports whether node includes itself directly.
func hasSelfLoop(adjacency map[string][]string, node string) bool {
	for _, d := range adjacency[node] {
		if d == node {
			return true
		}
	}
	return false
}
