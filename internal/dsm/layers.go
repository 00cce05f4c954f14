package dsm

import (
	"sort"

	"github.com/ludo-technologies/buildcheck/domain"
)

// ComputeLayers condenses the graph's strongly connected components into a
// DAG and assigns each component a layer number: leaf components (no
// outgoing edges to any other component) sit at layer 0, and every other
// component's layer is one more than the deepest layer among the
// components it depends on. Headers within the same SCC always share a
// layer, satisfying the invariant that only non-SCC-internal edges can
// cross layers.
func ComputeLayers(g *Graph) ([]domain.Layer, map[string]int) {
	finder := newSCC(g.Adjacency)
	components := finder.findComponents()

	compOf := make(map[string]int, len(g.Headers))
	for idx, comp := range components {
		for _, h := range comp {
			compOf[h] = idx
		}
	}

	compDeps := make([][]int, len(components))
	seenEdge := make([]map[int]bool, len(components))
	for i := range seenEdge {
		seenEdge[i] = make(map[int]bool)
	}
	for h, deps := range g.Adjacency {
		src := compOf[h]
		for _, d := range deps {
			dst := compOf[d]
			if src == dst || seenEdge[src][dst] {
				continue
			}
			seenEdge[src][dst] = true
			compDeps[src] = append(compDeps[src], dst)
		}
	}

	layerOf := make([]int, len(components))
	for i := range layerOf {
		layerOf[i] = -1
	}
	var assign func(idx int) int
	assign = func(idx int) int {
		if layerOf[idx] >= 0 {
			return layerOf[idx]
		}
		layerOf[idx] = 0
		if len(compDeps[idx]) == 0 {
			return 0
		}
		max := 0
		for _, dep := range compDeps[idx] {
			if l := assign(dep); l+1 > max {
				max = l + 1
			}
		}
		layerOf[idx] = max
		return max
	}
	for i := range components {
		assign(i)
	}

	byLayer := make(map[int][]string)
	headerToLayer := make(map[string]int, len(g.Headers))
	maxLayer := 0
	for idx, comp := range components {
		l := layerOf[idx]
		byLayer[l] = append(byLayer[l], comp...)
		for _, h := range comp {
			headerToLayer[h] = l
		}
		if l > maxLayer {
			maxLayer = l
		}
	}

	layers := make([]domain.Layer, 0, maxLayer+1)
	for l := 0; l <= maxLayer; l++ {
		members := byLayer[l]
		sort.Strings(members)
		layers = append(layers, domain.Layer{Number: l, Members: members})
	}
	return layers, headerToLayer
}
