// Package scenario synthesizes small, deterministic, named dependency
// graphs for the `demo` subcommand and for exercising the quantified
// invariants in tests without a real build tree. Patterns are grounded on
// the reference implementation's synthetic scenario fixtures: an acyclic
// baseline, a regression that introduces a cycle, a plain layered chain, a
// diamond re-include, a single god object, and a cyclic bridge between two
// otherwise clean subsystems.
package scenario

import (
	"sort"

	"github.com/ludo-technologies/buildcheck/domain"
)

// edge is a single directed #include relationship used to build a
// scenario's graph from a flat edge list, mirroring the original
// implementation's (src, dst) tuple list.
type edge struct{ from, to string }

// pattern is a named, reproducible graph definition.
type pattern struct {
	name  string
	edges []edge
	solo  []string // headers with no edges at all, e.g. isolated leaves
}

var patterns = map[string]pattern{
	"baseline": {
		name: "baseline",
		edges: []edge{
			{"Game/Player.hpp", "Engine/Core.hpp"},
			{"Game/Player.hpp", "Graphics/Texture.hpp"},
			{"Game/Player.hpp", "Utils/Logger.hpp"},
			{"Game/World.hpp", "Engine/Core.hpp"},
			{"Game/World.hpp", "Utils/Math.hpp"},
			{"Engine/Core.hpp", "Utils/Logger.hpp"},
			{"Engine/Renderer.hpp", "Graphics/Shader.hpp"},
			{"Engine/Renderer.hpp", "Utils/Math.hpp"},
			{"Graphics/Shader.hpp", "Engine/Core.hpp"},
			{"Graphics/Shader.hpp", "Utils/Math.hpp"},
			{"UI/Menu.hpp", "Engine/Renderer.hpp"},
			{"UI/HUD.hpp", "Engine/Renderer.hpp"},
		},
		solo: []string{"Graphics/Texture.hpp"},
	},
	"architectural_regression": {
		name: "architectural_regression",
		edges: []edge{
			{"Game/Player.hpp", "Engine/Core.hpp"},
			{"Game/Player.hpp", "Graphics/Texture.hpp"},
			{"Game/Player.hpp", "Graphics/PostProcess.hpp"},
			{"Game/Player.hpp", "Utils/Logger.hpp"},
			{"Game/World.hpp", "Engine/Core.hpp"},
			{"Game/World.hpp", "Utils/Math.hpp"},
			{"Engine/Core.hpp", "Utils/Logger.hpp"},
			{"Engine/Renderer.hpp", "Graphics/Shader.hpp"},
			{"Engine/Renderer.hpp", "Utils/Math.hpp"},
			{"Graphics/Shader.hpp", "Engine/Core.hpp"},
			{"Graphics/Shader.hpp", "Utils/Math.hpp"},
			{"UI/Menu.hpp", "Engine/Renderer.hpp"},
			{"UI/HUD.hpp", "Engine/Renderer.hpp"},
			{"Engine/Core.hpp", "Graphics/PostProcess.hpp"},
			{"Graphics/PostProcess.hpp", "Engine/Renderer.hpp"},
			{"Engine/Renderer.hpp", "Engine/Core.hpp"},
		},
	},
	"layered": {
		name: "layered",
		edges: []edge{
			{"app/main.hpp", "services/session.hpp"},
			{"services/session.hpp", "core/socket.hpp"},
			{"core/socket.hpp", "core/buffer.hpp"},
			{"core/buffer.hpp", "base/alloc.hpp"},
		},
	},
	"diamond": {
		name: "diamond",
		edges: []edge{
			{"top.hpp", "left.hpp"},
			{"top.hpp", "right.hpp"},
			{"left.hpp", "bottom.hpp"},
			{"right.hpp", "bottom.hpp"},
		},
	},
	"god_object": {
		name: "god_object",
		edges: []edge{
			{"a.hpp", "god.hpp"}, {"b.hpp", "god.hpp"}, {"c.hpp", "god.hpp"},
			{"d.hpp", "god.hpp"}, {"e.hpp", "god.hpp"}, {"f.hpp", "god.hpp"},
			{"god.hpp", "leaf1.hpp"}, {"god.hpp", "leaf2.hpp"}, {"god.hpp", "leaf3.hpp"},
			{"god.hpp", "leaf4.hpp"}, {"god.hpp", "leaf5.hpp"}, {"god.hpp", "leaf6.hpp"},
			{"god.hpp", "leaf7.hpp"}, {"god.hpp", "leaf8.hpp"}, {"god.hpp", "leaf9.hpp"},
			{"god.hpp", "leaf10.hpp"}, {"god.hpp", "leaf11.hpp"}, {"god.hpp", "leaf12.hpp"},
			{"god.hpp", "leaf13.hpp"}, {"god.hpp", "leaf14.hpp"}, {"god.hpp", "leaf15.hpp"},
			{"god.hpp", "leaf16.hpp"}, {"god.hpp", "leaf17.hpp"}, {"god.hpp", "leaf18.hpp"},
			{"god.hpp", "leaf19.hpp"}, {"god.hpp", "leaf20.hpp"}, {"god.hpp", "leaf21.hpp"},
			{"god.hpp", "leaf22.hpp"}, {"god.hpp", "leaf23.hpp"}, {"god.hpp", "leaf24.hpp"},
			{"god.hpp", "leaf25.hpp"}, {"god.hpp", "leaf26.hpp"}, {"god.hpp", "leaf27.hpp"},
			{"god.hpp", "leaf28.hpp"}, {"god.hpp", "leaf29.hpp"}, {"god.hpp", "leaf30.hpp"},
			{"god.hpp", "leaf31.hpp"}, {"god.hpp", "leaf32.hpp"}, {"god.hpp", "leaf33.hpp"},
			{"god.hpp", "leaf34.hpp"}, {"god.hpp", "leaf35.hpp"}, {"god.hpp", "leaf36.hpp"},
			{"god.hpp", "leaf37.hpp"}, {"god.hpp", "leaf38.hpp"}, {"god.hpp", "leaf39.hpp"},
			{"god.hpp", "leaf40.hpp"}, {"god.hpp", "leaf41.hpp"}, {"god.hpp", "leaf42.hpp"},
			{"god.hpp", "leaf43.hpp"}, {"god.hpp", "leaf44.hpp"}, {"god.hpp", "leaf45.hpp"},
		},
	},
	"cyclic_bridge": {
		name: "cyclic_bridge",
		edges: []edge{
			{"subsystem_a/one.hpp", "subsystem_a/two.hpp"},
			{"subsystem_a/two.hpp", "bridge.hpp"},
			{"bridge.hpp", "subsystem_b/one.hpp"},
			{"subsystem_b/one.hpp", "subsystem_b/two.hpp"},
			{"subsystem_b/two.hpp", "bridge.hpp"},
		},
	},
}

// ListPatterns returns every registered scenario name, sorted.
func ListPatterns() []string {
	names := make([]string, 0, len(patterns))
	for n := range patterns {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Build materializes a named pattern as a domain.ScanResult: every header
// appearing as an edge endpoint or in the pattern's solo list becomes a
// node, and one synthetic translation unit including every header in the
// pattern stands in for a source file so ripple/hell analyses have
// something to report against.
func Build(name string) (*domain.ScanResult, error) {
	p, ok := patterns[name]
	if !ok {
		return nil, domain.NewInvalidInputError("unknown scenario pattern: "+name, nil)
	}

	headerSet := make(map[string]bool)
	graph := make(map[string][]string)
	for _, e := range p.edges {
		headerSet[e.from] = true
		headerSet[e.to] = true
		graph[e.from] = append(graph[e.from], e.to)
	}
	for _, h := range p.solo {
		headerSet[h] = true
	}

	headers := make([]string, 0, len(headerSet))
	for h := range headerSet {
		headers = append(headers, h)
	}
	sort.Strings(headers)

	fileTypes := make(map[string]domain.FileType, len(headers))
	for _, h := range headers {
		fileTypes[h] = domain.FileTypeProject
	}

	sourceName := p.name + "_main.cpp"
	allDeps := make([]string, len(headers))
	copy(allDeps, headers)

	return &domain.ScanResult{
		IncludeGraph: graph,
		AllHeaders:   headers,
		SourceToDeps: map[string][]string{sourceName: allDeps},
		FileTypes:    fileTypes,
	}, nil
}
