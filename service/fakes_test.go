package service

import (
	"context"

	"github.com/ludo-technologies/buildcheck/domain"
)

// fakeScanService returns a fixed scan result, standing in for a real
// scanner invocation so service-layer tests can exercise DSM/ripple/diff/
// hell/summary composition without a compilation database on disk.
type fakeScanService struct {
	result *domain.ScanResult
	err    error
}

func (f fakeScanService) Scan(ctx context.Context, req domain.ScanRequest) (*domain.ScanResult, error) {
	return f.result, f.err
}

// baselineScanResult reproduces scenario "baseline"'s include graph so
// tests can assert on its well-known metrics without importing
// internal/scenario into the service package.
func baselineScanResult() *domain.ScanResult {
	graph := map[string][]string{
		"Game/Player.hpp":    {"Engine/Core.hpp", "Graphics/Texture.hpp", "Utils/Logger.hpp"},
		"Game/World.hpp":     {"Engine/Core.hpp", "Utils/Math.hpp"},
		"Engine/Core.hpp":    {"Utils/Logger.hpp"},
		"Engine/Renderer.hpp": {"Graphics/Shader.hpp", "Utils/Math.hpp"},
		"Graphics/Shader.hpp": {"Engine/Core.hpp", "Utils/Math.hpp"},
		"Graphics/Texture.hpp": {},
		"Utils/Logger.hpp":    {},
		"Utils/Math.hpp":      {},
		"UI/Menu.hpp":         {"Engine/Renderer.hpp"},
		"UI/HUD.hpp":          {"Engine/Renderer.hpp"},
	}
	headers := make([]string, 0, len(graph))
	for h := range graph {
		headers = append(headers, h)
	}
	sourceToDeps := map[string][]string{
		"Game/Player.cpp": {"Game/Player.hpp", "Engine/Core.hpp", "Graphics/Texture.hpp", "Utils/Logger.hpp"},
		"Game/World.cpp":  {"Game/World.hpp", "Engine/Core.hpp", "Utils/Math.hpp"},
	}
	fileTypes := make(map[string]domain.FileType, len(headers))
	for _, h := range headers {
		fileTypes[h] = domain.FileTypeProject
	}
	return &domain.ScanResult{
		IncludeGraph:    graph,
		AllHeaders:      headers,
		SourceToDeps:    sourceToDeps,
		FileTypes:       fileTypes,
		ScanTimeSeconds: 0.01,
	}
}
