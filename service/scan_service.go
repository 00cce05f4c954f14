package service

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/ludo-technologies/buildcheck/internal/pathclassifier"
	"github.com/ludo-technologies/buildcheck/internal/scanner"
)

// ScanServiceImpl implements domain.ScanService over internal/scanner,
// applying the filter/exclude glob patterns on top of the raw include graph.
type ScanServiceImpl struct{}

func NewScanService() *ScanServiceImpl {
	return &ScanServiceImpl{}
}

// projectRootFor derives a stable project root for relative-path matching:
// the build directory's parent, matching the common <root>/build layout.
func projectRootFor(buildDirectory string) string {
	return filepath.Dir(filepath.Clean(buildDirectory))
}

func (s *ScanServiceImpl) Scan(ctx context.Context, req domain.ScanRequest) (*domain.ScanResult, error) {
	classifier := pathclassifier.New(projectRootFor(req.BuildDirectory), req.BuildDirectory)

	result, err := scanner.Run(ctx, scanner.Options{
		BuildDirectory:    req.BuildDirectory,
		IncludeThirdParty: req.IncludeThirdParty,
		TimeoutSeconds:    req.ScannerTimeoutSec,
		Classifier:        classifier,
	})
	if err != nil {
		return nil, err
	}

	if req.FilterPattern == "" && len(req.ExcludePatterns) == 0 {
		return result, nil
	}

	filtered := classifier.ApplyFilters(result.AllHeaders, req.FilterPattern, req.ExcludePatterns)
	keptSet := make(map[string]bool, len(filtered.Kept))
	for _, h := range filtered.Kept {
		keptSet[h] = true
	}

	prunedGraph := make(map[string][]string, len(filtered.Kept))
	for h, deps := range result.IncludeGraph {
		if !keptSet[h] {
			continue
		}
		var kept []string
		for _, d := range deps {
			if keptSet[d] {
				kept = append(kept, d)
			}
		}
		prunedGraph[h] = kept
	}

	prunedSourceToDeps := make(map[string][]string, len(result.SourceToDeps))
	for src, deps := range result.SourceToDeps {
		var kept []string
		for _, d := range deps {
			if keptSet[d] {
				kept = append(kept, d)
			}
		}
		prunedSourceToDeps[src] = kept
	}

	prunedFileTypes := make(map[string]domain.FileType, len(filtered.Kept))
	for h := range keptSet {
		prunedFileTypes[h] = result.FileTypes[h]
	}

	sort.Strings(filtered.Kept)
	return &domain.ScanResult{
		IncludeGraph:    prunedGraph,
		AllHeaders:      filtered.Kept,
		SourceToDeps:    prunedSourceToDeps,
		FileTypes:       prunedFileTypes,
		ScanTimeSeconds: result.ScanTimeSeconds,
		FailedEntries:   result.FailedEntries,
	}, nil
}
