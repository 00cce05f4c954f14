package service

import (
	"context"
	"time"

	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/ludo-technologies/buildcheck/internal/diff"
	"github.com/ludo-technologies/buildcheck/internal/dsm"
	"github.com/ludo-technologies/buildcheck/internal/ripple"
	"github.com/ludo-technologies/buildcheck/internal/snapshot"
	"github.com/ludo-technologies/buildcheck/internal/version"
)

// DSMServiceImpl implements domain.DSMService: scan, run the DSM core, and
// optionally diff against a baseline loaded from a snapshot file or a
// second build directory.
type DSMServiceImpl struct {
	scanner   domain.ScanService
	snapshots domain.SnapshotService
	vcs       domain.VCSBaselineService
}

func NewDSMService() *DSMServiceImpl {
	return &DSMServiceImpl{
		scanner:   NewScanService(),
		snapshots: NewSnapshotService(),
		vcs:       NewVCSBaselineService(),
	}
}

func (s *DSMServiceImpl) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.DSMResponse, error) {
	scanReq := domain.ScanRequest{
		BuildDirectory:    req.BuildDirectory,
		IncludeThirdParty: req.IncludeThirdParty,
		FilterPattern:     req.FilterPattern,
		ExcludePatterns:   req.ExcludePatterns,
		Verbose:           req.Verbose,
	}
	scan, err := s.scanner.Scan(ctx, scanReq)
	if err != nil {
		return nil, err
	}

	results := dsm.Analyze(scan, dsm.Options{Advanced: req.AdvancedMetrics, BetweennessSeed: req.BetweennessSeed})

	var warnings []string
	var delta *domain.DSMDelta

	switch {
	case req.LoadBaselinePath != "":
		snap, err := s.snapshots.Load(req.LoadBaselinePath)
		if err != nil {
			return nil, domain.NewSnapshotError("failed to load baseline snapshot", err)
		}
		if err := snapshot.ValidateOrigin(snap, req.BuildDirectory); err != nil {
			return nil, err
		}
		d := s.computeDelta(snap.Results, results, scan)
		delta = &d

	case req.CompareWithBuildDir != "":
		baseScan, err := s.scanner.Scan(ctx, domain.ScanRequest{
			BuildDirectory:    req.CompareWithBuildDir,
			IncludeThirdParty: req.IncludeThirdParty,
			FilterPattern:     req.FilterPattern,
			ExcludePatterns:   req.ExcludePatterns,
		})
		if err != nil {
			return nil, err
		}
		baseResults := dsm.Analyze(baseScan, dsm.Options{Advanced: req.AdvancedMetrics, BetweennessSeed: req.BetweennessSeed})
		d := s.computeDelta(baseResults, results, scan)
		delta = &d
	}

	if req.SaveResultsPath != "" {
		meta := snapshot.BuildMetadata(req.BuildDirectory, "", req.FilterPattern, req.ExcludePatterns, len(scan.AllHeaders), len(results.SortedHeaders))
		snap := &domain.Snapshot{
			SchemaVersion:          domain.CurrentSnapshotSchemaVersion,
			Metadata:               meta,
			UnfilteredHeaders:      scan.AllHeaders,
			UnfilteredIncludeGraph: scan.IncludeGraph,
			Results:                results,
		}
		if err := s.snapshots.Save(req.SaveResultsPath, snap); err != nil {
			return nil, domain.NewSnapshotError("failed to save results snapshot", err)
		}
	}

	return &domain.DSMResponse{
		Results:     results,
		Delta:       delta,
		Warnings:    warnings,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Version:     version.Short(),
	}, nil
}

// computeDelta derives rebuild-impact counts for the architectural insights
// rubric by running ripple analysis over the headers added between baseline
// and current, against the current scan's source universe.
func (s *DSMServiceImpl) computeDelta(baseline, current domain.DSMAnalysisResults, scan *domain.ScanResult) domain.DSMDelta {
	baseSet := make(map[string]bool, len(baseline.SortedHeaders))
	for _, h := range baseline.SortedHeaders {
		baseSet[h] = true
	}
	var changed []string
	for _, h := range current.SortedHeaders {
		if !baseSet[h] {
			changed = append(changed, h)
		}
	}

	rebuildCount := 0
	if len(changed) > 0 {
		if resp, err := ripple.Analyze(scan, changed); err == nil {
			rebuildCount = resp.TotalAffected
		}
	}
	totalSources := len(scan.SourceToDeps)

	return diff.Compute(baseline, current, rebuildCount, totalSources)
}
