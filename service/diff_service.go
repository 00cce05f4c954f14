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

// DiffServiceImpl implements domain.DiffService: compute current results,
// resolve a baseline (snapshot, second build directory, or VCS ref), and
// diff the two.
type DiffServiceImpl struct {
	scanner   domain.ScanService
	snapshots domain.SnapshotService
	vcs       domain.VCSBaselineService
}

func NewDiffService() *DiffServiceImpl {
	return &DiffServiceImpl{
		scanner:   NewScanService(),
		snapshots: NewSnapshotService(),
		vcs:       NewVCSBaselineService(),
	}
}

func (s *DiffServiceImpl) Analyze(ctx context.Context, req domain.DiffRequest) (*domain.DiffResponse, error) {
	currentScan, err := s.scanner.Scan(ctx, domain.ScanRequest{
		BuildDirectory:    req.BuildDirectory,
		IncludeThirdParty: req.IncludeThirdParty,
		FilterPattern:     req.FilterPattern,
		ExcludePatterns:   req.ExcludePatterns,
		Verbose:           req.Verbose,
	})
	if err != nil {
		return nil, err
	}
	current := dsm.Analyze(currentScan, dsm.Options{})

	var baseline domain.DSMAnalysisResults
	var warnings []string

	switch {
	case req.LoadBaselinePath != "":
		snap, err := s.snapshots.Load(req.LoadBaselinePath)
		if err != nil {
			return nil, domain.NewSnapshotError("failed to load baseline snapshot", err)
		}
		if err := snapshot.ValidateOrigin(snap, req.BuildDirectory); err != nil {
			return nil, err
		}
		baseline = snap.Results

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
		baseline = dsm.Analyze(baseScan, dsm.Options{})

	case req.VCSBaselineRef != "":
		repoRoot := projectRootFor(req.BuildDirectory)
		baseScan, err := s.vcs.ReconstructBaseline(ctx, repoRoot, req.VCSBaselineRef, currentScan)
		if err != nil {
			return nil, domain.NewAnalysisError("failed to reconstruct VCS baseline", err)
		}
		baseline = dsm.Analyze(baseScan, dsm.Options{})

	default:
		return nil, domain.NewInvalidInputError("one of --load-baseline, --compare-with, or a VCS ref is required", nil)
	}

	rebuildCount, totalSources := s.rebuildImpact(baseline, current, currentScan)
	delta := diff.Compute(baseline, current, rebuildCount, totalSources)

	return &domain.DiffResponse{
		Baseline:    baseline,
		Current:     current,
		Delta:       delta,
		Warnings:    warnings,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Version:     version.Short(),
	}, nil
}

func (s *DiffServiceImpl) rebuildImpact(baseline, current domain.DSMAnalysisResults, scan *domain.ScanResult) (rebuildCount, totalSources int) {
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
	if len(changed) > 0 {
		if resp, err := ripple.Analyze(scan, changed); err == nil {
			rebuildCount = resp.TotalAffected
		}
	}
	totalSources = len(scan.SourceToDeps)
	return rebuildCount, totalSources
}
