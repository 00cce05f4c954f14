package service

import (
	"context"

	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/ludo-technologies/buildcheck/internal/vcsgraph"
)

// VCSBaselineServiceImpl implements domain.VCSBaselineService over
// internal/vcsgraph.
type VCSBaselineServiceImpl struct {
	inner *vcsgraph.Service
}

func NewVCSBaselineService() *VCSBaselineServiceImpl {
	return &VCSBaselineServiceImpl{inner: vcsgraph.NewService()}
}

func (s *VCSBaselineServiceImpl) ReconstructBaseline(ctx context.Context, repoRoot, ref string, working *domain.ScanResult) (*domain.ScanResult, error) {
	return s.inner.ReconstructBaseline(ctx, repoRoot, ref, working)
}

func (s *VCSBaselineServiceImpl) CommitHash(ctx context.Context, repoRoot string) (string, error) {
	return s.inner.CommitHash(ctx, repoRoot)
}

func (s *VCSBaselineServiceImpl) ChangeFrequency(ctx context.Context, repoRoot string, paths []string, commitWindow int) (map[string]int, error) {
	return s.inner.ChangeFrequency(ctx, repoRoot, paths, commitWindow)
}
