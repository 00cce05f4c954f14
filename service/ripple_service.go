package service

import (
	"context"
	"path/filepath"
	"time"

	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/ludo-technologies/buildcheck/internal/ripple"
	"github.com/ludo-technologies/buildcheck/internal/version"
)

// RippleServiceImpl implements domain.RippleService: scan the build
// directory, then compute affected-sources closure for the changed headers.
type RippleServiceImpl struct {
	scanner domain.ScanService
	vcs     domain.VCSBaselineService
}

func NewRippleService() *RippleServiceImpl {
	return &RippleServiceImpl{
		scanner: NewScanService(),
		vcs:     NewVCSBaselineService(),
	}
}

func (s *RippleServiceImpl) Analyze(ctx context.Context, req domain.RippleRequest) (*domain.RippleResponse, error) {
	scan, err := s.scanner.Scan(ctx, domain.ScanRequest{
		BuildDirectory:    req.BuildDirectory,
		IncludeThirdParty: req.IncludeThirdParty,
		Verbose:           req.Verbose,
	})
	if err != nil {
		return nil, err
	}

	resp, err := ripple.Analyze(scan, req.ChangedPaths)
	if err != nil {
		return nil, err
	}

	if req.WeightByChurn {
		repoRoot := projectRootFor(req.BuildDirectory)
		freq, err := s.vcs.ChangeFrequency(ctx, repoRoot, req.ChangedPaths, req.ChurnCommitWindow)
		if err == nil {
			for i := range resp.Impacts {
				resp.Impacts[i].ChurnCount = freq[filepath.Clean(resp.Impacts[i].Header)]
			}
		}
	}

	resp.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	resp.Version = version.Short()
	return resp, nil
}
