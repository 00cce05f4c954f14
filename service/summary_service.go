package service

import (
	"context"
	"sort"
	"time"

	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/ludo-technologies/buildcheck/internal/dsm"
	"github.com/ludo-technologies/buildcheck/internal/version"
)

// SummaryServiceImpl implements domain.SummaryService: a single-screen
// health overview combining whole-matrix statistics with the top god
// objects and hubs.
type SummaryServiceImpl struct {
	scanner domain.ScanService
}

func NewSummaryService() *SummaryServiceImpl {
	return &SummaryServiceImpl{scanner: NewScanService()}
}

func (s *SummaryServiceImpl) Analyze(ctx context.Context, req domain.SummaryRequest) (*domain.SummaryResponse, error) {
	scan, err := s.scanner.Scan(ctx, domain.ScanRequest{
		BuildDirectory:    req.BuildDirectory,
		IncludeThirdParty: req.IncludeThirdParty,
		Verbose:           req.Verbose,
	})
	if err != nil {
		return nil, err
	}

	results := dsm.Analyze(scan, dsm.Options{Advanced: true})

	top := req.Top
	if top <= 0 {
		top = 10
	}

	return &domain.SummaryResponse{
		Stats:         results.Stats,
		HasCycles:     results.HasCycles,
		CycleCount:    len(results.Cycles),
		TopGodObjects: rankAdvanced(results, top, func(a domain.AdvancedMetrics) bool { return a.IsGodObject }),
		TopHubs:       rankAdvanced(results, top, func(a domain.AdvancedMetrics) bool { return a.IsHub }),
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		Version:       version.Short(),
	}, nil
}

func rankAdvanced(results domain.DSMAnalysisResults, top int, match func(domain.AdvancedMetrics) bool) []string {
	var matched []string
	for h, adv := range results.Advanced {
		if match(adv) {
			matched = append(matched, h)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		mi, mj := results.Metrics[matched[i]], results.Metrics[matched[j]]
		if mi.Coupling != mj.Coupling {
			return mi.Coupling > mj.Coupling
		}
		return matched[i] < matched[j]
	})
	if len(matched) > top {
		matched = matched[:top]
	}
	return matched
}
