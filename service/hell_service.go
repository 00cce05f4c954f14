package service

import (
	"context"
	"sort"
	"time"

	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/ludo-technologies/buildcheck/internal/dsm"
	"github.com/ludo-technologies/buildcheck/internal/ripple"
	"github.com/ludo-technologies/buildcheck/internal/version"
)

// HellServiceImpl implements domain.HellService: it ranks headers by how
// widely and how deeply they are pulled into the build, the "dependency
// hell" headers whose churn forces the broadest rebuilds.
type HellServiceImpl struct {
	scanner domain.ScanService
}

func NewHellService() *HellServiceImpl {
	return &HellServiceImpl{scanner: NewScanService()}
}

func (s *HellServiceImpl) Analyze(ctx context.Context, req domain.HellRequest) (*domain.HellResponse, error) {
	scan, err := s.scanner.Scan(ctx, domain.ScanRequest{
		BuildDirectory:    req.BuildDirectory,
		IncludeThirdParty: req.IncludeThirdParty,
		Verbose:           req.Verbose,
	})
	if err != nil {
		return nil, err
	}

	results := dsm.Analyze(scan, dsm.Options{})
	cooccur := buildCooccurrence(scan)
	chainLengths := longestReverseChains(results)

	var problematic []domain.ProblematicHeader
	for _, h := range results.SortedHeaders {
		m := results.Metrics[h]
		if m.FanIn < req.Threshold {
			continue
		}
		reverseImpact := m.FanIn
		if resp, err := ripple.Analyze(scan, []string{h}); err == nil {
			reverseImpact = resp.TotalAffected
		}
		problematic = append(problematic, domain.ProblematicHeader{
			Header:           h,
			UsageCount:       m.FanIn,
			ReverseImpact:    reverseImpact,
			MaxChainLength:   chainLengths[h],
			TopCooccurrences: topN(cooccur[h], 5),
		})
	}

	sort.Slice(problematic, func(i, j int) bool {
		if problematic[i].ReverseImpact != problematic[j].ReverseImpact {
			return problematic[i].ReverseImpact > problematic[j].ReverseImpact
		}
		return problematic[i].Header < problematic[j].Header
	})
	if req.Top > 0 && len(problematic) > req.Top {
		problematic = problematic[:req.Top]
	}

	return &domain.HellResponse{
		Threshold:   req.Threshold,
		Headers:     problematic,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Version:     version.Short(),
	}, nil
}

// buildCooccurrence counts, for each header, how often every other header
// appears alongside it in the same translation unit's include set.
func buildCooccurrence(scan *domain.ScanResult) map[string]map[string]int {
	counts := make(map[string]map[string]int)
	for _, deps := range scan.SourceToDeps {
		for _, h := range deps {
			if counts[h] == nil {
				counts[h] = make(map[string]int)
			}
			for _, other := range deps {
				if other != h {
					counts[h][other]++
				}
			}
		}
	}
	return counts
}

func topN(counts map[string]int, n int) []string {
	type pair struct {
		name  string
		count int
	}
	pairs := make([]pair, 0, len(counts))
	for name, count := range counts {
		pairs = append(pairs, pair{name, count})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].name < pairs[j].name
	})
	if len(pairs) > n {
		pairs = pairs[:n]
	}
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.name
	}
	return out
}

// longestReverseChains computes, for each header, the length of the longest
// chain of headers that transitively depend on it (its deepest reverse
// dependency chain), via memoized DFS over ReverseDeps.
func longestReverseChains(results domain.DSMAnalysisResults) map[string]int {
	memo := make(map[string]int, len(results.SortedHeaders))
	var visit func(h string, stack map[string]bool) int
	visit = func(h string, stack map[string]bool) int {
		if v, ok := memo[h]; ok {
			return v
		}
		if stack[h] {
			return 0
		}
		stack[h] = true
		best := 0
		for _, dependent := range results.ReverseDeps[h] {
			if d := visit(dependent, stack) + 1; d > best {
				best = d
			}
		}
		stack[h] = false
		memo[h] = best
		return best
	}
	for _, h := range results.SortedHeaders {
		visit(h, make(map[string]bool))
	}
	return memo
}
