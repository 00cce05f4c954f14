// Package ripple computes the affected-sources closure for a set of
// changed headers: which translation units must rebuild when a header
// changes, found by marking the reverse #include closure from each
// changed path and intersecting it with each source's dependency set.
package ripple

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/ludo-technologies/buildcheck/domain"
)

// reverseGraph maps a header to the set of headers that directly include
// it, the mirror of domain.ScanResult.IncludeGraph.
type reverseGraph map[string][]string

func buildReverseGraph(includeGraph map[string][]string) reverseGraph {
	rg := make(reverseGraph)
	for h, deps := range includeGraph {
		for _, d := range deps {
			rg[d] = append(rg[d], h)
		}
	}
	return rg
}

// closure performs a DFS from start over the reverse graph, marking every
// header that transitively includes it (directly or indirectly), mirroring
// the module-level reachability analyzer's mark-from-entry pattern.
func closure(rg reverseGraph, start string) map[string]bool {
	visited := map[string]bool{start: true}
	stack := []string{start}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, includer := range rg[n] {
			if !visited[includer] {
				visited[includer] = true
				stack = append(stack, includer)
			}
		}
	}
	return visited
}

// resolvePath maps a user-supplied changed path to a known header or
// source path in the scan result, matching by exact path then by unique
// basename, mirroring the scanner's own include-operand resolution order.
func resolvePath(path string, scan *domain.ScanResult) (string, bool, error) {
	for h := range scan.FileTypes {
		if h == path {
			return h, true, nil
		}
	}
	for s := range scan.SourceToDeps {
		if s == path {
			return s, false, nil
		}
	}

	var headerMatches, sourceMatches []string
	base := filepath.Base(path)
	for h := range scan.FileTypes {
		if filepath.Base(h) == base {
			headerMatches = append(headerMatches, h)
		}
	}
	for s := range scan.SourceToDeps {
		if filepath.Base(s) == base {
			sourceMatches = append(sourceMatches, s)
		}
	}
	if len(headerMatches) == 1 {
		return headerMatches[0], true, nil
	}
	if len(sourceMatches) == 1 {
		return sourceMatches[0], false, nil
	}
	return "", false, domain.NewAnalysisError(fmt.Sprintf("changed path %q does not resolve to a known header or source file", path), nil)
}

// Analyze computes, for each changed path, the sorted set of source files
// whose build is affected. A changed source file affects only itself; a
// changed header affects every source whose transitive dependency set
// intersects the header's reverse-include closure.
func Analyze(scan *domain.ScanResult, changedPaths []string) (*domain.RippleResponse, error) {
	rg := buildReverseGraph(scan.IncludeGraph)

	sourceDeps := make(map[string]map[string]bool, len(scan.SourceToDeps))
	for s, deps := range scan.SourceToDeps {
		set := make(map[string]bool, len(deps))
		for _, d := range deps {
			set[d] = true
		}
		sourceDeps[s] = set
	}

	var headers []string
	impacts := make([]domain.RippleImpact, 0, len(changedPaths))
	affectedSet := make(map[string]bool)

	for _, raw := range changedPaths {
		resolved, isHeader, err := resolvePath(raw, scan)
		if err != nil {
			return nil, err
		}

		var sources []string
		if !isHeader {
			sources = []string{resolved}
		} else {
			headers = append(headers, resolved)
			affected := closure(rg, resolved)
			for s, deps := range sourceDeps {
				if deps[resolved] || affectedAny(deps, affected) {
					sources = append(sources, s)
				}
			}
			sort.Strings(sources)
		}

		for _, s := range sources {
			affectedSet[s] = true
		}
		impacts = append(impacts, domain.RippleImpact{
			Header:          resolved,
			AffectedSources: sources,
		})
	}

	allSources := make([]string, 0, len(affectedSet))
	for s := range affectedSet {
		allSources = append(allSources, s)
	}
	sort.Strings(allSources)
	sort.Strings(headers)

	return &domain.RippleResponse{
		Headers:       headers,
		Sources:       allSources,
		Impacts:       impacts,
		TotalAffected: len(allSources),
	}, nil
}

func affectedAny(deps map[string]bool, affected map[string]bool) bool {
	for d := range deps {
		if affected[d] {
			return true
		}
	}
	return false
}
