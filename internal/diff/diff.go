// Package diff computes the differential comparison between two DSM
// analysis snapshots: added/removed headers and cycles, coupling deltas,
// feedback-edge changes, and the architectural-insights severity rubric.
package diff

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ludo-technologies/buildcheck/domain"
)

// Compute derives a DSMDelta between a baseline and a current analysis.
// rebuildCount and totalSources are supplied by the caller (typically via
// internal/ripple over the headers that changed) so this package stays
// free of any dependency on the source-file universe.
func Compute(baseline, current domain.DSMAnalysisResults, rebuildCount, totalSources int) domain.DSMDelta {
	baseSet := toSet(baseline.SortedHeaders)
	curSet := toSet(current.SortedHeaders)

	delta := domain.DSMDelta{
		HeadersAdded:      sortedDiff(curSet, baseSet),
		HeadersRemoved:    sortedDiff(baseSet, curSet),
		CouplingIncreased: make(map[string]int),
		CouplingDecreased: make(map[string]int),
	}

	delta.CyclesAdded, delta.CyclesRemoved = diffCycles(baseline.Cycles, current.Cycles)
	delta.FeedbackEdgesAdded, delta.FeedbackEdgesRemoved = diffFeedbackEdges(baseline.FeedbackEdges, current.FeedbackEdges)

	var becameStable, becameUnstable []string
	for h, curMetrics := range current.Metrics {
		baseMetrics, existed := baseline.Metrics[h]
		if !existed {
			continue
		}
		d := curMetrics.Coupling - baseMetrics.Coupling
		switch {
		case d > 0:
			delta.CouplingIncreased[h] = d
		case d < 0:
			delta.CouplingDecreased[h] = -d
		}

		crossedUp := baseMetrics.Stability < domain.DefaultBecameUnstableThreshold &&
			curMetrics.Stability >= domain.DefaultBecameUnstableThreshold
		crossedDown := baseMetrics.Stability >= domain.DefaultBecameUnstableThreshold &&
			curMetrics.Stability < domain.DefaultBecameUnstableThreshold
		if crossedUp {
			becameStable = append(becameStable, h)
		}
		if crossedDown {
			becameUnstable = append(becameUnstable, h)
		}
	}
	sort.Strings(becameStable)
	sort.Strings(becameUnstable)

	rebuildPct := 0.0
	if totalSources > 0 {
		rebuildPct = round2(float64(rebuildCount) / float64(totalSources) * 100)
	}

	insights := &domain.ArchitecturalInsights{
		Severity:                      assessSeverity(delta, baseline, current),
		BecameStable:                  becameStable,
		BecameUnstable:                becameUnstable,
		ThisCommitRebuildCount:        rebuildCount,
		OngoingRebuildDeltaPercentage: rebuildPct,
		Recommendations:               buildRecommendations(delta, baseline, current, becameUnstable),
	}
	delta.ArchitecturalInsights = insights

	return delta
}

func toSet(items []string) map[string]bool {
	s := make(map[string]bool, len(items))
	for _, i := range items {
		s[i] = true
	}
	return s
}

func sortedDiff(a, b map[string]bool) []string {
	var out []string
	for k := range a {
		if !b[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func cycleKey(c domain.Cycle) string {
	members := make([]string, len(c.Members))
	copy(members, c.Members)
	sort.Strings(members)
	return strings.Join(members, "\x00")
}

func diffCycles(base, cur []domain.Cycle) (added, removed []domain.Cycle) {
	baseKeys := make(map[string]bool, len(base))
	for _, c := range base {
		baseKeys[cycleKey(c)] = true
	}
	curKeys := make(map[string]bool, len(cur))
	for _, c := range cur {
		curKeys[cycleKey(c)] = true
	}
	for _, c := range cur {
		if !baseKeys[cycleKey(c)] {
			added = append(added, c)
		}
	}
	for _, c := range base {
		if !curKeys[cycleKey(c)] {
			removed = append(removed, c)
		}
	}
	return added, removed
}

func edgeKey(e domain.FeedbackEdge) string { return e.From + "\x00" + e.To }

func diffFeedbackEdges(base, cur []domain.FeedbackEdge) (added, removed []domain.FeedbackEdge) {
	baseKeys := make(map[string]bool, len(base))
	for _, e := range base {
		baseKeys[edgeKey(e)] = true
	}
	curKeys := make(map[string]bool, len(cur))
	for _, e := range cur {
		curKeys[edgeKey(e)] = true
	}
	for _, e := range cur {
		if !baseKeys[edgeKey(e)] {
			added = append(added, e)
		}
	}
	for _, e := range base {
		if !curKeys[edgeKey(e)] {
			removed = append(removed, e)
		}
	}
	return added, removed
}

// assessSeverity applies the documented rubric: any new cycle is critical;
// otherwise a rise in average coupling (over all headers of each side) of
// more than the critical percentage threshold is critical; cycles removed
// with no header's coupling increased is positive; no structural change at
// all is neutral; anything else is moderate.
func assessSeverity(delta domain.DSMDelta, baseline, current domain.DSMAnalysisResults) domain.DeltaSeverity {
	if len(delta.CyclesAdded) > 0 {
		return domain.SeverityCritical
	}
	baseSum, curSum := 0, 0
	for _, m := range baseline.Metrics {
		baseSum += m.Coupling
	}
	for _, m := range current.Metrics {
		curSum += m.Coupling
	}
	if len(current.Metrics) > 0 && baseSum > 0 {
		baseAvg := float64(baseSum) / float64(len(baseline.Metrics))
		curAvg := float64(curSum) / float64(len(current.Metrics))
		if (curAvg-baseAvg)/baseAvg*100 > domain.DefaultCouplingIncreaseCriticalPercent {
			return domain.SeverityCritical
		}
	}

	structuralChange := len(delta.HeadersAdded) > 0 || len(delta.HeadersRemoved) > 0 ||
		len(delta.CouplingIncreased) > 0 || len(delta.CouplingDecreased) > 0 ||
		len(delta.FeedbackEdgesAdded) > 0 || len(delta.FeedbackEdgesRemoved) > 0

	if len(delta.CyclesRemoved) > 0 && len(delta.CouplingIncreased) == 0 {
		return domain.SeverityPositive
	}
	if !structuralChange && len(delta.CyclesRemoved) == 0 {
		return domain.SeverityNeutral
	}
	return domain.SeverityModerate
}

func buildRecommendations(delta domain.DSMDelta, baseline, current domain.DSMAnalysisResults, becameUnstable []string) []string {
	var recs []string
	if len(delta.CyclesAdded) > 0 {
		recs = append(recs, fmt.Sprintf("%d new circular dependency group(s) introduced; break the largest by extracting a shared header", len(delta.CyclesAdded)))
	}
	if len(current.HeadersInCycles) > 0 {
		var critical []string
		for h, m := range current.Metrics {
			if m.FanIn > domain.DefaultHubThreshold && inCycle(current, h) {
				critical = append(critical, h)
			}
		}
		if len(critical) > 0 {
			sort.Strings(critical)
			recs = append(recs, fmt.Sprintf("high fan-in headers participating in cycles: %s", strings.Join(critical, ", ")))
		}
	}
	if len(delta.CouplingIncreased) > 0 {
		var worst string
		worstDelta := 0
		for h, d := range delta.CouplingIncreased {
			if d > worstDelta {
				worstDelta = d
				worst = h
			}
		}
		if worst != "" {
			recs = append(recs, fmt.Sprintf("%s gained %d coupling point(s); consider whether the new includes belong in a narrower header", worst, worstDelta))
		}
	}
	if len(becameUnstable) > 0 {
		recs = append(recs, fmt.Sprintf("%d header(s) crossed into the unstable band: %s", len(becameUnstable), strings.Join(becameUnstable, ", ")))
	}
	return recs
}

func inCycle(results domain.DSMAnalysisResults, header string) bool {
	for _, h := range results.HeadersInCycles {
		if h == header {
			return true
		}
	}
	return false
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
