package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/buildcheck/domain"
)

func sampleDSMResponse() *domain.DSMResponse {
	return &domain.DSMResponse{
		Results: domain.DSMAnalysisResults{
			SortedHeaders: []string{"a.h", "b.h", "c.h"},
			Metrics: map[string]domain.DSMMetrics{
				"a.h": {FanOut: 2, FanIn: 0, Coupling: 2, Stability: 1.0},
				"b.h": {FanOut: 1, FanIn: 1, Coupling: 2, Stability: 0.5},
				"c.h": {FanOut: 0, FanIn: 2, Coupling: 2, Stability: 0.0},
			},
			DirectedGraph:   map[string][]string{"a.h": {"b.h"}, "b.h": {"c.h"}},
			HeaderToHeaders: map[string][]string{"a.h": {"b.h"}, "b.h": {"c.h"}},
			Cycles:          []domain.Cycle{{Members: []string{"b.h", "c.h"}}},
			HeadersInCycles: []string{"b.h", "c.h"},
			Layers:          []domain.Layer{{Number: 0, Members: []string{"c.h"}}, {Number: 1, Members: []string{"b.h", "a.h"}}},
			Stats: domain.MatrixStatistics{
				TotalHeaders:    3,
				TotalActualDeps: 2,
				Sparsity:        1.0 / 3.0,
				Health:          domain.HealthGood,
			},
			HasCycles: true,
		},
		Version: "0.1.0",
	}
}

func TestFormatDSMText(t *testing.T) {
	f := NewOutputFormatter()
	var buf bytes.Buffer
	require.NoError(t, f.FormatDSM(sampleDSMResponse(), domain.OutputFormatText, &buf))

	out := buf.String()
	assert.Contains(t, out, "DSM Analysis Report")
	assert.Contains(t, out, "a.h")
	assert.Contains(t, out, "b.h -> c.h")
}

func TestFormatDSMJSON(t *testing.T) {
	f := NewOutputFormatter()
	var buf bytes.Buffer
	require.NoError(t, f.FormatDSM(sampleDSMResponse(), domain.OutputFormatJSON, &buf))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "results")
}

func TestFormatDSMCSV(t *testing.T) {
	f := NewOutputFormatter()
	var buf bytes.Buffer
	require.NoError(t, f.FormatDSM(sampleDSMResponse(), domain.OutputFormatCSV, &buf))

	r := csv.NewReader(&buf)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4) // header + 3 headers
	assert.Equal(t, []string{"Header", "Fan-out", "Fan-in", "Coupling", "Stability", "a.h", "b.h", "c.h"}, rows[0])
	// a.h -> b.h, so the a.h row's b.h column is "1"
	aRow := rows[1]
	assert.Equal(t, "a.h", aRow[0])
	assert.Equal(t, "1", aRow[6]) // b.h column
	assert.Equal(t, "0", aRow[7]) // c.h column
}

func TestFormatDSMDOT(t *testing.T) {
	f := NewOutputFormatter()
	var buf bytes.Buffer
	require.NoError(t, f.FormatDSM(sampleDSMResponse(), domain.OutputFormatDOT, &buf))
	out := buf.String()
	assert.Contains(t, out, "digraph buildcheck")
	assert.Contains(t, out, `"a.h" -> "b.h"`)
}

func TestFormatDSMGraphML(t *testing.T) {
	f := NewOutputFormatter()
	var buf bytes.Buffer
	require.NoError(t, f.FormatDSM(sampleDSMResponse(), domain.OutputFormatGraphML, &buf))
	out := buf.String()
	assert.Contains(t, out, "<graphml")
	assert.Contains(t, out, `fan_in`)
}

func TestFormatDSMGEXF(t *testing.T) {
	f := NewOutputFormatter()
	var buf bytes.Buffer
	require.NoError(t, f.FormatDSM(sampleDSMResponse(), domain.OutputFormatGEXF, &buf))
	out := buf.String()
	assert.Contains(t, out, "<gexf")
}

func TestFormatDSMHTML(t *testing.T) {
	f := NewOutputFormatter()
	var buf bytes.Buffer
	require.NoError(t, f.FormatDSM(sampleDSMResponse(), domain.OutputFormatHTML, &buf))
	assert.Contains(t, buf.String(), "<!DOCTYPE html>")
}

func TestFormatDSMUnsupportedFormat(t *testing.T) {
	f := NewOutputFormatter()
	var buf bytes.Buffer
	err := f.FormatDSM(sampleDSMResponse(), domain.OutputFormat("xml"), &buf)
	assert.Error(t, err)
}

func TestFormatRippleText(t *testing.T) {
	f := NewOutputFormatter()
	resp := &domain.RippleResponse{
		Headers:       []string{"a.h"},
		TotalAffected: 2,
		Impacts: []domain.RippleImpact{
			{Header: "a.h", AffectedSources: []string{"x.cpp", "y.cpp"}},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, f.FormatRipple(resp, domain.OutputFormatText, &buf))
	out := buf.String()
	assert.Contains(t, out, "Ripple Impact Report")
	assert.Contains(t, out, "x.cpp")
}

func TestFormatDiffText(t *testing.T) {
	f := NewOutputFormatter()
	resp := &domain.DiffResponse{
		Delta: domain.DSMDelta{
			HeadersAdded: []string{"new.h"},
			ArchitecturalInsights: &domain.ArchitecturalInsights{
				Severity:               "critical",
				ThisCommitRebuildCount: 5,
				Recommendations:        []string{"split new.h"},
			},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, f.FormatDiff(resp, domain.OutputFormatText, &buf))
	out := buf.String()
	assert.Contains(t, out, "Diff Report")
	assert.Contains(t, out, "critical")
	assert.Contains(t, out, "split new.h")
}

func TestFormatHellTextAndCSV(t *testing.T) {
	f := NewOutputFormatter()
	resp := &domain.HellResponse{
		Threshold: 10,
		Headers: []domain.ProblematicHeader{
			{Header: "common.h", UsageCount: 42, ReverseImpact: 20, MaxChainLength: 6},
		},
	}

	var text bytes.Buffer
	require.NoError(t, f.FormatHell(resp, domain.OutputFormatText, &text))
	assert.Contains(t, text.String(), "common.h")

	var csvBuf bytes.Buffer
	require.NoError(t, f.FormatHell(resp, domain.OutputFormatCSV, &csvBuf))
	r := csv.NewReader(&csvBuf)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "common.h", rows[1][0])
}

func TestFormatSummaryText(t *testing.T) {
	f := NewOutputFormatter()
	resp := &domain.SummaryResponse{
		Stats:         domain.MatrixStatistics{TotalHeaders: 10, Health: domain.HealthFair},
		HasCycles:     true,
		CycleCount:    2,
		TopGodObjects: []string{"huge.h"},
		TopHubs:       []string{"core.h"},
	}
	var buf bytes.Buffer
	require.NoError(t, f.FormatSummary(resp, domain.OutputFormatText, &buf))
	out := buf.String()
	assert.Contains(t, out, "Build Health Summary")
	assert.Contains(t, out, "huge.h")
	assert.Contains(t, out, "core.h")
}

func TestTopByCoupling(t *testing.T) {
	results := sampleDSMResponse().Results
	top := topByCoupling(results, 2)
	assert.Len(t, top, 2)
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "a.h", baseName("src/include/a.h"))
	assert.Equal(t, "a.h", baseName("a.h"))
}

func TestFormatDSMCSVNoPyscnReference(t *testing.T) {
	f := NewOutputFormatter()
	var buf bytes.Buffer
	require.NoError(t, f.FormatDSM(sampleDSMResponse(), domain.OutputFormatText, &buf))
	assert.False(t, strings.Contains(strings.ToLower(buf.String()), "pyscn"))
}
