package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ludo-technologies/buildcheck/domain"
)

// DSMFormatterImpl implements domain.DSMOutputFormatter across the five DSM
// response types, one text/JSON/YAML/CSV/DOT/GraphML/GEXF renderer per
// response, mirroring the teacher's single-formatter-per-analysis shape.
type DSMFormatterImpl struct{}

// NewOutputFormatter creates a new DSM output formatter service.
func NewOutputFormatter() *DSMFormatterImpl {
	return &DSMFormatterImpl{}
}

// FormatDSM writes resp in format to w.
func (f *DSMFormatterImpl) FormatDSM(resp *domain.DSMResponse, format domain.OutputFormat, w io.Writer) error {
	switch format {
	case domain.OutputFormatText, "":
		return f.writeDSMText(resp, w)
	case domain.OutputFormatJSON:
		return WriteJSON(w, resp)
	case domain.OutputFormatYAML:
		return WriteYAML(w, resp)
	case domain.OutputFormatCSV:
		return f.writeDSMCSV(resp, w)
	case domain.OutputFormatDOT:
		return f.writeDOT(resp.Results, w)
	case domain.OutputFormatGraphML:
		return f.writeGraphML(resp.Results, w)
	case domain.OutputFormatGEXF:
		return f.writeGEXF(resp.Results, w)
	case domain.OutputFormatHTML:
		html, err := NewHTMLFormatter().FormatDSMAsHTML(resp, "buildcheck")
		if err != nil {
			return err
		}
		_, err = w.Write([]byte(html))
		return err
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// FormatRipple writes resp in format to w.
func (f *DSMFormatterImpl) FormatRipple(resp *domain.RippleResponse, format domain.OutputFormat, w io.Writer) error {
	switch format {
	case domain.OutputFormatText, "":
		return f.writeRippleText(resp, w)
	case domain.OutputFormatJSON:
		return WriteJSON(w, resp)
	case domain.OutputFormatYAML:
		return WriteYAML(w, resp)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// FormatDiff writes resp in format to w.
func (f *DSMFormatterImpl) FormatDiff(resp *domain.DiffResponse, format domain.OutputFormat, w io.Writer) error {
	switch format {
	case domain.OutputFormatText, "":
		return f.writeDiffText(resp, w)
	case domain.OutputFormatJSON:
		return WriteJSON(w, resp)
	case domain.OutputFormatYAML:
		return WriteYAML(w, resp)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// FormatHell writes resp in format to w.
func (f *DSMFormatterImpl) FormatHell(resp *domain.HellResponse, format domain.OutputFormat, w io.Writer) error {
	switch format {
	case domain.OutputFormatText, "":
		return f.writeHellText(resp, w)
	case domain.OutputFormatJSON:
		return WriteJSON(w, resp)
	case domain.OutputFormatYAML:
		return WriteYAML(w, resp)
	case domain.OutputFormatCSV:
		return f.writeHellCSV(resp, w)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// FormatSummary writes resp in format to w.
func (f *DSMFormatterImpl) FormatSummary(resp *domain.SummaryResponse, format domain.OutputFormat, w io.Writer) error {
	switch format {
	case domain.OutputFormatText, "":
		return f.writeSummaryText(resp, w)
	case domain.OutputFormatJSON:
		return WriteJSON(w, resp)
	case domain.OutputFormatYAML:
		return WriteYAML(w, resp)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// ExportGraph writes results as a node-link graph in format to w, for the
// `--export-graph FILE.{graphml,gexf,json,dot}` flag.
func (f *DSMFormatterImpl) ExportGraph(results domain.DSMAnalysisResults, format domain.OutputFormat, w io.Writer) error {
	switch format {
	case domain.OutputFormatGraphML:
		return f.writeGraphML(results, w)
	case domain.OutputFormatGEXF:
		return f.writeGEXF(results, w)
	case domain.OutputFormatDOT:
		return f.writeDOT(results, w)
	case domain.OutputFormatJSON:
		return WriteJSON(w, nodeLinkGraph(results))
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

type nodeLinkNode struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	FanIn     int     `json:"fan_in"`
	FanOut    int     `json:"fan_out"`
	Coupling  int     `json:"coupling"`
	Stability float64 `json:"stability"`
	InCycle   bool    `json:"in_cycle"`
}

type nodeLinkEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type nodeLinkGraphData struct {
	Nodes []nodeLinkNode `json:"nodes"`
	Edges []nodeLinkEdge `json:"edges"`
}

func nodeLinkGraph(results domain.DSMAnalysisResults) nodeLinkGraphData {
	inCycle := make(map[string]bool, len(results.HeadersInCycles))
	for _, h := range results.HeadersInCycles {
		inCycle[h] = true
	}
	data := nodeLinkGraphData{
		Nodes: make([]nodeLinkNode, 0, len(results.SortedHeaders)),
	}
	for _, h := range results.SortedHeaders {
		m := results.Metrics[h]
		data.Nodes = append(data.Nodes, nodeLinkNode{
			ID: h, Label: baseName(h),
			FanIn: m.FanIn, FanOut: m.FanOut, Coupling: m.Coupling,
			Stability: m.Stability, InCycle: inCycle[h],
		})
		for _, dep := range results.DirectedGraph[h] {
			data.Edges = append(data.Edges, nodeLinkEdge{Source: h, Target: dep})
		}
	}
	return data
}

func (f *DSMFormatterImpl) writeDSMText(resp *domain.DSMResponse, w io.Writer) error {
	utils := NewFormatUtils()
	var b strings.Builder
	b.WriteString(utils.FormatMainHeader("DSM Analysis Report"))

	stats := resp.Results.Stats
	b.WriteString(utils.FormatSummaryStats(map[string]interface{}{
		"Total Headers": stats.TotalHeaders,
		"Actual Deps":   stats.TotalActualDeps,
		"Sparsity":      utils.FormatPercentage(stats.Sparsity * 100),
		"Health":        string(stats.Health),
		"Has Cycles":    resp.Results.HasCycles,
	}))

	if len(resp.Results.Cycles) > 0 {
		b.WriteString(utils.FormatSectionHeader("CYCLES"))
		for _, c := range resp.Results.Cycles {
			b.WriteString(utils.FormatLabelWithIndent(SectionPadding, "cycle", strings.Join(c.Members, " -> ")))
		}
		b.WriteString(utils.FormatSectionSeparator())
	}

	if len(resp.Results.Layers) > 0 {
		b.WriteString(utils.FormatSectionHeader("LAYERS"))
		for _, l := range resp.Results.Layers {
			b.WriteString(utils.FormatLabelWithIndent(SectionPadding, fmt.Sprintf("layer %d", l.Number), strings.Join(l.Members, ", ")))
		}
		b.WriteString(utils.FormatSectionSeparator())
	}

	b.WriteString(utils.FormatSectionHeader("TOP HEADERS BY COUPLING"))
	b.WriteString(utils.FormatTableHeader("Header", "FanOut", "FanIn", "Coupling", "Stability"))
	for _, h := range topByCoupling(resp.Results, 20) {
		m := resp.Results.Metrics[h]
		b.WriteString(fmt.Sprintf("%-40s %7d %7d %9d %10.2f\n", h, m.FanOut, m.FanIn, m.Coupling, m.Stability))
	}

	if resp.Delta != nil {
		b.WriteString(utils.FormatSectionSeparator())
		b.WriteString(utils.FormatSectionHeader("DELTA VS BASELINE"))
		writeDeltaText(&b, utils, resp.Delta)
	}

	if len(resp.Warnings) > 0 {
		b.WriteString(utils.FormatWarningsSection(resp.Warnings))
	}

	_, err := w.Write([]byte(b.String()))
	return err
}

func writeDeltaText(b *strings.Builder, utils *FormatUtils, delta *domain.DSMDelta) {
	b.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Headers added", len(delta.HeadersAdded)))
	b.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Headers removed", len(delta.HeadersRemoved)))
	b.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Cycles added", len(delta.CyclesAdded)))
	b.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Cycles removed", len(delta.CyclesRemoved)))
	if delta.ArchitecturalInsights != nil {
		ai := delta.ArchitecturalInsights
		b.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Severity", string(ai.Severity)))
		b.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Rebuild count (this commit)", ai.ThisCommitRebuildCount))
		b.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Ongoing rebuild delta", utils.FormatPercentage(ai.OngoingRebuildDeltaPercentage)))
		for _, r := range ai.Recommendations {
			b.WriteString(utils.FormatLabelWithIndent(ItemPadding, "recommendation", r))
		}
	}
}

func topByCoupling(results domain.DSMAnalysisResults, n int) []string {
	headers := make([]string, len(results.SortedHeaders))
	copy(headers, results.SortedHeaders)
	sort.Slice(headers, func(i, j int) bool {
		mi, mj := results.Metrics[headers[i]], results.Metrics[headers[j]]
		if mi.Coupling != mj.Coupling {
			return mi.Coupling > mj.Coupling
		}
		return headers[i] < headers[j]
	})
	if n > 0 && len(headers) > n {
		headers = headers[:n]
	}
	return headers
}

func (f *DSMFormatterImpl) writeDSMCSV(resp *domain.DSMResponse, w io.Writer) error {
	cw := csv.NewWriter(w)
	headers := resp.Results.SortedHeaders

	header := []string{"Header", "Fan-out", "Fan-in", "Coupling", "Stability"}
	header = append(header, headers...)
	if err := cw.Write(header); err != nil {
		return domain.NewOutputError("failed to write CSV header", err)
	}

	deps := make(map[string]map[string]bool, len(headers))
	for _, h := range headers {
		set := make(map[string]bool, len(resp.Results.HeaderToHeaders[h]))
		for _, d := range resp.Results.HeaderToHeaders[h] {
			set[d] = true
		}
		deps[h] = set
	}

	for _, h := range headers {
		m := resp.Results.Metrics[h]
		row := []string{h,
			fmt.Sprintf("%d", m.FanOut),
			fmt.Sprintf("%d", m.FanIn),
			fmt.Sprintf("%d", m.Coupling),
			fmt.Sprintf("%.4f", m.Stability),
		}
		for _, col := range headers {
			if deps[h][col] {
				row = append(row, "1")
			} else {
				row = append(row, "0")
			}
		}
		if err := cw.Write(row); err != nil {
			return domain.NewOutputError("failed to write CSV row", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return domain.NewOutputError("CSV writer error", err)
	}
	return nil
}

func (f *DSMFormatterImpl) writeRippleText(resp *domain.RippleResponse, w io.Writer) error {
	utils := NewFormatUtils()
	var b strings.Builder
	b.WriteString(utils.FormatMainHeader("Ripple Impact Report"))
	b.WriteString(utils.FormatSummaryStats(map[string]interface{}{
		"Changed Headers": len(resp.Headers),
		"Total Affected":  resp.TotalAffected,
	}))
	b.WriteString(utils.FormatSectionHeader("IMPACTS"))
	for _, impact := range resp.Impacts {
		b.WriteString(utils.FormatLabelWithIndent(SectionPadding, impact.Header, len(impact.AffectedSources)))
		for _, src := range impact.AffectedSources {
			b.WriteString(utils.FormatLabelWithIndent(ItemPadding, "affects", src))
		}
	}
	if len(resp.Warnings) > 0 {
		b.WriteString(utils.FormatWarningsSection(resp.Warnings))
	}
	_, err := w.Write([]byte(b.String()))
	return err
}

func (f *DSMFormatterImpl) writeDiffText(resp *domain.DiffResponse, w io.Writer) error {
	utils := NewFormatUtils()
	var b strings.Builder
	b.WriteString(utils.FormatMainHeader("Diff Report"))
	b.WriteString(utils.FormatSectionHeader("DELTA"))
	writeDeltaText(&b, utils, &resp.Delta)
	if len(resp.Warnings) > 0 {
		b.WriteString(utils.FormatWarningsSection(resp.Warnings))
	}
	_, err := w.Write([]byte(b.String()))
	return err
}

func (f *DSMFormatterImpl) writeHellText(resp *domain.HellResponse, w io.Writer) error {
	utils := NewFormatUtils()
	var b strings.Builder
	b.WriteString(utils.FormatMainHeader("Dependency Hell Report"))
	b.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Threshold", resp.Threshold))
	b.WriteString(utils.FormatSectionSeparator())
	b.WriteString(utils.FormatTableHeader("Header", "Usage", "ReverseImpact", "MaxChain"))
	for _, h := range resp.Headers {
		b.WriteString(fmt.Sprintf("%-40s %7d %14d %10d\n", h.Header, h.UsageCount, h.ReverseImpact, h.MaxChainLength))
	}
	_, err := w.Write([]byte(b.String()))
	return err
}

func (f *DSMFormatterImpl) writeHellCSV(resp *domain.HellResponse, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Header", "UsageCount", "ReverseImpact", "MaxChainLength"}); err != nil {
		return domain.NewOutputError("failed to write CSV header", err)
	}
	for _, h := range resp.Headers {
		row := []string{h.Header, fmt.Sprintf("%d", h.UsageCount), fmt.Sprintf("%d", h.ReverseImpact), fmt.Sprintf("%d", h.MaxChainLength)}
		if err := cw.Write(row); err != nil {
			return domain.NewOutputError("failed to write CSV row", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (f *DSMFormatterImpl) writeSummaryText(resp *domain.SummaryResponse, w io.Writer) error {
	utils := NewFormatUtils()
	var b strings.Builder
	b.WriteString(utils.FormatMainHeader("Build Health Summary"))
	b.WriteString(utils.FormatSummaryStats(map[string]interface{}{
		"Total Headers": resp.Stats.TotalHeaders,
		"Sparsity":      utils.FormatPercentage(resp.Stats.Sparsity * 100),
		"Health":        string(resp.Stats.Health),
		"Has Cycles":    resp.HasCycles,
		"Cycle Count":   resp.CycleCount,
	}))
	if len(resp.TopGodObjects) > 0 {
		b.WriteString(utils.FormatSectionHeader("TOP GOD OBJECTS"))
		for _, h := range resp.TopGodObjects {
			b.WriteString(utils.FormatLabelWithIndent(SectionPadding, "-", h))
		}
		b.WriteString(utils.FormatSectionSeparator())
	}
	if len(resp.TopHubs) > 0 {
		b.WriteString(utils.FormatSectionHeader("TOP HUBS"))
		for _, h := range resp.TopHubs {
			b.WriteString(utils.FormatLabelWithIndent(SectionPadding, "-", h))
		}
	}
	_, err := w.Write([]byte(b.String()))
	return err
}

// writeDOT emits a Graphviz DOT digraph with per-node attributes, per spec
// §6's graph export requirement.
func (f *DSMFormatterImpl) writeDOT(results domain.DSMAnalysisResults, w io.Writer) error {
	var b strings.Builder
	b.WriteString("digraph buildcheck {\n")
	for _, h := range results.SortedHeaders {
		m := results.Metrics[h]
		b.WriteString(fmt.Sprintf("  %q [label=%q fan_in=%d fan_out=%d coupling=%d stability=%.3f];\n",
			h, baseName(h), m.FanIn, m.FanOut, m.Coupling, m.Stability))
	}
	for _, h := range results.SortedHeaders {
		for _, dep := range results.DirectedGraph[h] {
			b.WriteString(fmt.Sprintf("  %q -> %q;\n", h, dep))
		}
	}
	b.WriteString("}\n")
	_, err := w.Write([]byte(b.String()))
	return err
}

func baseName(path string) string {
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
