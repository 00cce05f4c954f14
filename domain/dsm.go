package domain

import (
	"context"
	"io"
)

// FileType classifies a path encountered by the loader and the scanner.
type FileType string

const (
	FileTypeSystem     FileType = "system"
	FileTypeThirdParty FileType = "third_party"
	FileTypeGenerated  FileType = "generated"
	FileTypeProject    FileType = "project"
)

// HealthBucket is the coarse health rating derived from sparsity, cycles
// and god-object counts.
type HealthBucket string

const (
	HealthExcellent HealthBucket = "excellent"
	HealthGood      HealthBucket = "good"
	HealthFair      HealthBucket = "fair"
	HealthPoor      HealthBucket = "poor"
)

// DeltaSeverity is the single severity tag attached to a DSMDelta.
type DeltaSeverity string

const (
	SeverityPositive DeltaSeverity = "positive"
	SeverityNeutral  DeltaSeverity = "neutral"
	SeverityModerate DeltaSeverity = "moderate"
	SeverityCritical DeltaSeverity = "critical"
)

// DSMMetrics is the per-header metric quadruple: coupling is always
// fan_in+fan_out and stability is fan_out/coupling (0.5 when coupling is 0).
type DSMMetrics struct {
	FanOut    int     `json:"fan_out" yaml:"fan_out"`
	FanIn     int     `json:"fan_in" yaml:"fan_in"`
	Coupling  int     `json:"coupling" yaml:"coupling"`
	Stability float64 `json:"stability" yaml:"stability"`
}

// MatrixStatistics is the whole-system summary of the DSM.
type MatrixStatistics struct {
	TotalHeaders      int          `json:"total_headers" yaml:"total_headers"`
	TotalActualDeps   int          `json:"total_actual_deps" yaml:"total_actual_deps"`
	TotalPossibleDeps int          `json:"total_possible_deps" yaml:"total_possible_deps"`
	Sparsity          float64      `json:"sparsity" yaml:"sparsity"`
	AvgDeps           float64      `json:"avg_deps" yaml:"avg_deps"`
	Health            HealthBucket `json:"health" yaml:"health"`
	HealthColor       string       `json:"health_color" yaml:"health_color"`
}

// Cycle is one strongly connected component of size >= 2, or a single
// self-looping vertex, with its members sorted lexicographically.
type Cycle struct {
	Members []string `json:"members" yaml:"members"`
}

// FeedbackEdge is the edge chosen, within a cycle, to suggest for removal.
type FeedbackEdge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Layer is one topological stratum of the SCC-condensed DAG.
type Layer struct {
	Number  int      `json:"number" yaml:"number"`
	Members []string `json:"members" yaml:"members"`
}

// AdvancedMetrics holds the optional, feature-flagged per-header metrics.
type AdvancedMetrics struct {
	PageRank    float64 `json:"pagerank" yaml:"pagerank"`
	Betweenness float64 `json:"betweenness" yaml:"betweenness"`
	ZScore      float64 `json:"z_score" yaml:"z_score"`
	IsHub       bool    `json:"is_hub" yaml:"is_hub"`
	IsGodObject bool    `json:"is_god_object" yaml:"is_god_object"`
	IsInterface bool    `json:"is_interface" yaml:"is_interface"`
	IsOutlier   bool    `json:"is_outlier" yaml:"is_outlier"`
}

// DSMAnalysisResults is the immutable analysis snapshot produced by the DSM
// core from an include graph.
type DSMAnalysisResults struct {
	SortedHeaders   []string                   `json:"sorted_headers" yaml:"sorted_headers"`
	Metrics         map[string]DSMMetrics      `json:"metrics" yaml:"metrics"`
	Advanced        map[string]AdvancedMetrics `json:"advanced,omitempty" yaml:"advanced,omitempty"`
	DirectedGraph   map[string][]string        `json:"directed_graph" yaml:"directed_graph"`
	Cycles          []Cycle                    `json:"cycles" yaml:"cycles"`
	HeadersInCycles []string                   `json:"headers_in_cycles" yaml:"headers_in_cycles"`
	FeedbackEdges   []FeedbackEdge             `json:"feedback_edges" yaml:"feedback_edges"`
	Layers          []Layer                    `json:"layers" yaml:"layers"`
	HeaderToLayer   map[string]int             `json:"header_to_layer" yaml:"header_to_layer"`
	HeaderToHeaders map[string][]string        `json:"header_to_headers" yaml:"header_to_headers"`
	ReverseDeps     map[string][]string        `json:"reverse_deps" yaml:"reverse_deps"`
	Stats           MatrixStatistics           `json:"stats" yaml:"stats"`
	HasCycles       bool                       `json:"has_cycles" yaml:"has_cycles"`
}

// ArchitecturalInsights accompanies a DSMDelta with the severity rubric,
// stability-change buckets, ripple impact, and ordered recommendations.
type ArchitecturalInsights struct {
	Severity                      DeltaSeverity `json:"severity" yaml:"severity"`
	BecameStable                  []string      `json:"became_stable" yaml:"became_stable"`
	BecameUnstable                []string      `json:"became_unstable" yaml:"became_unstable"`
	ThisCommitRebuildCount        int           `json:"this_commit_rebuild_count" yaml:"this_commit_rebuild_count"`
	OngoingRebuildDeltaPercentage float64       `json:"ongoing_rebuild_delta_percentage" yaml:"ongoing_rebuild_delta_percentage"`
	Recommendations               []string      `json:"recommendations" yaml:"recommendations"`
}

// DSMDelta is the differential comparison between two DSMAnalysisResults.
type DSMDelta struct {
	HeadersAdded          []string               `json:"headers_added" yaml:"headers_added"`
	HeadersRemoved        []string               `json:"headers_removed" yaml:"headers_removed"`
	CyclesAdded           []Cycle                `json:"cycles_added" yaml:"cycles_added"`
	CyclesRemoved         []Cycle                `json:"cycles_removed" yaml:"cycles_removed"`
	CouplingIncreased     map[string]int         `json:"coupling_increased" yaml:"coupling_increased"`
	CouplingDecreased     map[string]int         `json:"coupling_decreased" yaml:"coupling_decreased"`
	FeedbackEdgesAdded    []FeedbackEdge         `json:"feedback_edges_added" yaml:"feedback_edges_added"`
	FeedbackEdgesRemoved  []FeedbackEdge         `json:"feedback_edges_removed" yaml:"feedback_edges_removed"`
	ArchitecturalInsights *ArchitecturalInsights `json:"architectural_insights,omitempty" yaml:"architectural_insights,omitempty"`
}

// SnapshotMetadata is the metadata block of a persisted snapshot file.
type SnapshotMetadata struct {
	BuildDirectory        string   `json:"build_directory" yaml:"build_directory"`
	GitCommit             string   `json:"git_commit" yaml:"git_commit"`
	Hostname              string   `json:"hostname" yaml:"hostname"`
	Timestamp             string   `json:"timestamp" yaml:"timestamp"`
	FilterPattern         string   `json:"filter_pattern" yaml:"filter_pattern"`
	ExcludePatterns       []string `json:"exclude_patterns" yaml:"exclude_patterns"`
	UnfilteredHeaderCount int      `json:"unfiltered_header_count" yaml:"unfiltered_header_count"`
	FilteredHeaderCount   int      `json:"filtered_header_count" yaml:"filtered_header_count"`
}

// Snapshot is the full durable artifact: schema-versioned metadata, the
// unfiltered headers and include graph, and the computed results.
type Snapshot struct {
	SchemaVersion          string              `json:"_schema_version" yaml:"_schema_version"`
	Metadata               SnapshotMetadata    `json:"metadata" yaml:"metadata"`
	UnfilteredHeaders      []string            `json:"unfiltered_headers" yaml:"unfiltered_headers"`
	UnfilteredIncludeGraph map[string][]string `json:"unfiltered_include_graph" yaml:"unfiltered_include_graph"`
	Results                DSMAnalysisResults  `json:"-" yaml:"-"`
}

// ScanResult is the tuple produced by the include-graph builder.
type ScanResult struct {
	IncludeGraph    map[string][]string    `json:"include_graph" yaml:"include_graph"`
	AllHeaders      []string               `json:"all_headers" yaml:"all_headers"`
	SourceToDeps    map[string][]string    `json:"source_to_deps" yaml:"source_to_deps"`
	FileTypes       map[string]FileType    `json:"file_types" yaml:"file_types"`
	ScanTimeSeconds float64                `json:"scan_time_seconds" yaml:"scan_time_seconds"`
	FailedEntries   []string               `json:"failed_entries,omitempty" yaml:"failed_entries,omitempty"`
}

// ---------------------------------------------------------------------------
// Requests / responses, one per CLI subcommand.
// ---------------------------------------------------------------------------

// AnalysisRequest is the common input shared by dsm/ripple/diff/summary/hell:
// a build directory plus filters and output configuration.
type AnalysisRequest struct {
	BuildDirectory      string
	IncludeThirdParty   bool
	FilterPattern       string
	ExcludePatterns     []string
	Top                 int
	CyclesOnly          bool
	ShowLayers          bool
	AdvancedMetrics     bool
	BetweennessSeed     int64
	ExportCSVPath       string
	ExportGraphPath     string
	SaveResultsPath     string
	LoadBaselinePath    string
	CompareWithBuildDir string
	WeightByChurn       bool
	ChurnCommitWindow   int
	Verbose             bool

	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
	NoOpen       bool
}

// DSMResponse is the result of the `dsm` subcommand.
type DSMResponse struct {
	Results     DSMAnalysisResults `json:"results" yaml:"results"`
	Delta       *DSMDelta          `json:"delta,omitempty" yaml:"delta,omitempty"`
	Warnings    []string           `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	GeneratedAt string             `json:"generated_at" yaml:"generated_at"`
	Version     string             `json:"version" yaml:"version"`
}

// RippleRequest is the input for the `ripple` subcommand: a changed-file
// set resolved against a build directory's scan result.
type RippleRequest struct {
	BuildDirectory    string
	ChangedPaths      []string
	IncludeThirdParty bool
	WeightByChurn     bool
	ChurnCommitWindow int
	Verbose           bool

	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
	NoOpen       bool
}

// RippleImpact is the affected-sources result for one changed header.
type RippleImpact struct {
	Header          string   `json:"header" yaml:"header"`
	AffectedSources []string `json:"affected_sources" yaml:"affected_sources"`
	ChurnCount      int      `json:"churn_count,omitempty" yaml:"churn_count,omitempty"`
}

// RippleResponse is the result of the `ripple` subcommand.
type RippleResponse struct {
	Headers     []string       `json:"headers" yaml:"headers"`
	Sources     []string       `json:"sources" yaml:"sources"`
	Impacts     []RippleImpact `json:"impacts" yaml:"impacts"`
	TotalAffected int          `json:"total_affected" yaml:"total_affected"`
	Warnings    []string       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	GeneratedAt string         `json:"generated_at" yaml:"generated_at"`
	Version     string         `json:"version" yaml:"version"`
}

// DiffRequest is the input for the `diff` subcommand.
type DiffRequest struct {
	BuildDirectory      string
	CompareWithBuildDir string
	LoadBaselinePath    string
	VCSBaselineRef      string
	IncludeThirdParty   bool
	FilterPattern       string
	ExcludePatterns     []string
	WeightByChurn       bool
	ChurnCommitWindow   int
	Verbose             bool

	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
	NoOpen       bool
}

// DiffResponse is the result of the `diff` subcommand.
type DiffResponse struct {
	Baseline    DSMAnalysisResults `json:"baseline" yaml:"baseline"`
	Current     DSMAnalysisResults `json:"current" yaml:"current"`
	Delta       DSMDelta           `json:"delta" yaml:"delta"`
	Warnings    []string           `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	GeneratedAt string             `json:"generated_at" yaml:"generated_at"`
	Version     string             `json:"version" yaml:"version"`
}

// ScanRequest is the input for the `scan` subcommand (a standalone
// include-graph build, used also internally by dsm/ripple/diff).
type ScanRequest struct {
	BuildDirectory    string
	IncludeThirdParty bool
	FilterPattern     string
	ExcludePatterns   []string
	ScannerTimeoutSec int
	Verbose           bool
}

// HellRequest is the input for the `hell` subcommand (header cooccurrence /
// dependency-hell analysis, a supplemented feature).
type HellRequest struct {
	BuildDirectory    string
	Threshold         int
	IncludeThirdParty bool
	Top               int
	Verbose           bool

	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
	NoOpen       bool
}

// ProblematicHeader is one entry of a dependency-hell report.
type ProblematicHeader struct {
	Header             string   `json:"header" yaml:"header"`
	UsageCount         int      `json:"usage_count" yaml:"usage_count"`
	ReverseImpact      int      `json:"reverse_impact" yaml:"reverse_impact"`
	MaxChainLength     int      `json:"max_chain_length" yaml:"max_chain_length"`
	TopCooccurrences   []string `json:"top_cooccurrences" yaml:"top_cooccurrences"`
}

// HellResponse is the result of the `hell` subcommand.
type HellResponse struct {
	Threshold   int                 `json:"threshold" yaml:"threshold"`
	Headers     []ProblematicHeader `json:"headers" yaml:"headers"`
	GeneratedAt string              `json:"generated_at" yaml:"generated_at"`
	Version     string              `json:"version" yaml:"version"`
}

// SummaryRequest is the input for the `summary` subcommand.
type SummaryRequest struct {
	BuildDirectory    string
	IncludeThirdParty bool
	Top               int
	Verbose           bool

	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
	NoOpen       bool
}

// SummaryResponse is the single-screen health overview.
type SummaryResponse struct {
	Stats         MatrixStatistics `json:"stats" yaml:"stats"`
	HasCycles     bool             `json:"has_cycles" yaml:"has_cycles"`
	CycleCount    int              `json:"cycle_count" yaml:"cycle_count"`
	TopGodObjects []string         `json:"top_god_objects" yaml:"top_god_objects"`
	TopHubs       []string         `json:"top_hubs" yaml:"top_hubs"`
	GeneratedAt   string           `json:"generated_at" yaml:"generated_at"`
	Version       string           `json:"version" yaml:"version"`
}

// DoctorRequest is the input for the `doctor` subcommand.
type DoctorRequest struct {
	Verbose bool
}

// ToolStatus is one row of the `doctor` report.
type ToolStatus struct {
	Name      string `json:"name" yaml:"name"`
	Found     bool   `json:"found" yaml:"found"`
	Path      string `json:"path,omitempty" yaml:"path,omitempty"`
	Version   string `json:"version,omitempty" yaml:"version,omitempty"`
	TriedNames []string `json:"tried_names" yaml:"tried_names"`
}

// DoctorResponse is the result of the `doctor` subcommand.
type DoctorResponse struct {
	Scanner   ToolStatus `json:"scanner" yaml:"scanner"`
	BuildTool ToolStatus `json:"build_tool" yaml:"build_tool"`
	AllFound  bool       `json:"all_found" yaml:"all_found"`
}

// DemoRequest is the input for the `demo` subcommand.
type DemoRequest struct {
	Pattern string

	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
	NoOpen       bool
}

// DemoResponse wraps a named scenario's analysis results.
type DemoResponse struct {
	Pattern string             `json:"pattern" yaml:"pattern"`
	Results DSMAnalysisResults `json:"results" yaml:"results"`
}

// ---------------------------------------------------------------------------
// Service interfaces. Implementations live in service/, algorithms in
// internal/*; domain holds only types and contracts.
// ---------------------------------------------------------------------------

// ScanService builds an include graph from a build directory.
type ScanService interface {
	Scan(ctx context.Context, req ScanRequest) (*ScanResult, error)
}

// DSMService runs the DSM analysis core over a build directory (optionally
// diffing against a baseline).
type DSMService interface {
	Analyze(ctx context.Context, req AnalysisRequest) (*DSMResponse, error)
}

// RippleService computes affected-sources for a changed-file set.
type RippleService interface {
	Analyze(ctx context.Context, req RippleRequest) (*RippleResponse, error)
}

// DiffService compares two DSM snapshots, reconstructing a baseline from
// VCS history when necessary.
type DiffService interface {
	Analyze(ctx context.Context, req DiffRequest) (*DiffResponse, error)
}

// HellService runs the header-cooccurrence / dependency-hell analysis.
type HellService interface {
	Analyze(ctx context.Context, req HellRequest) (*HellResponse, error)
}

// SummaryService runs scan+DSM and renders a single-screen overview.
type SummaryService interface {
	Analyze(ctx context.Context, req SummaryRequest) (*SummaryResponse, error)
}

// DoctorService probes for the external scanner and build tool.
type DoctorService interface {
	Check(ctx context.Context, req DoctorRequest) (*DoctorResponse, error)
}

// ScenarioService looks up and analyzes a named synthetic scenario graph.
type ScenarioService interface {
	Analyze(ctx context.Context, req DemoRequest) (*DemoResponse, error)
	ListPatterns() []string
}

// SnapshotService persists and loads Snapshot documents.
type SnapshotService interface {
	Save(path string, snap *Snapshot) error
	Load(path string) (*Snapshot, error)
}

// VCSBaselineService reconstructs a baseline include graph from VCS history.
type VCSBaselineService interface {
	ReconstructBaseline(ctx context.Context, repoRoot, ref string, working *ScanResult) (*ScanResult, error)
	CommitHash(ctx context.Context, repoRoot string) (string, error)
	ChangeFrequency(ctx context.Context, repoRoot string, paths []string, commitWindow int) (map[string]int, error)
}

// DSMOutputFormatter formats and writes a DSMResponse/RippleResponse/etc.
// in one of the supported OutputFormats. One formatter per response type
// keeps the domain interfaces narrow, matching the teacher's one-formatter-
// per-analysis convention (ComplexityOutputFormatter, DepsOutputFormatter).
type DSMOutputFormatter interface {
	FormatDSM(resp *DSMResponse, format OutputFormat, w io.Writer) error
	FormatRipple(resp *RippleResponse, format OutputFormat, w io.Writer) error
	FormatDiff(resp *DiffResponse, format OutputFormat, w io.Writer) error
	FormatHell(resp *HellResponse, format OutputFormat, w io.Writer) error
	FormatSummary(resp *SummaryResponse, format OutputFormat, w io.Writer) error

	// ExportGraph writes the include graph as a node-link graph in the given
	// format (graphml, gexf, json, or dot), for the `--export-graph` flag.
	ExportGraph(results DSMAnalysisResults, format OutputFormat, w io.Writer) error
}
