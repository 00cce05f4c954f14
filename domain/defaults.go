package domain

// Default severity thresholds for the DSM analysis core. The analysis and
// diff passes read these constants directly; internal/config loads a
// HealthConfig with the same fields, but it is not passed to those passes.
// The values have no strong theoretical justification.
const (
	// DefaultHubThreshold is the (fan_in + fan_out) value at or above which
	// a header is flagged as a hub.
	DefaultHubThreshold = 15

	// DefaultGodObjectThreshold is the fan_out value at or above which a
	// header is flagged as a god object.
	DefaultGodObjectThreshold = 50

	// DefaultStableInterfaceThreshold is the stability value below which a
	// header is considered a stable interface.
	DefaultStableInterfaceThreshold = 0.3

	// DefaultOutlierZScore is the coupling z-score above which a header is
	// flagged as a coupling outlier.
	DefaultOutlierZScore = 2.5

	// DefaultCouplingIncreaseCriticalPercent is the average-coupling percent
	// increase, commit over commit, that alone makes a delta's severity
	// critical.
	DefaultCouplingIncreaseCriticalPercent = 25.0

	// DefaultBecameUnstableThreshold is the stability value used to decide
	// became_stable / became_unstable transitions in a delta.
	DefaultBecameUnstableThreshold = 0.5
)

// Betweenness sampling defaults.
const (
	// DefaultBetweennessExactCutoff is the |V| above which betweenness
	// centrality is sampled rather than computed exactly.
	DefaultBetweennessExactCutoff = 2000

	// DefaultBetweennessSampleSize is the k in k = min(1000, |V|) pivots
	// used for the sampled case.
	DefaultBetweennessSampleSize = 1000

	// DefaultBetweennessSeed is the default deterministic seed for pivot
	// sampling, so advanced metrics reproduce across runs.
	DefaultBetweennessSeed = int64(1)
)

// Health bucket thresholds, applied in order (excellent checked first). The
// sparsity values are floors (a bucket needs sparsity at or above its
// value); the cycle and god-object values are ceilings (at or below).
const (
	DefaultHealthExcellentMaxSparsity = 0.97
	DefaultHealthGoodMaxSparsity      = 0.93
	DefaultHealthFairMaxSparsity      = 0.85

	DefaultHealthExcellentMaxCycles = 0
	DefaultHealthGoodMaxCycles      = 2
	DefaultHealthFairMaxCycles      = 6

	DefaultHealthExcellentMaxGodObjects = 0
	DefaultHealthGoodMaxGodObjects      = 2
	DefaultHealthFairMaxGodObjects      = 5
)

// Scanner and VCS timeouts, per §5.
const (
	// DefaultScannerTimeoutSeconds is the wall-clock timeout for the
	// external dependency scanner invocation.
	DefaultScannerTimeoutSeconds = 600

	// DefaultVCSTimeoutSeconds is the short timeout applied to every VCS
	// operation used during baseline reconstruction.
	DefaultVCSTimeoutSeconds = 5
)

// Scanner candidate executable names, tried in order; the first that
// responds to --version wins.
func DefaultScannerCandidates() []string {
	return []string{"clang-scan-deps", "clang-scan-deps-18", "clang-scan-deps-17"}
}

// Build-tool candidate executable names for compdb regeneration.
func DefaultBuildToolCandidates() []string {
	return []string{"ninja"}
}

// DefaultSystemPrefixes returns path prefixes classified as FileTypeSystem.
func DefaultSystemPrefixes() []string {
	return []string{
		"/usr/include",
		"/usr/local/include",
		"/usr/lib/gcc",
		"/usr/lib/llvm",
		"/Library/Developer/CommandLineTools",
		"/Applications/Xcode.app",
	}
}

// DefaultThirdPartyPrefixes returns path fragments classified as
// FileTypeThirdParty when they appear anywhere in a path.
func DefaultThirdPartyPrefixes() []string {
	return []string{
		"/third_party/",
		"/vendor/",
		"/_deps/",
		"/.conan/",
		"/node_modules/",
	}
}

// DefaultGeneratedSuffixes returns filename suffixes classified as
// FileTypeGenerated.
func DefaultGeneratedSuffixes() []string {
	return []string{".pb.h", ".pb.cc", ".gen.h", ".generated.h", "_autogen.h"}
}

// DefaultSourceExtensions are the translation-unit extensions recognized by
// the compilation-database loader.
func DefaultSourceExtensions() []string {
	return []string{".c", ".cc", ".cpp", ".cxx"}
}

// DefaultHeaderExtensions are the header extensions recognized when
// classifying a working-tree change as a header versus a source file.
func DefaultHeaderExtensions() []string {
	return []string{".h", ".hpp", ".hh", ".hxx", ".inl"}
}

// CurrentSnapshotSchemaVersion is the engine's current snapshot schema.
// Loading rejects any document whose schema_version differs from this,
// with no implicit migration.
const CurrentSnapshotSchemaVersion = "1.1"
