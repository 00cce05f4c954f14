// Package snapshot persists and loads DSMAnalysisResults baselines as
// gzip-compressed, schema-versioned JSON envelopes. Only the unfiltered
// header universe and include graph are persisted; computed results are
// always re-derived on load, by replaying the stored filter/exclude
// patterns over the unfiltered graph and re-running the DSM core, so a
// baseline stays valid even when the binary's metric formulas change
// between the save and the load.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/ludo-technologies/buildcheck/internal/dsm"
	"github.com/ludo-technologies/buildcheck/internal/pathclassifier"
)

// Save writes snap to path as gzip-compressed, indented, deterministic JSON.
func Save(path string, snap *domain.Snapshot) error {
	if snap.SchemaVersion == "" {
		snap.SchemaVersion = domain.CurrentSnapshotSchemaVersion
	}
	sort.Strings(snap.UnfilteredHeaders)
	sort.Strings(snap.Metadata.ExcludePatterns)

	f, err := os.Create(path)
	if err != nil {
		return domain.NewConfigError(fmt.Sprintf("failed to create snapshot file %s", path), err)
	}
	defer f.Close()

	gw, err := gzip.NewWriterLevel(f, gzip.BestCompression)
	if err != nil {
		return domain.NewConfigError("failed to initialize snapshot compressor", err)
	}
	defer gw.Close()

	enc := json.NewEncoder(gw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return domain.NewConfigError(fmt.Sprintf("failed to write snapshot to %s", path), err)
	}
	return nil
}

// Load reads and decompresses a snapshot file, rejecting any schema version
// other than the one this binary understands; there is no automatic
// migration between schema versions.
func Load(path string) (*domain.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("failed to open snapshot file %s", path), err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("%s is not a valid gzip-compressed snapshot", path), err)
	}
	defer gr.Close()

	var snap domain.Snapshot
	if err := json.NewDecoder(gr).Decode(&snap); err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("invalid JSON in snapshot %s", path), err)
	}

	if snap.SchemaVersion != domain.CurrentSnapshotSchemaVersion {
		return nil, domain.NewConfigError(
			fmt.Sprintf("snapshot schema version mismatch: file has %q, this build requires %q; regenerate the baseline",
				snap.SchemaVersion, domain.CurrentSnapshotSchemaVersion), nil)
	}
	snap.Results = rederive(&snap)
	return &snap, nil
}

// rederive rebuilds DSMAnalysisResults from the persisted unfiltered header
// universe and include graph, replaying the filter and exclude patterns
// that were in effect when the snapshot was saved. This is what makes
// Results safe to drop from the JSON encoding: it is never the thing that
// is trusted, only ever a cache of what this function computes.
func rederive(snap *domain.Snapshot) domain.DSMAnalysisResults {
	buildDirectory := snap.Metadata.BuildDirectory
	projectRoot := filepath.Dir(filepath.Clean(buildDirectory))
	classifier := pathclassifier.New(projectRoot, buildDirectory)

	headers := snap.UnfilteredHeaders
	if snap.Metadata.FilterPattern != "" || len(snap.Metadata.ExcludePatterns) > 0 {
		filtered := classifier.ApplyFilters(headers, snap.Metadata.FilterPattern, snap.Metadata.ExcludePatterns)
		headers = filtered.Kept
	}

	keptSet := make(map[string]bool, len(headers))
	for _, h := range headers {
		keptSet[h] = true
	}
	graph := make(map[string][]string, len(headers))
	for h, deps := range snap.UnfilteredIncludeGraph {
		if !keptSet[h] {
			continue
		}
		var kept []string
		for _, d := range deps {
			if keptSet[d] {
				kept = append(kept, d)
			}
		}
		graph[h] = kept
	}

	scan := &domain.ScanResult{IncludeGraph: graph, AllHeaders: headers}
	return dsm.Analyze(scan, dsm.Options{})
}

// BuildMetadata assembles a SnapshotMetadata block for a fresh save,
// stamping the current build directory, git commit, hostname and time.
func BuildMetadata(buildDirectory, gitCommit, filterPattern string, excludePatterns []string, unfilteredCount, filteredCount int) domain.SnapshotMetadata {
	sorted := make([]string, len(excludePatterns))
	copy(sorted, excludePatterns)
	sort.Strings(sorted)

	return domain.SnapshotMetadata{
		BuildDirectory:        buildDirectory,
		GitCommit:             gitCommit,
		Hostname:              hostname(),
		Timestamp:             time.Now().Format(time.RFC3339),
		FilterPattern:         filterPattern,
		ExcludePatterns:       sorted,
		UnfilteredHeaderCount: unfilteredCount,
		FilteredHeaderCount:   filteredCount,
	}
}

func hostname() string {
	if h, err := os.Hostname(); err == nil {
		return h
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return "unknown"
}

// ValidateOrigin enforces that a loaded baseline was produced against the
// same build directory and host as the current run, matching the original
// tool's strict baseline-compatibility check.
func ValidateOrigin(snap *domain.Snapshot, currentBuildDirectory string) error {
	if snap.Metadata.BuildDirectory != currentBuildDirectory {
		return domain.NewSnapshotError(
			fmt.Sprintf("baseline build directory %q does not match current %q", snap.Metadata.BuildDirectory, currentBuildDirectory), nil)
	}
	if snap.Metadata.Hostname != hostname() {
		return domain.NewSnapshotError(
			fmt.Sprintf("baseline host %q does not match current host %q", snap.Metadata.Hostname, hostname()), nil)
	}
	return nil
}
