package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDSMServiceWithFake(result *domain.ScanResult) *DSMServiceImpl {
	return &DSMServiceImpl{
		scanner:   fakeScanService{result: result},
		snapshots: NewSnapshotService(),
		vcs:       NewVCSBaselineService(),
	}
}

func TestDSMServiceAnalyzeNoBaseline(t *testing.T) {
	svc := newDSMServiceWithFake(baselineScanResult())
	resp, err := svc.Analyze(context.Background(), domain.AnalysisRequest{BuildDirectory: "build"})
	require.NoError(t, err)
	assert.Nil(t, resp.Delta)
	assert.False(t, resp.Results.HasCycles)
	assert.NotEmpty(t, resp.Version)
	assert.NotEmpty(t, resp.GeneratedAt)
}

func TestDSMServiceAnalyzeSaveAndLoadBaseline(t *testing.T) {
	dir := t.TempDir()
	snapPath := filepath.Join(dir, "baseline.json")

	svc := newDSMServiceWithFake(baselineScanResult())
	_, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		BuildDirectory:  "build",
		SaveResultsPath: snapPath,
	})
	require.NoError(t, err)

	info, err := os.Stat(snapPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	resp, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		BuildDirectory:   "build",
		LoadBaselinePath: snapPath,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Delta)
	assert.Equal(t, 0, len(resp.Delta.HeadersAdded))
	assert.Equal(t, 0, len(resp.Delta.HeadersRemoved))
}

func TestDSMServiceAnalyzeLoadBaselineMissingFileErrors(t *testing.T) {
	svc := newDSMServiceWithFake(baselineScanResult())
	_, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		BuildDirectory:   "build",
		LoadBaselinePath: "/nonexistent/baseline.json",
	})
	require.Error(t, err)
	var de domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.ErrCodeSnapshot, de.Code)
}

func TestDSMServiceAnalyzeCompareWithBuildDirProducesDelta(t *testing.T) {
	current := baselineScanResult()

	baseline := baselineScanResult()
	delete(baseline.IncludeGraph, "UI/HUD.hpp")
	baseline.AllHeaders = baseline.AllHeaders[:0]
	for h := range baseline.IncludeGraph {
		baseline.AllHeaders = append(baseline.AllHeaders, h)
	}

	calls := 0
	svc := &DSMServiceImpl{
		scanner: fakeSwitchingScanService{
			first:  baseline,
			second: current,
			calls:  &calls,
		},
		snapshots: NewSnapshotService(),
		vcs:       NewVCSBaselineService(),
	}

	resp, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		BuildDirectory:      "build",
		CompareWithBuildDir: "other-build",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Delta)
	assert.Contains(t, resp.Delta.HeadersAdded, "UI/HUD.hpp")
}

// fakeSwitchingScanService returns `second` on the first Scan call (the
// current build directory) and `first` on every subsequent call (the
// baseline scan of CompareWithBuildDir), since DSMServiceImpl.Analyze scans
// the current build directory before the comparison one.
type fakeSwitchingScanService struct {
	first, second *domain.ScanResult
	calls         *int
}

func (f fakeSwitchingScanService) Scan(ctx context.Context, req domain.ScanRequest) (*domain.ScanResult, error) {
	*f.calls++
	if *f.calls == 1 {
		return f.second, nil
	}
	return f.first, nil
}
