package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotServiceSaveAndLoadRoundTrips(t *testing.T) {
	svc := NewSnapshotService()
	path := filepath.Join(t.TempDir(), "baseline.json")

	snap := &domain.Snapshot{
		UnfilteredHeaders:      []string{"Utils/Logger.hpp", "Engine/Core.hpp"},
		UnfilteredIncludeGraph: map[string][]string{"Engine/Core.hpp": {"Utils/Logger.hpp"}},
		Metadata: domain.SnapshotMetadata{
			BuildDirectory: "build",
		},
	}
	require.NoError(t, svc.Save(path, snap))

	loaded, err := svc.Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.CurrentSnapshotSchemaVersion, loaded.SchemaVersion)
	assert.ElementsMatch(t, snap.UnfilteredHeaders, loaded.UnfilteredHeaders)
	assert.Equal(t, "build", loaded.Metadata.BuildDirectory)
	assert.Contains(t, loaded.Results.Metrics, "Engine/Core.hpp")
	assert.Equal(t, 1, loaded.Results.Metrics["Engine/Core.hpp"].FanOut)
}

func TestSnapshotServiceLoadMissingFileErrors(t *testing.T) {
	svc := NewSnapshotService()
	_, err := svc.Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestSnapshotServiceLoadRejectsNonGzipFile(t *testing.T) {
	svc := NewSnapshotService()
	path := filepath.Join(t.TempDir(), "plain.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	_, err := svc.Load(path)
	assert.Error(t, err)
}
