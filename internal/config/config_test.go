package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Scan.IncludeThirdParty)
	assert.Equal(t, 600, cfg.Scan.ScannerTimeoutSec)
	assert.Equal(t, "ninja", cfg.Scan.BuildTool)

	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, 20, cfg.Output.Top)
	assert.False(t, cfg.Output.NoOpen)

	assert.Empty(t, cfg.Analysis.FilterPattern)
	assert.False(t, cfg.Analysis.AdvancedMetrics)
	assert.Equal(t, 90, cfg.Analysis.ChurnCommitWindow)

	assert.Equal(t, 15, cfg.Health.HubThreshold)
	assert.Equal(t, 50, cfg.Health.GodObjectThreshold)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Output.Format = "nonsense"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Scan.ScannerTimeoutSec = -1
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Output.Top = -1
	assert.Error(t, cfg.Validate())
}

func TestLoadConfigWithTargetNoFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadConfigWithTarget("", dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigWithTargetReadsTOML(t *testing.T) {
	dir := t.TempDir()
	tomlContent := `
[scan]
include_third_party = true
scanner_timeout_seconds = 120

[output]
format = "json"
top = 5

[analysis]
filter_pattern = "Engine/**"
exclude_patterns = ["third_party/**"]
advanced_metrics = true
`
	path := filepath.Join(dir, ".buildcheck.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlContent), 0o644))

	cfg, err := LoadConfigWithTarget("", dir)
	require.NoError(t, err)

	assert.True(t, cfg.Scan.IncludeThirdParty)
	assert.Equal(t, 120, cfg.Scan.ScannerTimeoutSec)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 5, cfg.Output.Top)
	assert.Equal(t, "Engine/**", cfg.Analysis.FilterPattern)
	assert.Equal(t, []string{"third_party/**"}, cfg.Analysis.ExcludePatterns)
	assert.True(t, cfg.Analysis.AdvancedMetrics)

	// Untouched sections keep their defaults.
	assert.Equal(t, "ninja", cfg.Scan.BuildTool)
	assert.Equal(t, 15, cfg.Health.HubThreshold)
}

func TestLoadConfigWithTargetSearchesParentDirectories(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path := filepath.Join(root, ".buildcheck.toml")
	require.NoError(t, os.WriteFile(path, []byte("[output]\nformat = \"yaml\"\n"), 0o644))

	cfg, err := LoadConfigWithTarget("", nested)
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Output.Format)
}

func TestLoadConfigWithTargetExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[output]\nformat = \"csv\"\n"), 0o644))

	cfg, err := LoadConfigWithTarget(path, "")
	require.NoError(t, err)
	assert.Equal(t, "csv", cfg.Output.Format)
}

func TestLoadConfigWithTargetMissingExplicitFileErrors(t *testing.T) {
	_, err := LoadConfigWithTarget("/does/not/exist.toml", "")
	assert.Error(t, err)
}

func TestSaveAndReloadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".buildcheck.toml")

	cfg := DefaultConfig()
	cfg.Output.Format = "json"
	cfg.Analysis.ExcludePatterns = []string{"build/**"}
	require.NoError(t, Save(cfg, path))

	reloaded, err := LoadConfigWithTarget(path, "")
	require.NoError(t, err)
	assert.Equal(t, "json", reloaded.Output.Format)
	assert.Equal(t, []string{"build/**"}, reloaded.Analysis.ExcludePatterns)
}
