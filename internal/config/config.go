// Package config loads buildcheck's TOML configuration, merging file values
// with explicitly-set CLI flags via FlagTracker.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/ludo-technologies/buildcheck/domain"
)

// Config is the merged configuration for a single analysis run.
type Config struct {
	Scan     ScanConfig     `mapstructure:"scan" toml:"scan"`
	Output   OutputConfig   `mapstructure:"output" toml:"output"`
	Analysis AnalysisConfig `mapstructure:"analysis" toml:"analysis"`
	Health   HealthConfig   `mapstructure:"health" toml:"health"`
}

// ScanConfig controls compilation-database loading and the dependency
// scanner invocation.
type ScanConfig struct {
	IncludeThirdParty bool   `mapstructure:"include_third_party" toml:"include_third_party"`
	ScannerTimeoutSec int    `mapstructure:"scanner_timeout_seconds" toml:"scanner_timeout_seconds"`
	BuildTool         string `mapstructure:"build_tool" toml:"build_tool"`
}

// OutputConfig controls formatting and report destination.
type OutputConfig struct {
	Format    string `mapstructure:"format" toml:"format"`
	Directory string `mapstructure:"directory" toml:"directory"`
	Top       int    `mapstructure:"top" toml:"top"`
	NoOpen    bool   `mapstructure:"no_open" toml:"no_open"`
}

// AnalysisConfig controls which headers are retained before the DSM core
// runs.
type AnalysisConfig struct {
	FilterPattern     string   `mapstructure:"filter_pattern" toml:"filter_pattern"`
	ExcludePatterns   []string `mapstructure:"exclude_patterns" toml:"exclude_patterns"`
	AdvancedMetrics   bool     `mapstructure:"advanced_metrics" toml:"advanced_metrics"`
	WeightByChurn     bool     `mapstructure:"weight_by_churn" toml:"weight_by_churn"`
	ChurnCommitWindow int      `mapstructure:"churn_commit_window" toml:"churn_commit_window"`
}

// HealthConfig holds the severity/health thresholds from domain/defaults.go
// as loaded from the TOML config. The analysis passes read the domain
// constants, not these fields.
type HealthConfig struct {
	HubThreshold                  int     `mapstructure:"hub_threshold" toml:"hub_threshold"`
	GodObjectThreshold            int     `mapstructure:"god_object_threshold" toml:"god_object_threshold"`
	StableInterfaceThreshold      float64 `mapstructure:"stable_interface_threshold" toml:"stable_interface_threshold"`
	OutlierZScore                 float64 `mapstructure:"outlier_z_score" toml:"outlier_z_score"`
	CouplingIncreaseCriticalPercent float64 `mapstructure:"coupling_increase_critical_percent" toml:"coupling_increase_critical_percent"`
}

// DefaultConfig returns the built-in configuration used when no
// .buildcheck.toml is found.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			IncludeThirdParty: false,
			ScannerTimeoutSec: domain.DefaultScannerTimeoutSeconds,
			BuildTool:         "ninja",
		},
		Output: OutputConfig{
			Format:    "text",
			Directory: "",
			Top:       20,
			NoOpen:    false,
		},
		Analysis: AnalysisConfig{
			FilterPattern:     "",
			ExcludePatterns:   []string{},
			AdvancedMetrics:   false,
			WeightByChurn:     false,
			ChurnCommitWindow: 90,
		},
		Health: HealthConfig{
			HubThreshold:                    domain.DefaultHubThreshold,
			GodObjectThreshold:               domain.DefaultGodObjectThreshold,
			StableInterfaceThreshold:         domain.DefaultStableInterfaceThreshold,
			OutlierZScore:                    domain.DefaultOutlierZScore,
			CouplingIncreaseCriticalPercent:   domain.DefaultCouplingIncreaseCriticalPercent,
		},
	}
}

// LoadConfig loads configuration from configPath, or from the current
// directory if empty.
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration, searching from targetPath (or
// the current directory) up to the filesystem root for .buildcheck.toml
// when configPath is not given explicitly.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	resolved, err := resolveConfigPath(configPath, targetPath)
	if err != nil {
		return nil, err
	}
	if resolved == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("failed to read config file %s", resolved), err)
	}

	var parsed Config
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("invalid TOML in %s", resolved), err)
	}

	cfg := DefaultConfig()
	mergeInto(cfg, &parsed)
	return cfg, nil
}

// resolveConfigPath finds the effective .buildcheck.toml path.
//   - If configPath is a file, it is used directly.
//   - If configPath is a directory (or empty), targetPath/cwd is searched
//     upward for .buildcheck.toml.
func resolveConfigPath(configPath string, targetPath string) (string, error) {
	if configPath != "" {
		info, err := os.Stat(configPath)
		if err != nil {
			return "", domain.NewConfigError(fmt.Sprintf("config file not found: %s", configPath), err)
		}
		if !info.IsDir() {
			return configPath, nil
		}
		return findConfigFile(configPath)
	}

	searchPath := targetPath
	if searchPath == "" {
		searchPath = "."
	}
	return findConfigFile(searchPath)
}

// findConfigFile walks up from startPath looking for .buildcheck.toml,
// returning "" (no error) when none exists anywhere up to the root.
func findConfigFile(startPath string) (string, error) {
	dir, err := normalizeSearchDir(startPath)
	if err != nil {
		return "", nil
	}

	for {
		candidate := filepath.Join(dir, ".buildcheck.toml")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func normalizeSearchDir(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return filepath.Dir(path), nil
	}
	if info.IsDir() {
		return filepath.Clean(path), nil
	}
	return filepath.Dir(path), nil
}

// mergeInto overlays non-zero fields of override onto cfg. Slices and
// strings overlay only when non-empty; bools and numbers always overlay
// since TOML has no "unset" representation distinct from the zero value,
// matching the teacher's whole-section replace strategy.
func mergeInto(cfg, override *Config) {
	if override.Scan.BuildTool != "" {
		cfg.Scan.BuildTool = override.Scan.BuildTool
	}
	if override.Scan.ScannerTimeoutSec != 0 {
		cfg.Scan.ScannerTimeoutSec = override.Scan.ScannerTimeoutSec
	}
	cfg.Scan.IncludeThirdParty = override.Scan.IncludeThirdParty

	if override.Output.Format != "" {
		cfg.Output.Format = override.Output.Format
	}
	if override.Output.Directory != "" {
		cfg.Output.Directory = override.Output.Directory
	}
	if override.Output.Top != 0 {
		cfg.Output.Top = override.Output.Top
	}
	cfg.Output.NoOpen = override.Output.NoOpen

	if override.Analysis.FilterPattern != "" {
		cfg.Analysis.FilterPattern = override.Analysis.FilterPattern
	}
	if len(override.Analysis.ExcludePatterns) > 0 {
		cfg.Analysis.ExcludePatterns = override.Analysis.ExcludePatterns
	}
	if override.Analysis.ChurnCommitWindow != 0 {
		cfg.Analysis.ChurnCommitWindow = override.Analysis.ChurnCommitWindow
	}
	cfg.Analysis.AdvancedMetrics = override.Analysis.AdvancedMetrics
	cfg.Analysis.WeightByChurn = override.Analysis.WeightByChurn

	if override.Health.HubThreshold != 0 {
		cfg.Health.HubThreshold = override.Health.HubThreshold
	}
	if override.Health.GodObjectThreshold != 0 {
		cfg.Health.GodObjectThreshold = override.Health.GodObjectThreshold
	}
	if override.Health.StableInterfaceThreshold != 0 {
		cfg.Health.StableInterfaceThreshold = override.Health.StableInterfaceThreshold
	}
	if override.Health.OutlierZScore != 0 {
		cfg.Health.OutlierZScore = override.Health.OutlierZScore
	}
	if override.Health.CouplingIncreaseCriticalPercent != 0 {
		cfg.Health.CouplingIncreaseCriticalPercent = override.Health.CouplingIncreaseCriticalPercent
	}
}

// Validate checks the configuration for internally inconsistent values.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "", "text", "json", "yaml", "csv", "html", "dot", "graphml", "gexf":
	default:
		return domain.NewConfigError(fmt.Sprintf("unsupported output format: %s", c.Output.Format), nil)
	}
	if c.Scan.ScannerTimeoutSec < 0 {
		return domain.NewConfigError("scan.scanner_timeout_seconds must be >= 0", nil)
	}
	if c.Output.Top < 0 {
		return domain.NewConfigError("output.top must be >= 0", nil)
	}
	return nil
}

// Save writes cfg to path as TOML, used by `buildcheck init`.
func Save(cfg *Config, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return domain.NewConfigError("failed to marshal configuration", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return domain.NewConfigError(fmt.Sprintf("failed to write config file %s", path), err)
	}
	return nil
}
