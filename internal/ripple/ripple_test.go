package ripple

import (
	"testing"

	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scan() *domain.ScanResult {
	return &domain.ScanResult{
		IncludeGraph: map[string][]string{
			"widget.hpp": {"base.hpp"},
			"button.hpp": {"widget.hpp"},
		},
		SourceToDeps: map[string][]string{
			"main.cpp":   {"base.hpp", "widget.hpp"},
			"button.cpp": {"base.hpp", "widget.hpp", "button.hpp"},
			"other.cpp":  {},
		},
		FileTypes: map[string]domain.FileType{
			"base.hpp":   domain.FileTypeProject,
			"widget.hpp": domain.FileTypeProject,
			"button.hpp": domain.FileTypeProject,
		},
	}
}

func TestAnalyzeDirectAndTransitiveImpact(t *testing.T) {
	resp, err := Analyze(scan(), []string{"base.hpp"})
	require.NoError(t, err)
	require.Len(t, resp.Impacts, 1)
	assert.ElementsMatch(t, []string{"main.cpp", "button.cpp"}, resp.Impacts[0].AffectedSources)
	assert.Equal(t, 2, resp.TotalAffected)
}

func TestAnalyzeLeafHeaderOnlyAffectsDirectIncluders(t *testing.T) {
	resp, err := Analyze(scan(), []string{"button.hpp"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"button.cpp"}, resp.Impacts[0].AffectedSources)
}

func TestAnalyzeChangedSourceAffectsOnlyItself(t *testing.T) {
	resp, err := Analyze(scan(), []string{"main.cpp"})
	require.NoError(t, err)
	assert.Equal(t, []string{"main.cpp"}, resp.Impacts[0].AffectedSources)
}

func TestAnalyzeUnresolvedPathErrors(t *testing.T) {
	_, err := Analyze(scan(), []string{"nonexistent.hpp"})
	assert.Error(t, err)
}

func TestAnalyzeMultipleChangedPathsUnionsSources(t *testing.T) {
	resp, err := Analyze(scan(), []string{"base.hpp", "button.hpp"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"main.cpp", "button.cpp"}, resp.Sources)
	assert.Equal(t, 2, resp.TotalAffected)
}
