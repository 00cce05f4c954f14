package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPatternsIsSortedAndNonEmpty(t *testing.T) {
	names := ListPatterns()
	require.NotEmpty(t, names)
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}

func TestBuildUnknownPatternErrors(t *testing.T) {
	_, err := Build("does-not-exist")
	assert.Error(t, err)
}

func TestBuildBaselineIncludesSoloHeader(t *testing.T) {
	scan, err := Build("baseline")
	require.NoError(t, err)
	assert.Contains(t, scan.AllHeaders, "Graphics/Texture.hpp")
	assert.Empty(t, scan.IncludeGraph["Graphics/Texture.hpp"])
}

func TestBuildBaselineHasNoCycleEdges(t *testing.T) {
	scan, err := Build("baseline")
	require.NoError(t, err)
	assert.NotContains(t, scan.IncludeGraph["Engine/Renderer.hpp"], "Engine/Core.hpp")
}

func TestBuildArchitecturalRegressionIntroducesCycle(t *testing.T) {
	scan, err := Build("architectural_regression")
	require.NoError(t, err)
	assert.Contains(t, scan.IncludeGraph["Engine/Core.hpp"], "Graphics/PostProcess.hpp")
	assert.Contains(t, scan.IncludeGraph["Graphics/PostProcess.hpp"], "Engine/Renderer.hpp")
	assert.Contains(t, scan.IncludeGraph["Engine/Renderer.hpp"], "Engine/Core.hpp")
}

func TestBuildGodObjectHasManyLeaves(t *testing.T) {
	scan, err := Build("god_object")
	require.NoError(t, err)
	assert.Len(t, scan.IncludeGraph["god.hpp"], 45)
}

func TestBuildProducesOneSyntheticSource(t *testing.T) {
	scan, err := Build("diamond")
	require.NoError(t, err)
	assert.Len(t, scan.SourceToDeps, 1)
	for _, deps := range scan.SourceToDeps {
		assert.ElementsMatch(t, scan.AllHeaders, deps)
	}
}
