package service

import (
	"context"
	"testing"

	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioServiceAnalyzeBaseline(t *testing.T) {
	svc := NewScenarioService()
	resp, err := svc.Analyze(context.Background(), domain.DemoRequest{Pattern: "baseline"})
	require.NoError(t, err)
	assert.Equal(t, "baseline", resp.Pattern)
	assert.False(t, resp.Results.HasCycles)
}

func TestScenarioServiceAnalyzeArchitecturalRegressionHasCycle(t *testing.T) {
	svc := NewScenarioService()
	resp, err := svc.Analyze(context.Background(), domain.DemoRequest{Pattern: "architectural_regression"})
	require.NoError(t, err)
	assert.True(t, resp.Results.HasCycles)
	assert.NotEmpty(t, resp.Results.Cycles)
}

func TestScenarioServiceAnalyzeUnknownPatternErrors(t *testing.T) {
	svc := NewScenarioService()
	_, err := svc.Analyze(context.Background(), domain.DemoRequest{Pattern: "nope"})
	assert.Error(t, err)
}

func TestScenarioServiceListPatternsIncludesBaseline(t *testing.T) {
	svc := NewScenarioService()
	assert.Contains(t, svc.ListPatterns(), "baseline")
}
