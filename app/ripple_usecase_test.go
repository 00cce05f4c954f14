package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRippleUseCaseExecuteWritesReport(t *testing.T) {
	uc := NewRippleUseCase(fakeRippleService{resp: &domain.RippleResponse{}}, fakeFormatter{})
	var buf bytes.Buffer

	err := uc.Execute(context.Background(), domain.RippleRequest{
		BuildDirectory: "build",
		ChangedPaths:   []string{"Utils/Logger.hpp"},
		OutputWriter:   &buf,
	})
	require.NoError(t, err)
	assert.Equal(t, "ripple-report", buf.String())
}

func TestRippleUseCaseExecuteRequiresChangedPaths(t *testing.T) {
	uc := NewRippleUseCase(fakeRippleService{resp: &domain.RippleResponse{}}, fakeFormatter{})
	var buf bytes.Buffer

	err := uc.Execute(context.Background(), domain.RippleRequest{
		BuildDirectory: "build",
		OutputWriter:   &buf,
	})
	require.Error(t, err)
	var de domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.ErrCodeInvalidInput, de.Code)
}

func TestRippleUseCaseExecutePropagatesAnalysisError(t *testing.T) {
	uc := NewRippleUseCase(fakeRippleService{err: assert.AnError}, fakeFormatter{})
	var buf bytes.Buffer

	err := uc.Execute(context.Background(), domain.RippleRequest{
		BuildDirectory: "build",
		ChangedPaths:   []string{"Utils/Logger.hpp"},
		OutputWriter:   &buf,
	})
	assert.Error(t, err)
}
