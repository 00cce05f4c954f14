package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctorUseCaseExecuteTextReportsMissingTool(t *testing.T) {
	uc := NewDoctorUseCase(fakeDoctorService{resp: &domain.DoctorResponse{
		Scanner:   domain.ToolStatus{Name: "dependency scanner", Found: true, Path: "/usr/bin/scan"},
		BuildTool: domain.ToolStatus{Name: "build tool", Found: false, TriedNames: []string{"ninja", "make"}},
		AllFound:  false,
	}})
	var buf bytes.Buffer

	err := uc.Execute(context.Background(), domain.DoctorRequest{Verbose: true}, domain.OutputFormatText, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "OK")
	assert.Contains(t, out, "MISSING")
	assert.Contains(t, out, "Some required tools are missing")
}

func TestDoctorUseCaseExecuteJSON(t *testing.T) {
	uc := NewDoctorUseCase(fakeDoctorService{resp: &domain.DoctorResponse{AllFound: true}})
	var buf bytes.Buffer

	err := uc.Execute(context.Background(), domain.DoctorRequest{}, domain.OutputFormatJSON, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "all_found")
}

func TestDoctorUseCaseExecuteRequiresWriter(t *testing.T) {
	uc := NewDoctorUseCase(fakeDoctorService{resp: &domain.DoctorResponse{}})
	err := uc.Execute(context.Background(), domain.DoctorRequest{}, domain.OutputFormatText, nil)
	require.Error(t, err)
	var de domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.ErrCodeInvalidInput, de.Code)
}

func TestDoctorUseCaseExecutePropagatesCheckError(t *testing.T) {
	uc := NewDoctorUseCase(fakeDoctorService{err: assert.AnError})
	var buf bytes.Buffer
	err := uc.Execute(context.Background(), domain.DoctorRequest{}, domain.OutputFormatText, &buf)
	assert.Error(t, err)
}
