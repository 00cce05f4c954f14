package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSMUseCaseExecuteWritesReport(t *testing.T) {
	uc := NewDSMUseCase(fakeDSMService{resp: &domain.DSMResponse{}}, fakeFormatter{})
	var buf bytes.Buffer

	err := uc.Execute(context.Background(), domain.AnalysisRequest{
		BuildDirectory: "build",
		OutputWriter:   &buf,
		OutputFormat:   domain.OutputFormatJSON,
	})
	require.NoError(t, err)
	assert.Equal(t, "dsm-report", buf.String())
}

func TestDSMUseCaseExecuteRequiresBuildDirectory(t *testing.T) {
	uc := NewDSMUseCase(fakeDSMService{resp: &domain.DSMResponse{}}, fakeFormatter{})
	var buf bytes.Buffer

	err := uc.Execute(context.Background(), domain.AnalysisRequest{OutputWriter: &buf})
	require.Error(t, err)
	var de domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.ErrCodeInvalidInput, de.Code)
}

func TestDSMUseCaseExecutePropagatesAnalysisError(t *testing.T) {
	uc := NewDSMUseCase(fakeDSMService{err: assert.AnError}, fakeFormatter{})
	var buf bytes.Buffer

	err := uc.Execute(context.Background(), domain.AnalysisRequest{
		BuildDirectory: "build",
		OutputWriter:   &buf,
	})
	assert.Error(t, err)
}

func TestDSMUseCaseExecuteExportsCSVSideFile(t *testing.T) {
	uc := NewDSMUseCase(fakeDSMService{resp: &domain.DSMResponse{}}, fakeFormatter{})
	var buf bytes.Buffer
	csvPath := filepath.Join(t.TempDir(), "out.csv")

	err := uc.Execute(context.Background(), domain.AnalysisRequest{
		BuildDirectory: "build",
		OutputWriter:   &buf,
		ExportCSVPath:  csvPath,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, "dsm-report", string(data))
}

func TestGraphFormatFromExtensionInfersFormat(t *testing.T) {
	assert.Equal(t, domain.OutputFormatGraphML, graphFormatFromExtension("out.graphml"))
	assert.Equal(t, domain.OutputFormatGEXF, graphFormatFromExtension("out.gexf"))
	assert.Equal(t, domain.OutputFormatDOT, graphFormatFromExtension("out.dot"))
	assert.Equal(t, domain.OutputFormatJSON, graphFormatFromExtension("out.json"))
	assert.Equal(t, domain.OutputFormatJSON, graphFormatFromExtension("out.unknown"))
}
