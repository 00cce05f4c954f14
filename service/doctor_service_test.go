package service

import (
	"context"
	"testing"

	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctorServiceCheckReportsBothTools(t *testing.T) {
	svc := NewDoctorService()
	resp, err := svc.Check(context.Background(), domain.DoctorRequest{})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Scanner.TriedNames)
	assert.NotEmpty(t, resp.BuildTool.TriedNames)
	assert.Equal(t, resp.Scanner.Found && resp.BuildTool.Found, resp.AllFound)
}
