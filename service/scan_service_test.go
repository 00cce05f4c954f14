package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/stretchr/testify/assert"
)

func TestScanServiceScanMissingBuildDirectoryErrors(t *testing.T) {
	svc := NewScanService()
	_, err := svc.Scan(context.Background(), domain.ScanRequest{
		BuildDirectory: filepath.Join(t.TempDir(), "does-not-exist"),
	})
	assert.Error(t, err)
}

func TestProjectRootForBuildDirectoryIsParent(t *testing.T) {
	assert.Equal(t, "/repo", projectRootFor("/repo/build"))
	assert.Equal(t, "/repo", projectRootFor("/repo/build/"))
}
