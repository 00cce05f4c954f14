package service

import (
	"context"
	"os/exec"

	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/ludo-technologies/buildcheck/internal/scanner"
)

// DoctorServiceImpl implements domain.DoctorService: probes for the
// external dependency scanner and build tool on PATH.
type DoctorServiceImpl struct{}

func NewDoctorService() *DoctorServiceImpl {
	return &DoctorServiceImpl{}
}

func (s *DoctorServiceImpl) Check(ctx context.Context, req domain.DoctorRequest) (*domain.DoctorResponse, error) {
	scannerStatus := checkScanner(ctx)
	buildToolStatus := checkBuildTool()

	return &domain.DoctorResponse{
		Scanner:   scannerStatus,
		BuildTool: buildToolStatus,
		AllFound:  scannerStatus.Found && buildToolStatus.Found,
	}, nil
}

func checkScanner(ctx context.Context) domain.ToolStatus {
	candidates := domain.DefaultScannerCandidates()
	status := domain.ToolStatus{Name: "dependency scanner", TriedNames: candidates}

	name, ver, err := scanner.Find(ctx)
	if err != nil {
		return status
	}
	status.Found = true
	status.Version = ver
	if path, lookErr := exec.LookPath(name); lookErr == nil {
		status.Path = path
	}
	return status
}

func checkBuildTool() domain.ToolStatus {
	candidates := domain.DefaultBuildToolCandidates()
	status := domain.ToolStatus{Name: "build tool", TriedNames: candidates}

	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			status.Found = true
			status.Path = path
			return status
		}
	}
	return status
}
