package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/buildcheck/domain"
	svc "github.com/ludo-technologies/buildcheck/service"
)

// DoctorUseCase orchestrates the `doctor` subcommand. DoctorResponse isn't
// one of the DSMOutputFormatter's report types, so it renders directly
// rather than going through that formatter.
type DoctorUseCase struct {
	service domain.DoctorService
}

func NewDoctorUseCase(service domain.DoctorService) *DoctorUseCase {
	return &DoctorUseCase{service: service}
}

func (uc *DoctorUseCase) Execute(ctx context.Context, req domain.DoctorRequest, format domain.OutputFormat, w io.Writer) error {
	if w == nil {
		return domain.NewInvalidInputError("output writer is required", nil)
	}

	resp, err := uc.service.Check(ctx, req)
	if err != nil {
		return domain.NewAnalysisError("doctor check failed", err)
	}

	switch format {
	case domain.OutputFormatJSON:
		return svc.WriteJSON(w, resp)
	case domain.OutputFormatYAML:
		return svc.WriteYAML(w, resp)
	case domain.OutputFormatText, "":
		return writeDoctorText(resp, req.Verbose, w)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func writeDoctorText(resp *domain.DoctorResponse, verbose bool, w io.Writer) error {
	fmt.Fprintln(w, "buildcheck doctor")
	fmt.Fprintln(w)
	writeToolStatus(w, resp.Scanner, verbose)
	writeToolStatus(w, resp.BuildTool, verbose)
	fmt.Fprintln(w)
	if resp.AllFound {
		fmt.Fprintln(w, "All required tools found.")
	} else {
		fmt.Fprintln(w, "Some required tools are missing. See above.")
	}
	return nil
}

func writeToolStatus(w io.Writer, status domain.ToolStatus, verbose bool) {
	mark := "MISSING"
	if status.Found {
		mark = "OK"
	}
	fmt.Fprintf(w, "[%-7s] %s", mark, status.Name)
	if status.Found {
		if status.Path != "" {
			fmt.Fprintf(w, " (%s)", status.Path)
		}
		if status.Version != "" {
			fmt.Fprintf(w, " %s", status.Version)
		}
	}
	fmt.Fprintln(w)
	if verbose && len(status.TriedNames) > 0 {
		fmt.Fprintf(w, "    tried: %v\n", status.TriedNames)
	}
}
