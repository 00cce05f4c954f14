package app

import (
	"fmt"
	"io"

	"context"

	"github.com/ludo-technologies/buildcheck/domain"
	svc "github.com/ludo-technologies/buildcheck/service"
)

// ScanUseCase orchestrates the standalone `scan` subcommand: it reports the
// raw include graph without running the DSM core, useful for inspecting
// what the scanner saw before analysis and filtering are applied.
type ScanUseCase struct {
	service domain.ScanService
	output  domain.ReportWriter
}

func NewScanUseCase(service domain.ScanService) *ScanUseCase {
	return &ScanUseCase{
		service: service,
		output:  svc.NewFileOutputWriter(nil),
	}
}

// Execute scans req.BuildDirectory and writes the result in format to w
// (or to outputPath, if set).
func (uc *ScanUseCase) Execute(ctx context.Context, req domain.ScanRequest, format domain.OutputFormat, w io.Writer, outputPath string, noOpen bool) error {
	if req.BuildDirectory == "" {
		return domain.NewInvalidInputError("build directory is required", nil)
	}
	if w == nil && outputPath == "" {
		return domain.NewInvalidInputError("output writer or output path is required", nil)
	}

	result, err := uc.service.Scan(ctx, req)
	if err != nil {
		return domain.NewAnalysisError("scan failed", err)
	}

	var out io.Writer
	if outputPath == "" {
		out = w
	}
	return uc.output.Write(out, outputPath, format, noOpen, func(dst io.Writer) error {
		return writeScanResult(result, format, dst)
	})
}

func writeScanResult(result *domain.ScanResult, format domain.OutputFormat, w io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return svc.WriteJSON(w, result)
	case domain.OutputFormatYAML:
		return svc.WriteYAML(w, result)
	case domain.OutputFormatText, "":
		fmt.Fprintf(w, "Scanned %d headers in %.2fs\n", len(result.AllHeaders), result.ScanTimeSeconds)
		fmt.Fprintf(w, "Source files: %d\n", len(result.SourceToDeps))
		if len(result.FailedEntries) > 0 {
			fmt.Fprintf(w, "Failed entries: %d\n", len(result.FailedEntries))
		}
		for _, h := range result.AllHeaders {
			fmt.Fprintf(w, "  %s\n", h)
		}
		return nil
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}
