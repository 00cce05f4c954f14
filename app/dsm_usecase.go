package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/buildcheck/domain"
	svc "github.com/ludo-technologies/buildcheck/service"
)

// DSMUseCase orchestrates the `dsm` subcommand: validate, analyze, format
// and write, matching the teacher's validate->analyze->format-and-write
// shape for each CLI subcommand.
type DSMUseCase struct {
	service   domain.DSMService
	formatter domain.DSMOutputFormatter
	output    domain.ReportWriter
}

// NewDSMUseCase creates a new DSM analysis use case.
func NewDSMUseCase(service domain.DSMService, formatter domain.DSMOutputFormatter) *DSMUseCase {
	return &DSMUseCase{
		service:   service,
		formatter: formatter,
		output:    svc.NewFileOutputWriter(nil),
	}
}

// WithOutputWriter overrides the default file output writer, e.g. to wire
// stderr status messages to a specific cobra command's stream.
func (uc *DSMUseCase) WithOutputWriter(w domain.ReportWriter) *DSMUseCase {
	uc.output = w
	return uc
}

// Execute runs the DSM analysis and writes the formatted report.
func (uc *DSMUseCase) Execute(ctx context.Context, req domain.AnalysisRequest) error {
	if err := uc.validateRequest(req); err != nil {
		return domain.NewInvalidInputError("invalid request", err)
	}

	resp, err := uc.service.Analyze(ctx, req)
	if err != nil {
		return domain.NewAnalysisError("DSM analysis failed", err)
	}

	if req.ExportCSVPath != "" {
		if err := uc.exportSideFile(req.ExportCSVPath, func(w io.Writer) error {
			return uc.formatter.FormatDSM(resp, domain.OutputFormatCSV, w)
		}); err != nil {
			return domain.NewOutputError("failed to export CSV", err)
		}
	}
	if req.ExportGraphPath != "" {
		graphFormat := graphFormatFromExtension(req.ExportGraphPath)
		if err := uc.exportSideFile(req.ExportGraphPath, func(w io.Writer) error {
			return uc.formatter.ExportGraph(resp.Results, graphFormat, w)
		}); err != nil {
			return domain.NewOutputError("failed to export graph", err)
		}
	}

	var out io.Writer
	if req.OutputPath == "" {
		out = req.OutputWriter
	}
	if err := uc.output.Write(out, req.OutputPath, req.OutputFormat, req.NoOpen, func(w io.Writer) error {
		return uc.formatter.FormatDSM(resp, req.OutputFormat, w)
	}); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

func (uc *DSMUseCase) exportSideFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}

// graphFormatFromExtension infers the export-graph format from the target
// file's extension, defaulting to JSON node-link when unrecognized.
func graphFormatFromExtension(path string) domain.OutputFormat {
	switch filepath.Ext(path) {
	case ".graphml":
		return domain.OutputFormatGraphML
	case ".gexf":
		return domain.OutputFormatGEXF
	case ".dot":
		return domain.OutputFormatDOT
	default:
		return domain.OutputFormatJSON
	}
}

func (uc *DSMUseCase) validateRequest(req domain.AnalysisRequest) error {
	if req.BuildDirectory == "" {
		return fmt.Errorf("build directory is required")
	}
	if req.OutputWriter == nil && req.OutputPath == "" {
		return fmt.Errorf("output writer or output path is required")
	}
	return nil
}
