package app

import (
	"context"
	"io"

	"github.com/ludo-technologies/buildcheck/domain"
	svc "github.com/ludo-technologies/buildcheck/service"
)

// SummaryUseCase orchestrates the `summary` subcommand.
type SummaryUseCase struct {
	service   domain.SummaryService
	formatter domain.DSMOutputFormatter
	output    domain.ReportWriter
}

func NewSummaryUseCase(service domain.SummaryService, formatter domain.DSMOutputFormatter) *SummaryUseCase {
	return &SummaryUseCase{
		service:   service,
		formatter: formatter,
		output:    svc.NewFileOutputWriter(nil),
	}
}

func (uc *SummaryUseCase) Execute(ctx context.Context, req domain.SummaryRequest) error {
	if req.BuildDirectory == "" {
		return domain.NewInvalidInputError("build directory is required", nil)
	}
	if req.OutputWriter == nil && req.OutputPath == "" {
		return domain.NewInvalidInputError("output writer or output path is required", nil)
	}

	resp, err := uc.service.Analyze(ctx, req)
	if err != nil {
		return domain.NewAnalysisError("summary analysis failed", err)
	}

	var out io.Writer
	if req.OutputPath == "" {
		out = req.OutputWriter
	}
	return uc.output.Write(out, req.OutputPath, req.OutputFormat, req.NoOpen, func(w io.Writer) error {
		return uc.formatter.FormatSummary(resp, req.OutputFormat, w)
	})
}
