package app

import (
	"context"
	"io"

	"github.com/ludo-technologies/buildcheck/domain"
	svc "github.com/ludo-technologies/buildcheck/service"
)

// HellUseCase orchestrates the `hell` subcommand.
type HellUseCase struct {
	service   domain.HellService
	formatter domain.DSMOutputFormatter
	output    domain.ReportWriter
}

func NewHellUseCase(service domain.HellService, formatter domain.DSMOutputFormatter) *HellUseCase {
	return &HellUseCase{
		service:   service,
		formatter: formatter,
		output:    svc.NewFileOutputWriter(nil),
	}
}

func (uc *HellUseCase) Execute(ctx context.Context, req domain.HellRequest) error {
	if req.BuildDirectory == "" {
		return domain.NewInvalidInputError("build directory is required", nil)
	}
	if req.OutputWriter == nil && req.OutputPath == "" {
		return domain.NewInvalidInputError("output writer or output path is required", nil)
	}

	resp, err := uc.service.Analyze(ctx, req)
	if err != nil {
		return domain.NewAnalysisError("dependency hell analysis failed", err)
	}

	var out io.Writer
	if req.OutputPath == "" {
		out = req.OutputWriter
	}
	return uc.output.Write(out, req.OutputPath, req.OutputFormat, req.NoOpen, func(w io.Writer) error {
		return uc.formatter.FormatHell(resp, req.OutputFormat, w)
	})
}
