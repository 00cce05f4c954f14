package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/buildcheck/domain"
	svc "github.com/ludo-technologies/buildcheck/service"
)

// DiffUseCase orchestrates the `diff` subcommand.
type DiffUseCase struct {
	service   domain.DiffService
	formatter domain.DSMOutputFormatter
	output    domain.ReportWriter
}

func NewDiffUseCase(service domain.DiffService, formatter domain.DSMOutputFormatter) *DiffUseCase {
	return &DiffUseCase{
		service:   service,
		formatter: formatter,
		output:    svc.NewFileOutputWriter(nil),
	}
}

func (uc *DiffUseCase) Execute(ctx context.Context, req domain.DiffRequest) error {
	if err := uc.validateRequest(req); err != nil {
		return domain.NewInvalidInputError("invalid request", err)
	}

	resp, err := uc.service.Analyze(ctx, req)
	if err != nil {
		return domain.NewAnalysisError("diff analysis failed", err)
	}

	var out io.Writer
	if req.OutputPath == "" {
		out = req.OutputWriter
	}
	return uc.output.Write(out, req.OutputPath, req.OutputFormat, req.NoOpen, func(w io.Writer) error {
		return uc.formatter.FormatDiff(resp, req.OutputFormat, w)
	})
}

func (uc *DiffUseCase) validateRequest(req domain.DiffRequest) error {
	if req.BuildDirectory == "" {
		return fmt.Errorf("build directory is required")
	}
	if req.CompareWithBuildDir == "" && req.LoadBaselinePath == "" && req.VCSBaselineRef == "" {
		return fmt.Errorf("one of --compare-with, --load-baseline, or a VCS baseline ref is required")
	}
	if req.OutputWriter == nil && req.OutputPath == "" {
		return fmt.Errorf("output writer or output path is required")
	}
	return nil
}
