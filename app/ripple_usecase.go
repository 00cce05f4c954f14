package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/buildcheck/domain"
	svc "github.com/ludo-technologies/buildcheck/service"
)

// RippleUseCase orchestrates the `ripple` subcommand.
type RippleUseCase struct {
	service   domain.RippleService
	formatter domain.DSMOutputFormatter
	output    domain.ReportWriter
}

func NewRippleUseCase(service domain.RippleService, formatter domain.DSMOutputFormatter) *RippleUseCase {
	return &RippleUseCase{
		service:   service,
		formatter: formatter,
		output:    svc.NewFileOutputWriter(nil),
	}
}

func (uc *RippleUseCase) Execute(ctx context.Context, req domain.RippleRequest) error {
	if err := uc.validateRequest(req); err != nil {
		return domain.NewInvalidInputError("invalid request", err)
	}

	resp, err := uc.service.Analyze(ctx, req)
	if err != nil {
		return domain.NewAnalysisError("ripple analysis failed", err)
	}

	var out io.Writer
	if req.OutputPath == "" {
		out = req.OutputWriter
	}
	return uc.output.Write(out, req.OutputPath, req.OutputFormat, req.NoOpen, func(w io.Writer) error {
		return uc.formatter.FormatRipple(resp, req.OutputFormat, w)
	})
}

func (uc *RippleUseCase) validateRequest(req domain.RippleRequest) error {
	if req.BuildDirectory == "" {
		return fmt.Errorf("build directory is required")
	}
	if len(req.ChangedPaths) == 0 {
		return fmt.Errorf("at least one changed path is required")
	}
	if req.OutputWriter == nil && req.OutputPath == "" {
		return fmt.Errorf("output writer or output path is required")
	}
	return nil
}
