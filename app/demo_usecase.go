package app

import (
	"context"
	"io"
	"time"

	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/ludo-technologies/buildcheck/internal/version"
	svc "github.com/ludo-technologies/buildcheck/service"
)

// DemoUseCase orchestrates the `demo` subcommand: it runs the DSM core over
// a built-in synthetic scenario instead of a real build directory, so
// newcomers can see the tool work without a project on hand.
type DemoUseCase struct {
	service   domain.ScenarioService
	formatter domain.DSMOutputFormatter
	output    domain.ReportWriter
}

func NewDemoUseCase(service domain.ScenarioService, formatter domain.DSMOutputFormatter) *DemoUseCase {
	return &DemoUseCase{
		service:   service,
		formatter: formatter,
		output:    svc.NewFileOutputWriter(nil),
	}
}

func (uc *DemoUseCase) Execute(ctx context.Context, req domain.DemoRequest) error {
	if req.Pattern == "" {
		return domain.NewInvalidInputError("pattern is required", nil)
	}
	if req.OutputWriter == nil && req.OutputPath == "" {
		return domain.NewInvalidInputError("output writer or output path is required", nil)
	}

	resp, err := uc.service.Analyze(ctx, req)
	if err != nil {
		return domain.NewAnalysisError("demo scenario failed", err)
	}

	dsmResp := &domain.DSMResponse{
		Results:     resp.Results,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Version:     version.Short(),
	}

	var out io.Writer
	if req.OutputPath == "" {
		out = req.OutputWriter
	}
	return uc.output.Write(out, req.OutputPath, req.OutputFormat, req.NoOpen, func(w io.Writer) error {
		return uc.formatter.FormatDSM(dsmResp, req.OutputFormat, w)
	})
}

// ListPatterns exposes the available demo scenario names for CLI help text.
func (uc *DemoUseCase) ListPatterns() []string {
	return uc.service.ListPatterns()
}
