package app

import (
	"context"
	"io"

	"github.com/ludo-technologies/buildcheck/domain"
)

// fakeDSMService, fakeRippleService, etc. stand in for the service package's
// real implementations so use case tests can exercise validation and
// formatting wiring without a build directory on disk.

type fakeDSMService struct {
	resp *domain.DSMResponse
	err  error
}

func (f fakeDSMService) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.DSMResponse, error) {
	return f.resp, f.err
}

type fakeRippleService struct {
	resp *domain.RippleResponse
	err  error
}

func (f fakeRippleService) Analyze(ctx context.Context, req domain.RippleRequest) (*domain.RippleResponse, error) {
	return f.resp, f.err
}

type fakeDiffService struct {
	resp *domain.DiffResponse
	err  error
}

func (f fakeDiffService) Analyze(ctx context.Context, req domain.DiffRequest) (*domain.DiffResponse, error) {
	return f.resp, f.err
}

type fakeHellService struct {
	resp *domain.HellResponse
	err  error
}

func (f fakeHellService) Analyze(ctx context.Context, req domain.HellRequest) (*domain.HellResponse, error) {
	return f.resp, f.err
}

type fakeSummaryService struct {
	resp *domain.SummaryResponse
	err  error
}

func (f fakeSummaryService) Analyze(ctx context.Context, req domain.SummaryRequest) (*domain.SummaryResponse, error) {
	return f.resp, f.err
}

type fakeDoctorService struct {
	resp *domain.DoctorResponse
	err  error
}

func (f fakeDoctorService) Check(ctx context.Context, req domain.DoctorRequest) (*domain.DoctorResponse, error) {
	return f.resp, f.err
}

type fakeScenarioService struct {
	resp     *domain.DemoResponse
	err      error
	patterns []string
}

func (f fakeScenarioService) Analyze(ctx context.Context, req domain.DemoRequest) (*domain.DemoResponse, error) {
	return f.resp, f.err
}

func (f fakeScenarioService) ListPatterns() []string {
	return f.patterns
}

type fakeScanServiceApp struct {
	result *domain.ScanResult
	err    error
}

func (f fakeScanServiceApp) Scan(ctx context.Context, req domain.ScanRequest) (*domain.ScanResult, error) {
	return f.result, f.err
}

// fakeFormatter implements domain.DSMOutputFormatter, writing a fixed marker
// string per report type so tests can assert the use case reached formatting
// without depending on the real formatter's output shape.
type fakeFormatter struct {
	err error
}

func (f fakeFormatter) FormatDSM(resp *domain.DSMResponse, format domain.OutputFormat, w io.Writer) error {
	if f.err != nil {
		return f.err
	}
	_, err := w.Write([]byte("dsm-report"))
	return err
}

func (f fakeFormatter) FormatRipple(resp *domain.RippleResponse, format domain.OutputFormat, w io.Writer) error {
	if f.err != nil {
		return f.err
	}
	_, err := w.Write([]byte("ripple-report"))
	return err
}

func (f fakeFormatter) FormatDiff(resp *domain.DiffResponse, format domain.OutputFormat, w io.Writer) error {
	if f.err != nil {
		return f.err
	}
	_, err := w.Write([]byte("diff-report"))
	return err
}

func (f fakeFormatter) FormatHell(resp *domain.HellResponse, format domain.OutputFormat, w io.Writer) error {
	if f.err != nil {
		return f.err
	}
	_, err := w.Write([]byte("hell-report"))
	return err
}

func (f fakeFormatter) FormatSummary(resp *domain.SummaryResponse, format domain.OutputFormat, w io.Writer) error {
	if f.err != nil {
		return f.err
	}
	_, err := w.Write([]byte("summary-report"))
	return err
}

func (f fakeFormatter) ExportGraph(results domain.DSMAnalysisResults, format domain.OutputFormat, w io.Writer) error {
	if f.err != nil {
		return f.err
	}
	_, err := w.Write([]byte("graph-export"))
	return err
}
