package domain

import (
	"context"
	"io"
	"time"
)

// OutputFormat identifies a rendering format for a command's result.
type OutputFormat string

const (
	OutputFormatText    OutputFormat = "text"
	OutputFormatJSON    OutputFormat = "json"
	OutputFormatYAML    OutputFormat = "yaml"
	OutputFormatCSV     OutputFormat = "csv"
	OutputFormatHTML    OutputFormat = "html"
	OutputFormatDOT     OutputFormat = "dot"
	OutputFormatGraphML OutputFormat = "graphml"
	OutputFormatGEXF    OutputFormat = "gexf"
)

// FileReader abstracts filesystem discovery and reads so the analysis core
// never touches os directly.
type FileReader interface {
	// FileExists reports whether path exists and is a regular file.
	FileExists(path string) (bool, error)

	// ReadFile reads the content of a file.
	ReadFile(path string) ([]byte, error)

	// CollectSourceFiles recursively finds C/C++ translation units under the
	// given paths, applying include/exclude glob patterns.
	CollectSourceFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// IsValidSourceFile reports whether path has a recognized C/C++ source
	// or header extension.
	IsValidSourceFile(path string) bool
}

// ExecutableTask is a unit of work that ParallelExecutor can run concurrently.
type ExecutableTask interface {
	Name() string
	IsEnabled() bool
	Execute(ctx context.Context) (interface{}, error)
}

// ParallelExecutor runs a batch of ExecutableTask concurrently, bounding
// concurrency and wall-clock time.
type ParallelExecutor interface {
	Execute(ctx context.Context, tasks []ExecutableTask) error
	SetMaxConcurrency(max int)
	SetTimeout(timeout time.Duration)
}

// ProgressReporter reports incremental progress of a single long-running
// operation (e.g. scanning translation units).
type ProgressReporter interface {
	StartProgress(total int)
	UpdateProgress(label string, processed, total int)
	FinishProgress()
}

// ProgressManager tracks progress for multiple concurrently running named
// tasks (used by the scanner's parallel fan-out).
type ProgressManager interface {
	Initialize(total int)
	StartTask(name string)
	UpdateProgress(name string, processed, total int)
	CompleteTask(name string, success bool)
	SetWriter(w io.Writer)
	IsInteractive() bool
	Close()
}

// ErrorCategory buckets an error for user-facing recovery suggestions.
type ErrorCategory string

const (
	ErrorCategoryInput      ErrorCategory = "input"
	ErrorCategoryConfig     ErrorCategory = "config"
	ErrorCategoryTimeout    ErrorCategory = "timeout"
	ErrorCategoryOutput     ErrorCategory = "output"
	ErrorCategoryScanner    ErrorCategory = "scanner"
	ErrorCategoryVCS        ErrorCategory = "vcs"
	ErrorCategorySnapshot   ErrorCategory = "snapshot"
	ErrorCategoryUnknown    ErrorCategory = "unknown"
)

// CategorizedError pairs a raw error with a category and a friendly message.
type CategorizedError struct {
	Category ErrorCategory
	Message  string
	Original error
}

func (e *CategorizedError) Error() string {
	if e.Original != nil {
		return e.Message + ": " + e.Original.Error()
	}
	return e.Message
}

func (e *CategorizedError) Unwrap() error { return e.Original }

// ErrorCategorizer classifies an error and suggests a recovery path.
type ErrorCategorizer interface {
	Categorize(err error) *CategorizedError
	GetRecoverySuggestions(category ErrorCategory) []string
}
