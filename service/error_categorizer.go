package service

import (
	"strings"

	"github.com/ludo-technologies/buildcheck/domain"
)

// ErrorCategorizerImpl implements the ErrorCategorizer interface
type ErrorCategorizerImpl struct {
	patterns map[domain.ErrorCategory][]string
}

// NewErrorCategorizer creates a new error categorizer
func NewErrorCategorizer() domain.ErrorCategorizer {
	return &ErrorCategorizerImpl{
		patterns: initializeErrorPatterns(),
	}
}

// initializeErrorPatterns initializes error pattern mappings
func initializeErrorPatterns() map[domain.ErrorCategory][]string {
	return map[domain.ErrorCategory][]string{
		domain.ErrorCategoryInput: {
			"invalid input",
			"no files found",
			"no headers found",
			"path",
			"directory",
			"file not found",
			"cannot access",
			"permission denied",
		},
		domain.ErrorCategoryConfig: {
			"config",
			"configuration",
			"invalid format",
			"invalid settings",
			"missing configuration",
			"toml",
		},
		domain.ErrorCategoryTimeout: {
			"timeout",
			"deadline",
			"context canceled",
			"operation timed out",
			"exceeded",
		},
		domain.ErrorCategoryOutput: {
			"write",
			"output",
			"cannot create",
			"failed to generate",
			"report generation",
		},
		domain.ErrorCategoryScanner: {
			"compile_commands.json",
			"compilation database",
			"scanner",
			"ninja",
			"build tool",
			"not found in path",
		},
		domain.ErrorCategoryVCS: {
			"not a git repository",
			"invalid git reference",
			"failed to resolve",
			"failed to read commit",
			"failed to walk commit history",
		},
		domain.ErrorCategorySnapshot: {
			"schema version",
			"snapshot",
			"build directory mismatch",
			"hostname mismatch",
		},
	}
}

// Categorize determines the category of an error
func (ec *ErrorCategorizerImpl) Categorize(err error) *domain.CategorizedError {
	if err == nil {
		return nil
	}

	errMsg := strings.ToLower(err.Error())

	// Check categories in a fixed order, most specific first, so a message
	// that matches several categories always gets the same one.
	order := []domain.ErrorCategory{
		domain.ErrorCategoryScanner, domain.ErrorCategoryVCS, domain.ErrorCategorySnapshot,
		domain.ErrorCategoryTimeout, domain.ErrorCategoryConfig, domain.ErrorCategoryOutput,
		domain.ErrorCategoryInput,
	}
	for _, category := range order {
		if containsAnyPattern(errMsg, ec.patterns[category]) {
			message := ec.getCategoryMessage(category)
			return &domain.CategorizedError{
				Category: category,
				Message:  message,
				Original: err,
			}
		}
	}

	// Default to unknown category
	return &domain.CategorizedError{
		Category: domain.ErrorCategoryUnknown,
		Message:  err.Error(),
		Original: err,
	}
}

// GetRecoverySuggestions returns recovery suggestions for an error category
func (ec *ErrorCategorizerImpl) GetRecoverySuggestions(category domain.ErrorCategory) []string {
	suggestions := map[domain.ErrorCategory][]string{
		domain.ErrorCategoryInput: {
			"Check that the build directory contains source and header files",
			"Try: buildcheck doctor to confirm the scanner can see your sources",
			"Ensure you have read permissions for the target files",
			"Use absolute paths if relative paths are causing issues",
		},
		domain.ErrorCategoryConfig: {
			"Verify configuration file format and values",
			"Try: buildcheck init to generate a valid config file",
			"Check for syntax errors in buildcheck.toml",
			"Ensure all required configuration fields are present",
		},
		domain.ErrorCategoryTimeout: {
			"Consider analyzing a smaller build directory or increasing the timeout",
			"Try: scope the scan to a single target's compile_commands.json entries",
			"Check if any headers are pulling in unusually deep include chains",
		},
		domain.ErrorCategoryOutput: {
			"Check write permissions and output format validity",
			"Use --format text or check file system permissions",
			"Ensure the output directory exists and is writable",
			"Try writing to a different location",
		},
		domain.ErrorCategoryScanner: {
			"Run: buildcheck doctor to locate the external scanner and build tool",
			"Ensure compile_commands.json exists or can be regenerated",
			"Check that the configured scanner binary is on PATH",
		},
		domain.ErrorCategoryVCS: {
			"Confirm the build directory is inside a git working tree",
			"Check that the given ref (branch, tag, or commit) exists",
			"Try: git log --oneline -1 <ref> to verify the reference resolves",
		},
		domain.ErrorCategorySnapshot: {
			"Regenerate the snapshot with the current buildcheck version",
			"Confirm the snapshot was produced from the same build directory and host",
			"Snapshots are not portable across machines; reconstruct a baseline from VCS instead",
		},
		domain.ErrorCategoryUnknown: {
			"Run with --verbose for detailed error information",
			"Try: buildcheck scan . --verbose or check the project issue tracker",
			"Report the issue if it persists",
		},
	}

	if sug, ok := suggestions[category]; ok {
		return sug
	}
	return []string{"Check the error message for more details"}
}

// getCategoryMessage returns a user-friendly message for an error category
func (ec *ErrorCategorizerImpl) getCategoryMessage(category domain.ErrorCategory) string {
	messages := map[domain.ErrorCategory]string{
		domain.ErrorCategoryInput:    "Failed to process input files or directories",
		domain.ErrorCategoryConfig:   "Configuration file or settings error",
		domain.ErrorCategoryTimeout:  "Analysis timed out",
		domain.ErrorCategoryOutput:   "Failed to generate or write output",
		domain.ErrorCategoryScanner:  "External scanner or build tool error",
		domain.ErrorCategoryVCS:      "Git repository or reference error",
		domain.ErrorCategorySnapshot: "Snapshot file error",
		domain.ErrorCategoryUnknown:  "An unexpected error occurred",
	}

	if msg, ok := messages[category]; ok {
		return msg
	}
	return "An error occurred"
}

// containsAnyPattern checks if a string contains any of the given patterns
func containsAnyPattern(str string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(str, pattern) {
			return true
		}
	}
	return false
}
