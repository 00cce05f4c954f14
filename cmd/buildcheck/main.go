package main

import (
	"context"
	"errors"
	"os"

	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/ludo-technologies/buildcheck/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "buildcheck",
	Short: "A Dependency Structure Matrix analyzer for C/C++ include graphs",
	Long: `buildcheck builds a Dependency Structure Matrix from a compiler-driven
scan of a C/C++ project's include graph, and reports coupling, stability,
cycles, and layering.

Features:
  • Ninja compilation-database driven include scanning
  • Coupling, stability, and layering metrics
  • Cycle detection with feedback-edge identification
  • Ripple-effect and differential (baseline) analysis`,
	Version: version.Short(),
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	// Add main subcommands
	rootCmd.AddCommand(NewDSMCmd())
	rootCmd.AddCommand(NewRippleCmd())
	rootCmd.AddCommand(NewDiffCmd())
	rootCmd.AddCommand(NewScanCmd())
	rootCmd.AddCommand(NewHellCmd())
	rootCmd.AddCommand(NewSummaryCmd())
	rootCmd.AddCommand(NewDoctorCmd())
	rootCmd.AddCommand(NewDemoCmd())
	rootCmd.AddCommand(NewVersionCmd())
	rootCmd.AddCommand(NewInitCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps a returned error to the process exit code the error
// handling design requires: 1 for validation/schema mismatches, 2 for
// external-tool and unexpected failures, 130 for cancellation.
func exitCodeFor(err error) int {
	if errors.Is(err, context.Canceled) {
		return 130
	}

	var de domain.DomainError
	if errors.As(err, &de) {
		switch de.Code {
		case domain.ErrCodeInvalidInput, domain.ErrCodeSnapshot:
			return 1
		case domain.ErrCodeCancelled:
			return 130
		default:
			return 2
		}
	}
	return 1
}
