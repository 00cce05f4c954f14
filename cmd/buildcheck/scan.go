package main

import (
	"context"

	"github.com/ludo-technologies/buildcheck/app"
	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/ludo-technologies/buildcheck/service"
	"github.com/spf13/cobra"
)

// ScanCommand represents the `scan` command: a standalone dump of the raw
// include graph, useful for inspecting scanner output before filtering or
// analysis.
type ScanCommand struct {
	json bool
	yaml bool

	filter            string
	exclude           []string
	includeThirdParty bool
	timeoutSec        int
}

func NewScanCommand() *ScanCommand { return &ScanCommand{} }

func NewScanCmd() *cobra.Command {
	c := NewScanCommand()

	cmd := &cobra.Command{
		Use:   "scan BUILD_DIR",
		Short: "Scan a build directory and report the raw include graph",
		Long: `Invoke the compiler dependency scanner over a build directory's
compilation database and report the resulting include graph, without
running DSM analysis.

Examples:
  buildcheck scan build/
  buildcheck scan --json build/`,
		Args: cobra.ExactArgs(1),
		RunE: c.run,
	}

	cmd.Flags().BoolVar(&c.json, "json", false, "Generate JSON report file")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Generate YAML report file")
	cmd.Flags().StringVar(&c.filter, "filter", "", "Include only paths matching GLOB")
	cmd.Flags().StringArrayVar(&c.exclude, "exclude", nil, "Exclude paths matching GLOB (repeatable)")
	cmd.Flags().BoolVar(&c.includeThirdParty, "include-third-party", false, "Include third-party headers")
	cmd.Flags().IntVar(&c.timeoutSec, "timeout", 600, "Scanner wall-clock timeout in seconds")

	return cmd
}

func (c *ScanCommand) run(cmd *cobra.Command, args []string) error {
	buildDir := args[0]
	verbose, _ := cmd.Flags().GetBool("verbose")

	req := domain.ScanRequest{
		BuildDirectory:    buildDir,
		IncludeThirdParty: c.includeThirdParty,
		FilterPattern:     c.filter,
		ExcludePatterns:   c.exclude,
		ScannerTimeoutSec: c.timeoutSec,
		Verbose:           verbose,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if c.json && c.yaml {
		return domain.NewInvalidInputError("only one of --json, --yaml can be specified", nil)
	}

	format := domain.OutputFormatText
	outputPath := ""
	targetPath := getTargetPathFromArgs(args)
	var err error
	switch {
	case c.json:
		format = domain.OutputFormatJSON
		outputPath, err = generateOutputFilePath("scan", "json", targetPath)
	case c.yaml:
		format = domain.OutputFormatYAML
		outputPath, err = generateOutputFilePath("scan", "yaml", targetPath)
	}
	if err != nil {
		return err
	}

	useCase := app.NewScanUseCase(service.NewScanService())
	return useCase.Execute(ctx, req, format, cmd.OutOrStdout(), outputPath, true)
}
