package main

import (
	"context"

	"github.com/ludo-technologies/buildcheck/app"
	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/ludo-technologies/buildcheck/service"
	"github.com/spf13/cobra"
)

// SummaryCommand represents the `summary` command: a condensed build-health
// report (god objects, hubs, cycle count) for CI status checks.
type SummaryCommand struct {
	json bool
	yaml bool

	top               int
	includeThirdParty bool
}

func NewSummaryCommand() *SummaryCommand { return &SummaryCommand{} }

func NewSummaryCmd() *cobra.Command {
	c := NewSummaryCommand()

	cmd := &cobra.Command{
		Use:   "summary BUILD_DIR",
		Short: "Print a condensed build-health summary",
		Long: `Print a condensed summary of a build directory's include-graph health:
total headers, sparsity, cycle count, and the top god objects and hubs.

Examples:
  buildcheck summary build/
  buildcheck summary --json build/`,
		Args: cobra.ExactArgs(1),
		RunE: c.run,
	}

	cmd.Flags().BoolVar(&c.json, "json", false, "Generate JSON report file")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Generate YAML report file")
	cmd.Flags().IntVar(&c.top, "top", 5, "Number of god objects/hubs to list")
	cmd.Flags().BoolVar(&c.includeThirdParty, "include-third-party", false, "Include third-party headers")

	return cmd
}

func (c *SummaryCommand) run(cmd *cobra.Command, args []string) error {
	buildDir := args[0]
	verbose, _ := cmd.Flags().GetBool("verbose")

	req := domain.SummaryRequest{
		BuildDirectory:    buildDir,
		Top:               c.top,
		IncludeThirdParty: c.includeThirdParty,
		Verbose:           verbose,
		OutputWriter:      cmd.OutOrStdout(),
		OutputFormat:      domain.OutputFormatText,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if c.json && c.yaml {
		return domain.NewInvalidInputError("only one of --json, --yaml can be specified", nil)
	}

	targetPath := getTargetPathFromArgs(args)
	var err error
	switch {
	case c.json:
		req.OutputFormat = domain.OutputFormatJSON
		req.OutputPath, err = generateOutputFilePath("summary", "json", targetPath)
	case c.yaml:
		req.OutputFormat = domain.OutputFormatYAML
		req.OutputPath, err = generateOutputFilePath("summary", "yaml", targetPath)
	}
	if err != nil {
		return err
	}

	useCase := app.NewSummaryUseCase(service.NewSummaryService(), service.NewOutputFormatter())
	return useCase.Execute(ctx, req)
}
