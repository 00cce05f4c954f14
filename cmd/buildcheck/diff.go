package main

import (
	"context"

	"github.com/ludo-technologies/buildcheck/app"
	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/ludo-technologies/buildcheck/service"
	"github.com/spf13/cobra"
)

// DiffCommand represents the `diff` command: a delta between a current
// build directory and a baseline (a second build directory, a saved
// snapshot, or a VCS reference).
type DiffCommand struct {
	json bool
	yaml bool

	compareWith      string
	loadBaseline     string
	vcsBaseline      string
	filter           string
	exclude          []string
	includeThirdParty bool
	weightByChurn    bool
	churnWindow      int
}

func NewDiffCommand() *DiffCommand { return &DiffCommand{} }

func NewDiffCmd() *cobra.Command {
	c := NewDiffCommand()

	cmd := &cobra.Command{
		Use:   "diff BUILD_DIR",
		Short: "Compare two DSM snapshots and report the delta",
		Long: `Compare the current build directory against a baseline: another build
directory, a saved snapshot, or a VCS commit reference. At least one baseline
source must be given; when several are, --load-baseline is used first, then
--compare-with, then --vcs-baseline.

Examples:
  buildcheck diff --compare-with other-build/ build/
  buildcheck diff --load-baseline baseline.json build/
  buildcheck diff --vcs-baseline HEAD~10 build/`,
		Args: cobra.ExactArgs(1),
		RunE: c.run,
	}

	cmd.Flags().BoolVar(&c.json, "json", false, "Generate JSON report file")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Generate YAML report file")
	cmd.Flags().StringVar(&c.compareWith, "compare-with", "", "Compare with another build directory")
	cmd.Flags().StringVar(&c.loadBaseline, "load-baseline", "", "Load baseline snapshot from FILE")
	cmd.Flags().StringVar(&c.vcsBaseline, "vcs-baseline", "", "Reconstruct baseline from a VCS commit reference")
	cmd.Flags().StringVar(&c.filter, "filter", "", "Include only paths matching GLOB")
	cmd.Flags().StringArrayVar(&c.exclude, "exclude", nil, "Exclude paths matching GLOB (repeatable)")
	cmd.Flags().BoolVar(&c.includeThirdParty, "include-third-party", false, "Include third-party headers")
	cmd.Flags().BoolVar(&c.weightByChurn, "weight-by-churn", false, "Annotate delta insights with VCS commit-churn counts")
	cmd.Flags().IntVar(&c.churnWindow, "churn-window", 90, "Number of recent commits to consider for churn weighting")

	return cmd
}

func (c *DiffCommand) run(cmd *cobra.Command, args []string) error {
	buildDir := args[0]
	verbose, _ := cmd.Flags().GetBool("verbose")

	req := domain.DiffRequest{
		BuildDirectory:      buildDir,
		CompareWithBuildDir: c.compareWith,
		LoadBaselinePath:    c.loadBaseline,
		VCSBaselineRef:      c.vcsBaseline,
		IncludeThirdParty:   c.includeThirdParty,
		FilterPattern:       c.filter,
		ExcludePatterns:     c.exclude,
		WeightByChurn:       c.weightByChurn,
		ChurnCommitWindow:   c.churnWindow,
		Verbose:             verbose,
		OutputWriter:        cmd.OutOrStdout(),
		OutputFormat:        domain.OutputFormatText,
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
		req.OutputPath, err = generateOutputFilePath("diff", "json", targetPath)
	case c.yaml:
		req.OutputFormat = domain.OutputFormatYAML
		req.OutputPath, err = generateOutputFilePath("diff", "yaml", targetPath)
	}
	if err != nil {
		return err
	}

	useCase := c.createUseCase()
	return useCase.Execute(ctx, req)
}

func (c *DiffCommand) createUseCase() *app.DiffUseCase {
	diffSvc := service.NewDiffService()
	formatter := service.NewOutputFormatter()
	return app.NewDiffUseCase(diffSvc, formatter)
}
