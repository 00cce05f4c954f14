package main

import (
	"context"

	"github.com/ludo-technologies/buildcheck/app"
	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/ludo-technologies/buildcheck/service"
	"github.com/spf13/cobra"
)

// RippleCommand represents the `ripple` command: the set of source
// translation units that must recompile for a set of changed headers.
type RippleCommand struct {
	json bool
	yaml bool

	includeThirdParty bool
	weightByChurn     bool
	churnWindow       int
}

func NewRippleCommand() *RippleCommand { return &RippleCommand{} }

func NewRippleCmd() *cobra.Command {
	c := NewRippleCommand()

	cmd := &cobra.Command{
		Use:   "ripple BUILD_DIR CHANGED_HEADER [CHANGED_HEADER...]",
		Short: "Compute the ripple effect of changed headers",
		Long: `Given a build directory and one or more changed header paths, report
every source translation unit that transitively depends on them and must
recompile.

Examples:
  buildcheck ripple build/ Engine/Core.hpp
  buildcheck ripple --json build/ Engine/Core.hpp Utils/Math.hpp`,
		Args: cobra.MinimumNArgs(2),
		RunE: c.run,
	}

	cmd.Flags().BoolVar(&c.json, "json", false, "Generate JSON report file")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Generate YAML report file")
	cmd.Flags().BoolVar(&c.includeThirdParty, "include-third-party", false, "Include third-party headers")
	cmd.Flags().BoolVar(&c.weightByChurn, "weight-by-churn", false, "Annotate impacts with VCS commit-churn counts")
	cmd.Flags().IntVar(&c.churnWindow, "churn-window", 90, "Number of recent commits to consider for churn weighting")

	return cmd
}

func (c *RippleCommand) run(cmd *cobra.Command, args []string) error {
	buildDir := args[0]
	changed := args[1:]
	verbose, _ := cmd.Flags().GetBool("verbose")

	req := domain.RippleRequest{
		BuildDirectory:    buildDir,
		ChangedPaths:      changed,
		IncludeThirdParty: c.includeThirdParty,
		WeightByChurn:     c.weightByChurn,
		ChurnCommitWindow: c.churnWindow,
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
		req.OutputPath, err = generateOutputFilePath("ripple", "json", targetPath)
	case c.yaml:
		req.OutputFormat = domain.OutputFormatYAML
		req.OutputPath, err = generateOutputFilePath("ripple", "yaml", targetPath)
	}
	if err != nil {
		return err
	}

	useCase := c.createUseCase(cmd)
	return useCase.Execute(ctx, req)
}

func (c *RippleCommand) createUseCase(cmd *cobra.Command) *app.RippleUseCase {
	rippleSvc := service.NewRippleService()
	formatter := service.NewOutputFormatter()
	return app.NewRippleUseCase(rippleSvc, formatter)
}
