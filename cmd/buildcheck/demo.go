package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/ludo-technologies/buildcheck/app"
	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/ludo-technologies/buildcheck/service"
	"github.com/spf13/cobra"
)

// DemoCommand represents the `demo` command: runs the DSM core over a
// built-in synthetic scenario, so the tool can be tried without a real
// build directory on hand.
type DemoCommand struct {
	json bool
	yaml bool
	list bool
}

func NewDemoCommand() *DemoCommand { return &DemoCommand{} }

func NewDemoCmd() *cobra.Command {
	c := NewDemoCommand()

	cmd := &cobra.Command{
		Use:   "demo [PATTERN]",
		Short: "Run the DSM core over a built-in synthetic scenario",
		Long: `Run the DSM core over a named synthetic include-graph scenario instead
of a real build directory. Use --list to see available scenario names.

Examples:
  buildcheck demo baseline
  buildcheck demo --list
  buildcheck demo --json architectural_regression`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.run,
	}

	cmd.Flags().BoolVar(&c.json, "json", false, "Generate JSON report file")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Generate YAML report file")
	cmd.Flags().BoolVar(&c.list, "list", false, "List available scenario names")

	return cmd
}

func (c *DemoCommand) run(cmd *cobra.Command, args []string) error {
	useCase := app.NewDemoUseCase(service.NewScenarioService(), service.NewOutputFormatter())

	if c.list {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(useCase.ListPatterns(), "\n"))
		return nil
	}

	if len(args) == 0 {
		return domain.NewInvalidInputError("a scenario pattern is required (use --list to see options)", nil)
	}
	pattern := args[0]

	req := domain.DemoRequest{
		Pattern:      pattern,
		OutputWriter: cmd.OutOrStdout(),
		OutputFormat: domain.OutputFormatText,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if c.json && c.yaml {
		return domain.NewInvalidInputError("only one of --json, --yaml can be specified", nil)
	}

	targetPath := "demo-" + pattern
	var err error
	switch {
	case c.json:
		req.OutputFormat = domain.OutputFormatJSON
		req.OutputPath, err = generateOutputFilePath("demo", "json", targetPath)
	case c.yaml:
		req.OutputFormat = domain.OutputFormatYAML
		req.OutputPath, err = generateOutputFilePath("demo", "yaml", targetPath)
	}
	if err != nil {
		return err
	}

	return useCase.Execute(ctx, req)
}
