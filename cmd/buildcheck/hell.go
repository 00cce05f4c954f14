package main

import (
	"context"

	"github.com/ludo-technologies/buildcheck/app"
	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/ludo-technologies/buildcheck/service"
	"github.com/spf13/cobra"
)

// HellCommand represents the `hell` command: headers that are expensive to
// touch, ranked by fan-in, reverse-dependency chain length, and
// co-occurrence with other frequently-included headers.
type HellCommand struct {
	json bool
	yaml bool
	csv  bool

	threshold         int
	top               int
	includeThirdParty bool
}

func NewHellCommand() *HellCommand { return &HellCommand{} }

func NewHellCmd() *cobra.Command {
	c := NewHellCommand()

	cmd := &cobra.Command{
		Use:   "hell BUILD_DIR",
		Short: "Rank headers by dependency-hell severity",
		Long: `Rank headers whose fan-in meets a threshold by their reverse
rebuild impact, longest reverse-dependency chain, and the headers they most
often appear alongside.

Examples:
  buildcheck hell build/
  buildcheck hell --threshold 10 --top 10 build/`,
		Args: cobra.ExactArgs(1),
		RunE: c.run,
	}

	cmd.Flags().BoolVar(&c.json, "json", false, "Generate JSON report file")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Generate YAML report file")
	cmd.Flags().BoolVar(&c.csv, "csv", false, "Generate CSV report file")
	cmd.Flags().IntVar(&c.threshold, "threshold", 5, "Minimum fan-in for a header to be considered")
	cmd.Flags().IntVar(&c.top, "top", 20, "Limit ranked output to N rows")
	cmd.Flags().BoolVar(&c.includeThirdParty, "include-third-party", false, "Include third-party headers")

	return cmd
}

func (c *HellCommand) run(cmd *cobra.Command, args []string) error {
	buildDir := args[0]
	verbose, _ := cmd.Flags().GetBool("verbose")

	req := domain.HellRequest{
		BuildDirectory:    buildDir,
		Threshold:         c.threshold,
		IncludeThirdParty: c.includeThirdParty,
		Top:               c.top,
		Verbose:           verbose,
		OutputWriter:      cmd.OutOrStdout(),
		OutputFormat:      domain.OutputFormatText,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	formatCount := 0
	for _, f := range []bool{c.json, c.yaml, c.csv} {
		if f {
			formatCount++
		}
	}
	if formatCount > 1 {
		return domain.NewInvalidInputError("only one of --json, --yaml, --csv can be specified", nil)
	}

	targetPath := getTargetPathFromArgs(args)
	var err error
	switch {
	case c.json:
		req.OutputFormat = domain.OutputFormatJSON
		req.OutputPath, err = generateOutputFilePath("hell", "json", targetPath)
	case c.yaml:
		req.OutputFormat = domain.OutputFormatYAML
		req.OutputPath, err = generateOutputFilePath("hell", "yaml", targetPath)
	case c.csv:
		req.OutputFormat = domain.OutputFormatCSV
		req.OutputPath, err = generateOutputFilePath("hell", "csv", targetPath)
	}
	if err != nil {
		return err
	}

	useCase := app.NewHellUseCase(service.NewHellService(), service.NewOutputFormatter())
	return useCase.Execute(ctx, req)
}
