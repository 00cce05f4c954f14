package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ludo-technologies/buildcheck/app"
	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/ludo-technologies/buildcheck/service"
	"github.com/spf13/cobra"
)

// DSMCommand represents the `dsm` command: the full Dependency Structure
// Matrix report for a single build directory.
type DSMCommand struct {
	json   bool
	yaml   bool
	csv    bool
	html   bool
	noOpen bool

	top               int
	cyclesOnly        bool
	showLayers        bool
	advanced          bool
	filter            string
	exclude           []string
	includeThirdParty bool
	export            string
	exportGraph       string
	saveResults       string
	loadBaseline      string
	compareWith       string
	weightByChurn     bool
	churnWindow       int
}

func NewDSMCommand() *DSMCommand { return &DSMCommand{} }

func NewDSMCmd() *cobra.Command {
	c := NewDSMCommand()

	cmd := &cobra.Command{
		Use:   "dsm BUILD_DIR",
		Short: "Compute the Dependency Structure Matrix for a build directory",
		Long: `Build the include graph from a ninja compilation database and report
coupling, stability, cycles, and layering metrics as a Dependency Structure Matrix.

Examples:
  buildcheck dsm build/
  buildcheck dsm --cycles-only build/
  buildcheck dsm --top 20 --html build/
  buildcheck dsm --save-results baseline.json build/
  buildcheck dsm --load-baseline baseline.json build/`,
		Args: cobra.ExactArgs(1),
		RunE: c.run,
	}

	cmd.Flags().BoolVar(&c.json, "json", false, "Generate JSON report file")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Generate YAML report file")
	cmd.Flags().BoolVar(&c.csv, "csv", false, "Generate CSV report (full matrix)")
	cmd.Flags().BoolVar(&c.html, "html", false, "Generate HTML report file")
	cmd.Flags().BoolVar(&c.noOpen, "no-open", false, "Don't auto-open HTML in browser")

	cmd.Flags().IntVar(&c.top, "top", 20, "Limit ranked output to N rows (0 disables matrix display)")
	cmd.Flags().BoolVar(&c.cyclesOnly, "cycles-only", false, "Suppress non-cycle sections")
	cmd.Flags().BoolVar(&c.showLayers, "show-layers", false, "Force layer display")
	cmd.Flags().BoolVar(&c.advanced, "advanced", false, "Compute advanced metrics (pagerank, betweenness)")
	cmd.Flags().StringVar(&c.filter, "filter", "", "Include only paths matching GLOB")
	cmd.Flags().StringArrayVar(&c.exclude, "exclude", nil, "Exclude paths matching GLOB (repeatable)")
	cmd.Flags().BoolVar(&c.includeThirdParty, "include-third-party", false, "Include third-party headers")
	cmd.Flags().StringVar(&c.export, "export", "", "Write full DSM to CSV at FILE.csv")
	cmd.Flags().StringVar(&c.exportGraph, "export-graph", "", "Write node-link graph to FILE.{graphml,gexf,json,dot}")
	cmd.Flags().StringVar(&c.saveResults, "save-results", "", "Persist a snapshot to FILE")
	cmd.Flags().StringVar(&c.loadBaseline, "load-baseline", "", "Load snapshot from FILE and produce a delta against current")
	cmd.Flags().StringVar(&c.compareWith, "compare-with", "", "Analyze BUILD_DIR and the given build directory and produce a delta")
	cmd.Flags().BoolVar(&c.weightByChurn, "weight-by-churn", false, "Annotate delta insights with VCS commit-churn counts")
	cmd.Flags().IntVar(&c.churnWindow, "churn-window", 90, "Number of recent commits to consider for churn weighting")

	return cmd
}

func (c *DSMCommand) run(cmd *cobra.Command, args []string) error {
	buildDir := args[0]
	verbose, _ := cmd.Flags().GetBool("verbose")

	req := domain.AnalysisRequest{
		BuildDirectory:      buildDir,
		IncludeThirdParty:   c.includeThirdParty,
		FilterPattern:       c.filter,
		ExcludePatterns:     c.exclude,
		Top:                 c.top,
		CyclesOnly:          c.cyclesOnly,
		ShowLayers:          c.showLayers,
		AdvancedMetrics:     c.advanced,
		ExportCSVPath:       c.export,
		ExportGraphPath:     c.exportGraph,
		SaveResultsPath:     c.saveResults,
		LoadBaselinePath:    c.loadBaseline,
		CompareWithBuildDir: c.compareWith,
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

	formatCount := 0
	for _, f := range []bool{c.json, c.yaml, c.csv, c.html} {
		if f {
			formatCount++
		}
	}
	if formatCount > 1 {
		return domain.NewInvalidInputError("only one of --json, --yaml, --csv, --html can be specified", nil)
	}

	useCase := c.createUseCase(cmd)

	if formatCount == 0 {
		return useCase.Execute(ctx, req)
	}

	targetPath := getTargetPathFromArgs(args)
	var err error
	switch {
	case c.json:
		req.OutputFormat = domain.OutputFormatJSON
		req.OutputPath, err = generateOutputFilePath("dsm", "json", targetPath)
	case c.yaml:
		req.OutputFormat = domain.OutputFormatYAML
		req.OutputPath, err = generateOutputFilePath("dsm", "yaml", targetPath)
	case c.csv:
		req.OutputFormat = domain.OutputFormatCSV
		req.OutputPath, err = generateOutputFilePath("dsm", "csv", targetPath)
	case c.html:
		req.OutputFormat = domain.OutputFormatHTML
		req.OutputPath, err = generateOutputFilePath("dsm", "html", targetPath)
		req.NoOpen = c.noOpen
	}
	if err != nil {
		return err
	}
	if err := useCase.Execute(ctx, req); err != nil {
		return err
	}
	if req.OutputPath != "" {
		abs := req.OutputPath
		if ap, aerr := filepath.Abs(req.OutputPath); aerr == nil {
			abs = ap
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report generated: %s\n", abs)
	}
	return nil
}

func (c *DSMCommand) createUseCase(cmd *cobra.Command) *app.DSMUseCase {
	dsmSvc := service.NewDSMService()
	formatter := service.NewOutputFormatter()
	uc := app.NewDSMUseCase(dsmSvc, formatter)
	return uc.WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr()))
}
