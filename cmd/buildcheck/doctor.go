package main

import (
	"context"

	"github.com/ludo-technologies/buildcheck/app"
	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/ludo-technologies/buildcheck/service"
	"github.com/spf13/cobra"
)

// DoctorCommand represents the `doctor` command: checks that the external
// tools buildcheck depends on (the compiler dependency scanner, a build
// tool) are present on PATH.
type DoctorCommand struct {
	json bool
	yaml bool
}

func NewDoctorCommand() *DoctorCommand { return &DoctorCommand{} }

func NewDoctorCmd() *cobra.Command {
	c := NewDoctorCommand()

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that required external tools are installed",
		Long: `Check that the compiler dependency scanner and a supported build tool
are present on PATH, and report their resolved paths and versions.

Examples:
  buildcheck doctor
  buildcheck doctor --json`,
		Args: cobra.NoArgs,
		RunE: c.run,
	}

	cmd.Flags().BoolVar(&c.json, "json", false, "Print JSON report")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Print YAML report")

	return cmd
}

func (c *DoctorCommand) run(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	req := domain.DoctorRequest{Verbose: verbose}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if c.json && c.yaml {
		return domain.NewInvalidInputError("only one of --json, --yaml can be specified", nil)
	}

	format := domain.OutputFormatText
	switch {
	case c.json:
		format = domain.OutputFormatJSON
	case c.yaml:
		format = domain.OutputFormatYAML
	}

	useCase := app.NewDoctorUseCase(service.NewDoctorService())
	return useCase.Execute(ctx, req, format, cmd.OutOrStdout())
}
