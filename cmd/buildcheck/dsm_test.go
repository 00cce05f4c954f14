package main

import (
	"testing"
)

func TestDSMCommandInterface(t *testing.T) {
	cmd := NewDSMCmd()
	if cmd == nil {
		t.Fatal("NewDSMCmd should return a valid command")
	}
	if cmd.Use != "dsm BUILD_DIR" {
		t.Errorf("expected Use to be 'dsm BUILD_DIR', got %s", cmd.Use)
	}

	flags := cmd.Flags()
	for _, name := range []string{
		"json", "yaml", "csv", "html", "no-open",
		"top", "cycles-only", "show-layers", "advanced", "filter", "exclude",
		"include-third-party", "export", "export-graph", "save-results",
		"load-baseline", "compare-with", "weight-by-churn", "churn-window",
	} {
		if flags.Lookup(name) == nil {
			t.Errorf("expected flag '%s' to be defined", name)
		}
	}
}

func TestDSMCommandRejectsMultipleFormatFlags(t *testing.T) {
	cmd := NewDSMCmd()
	cmd.SetArgs([]string{"--json", "--yaml", "build"})
	cmd.SetOut(&discardWriter{})
	cmd.SetErr(&discardWriter{})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected an error when both --json and --yaml are set")
	}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
