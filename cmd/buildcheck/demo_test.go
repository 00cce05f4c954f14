package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestDemoCommandInterface(t *testing.T) {
	cmd := NewDemoCmd()
	if cmd == nil {
		t.Fatal("NewDemoCmd should return a valid command")
	}

	flags := cmd.Flags()
	for _, name := range []string{"json", "yaml", "list"} {
		if flags.Lookup(name) == nil {
			t.Errorf("expected flag '%s' to be defined", name)
		}
	}
}

func TestDemoCommandListPrintsPatterns(t *testing.T) {
	cmd := NewDemoCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&discardWriter{})
	cmd.SetArgs([]string{"--list"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "baseline") {
		t.Errorf("expected --list output to include the baseline scenario, got %q", out.String())
	}
}

func TestDemoCommandRequiresPatternWithoutList(t *testing.T) {
	cmd := NewDemoCmd()
	cmd.SetOut(&discardWriter{})
	cmd.SetErr(&discardWriter{})
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error when no pattern and no --list is given")
	}
}
