package main

import "testing"

func TestDiffCommandInterface(t *testing.T) {
	cmd := NewDiffCmd()
	if cmd == nil {
		t.Fatal("NewDiffCmd should return a valid command")
	}

	flags := cmd.Flags()
	for _, name := range []string{
		"json", "yaml", "compare-with", "load-baseline", "vcs-baseline",
		"filter", "exclude", "include-third-party", "weight-by-churn", "churn-window",
	} {
		if flags.Lookup(name) == nil {
			t.Errorf("expected flag '%s' to be defined", name)
		}
	}
}
