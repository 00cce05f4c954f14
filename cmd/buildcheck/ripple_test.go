package main

import "testing"

func TestRippleCommandInterface(t *testing.T) {
	cmd := NewRippleCmd()
	if cmd == nil {
		t.Fatal("NewRippleCmd should return a valid command")
	}
	if cmd.Use != "ripple BUILD_DIR CHANGED_HEADER [CHANGED_HEADER...]" {
		t.Errorf("unexpected Use: %s", cmd.Use)
	}

	flags := cmd.Flags()
	for _, name := range []string{"json", "yaml", "include-third-party", "weight-by-churn", "churn-window"} {
		if flags.Lookup(name) == nil {
			t.Errorf("expected flag '%s' to be defined", name)
		}
	}
}

func TestRippleCommandRequiresAtLeastTwoArgs(t *testing.T) {
	cmd := NewRippleCmd()
	cmd.SetArgs([]string{"build"})
	cmd.SetOut(&discardWriter{})
	cmd.SetErr(&discardWriter{})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error when fewer than 2 args are given")
	}
}
