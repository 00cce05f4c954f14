package main

import "testing"

func TestHellCommandInterface(t *testing.T) {
	cmd := NewHellCmd()
	if cmd == nil {
		t.Fatal("NewHellCmd should return a valid command")
	}

	flags := cmd.Flags()
	for _, name := range []string{"json", "yaml", "csv", "threshold", "top", "include-third-party"} {
		if flags.Lookup(name) == nil {
			t.Errorf("expected flag '%s' to be defined", name)
		}
	}
}
