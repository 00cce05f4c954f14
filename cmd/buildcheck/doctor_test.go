package main

import "testing"

func TestDoctorCommandInterface(t *testing.T) {
	cmd := NewDoctorCmd()
	if cmd == nil {
		t.Fatal("NewDoctorCmd should return a valid command")
	}
	if cmd.Use != "doctor" {
		t.Errorf("expected Use to be 'doctor', got %s", cmd.Use)
	}

	flags := cmd.Flags()
	for _, name := range []string{"json", "yaml"} {
		if flags.Lookup(name) == nil {
			t.Errorf("expected flag '%s' to be defined", name)
		}
	}
}

func TestDoctorCommandRejectsExtraArgs(t *testing.T) {
	cmd := NewDoctorCmd()
	cmd.SetArgs([]string{"unexpected"})
	cmd.SetOut(&discardWriter{})
	cmd.SetErr(&discardWriter{})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for unexpected positional args")
	}
}
