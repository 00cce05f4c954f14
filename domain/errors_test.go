package domain

import (
	"errors"
	"testing"
)

func TestDomainErrorErrorIncludesCodeAndMessage(t *testing.T) {
	err := NewInvalidInputError("build directory is required", nil)
	var de DomainError
	if !errors.As(err, &de) {
		t.Fatal("expected err to be a DomainError")
	}
	if de.Code != ErrCodeInvalidInput {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidInput, de.Code)
	}
	want := "[INVALID_INPUT] build directory is required"
	if de.Error() != want {
		t.Errorf("expected %q, got %q", want, de.Error())
	}
}

func TestDomainErrorErrorIncludesCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewAnalysisError("DSM analysis failed", cause)
	var de DomainError
	if !errors.As(err, &de) {
		t.Fatal("expected err to be a DomainError")
	}
	if !errors.Is(de, cause) && de.Unwrap() != cause {
		t.Errorf("expected Unwrap to return the original cause")
	}
}

func TestNewSnapshotErrorCode(t *testing.T) {
	err := NewSnapshotError("schema version mismatch", nil)
	var de DomainError
	if !errors.As(err, &de) {
		t.Fatal("expected err to be a DomainError")
	}
	if de.Code != ErrCodeSnapshot {
		t.Errorf("expected code %s, got %s", ErrCodeSnapshot, de.Code)
	}
}
