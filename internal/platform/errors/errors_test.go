package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := New(CodeScenarioLoadFailed, "script missing return value")
	if err.Error() != "script missing return value" {
		t.Fatalf("expected message, got %q", err.Error())
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(CodeGraphDecodeInvalid, "decode graph", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to match")
	}
}

func TestIsByCode(t *testing.T) {
	a := New(CodeScenarioStepFailed, "a")
	b := New(CodeScenarioStepFailed, "b")
	if !errors.Is(a, b) {
		t.Fatal("expected errors with same code to match")
	}
	c := New(CodeScenarioLoadFailed, "c")
	if errors.Is(a, c) {
		t.Fatal("expected errors with different codes not to match")
	}
}

func TestWithMetadata(t *testing.T) {
	err := WithMetadata(CodeScenarioStepFailed, "step failed", map[string]string{"step": "3"})
	if err.Metadata["step"] != "3" {
		t.Fatalf("expected metadata step 3, got %q", err.Metadata["step"])
	}
}
