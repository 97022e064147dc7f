package apperr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestUserError(t *testing.T) {
	err := Userf("bad value %d", 3)
	if err.Error() != "bad value 3" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !IsUser(fmt.Errorf("wrapped: %w", err)) {
		t.Fatalf("expected wrapped user error to be detected")
	}
	if IsUser(errors.New("plain")) {
		t.Fatalf("plain error must not be a user error")
	}
}

func TestModelUnavailableError(t *testing.T) {
	cause := errors.New("no such file")
	err := error(&ModelUnavailableError{Path: "eco_model.yaml", Err: cause})

	if !IsModelUnavailable(err) {
		t.Fatalf("expected errors.Is(ErrModelUnavailable)")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be unwrapped")
	}
	if IsPredictionFailure(err) {
		t.Fatalf("model unavailable must not look like a prediction failure")
	}
	if !strings.Contains(err.Error(), "eco_model.yaml") || !strings.Contains(err.Error(), "no such file") {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestPredictionError(t *testing.T) {
	err := fmt.Errorf("score: %w", &PredictionError{Err: errors.New("boom")})

	if !IsPredictionFailure(err) {
		t.Fatalf("expected errors.Is(ErrPredictionFailed)")
	}
	if IsModelUnavailable(err) {
		t.Fatalf("prediction failure must not look like model unavailable")
	}
	if !strings.Contains(err.Error(), "prediction failed: boom") {
		t.Fatalf("Error() = %q", err.Error())
	}
	if (&PredictionError{}).Error() != "prediction failed" {
		t.Fatalf("nil cause message mismatch")
	}
}
