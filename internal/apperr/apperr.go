// Package apperr defines the error categories used across ecoscore-cli.
//
// Error taxonomy
//
//	UserError            – caused by missing or invalid user input (wrong flag, negative
//	                       carbon value, unknown packaging name, …).
//	                       The CLI prints only the message. Exit code: 1.
//
//	ErrCancelled         – the user deliberately aborted the interactive form.
//	                       Exit code: 0 (not a failure).
//
//	ModelUnavailableError – the model artifact is missing or unreadable. Detected once at
//	                       startup; prediction is never attempted afterwards.
//
//	PredictionError      – the scoring call failed for one row. Non-fatal: the session
//	                       stays usable for another attempt.
//
// Everything else is a plain Go error (I/O, config, BOM encoding, …) and is
// propagated with fmt.Errorf("context: %w", err) wrapping.
package apperr

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when the user explicitly aborts an interactive
// operation.  The CLI should exit 0 rather than 1 when it sees this error.
var ErrCancelled = errors.New("operation cancelled")

// ErrModelUnavailable matches every *ModelUnavailableError via errors.Is.
var ErrModelUnavailable = errors.New("model unavailable")

// ErrPredictionFailed matches every *PredictionError via errors.Is.
var ErrPredictionFailed = errors.New("prediction failed")

// UserError represents an error caused by invalid or missing user input.
// Cobra command handlers return this instead of a bare fmt.Errorf so that
// the root command can suppress repeated usage output and format the message
// in a user-friendly way.
type UserError struct {
	Message string
}

func (e *UserError) Error() string { return e.Message }

// User creates a UserError with the given message.
func User(msg string) error { return &UserError{Message: msg} }

// Userf creates a formatted UserError.
func Userf(format string, args ...any) error {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

// IsUser reports whether err is (or wraps) a *UserError.
func IsUser(err error) bool {
	var u *UserError
	return errors.As(err, &u)
}

// ModelUnavailableError reports that the artifact at Path could not be loaded.
type ModelUnavailableError struct {
	Path string
	Err  error
}

func (e *ModelUnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("model %q unavailable", e.Path)
	}
	return fmt.Sprintf("model %q unavailable: %v", e.Path, e.Err)
}

func (e *ModelUnavailableError) Unwrap() error { return e.Err }

func (e *ModelUnavailableError) Is(target error) bool { return target == ErrModelUnavailable }

// PredictionError wraps a failure raised by the scoring call.
type PredictionError struct {
	Err error
}

func (e *PredictionError) Error() string {
	if e.Err == nil {
		return "prediction failed"
	}
	return "prediction failed: " + e.Err.Error()
}

func (e *PredictionError) Unwrap() error { return e.Err }

func (e *PredictionError) Is(target error) bool { return target == ErrPredictionFailed }

// IsModelUnavailable reports whether err is (or wraps) a *ModelUnavailableError.
func IsModelUnavailable(err error) bool { return errors.Is(err, ErrModelUnavailable) }

// IsPredictionFailure reports whether err is (or wraps) a *PredictionError.
func IsPredictionFailure(err error) bool { return errors.Is(err, ErrPredictionFailed) }
