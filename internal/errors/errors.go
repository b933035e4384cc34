package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
// An interrupt is a clean shutdown and exits with ExitSuccess.
const (
	ExitSuccess      = 0 // Indicates successful execution, including a signal-driven exit.
	ExitErrorGeneric = 1 // Indicates a generic error.
	ExitErrorConfig  = 4 // Indicates a configuration error.
	ExitErrorSample  = 5 // Indicates the metrics provider failed.
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// SampleError reports a failure of the system metrics provider while reading
// one metric. It is fatal to a monitoring session but, unlike an unhandled
// fault, it carries the metric name and the provider's cause.
type SampleError struct {
	// Metric names the reading that failed ("cpu" or "memory").
	Metric string
	// Cause is the error returned by the provider.
	Cause error
}

// Error returns a formatted message describing the failed reading.
func (e SampleError) Error() string {
	return fmt.Sprintf("sampling %s utilization: %v", e.Metric, e.Cause)
}

// Unwrap returns the provider error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e SampleError) Unwrap() error { return e.Cause }

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error returned by a monitoring session to the process
// exit code. Cancellation is the normal way a session ends.
func ExitCodeFor(err error) int {
	if err == nil || IsContextError(err) {
		return ExitSuccess
	}
	var sampleErr SampleError
	if errors.As(err, &sampleErr) {
		return ExitErrorSample
	}
	var configErr ConfigError
	if errors.As(err, &configErr) {
		return ExitErrorConfig
	}
	var validationErr ValidationError
	if errors.As(err, &validationErr) {
		return ExitErrorConfig
	}
	return ExitErrorGeneric
}
