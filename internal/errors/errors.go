package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorUnsolved = 5   // Indicates the readings could not be resolved.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ErrClosed is returned by the aggregator once it has been shut down.
var ErrClosed = errors.New("aggregator is closed")

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
//
// Returns:
//   - string: The error message string.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
// It allows for the creation of configuration-specific errors with dynamic
// content.
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

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation. A sealed
// round that does not hold three distinct beacons also surfaces as a
// ValidationError on the "round" field.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
//
// Returns:
//   - string: The error message string.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// CapacityError is returned when a submission arrives while the live round
// is already sealed and has not been cleared yet. Callers may retry later.
type CapacityError struct {
	// Capacity is the fixed number of readings a round accepts.
	Capacity int
}

// Error returns a formatted message describing the rejection.
//
// Returns:
//   - string: The error message string.
func (e CapacityError) Error() string {
	return fmt.Sprintf("round already holds %d readings, try again later", e.Capacity)
}

// UnsolvableError reports that the three distances do not describe a single
// point: the base circles do not intersect, one contains the other, or no
// candidate matches the third beacon.
type UnsolvableError struct {
	// Reason is a short description of the geometric failure.
	Reason string
}

// Error returns a formatted message describing the geometric failure.
//
// Returns:
//   - string: The error message string.
func (e UnsolvableError) Error() string {
	return fmt.Sprintf("location cannot be resolved: %s", e.Reason)
}

// NoMessageError reports that no word could be recovered from the three
// message copies.
type NoMessageError struct{}

// Error returns the error message for a NoMessageError.
//
// Returns:
//   - string: The error message string.
func (NoMessageError) Error() string { return "message cannot be recovered: insufficient data" }

// TimeoutError represents an operation timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
//
// Returns:
//   - string: The error message string.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
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
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: true if the error is a context error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsClientError reports whether err is one of the recoverable failures caused
// by the submitted readings themselves (validation, geometry or message).
func IsClientError(err error) bool {
	var (
		validationErr ValidationError
		unsolvableErr UnsolvableError
		noMessageErr  NoMessageError
	)
	return errors.As(err, &validationErr) || errors.As(err, &unsolvableErr) || errors.As(err, &noMessageErr)
}

// ExitCode maps an error to the process exit code used by the CLI.
func ExitCode(err error) int {
	var (
		configErr  ConfigError
		timeoutErr TimeoutError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &configErr):
		return ExitErrorConfig
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case IsClientError(err):
		return ExitErrorUnsolved
	default:
		return ExitErrorGeneric
	}
}
