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
	ExitErrorTimeout  = 2   // Indicates the search timed out.
	ExitErrorMismatch = 3   // Indicates the oracle re-check rejected an emitted triple.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect
// user input.
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

// OverflowError reports that a parameter combination would push a 64-bit
// intermediate past its range. The search refuses to run under such a
// configuration rather than letting products wrap silently.
type OverflowError struct {
	// Op names the operation whose intermediate would overflow.
	Op string
	// Detail describes the offending magnitudes.
	Detail string
}

// Error returns a formatted message describing the overflow condition.
func (e OverflowError) Error() string {
	return fmt.Sprintf("64-bit overflow in %s: %s", e.Op, e.Detail)
}

// NewOverflowError creates an OverflowError for the given operation with a
// formatted detail message.
func NewOverflowError(op, format string, a ...any) error {
	return OverflowError{Op: op, Detail: fmt.Sprintf(format, a...)}
}

// SearchError encapsulates a pipeline stage failure while preserving the
// original cause. This allows for structured error handling and inspection
// of what went wrong during the search.
type SearchError struct {
	// Stage is the name of the pipeline stage that failed.
	Stage string
	// Cause is the underlying error that triggered this search error.
	Cause error
}

// Error returns the error message including the failing stage.
func (e SearchError) Error() string {
	return fmt.Sprintf("stage %q: %s", e.Stage, e.Cause.Error())
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e SearchError) Unwrap() error { return e.Cause }

// TimeoutError represents a search timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// MemoryError represents a memory budget violation. It captures the
// requested and available memory values for diagnostic purposes.
type MemoryError struct {
	// Requested is the number of bytes the operation needed.
	Requested uint64
	// Available is the number of bytes currently available.
	Available uint64
}

// Error returns a formatted message describing the memory error.
func (e MemoryError) Error() string {
	return fmt.Sprintf("memory error: requested %d bytes, available %d bytes", e.Requested, e.Available)
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

// IsContextError checks if the error is a context cancellation or deadline
// exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to the application exit code that should be
// reported for it. A nil error maps to ExitSuccess.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var cfgErr ConfigError
	var valErr ValidationError
	var ovfErr OverflowError
	var memErr MemoryError
	var toErr TimeoutError
	switch {
	case errors.As(err, &cfgErr), errors.As(err, &valErr), errors.As(err, &ovfErr), errors.As(err, &memErr):
		return ExitErrorConfig
	case errors.As(err, &toErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	default:
		return ExitErrorGeneric
	}
}
