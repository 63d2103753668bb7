package util

import (
	"errors"
	"fmt"
	"strings"
)

// Common error types for pdaxpy
var (
	// ErrInvalidConfig indicates a configuration error
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownBackend indicates an unrecognised executor backend name
	ErrUnknownBackend = errors.New("unknown backend")

	// ErrUnknownPolicy indicates an unrecognised failure policy name
	ErrUnknownPolicy = errors.New("unknown failure policy")

	// ErrWorkerSpawn indicates a worker could not be created
	ErrWorkerSpawn = errors.New("worker spawn failed")

	// ErrWorkerFailed indicates a worker did not complete its range
	ErrWorkerFailed = errors.New("worker failed")

	// ErrVerification indicates computed results did not match the expected values
	ErrVerification = errors.New("verification failed")

	// ErrShutdown indicates the executor has been closed
	ErrShutdown = errors.New("executor shut down")
)

// WorkerError wraps an error with the worker and index range it occurred in
type WorkerError struct {
	Worker int
	From   int
	To     int
	Err    error
}

// Error implements the error interface
func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %d [%d,%d): %v", e.Worker, e.From, e.To, e.Err)
}

// Unwrap returns the wrapped error for errors.Is/As compatibility
func (e *WorkerError) Unwrap() error {
	return e.Err
}

// WrapWorkerError wraps an error with worker context
func WrapWorkerError(worker, from, to int, err error) error {
	if err == nil {
		return nil
	}
	return &WorkerError{
		Worker: worker,
		From:   from,
		To:     to,
		Err:    err,
	}
}

// MultiError aggregates multiple errors
type MultiError struct {
	Errors []error
}

// Error implements the error interface
func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:", len(m.Errors)))
	for i, err := range m.Errors {
		if i < 10 { // Limit to first 10 errors in the message
			sb.WriteString(fmt.Sprintf("\n  %d. %v", i+1, err))
		} else if i == 10 {
			sb.WriteString(fmt.Sprintf("\n  ... and %d more errors", len(m.Errors)-10))
			break
		}
	}
	return sb.String()
}

// Unwrap returns the errors for errors.Is/As compatibility
func (m *MultiError) Unwrap() []error {
	return m.Errors
}

// Add adds an error to the multi-error
func (m *MultiError) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

// Len returns the number of collected errors
func (m *MultiError) Len() int {
	return len(m.Errors)
}

// ErrorOrNil returns nil if no errors were added, otherwise returns the MultiError
func (m *MultiError) ErrorOrNil() error {
	if len(m.Errors) == 0 {
		return nil
	}
	return m
}

// NewMultiError creates a new MultiError from a slice of errors
// It filters out nil errors
func NewMultiError(errors []error) *MultiError {
	m := &MultiError{
		Errors: make([]error, 0, len(errors)),
	}
	for _, err := range errors {
		if err != nil {
			m.Errors = append(m.Errors, err)
		}
	}
	return m
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (v *ValidationError) Error() string {
	if v.Value != nil {
		return fmt.Sprintf("validation failed for field %q (value: %v): %s", v.Field, v.Value, v.Message)
	}
	return fmt.Sprintf("validation failed for field %q: %s", v.Field, v.Message)
}

// Unwrap ties every validation failure to ErrInvalidConfig
func (v *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// IsWorkerFailure checks if an error came from a worker that did not finish
func IsWorkerFailure(err error) bool {
	return errors.Is(err, ErrWorkerFailed) || errors.Is(err, ErrWorkerSpawn)
}

// IsVerificationError checks if an error is a result mismatch
func IsVerificationError(err error) bool {
	return errors.Is(err, ErrVerification)
}

// FriendlyError converts technical errors to user-friendly messages
func FriendlyError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrUnknownBackend):
		return "Unknown backend. Use one of: managed, thread, pool."
	case errors.Is(err, ErrUnknownPolicy):
		return "Unknown failure policy. Use one of: default, abort, propagate."
	case errors.Is(err, ErrInvalidConfig):
		return "Invalid configuration. Please check your config file and command-line flags: " + err.Error()
	case IsWorkerFailure(err):
		return "A worker did not complete its range; the output vector is incomplete: " + err.Error()
	case IsVerificationError(err):
		return "Results did not match the serial computation: " + err.Error()
	case errors.Is(err, ErrShutdown):
		return "Executor was already shut down."
	default:
		return err.Error()
	}
}

// CombineErrors combines multiple errors into a single error
// Returns nil if all errors are nil
func CombineErrors(errors ...error) error {
	m := NewMultiError(errors)
	return m.ErrorOrNil()
}

// WrapErrorf wraps an error with a formatted message
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
