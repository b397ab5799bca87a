// Package errors provides structured error types for network analysis.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - Tri-state outcome classification (success, empty, error)
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes fall into four recoverable families and one fatal family:
//   - EMPTY_RESULT: no seeds, hits or qualifying edges
//   - UNSUPPORTED_OPTION: unknown method, algorithm or mode string
//   - GRAPH_TOO_SMALL: nothing meets a minimum-size contract
//   - INVALID_*: malformed tables or options
//   - NOT_FOUND, INTERNAL_ERROR: unknown references and unexpected failures
//
// A query between disconnected nodes is not an error; it is reported as a
// value by the path engine.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnsupported, "unknown community method %q", m)
//	if errors.Is(err, errors.ErrCodeUnsupported) {
//	    // Handle configuration error
//	}
//
//	switch errors.Classify(err) {
//	case errors.OutcomeEmpty:
//	    // Show the message, keep the session alive
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Recoverable analysis outcomes
	ErrCodeEmpty       Code = "EMPTY_RESULT"
	ErrCodeUnsupported Code = "UNSUPPORTED_OPTION"
	ErrCodeTooSmall    Code = "GRAPH_TOO_SMALL"

	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidTable Code = "INVALID_TABLE"
	ErrCodeInvalidName  Code = "INVALID_NAME"

	// Resource not found errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Outcome is the tri-state result surfaced to callers.
type Outcome int

const (
	// OutcomeSuccess means the operation produced a full result.
	OutcomeSuccess Outcome = iota
	// OutcomeEmpty means the operation completed but had nothing to report.
	OutcomeEmpty
	// OutcomeError means the operation failed.
	OutcomeError
)

// String returns the lowercase outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeEmpty:
		return "empty"
	default:
		return "error"
	}
}

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Classify maps err onto the tri-state outcome. A nil error is a success;
// empty and too-small results are empty outcomes; anything else is an error.
func Classify(err error) Outcome {
	if err == nil {
		return OutcomeSuccess
	}
	switch GetCode(err) {
	case ErrCodeEmpty, ErrCodeTooSmall:
		return OutcomeEmpty
	default:
		return OutcomeError
	}
}

// IsRecoverable reports whether err is one of the structured analysis outcomes
// that leave the session usable.
func IsRecoverable(err error) bool {
	switch GetCode(err) {
	case ErrCodeEmpty, ErrCodeTooSmall, ErrCodeUnsupported, ErrCodeInvalidInput, ErrCodeInvalidName:
		return true
	}
	return false
}
