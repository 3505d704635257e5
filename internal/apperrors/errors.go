// Package apperrors provides the error taxonomy shared by the engine,
// the HTTP API and the CLI.
package apperrors

import (
	"errors"
	"fmt"
)

// Type identifies the category of error.
type Type string

const (
	// TypeInput indicates an input validation error (bad request).
	TypeInput Type = "INPUT_ERROR"

	// TypeNotFound indicates a missing resource (unknown demo, missing file).
	TypeNotFound Type = "NOT_FOUND"

	// TypeConfig indicates a configuration error.
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates a defect in the engine itself, e.g. a packing
	// result that fails the overlap or bounds post-checks. Never caused by
	// user input.
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error is a domain error with a category and optional cause.
type Error struct {
	Type    Type
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new error.
func New(errType Type, message string) *Error {
	return &Error{Type: errType, Message: message}
}

// Newf creates a new formatted error.
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{Type: errType, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with context.
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{Type: errType, Message: message, Cause: cause}
}

// IsType checks whether err is an *Error of the given type.
func IsType(err error, t Type) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// Input creates an input validation error.
func Input(message string) *Error {
	return New(TypeInput, message)
}

// Inputf creates a formatted input validation error.
func Inputf(format string, args ...interface{}) *Error {
	return Newf(TypeInput, format, args...)
}

// NotFound creates a not found error.
func NotFound(resourceType, identifier string) *Error {
	return Newf(TypeNotFound, "%s not found: %s", resourceType, identifier)
}

// Config creates a configuration error.
func Config(message string, cause error) *Error {
	return Wrap(TypeConfig, message, cause)
}

// Internal creates an internal error.
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
