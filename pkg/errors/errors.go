// Package errors provides structured error types for frosting.
//
// Errors carry a machine-readable [Code] so the CLI and the HTTP server can
// decide how to report them (exit message, HTTP status) without string
// matching.
//
// # Error Codes
//
//   - INVALID_*: configuration or request values rejected at the boundary
//   - *NOT_FOUND: unknown presets or resources
//   - UNSUPPORTED: a valid request the current environment cannot serve
//     (for example PDF export without rsvg-convert)
//   - INTERNAL_ERROR: unexpected failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidColor, "frosting top color %q is not #RRGGBB", c)
//	if errors.Is(err, errors.ErrCodeInvalidColor) {
//	    // reject the request
//	}
//
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "rasterize scene")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidColor  Code = "INVALID_COLOR"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPreset Code = "INVALID_PRESET"
	ErrCodeInvalidIndex  Code = "INVALID_INDEX"

	// Resource not found errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodePresetNotFound Code = "PRESET_NOT_FOUND"

	// Environment and internal errors
	ErrCodeUnsupported Code = "UNSUPPORTED"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
)

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

// IsInvalid reports whether err was caused by rejected input.
func IsInvalid(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidConfig, ErrCodeInvalidColor, ErrCodeInvalidFormat,
		ErrCodeInvalidPreset, ErrCodeInvalidIndex:
		return true
	}
	return false
}

// IsNotFound reports whether err refers to a missing resource.
func IsNotFound(err error) bool {
	c := GetCode(err)
	return c == ErrCodeNotFound || c == ErrCodePresetNotFound
}
