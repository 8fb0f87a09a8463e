// Package errors provides structured error types for rect2lef.
//
// Every failure that aborts a conversion carries a machine-readable [Code] so
// the CLI and tests can tell configuration problems from cell problems without
// matching on message text.
//
// # Error Codes
//
//   - INVALID_CONFIG: malformed technology file or include cycle
//   - INVALID_CELL: malformed rectangle record
//   - INVALID_OPTION: unrecognized command-line option
//   - BACKEND_UNAVAILABLE: no geometry backend for GDS output (non-fatal)
//   - FILE_NOT_FOUND, IO_ERROR, INTERNAL_ERROR
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidCell, "expected 7 or 8 fields, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidCell) {
//	    // abort before emission
//	}
//
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidCell   Code = "INVALID_CELL"
	ErrCodeInvalidOption Code = "INVALID_OPTION"
	ErrCodeInvalidName   Code = "INVALID_NAME"

	// Capability errors
	ErrCodeBackendUnavailable Code = "BACKEND_UNAVAILABLE"

	// File system errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeIO           Code = "IO_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// At creates a new Error whose message is prefixed with a file:line position.
// A line of 0 omits the line number.
func At(code Code, file string, line int, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	switch {
	case file != "" && line > 0:
		msg = fmt.Sprintf("%s:%d: %s", file, line, msg)
	case file != "":
		msg = fmt.Sprintf("%s: %s", file, msg)
	case line > 0:
		msg = fmt.Sprintf("line %d: %s", line, msg)
	}
	return &Error{Code: code, Message: msg}
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
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
