// Package errors provides structured error types for sddkit.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP API and the libraries
//   - Machine-readable error codes for programmatic handling
//   - Format errors that point at the offending file and line
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (malformed files, bad flags)
//   - MISSING_*: A required collaborator was not supplied
//   - NOT_FOUND_*: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.Format("circuit.nnf", 12, "unknown node type %q", tok)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle malformed input
//	}
//
// I/O failures are deliberately not converted: callers receive the error
// returned by the os or bufio package unchanged.
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
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidWeight  Code = "INVALID_WEIGHT"
	ErrCodeInvalidLiteral Code = "INVALID_LITERAL"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"

	// Precondition violations
	ErrCodeMissingWeights Code = "MISSING_WEIGHTS"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
//
// File and Line are set for format errors and identify the input line that
// could not be processed. Line is 1-based; zero means no line information.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
	File    string // Input file name (optional)
	Line    int    // 1-based input line (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.location() + e.Message
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *Error) location() string {
	switch {
	case e.File != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: ", e.File, e.Line)
	case e.File != "":
		return e.File + ": "
	case e.Line > 0:
		return fmt.Sprintf("line %d: ", e.Line)
	}
	return ""
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

// Format creates an ErrCodeInvalidFormat error located at file:line.
func Format(file string, line int, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeInvalidFormat,
		Message: fmt.Sprintf(format, args...),
		File:    file,
		Line:    line,
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
// For *Error types, returns the located message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.location() + e.Message
	}
	return err.Error()
}
