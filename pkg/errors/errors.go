// Package errors provides structured error types for relviz.
//
// Every failure the fact-language front end can report carries a
// machine-readable [Code], a human-readable message, the source position
// where it originated and, where one is involved, the offending identifier.
// An input is accepted or rejected as a unit, so all codes below are fatal
// for the input being processed.
//
// # Error Codes
//
// Front-end errors mirror the processing stages:
//   - LEXICAL_ERROR, SYNTAX_ERROR: lexer and fact parser
//   - UNKNOWN_*, CONFLICTING_*, CYCLIC_*: type registry
//   - DUPLICATE_OBJECT, UNRESOLVED_REFERENCE, KIND_MISMATCH, *_CONTAINMENT,
//     MULTIPLE_CONTAINERS: graph model builder
//
// Boundary errors (INVALID_INPUT, FILE_NOT_FOUND, INVALID_FORMAT,
// INTERNAL_ERROR) come from the CLI and the pipeline.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeSyntax, "empty name list").At(pos)
//	if errors.Is(err, errors.ErrCodeSyntax) {
//	    // Handle syntax error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Front end
	ErrCodeLexical Code = "LEXICAL_ERROR"
	ErrCodeSyntax  Code = "SYNTAX_ERROR"

	// Type registry
	ErrCodeUnknownType         Code = "UNKNOWN_TYPE"
	ErrCodeUnknownParentType   Code = "UNKNOWN_PARENT_TYPE"
	ErrCodeConflictingTypeDef  Code = "CONFLICTING_TYPE_DEFINITION"
	ErrCodeCyclicTypeHierarchy Code = "CYCLIC_TYPE_HIERARCHY"

	// Graph model
	ErrCodeDuplicateObject     Code = "DUPLICATE_OBJECT"
	ErrCodeUnresolvedReference Code = "UNRESOLVED_REFERENCE"
	ErrCodeKindMismatch        Code = "KIND_MISMATCH"
	ErrCodeInvalidContainment  Code = "INVALID_CONTAINMENT"
	ErrCodeCircularContainment Code = "CIRCULAR_CONTAINMENT"
	ErrCodeMultipleContainers  Code = "MULTIPLE_CONTAINERS"

	// Boundary
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInternal      Code = "INTERNAL_ERROR"
)

// Pos identifies a line in a named source.
// The zero value means "no position".
type Pos struct {
	Source string // file name, "<stdin>" or "<default style>"
	Line   int    // 1-based
}

// IsValid reports whether the position carries a line number.
func (p Pos) IsValid() bool { return p.Line > 0 }

func (p Pos) String() string {
	switch {
	case !p.IsValid():
		return ""
	case p.Source == "":
		return fmt.Sprintf("line %d", p.Line)
	default:
		return fmt.Sprintf("%s:%d", p.Source, p.Line)
	}
}

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Pos     Pos    // Originating position (optional)
	Ident   string // Offending identifier (optional)
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Pos.IsValid() {
		msg = e.Pos.String() + ": " + msg
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// At sets the originating position and returns e.
func (e *Error) At(pos Pos) *Error {
	e.Pos = pos
	return e
}

// For sets the offending identifier and returns e.
func (e *Error) For(ident string) *Error {
	e.Ident = ident
	return e
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

// GetPos extracts the source position from an error, if available.
func GetPos(err error) Pos {
	var e *Error
	if errors.As(err, &e) {
		return e.Pos
	}
	return Pos{}
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the positioned message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Pos.IsValid() {
			return e.Pos.String() + ": " + e.Message
		}
		return e.Message
	}
	return err.Error()
}
