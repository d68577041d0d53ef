// Package apperror provides the coded error type shared by the domain services
// and the HTTP boundary.
package apperror

import (
	"errors"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeNotFound        Code = "NOT_FOUND"
	CodeInvalidState    Code = "INVALID_STATE"
	CodeAborted         Code = "ABORTED"
	CodeInternal        Code = "INTERNAL"
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeConflict        Code = "CONFLICT"
)

// Error is the domain error type.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message, safe to return to clients
	Cause   error  // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus maps the code to the status returned by the API.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidState, CodeConflict:
		return http.StatusConflict
	case CodeAborted:
		return http.StatusServiceUnavailable
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound     = &Error{Code: CodeNotFound}
	ErrInvalidState = &Error{Code: CodeInvalidState}
	ErrAborted      = &Error{Code: CodeAborted}
	ErrInternal     = &Error{Code: CodeInternal}
	ErrConflict     = &Error{Code: CodeConflict}

	ErrInvalidArgument = &Error{Code: CodeInvalidArgument}
	ErrUnauthorized    = &Error{Code: CodeUnauthorized}
)

// New creates a domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func InvalidState(message string) *Error {
	return New(CodeInvalidState, message)
}

func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

func Unauthorized(message string) *Error {
	return New(CodeUnauthorized, message)
}

func Conflict(message string) *Error {
	return New(CodeConflict, message)
}

func Aborted(message string, cause error) *Error {
	return Wrap(CodeAborted, message, cause)
}

func Internal(message string, cause error) *Error {
	return Wrap(CodeInternal, message, cause)
}

// From returns the first *Error in err's chain, or an Internal error wrapping err.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("internal error", err)
}
