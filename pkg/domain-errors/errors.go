// Package dErrors defines coded domain errors shared across modules.
//
// Services return these instead of transport errors so handlers can map them
// to HTTP responses in one place (see pkg/platform/httputil.WriteError).
package dErrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a class of domain error.
type Code string

const (
	// CodeInvalidInput marks a value that fails domain parsing rules.
	CodeInvalidInput Code = "invalid_input"
	// CodeBadRequest marks a request that cannot be decoded or is structurally wrong.
	CodeBadRequest Code = "bad_request"
	// CodeValidation marks a request that decodes but fails field validation.
	CodeValidation Code = "validation_failed"
	// CodeMalformedInput marks a caller-contract violation in a submitted
	// response set: unknown or duplicate question IDs, out-of-enum answers.
	// This indicates an intake bug, not an ambiguous compliance case.
	CodeMalformedInput Code = "malformed_input"
	// CodeUnauthorized marks missing or invalid authentication.
	CodeUnauthorized Code = "unauthorized"
	// CodeNotFound marks a missing resource.
	CodeNotFound Code = "not_found"
	// CodeInternal marks an unexpected failure; details are never exposed to clients.
	CodeInternal Code = "internal_error"
)

// Error is a domain error carrying a code, a human-readable description, and
// an optional wrapped cause.
type Error struct {
	Code        Code
	Description string
	cause       error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Description, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

func (e *Error) Unwrap() error { return e.cause }

// New constructs a domain error with the given code and description.
func New(code Code, description string) *Error {
	return &Error{Code: code, Description: description}
}

// Newf constructs a domain error with a formatted description.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Description: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and description to an underlying cause.
func Wrap(code Code, description string, cause error) *Error {
	return &Error{Code: code, Description: description, cause: cause}
}

// HasCode reports whether err is (or wraps) a domain error with the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for unknown errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a domain error code to an HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput, CodeBadRequest, CodeValidation, CodeMalformedInput:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
