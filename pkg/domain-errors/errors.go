// Package derrors provides the coded error type used across service
// boundaries. Services wrap infrastructure failures with a code and a
// caller-safe message; handlers map codes to HTTP statuses without
// inspecting error internals.
package derrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for transport mapping and logging.
type Code string

const (
	// CodeValidation marks malformed or out-of-domain input. The message
	// names the offending field and is safe to return to callers.
	CodeValidation Code = "validation_error"

	// CodeBadRequest marks structurally broken requests (bad JSON, missing body).
	CodeBadRequest Code = "bad_request"

	// CodeNotFound marks a missing resource.
	CodeNotFound Code = "not_found"

	// CodeUnavailable marks a dependency that could not be reached.
	CodeUnavailable Code = "unavailable"

	// CodeInternal marks unexpected defects. These must never occur under
	// documented inputs; the message is not exposed to callers.
	CodeInternal Code = "internal_error"
)

// Error carries a code, a caller-safe message, and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error without a cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extracts the code from an error chain. Uncoded errors report
// CodeInternal so defects are never silently downgraded.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeInternal
}

// MessageOf extracts the caller-safe message from an error chain.
// Uncoded errors return an empty message.
func MessageOf(err error) string {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Message
	}
	return ""
}

// IsValidation reports whether the error chain carries CodeValidation.
func IsValidation(err error) bool {
	return CodeOf(err) == CodeValidation
}
