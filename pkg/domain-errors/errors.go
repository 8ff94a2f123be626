// Package domainerrors provides coded domain errors so transport layers can
// translate failures into the right response without string matching.
//
// Stores return sentinel errors (pkg/platform/sentinel) for infrastructure
// facts; services translate those into coded errors with New or Wrap. The
// code survives wrapping, so HasCode works across layer boundaries.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for callers.
type Code string

const (
	// CodeValidation marks malformed or out-of-range input. No state change.
	CodeValidation Code = "validation"
	// CodeInvalidInput marks a value rejected at a trust boundary (IDs, enums).
	CodeInvalidInput Code = "invalid_input"
	// CodeBadRequest marks a structurally broken request.
	CodeBadRequest Code = "bad_request"
	// CodeConflict marks a business-rule rejection: capacity full, duplicate
	// booking, overlapping slot, cancellation window violated.
	CodeConflict Code = "conflict"
	// CodeNotFound marks an unknown or soft-deleted identifier.
	CodeNotFound Code = "not_found"
	// CodeUnauthorized marks a missing or unusable caller identity.
	CodeUnauthorized Code = "unauthorized"
	// CodeForbidden marks an authenticated caller lacking the capability.
	CodeForbidden Code = "forbidden"
	// CodeInvariantViolation marks an illegal state transition.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeTimeout marks a context cancellation or deadline.
	CodeTimeout Code = "timeout"
	// CodeInternal marks everything the caller cannot act on.
	CodeInternal Code = "internal"
)

// Error is a coded error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error with no cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error. A nil err returns
// nil so call sites can wrap unconditionally.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.cause
		de = nil
	}
	return false
}

// Is is an alias for HasCode kept for call-site readability.
func Is(err error, code Code) bool { return HasCode(err, code) }

// CodeOf returns the outermost code carried by err, or CodeInternal when err
// carries none.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
