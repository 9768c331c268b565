package cerrors

import (
	stderrors "errors"
	"fmt"
)

// Code is a stable protocol error code. Codes are part of the wire contract
// with the bridge and must never be renumbered.
type Code int

const (
	CodeInternal    Code = 1  // unexpected/parse/encoding failure, provider execution error
	CodeUsage       Code = 2  // malformed or missing input, caller must fix the request
	CodeRateLimited Code = 11 // upstream asked us to slow down
	CodeUnavailable Code = 12 // upstream/provider unreachable or unconfigured
	CodeUnsupported Code = 13 // action unknown or blocked by policy
)

// Error is the unified error type carried through every subsystem.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a coded error. The cause is kept for logs and
// errors.Is/As chains; the rendered message includes both.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

func Wrapf(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is matches errors by code so callers can compare against sentinel codes.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return false
	}
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// As extracts an *Error from an arbitrary error chain.
func As(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var target *Error
	if stderrors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// CodeOf returns the protocol code for any error. Unclassified errors are
// internal failures.
func CodeOf(err error) Code {
	if e, ok := As(err); ok {
		return e.Code
	}
	return CodeInternal
}

// Retryable reports whether the caller may retry or accept a fallback answer.
func Retryable(err error) bool {
	switch CodeOf(err) {
	case CodeRateLimited, CodeUnavailable:
		return true
	default:
		return false
	}
}
