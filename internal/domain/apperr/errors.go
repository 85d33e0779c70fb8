// Package apperr classifies the failures a client operation can surface.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the failure category of an Error.
type Kind string

const (
	// KindTransport covers connection failures, timeouts and unreadable responses.
	KindTransport Kind = "transport"
	// KindAuth means the token is missing, invalid or expired.
	KindAuth Kind = "auth"
	// KindValidation is a client-side check that blocked the call.
	KindValidation Kind = "validation"
	// KindDomain is an error reported by the backend with a detail message.
	KindDomain Kind = "domain"
	// KindPermission is a local resource (microphone, player) that was denied.
	KindPermission Kind = "permission"
)

// Error is the typed error returned across the client.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Cause      error
}

// Error implements the error interface. The message is what the user sees.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return string(e.Kind) + " error"
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an error of the given kind around cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Validation is shorthand for a client-side validation failure.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the Kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the user facing text for err, falling back when err carries
// no message of its own.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
