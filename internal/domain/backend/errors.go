package backend

import (
	"fmt"
	"net/http"
)

// Error is a failure reported to API callers as {"detail": Detail}.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Detail)
}

func notFound(what string) *Error {
	return &Error{Status: http.StatusNotFound, Detail: what + " not found"}
}

func badRequest(detail string) *Error {
	return &Error{Status: http.StatusBadRequest, Detail: detail}
}

func conflict(detail string) *Error {
	return &Error{Status: http.StatusConflict, Detail: detail}
}

// ErrInvalidCredentials is returned by Authenticate and by the token check.
var ErrInvalidCredentials = &Error{Status: http.StatusUnauthorized, Detail: "Incorrect username or password"}

// ErrUnauthenticated is returned when a bearer token cannot be resolved.
var ErrUnauthenticated = &Error{Status: http.StatusUnauthorized, Detail: "Could not validate credentials"}

// ErrMissingAPIKey is returned by every call that needs the OpenAI key.
var ErrMissingAPIKey = badRequest("OpenAI API key is not set in settings.")
