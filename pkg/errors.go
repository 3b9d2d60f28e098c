// Package pkg holds shared utilities: the API error type and the JSON
// response helpers. Everything here is leaf-level — it must not import any
// other package of this module.
package pkg

import (
	"errors"
	"net/http"
)

// Error is the one error shape the API surfaces. The HTTP classification is
// set at construction and never patched afterwards; the response helpers map
// it straight to a status code. Err optionally wraps the underlying cause for
// logs and errors.Is/As — it is never serialized.
type Error struct {
	Status  int
	Message string
	Data    any
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrNoRecord is the repository-level not-found marker. It is never sent to
// clients: services translate it into a classified *Error with the message
// the operation calls for.
var ErrNoRecord = errors.New("no record")

// Validation builds a 422 error carrying a single rule message.
func Validation(message string) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Message: message}
}

// Unauthorized builds a 401 error.
func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// NotFound builds a 404 error.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Conflict builds a 409 error, used for uniqueness races at the repository.
func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message}
}

// BadRequest builds a 400 error for malformed requests.
func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Internal wraps an unexpected failure as a 500. The original error stays
// reachable through Unwrap.
func Internal(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: err.Error(), Err: err}
}

// Normalize returns err as an *Error, defaulting anything unclassified to 500.
func Normalize(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal(err)
}
