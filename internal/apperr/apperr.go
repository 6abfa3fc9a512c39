// Package apperr defines the error taxonomy shared by the services and the
// HTTP layer. Services return kinded errors; handlers translate the kind to a
// status code and never inspect error strings.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	Conflict Kind = iota + 1
	Unauthorized
	Forbidden
	NotFound
	Validation
	Internal
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the kind of err. Errors that carry no kind are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Message returns the caller-facing message for err. Internal faults are
// masked; their details belong in the server log, not the response body.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return e.Message
	}
	return "Internal server error"
}

// StatusCode maps an error kind to its HTTP status. Conflict maps to 400
// because the register contract pins duplicate-email to 400.
func StatusCode(err error) int {
	switch KindOf(err) {
	case Conflict, Validation:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
