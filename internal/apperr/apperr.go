// Package apperr defines the error taxonomy used across the application.
// Collaborator failures are wrapped into an Error with a Kind; the controller
// converts them into user-facing notifications and never lets them escape.
package apperr

import (
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type Kind string

const (
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindPermission      Kind = "PERMISSION_DENIED"
	KindNotFound        Kind = "NOT_FOUND"
	KindInvalid         Kind = "INVALID"
	KindUnavailable     Kind = "UNAVAILABLE"
	KindInternal        Kind = "INTERNAL"
)

type Error struct {
	Kind    Kind
	Message string
	Cause   error
	stack   []byte
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Stack returns the stack captured where the error was first wrapped.
func (e *Error) Stack() []byte {
	return e.stack
}

func newError(kind Kind, message string, cause error) *Error {
	var stack []byte
	if stackErr, ok := cause.(*goerrors.Error); ok {
		stack = stackErr.Stack()
	} else if cause != nil {
		stack = goerrors.Wrap(cause, 2).Stack()
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &Error{
		Kind:    kind,
		Message: message,
		Cause:   cause,
		stack:   stack,
	}
}

func Unauthenticated(message string) *Error {
	return newError(KindUnauthenticated, message, nil)
}

func Permission(message string) *Error {
	return newError(KindPermission, message, nil)
}

func NotFound(message string, cause error) *Error {
	return newError(KindNotFound, message, cause)
}

func Invalid(message string, cause error) *Error {
	return newError(KindInvalid, message, cause)
}

func Unavailable(message string, cause error) *Error {
	return newError(KindUnavailable, message, cause)
}

func Internal(message string, cause error) *Error {
	return newError(KindInternal, message, cause)
}

// KindOf reports the Kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindInternal
}
