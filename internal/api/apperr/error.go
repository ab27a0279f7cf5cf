package apperr

import (
	"net/http"
	"strings"
)

// Kind classifies failures for the response translator.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindNotFound
	KindConstraint
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConstraint:
		return "constraint"
	default:
		return "unexpected"
	}
}

// Error is an error carrying the HTTP status and the client-facing messages.
type Error struct {
	Kind     Kind
	Status   int
	Messages []string
	Err      error
}

func (e *Error) Error() string {
	if len(e.Messages) > 0 {
		return strings.Join(e.Messages, "; ")
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports a 400 with every message the client needs to fix.
func Validation(msgs ...string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Messages: msgs}
}

// NotFound reports a 404.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Messages: []string{msg}}
}

// Constraint reports a violated database constraint. It keeps the generic
// failure status; only the kind and message distinguish it.
func Constraint(msg string, err error) *Error {
	return &Error{Kind: KindConstraint, Status: http.StatusInternalServerError, Messages: []string{msg}, Err: err}
}

// Unexpected wraps any other failure as a 500.
func Unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Status: http.StatusInternalServerError, Err: err}
}

// TooLarge reports a request body over the configured limit.
func TooLarge(msg string, err error) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusRequestEntityTooLarge, Messages: []string{msg}, Err: err}
}
