// Package apperr carries the service-level failure taxonomy. Controllers map
// a Kind to an HTTP status through a fixed table instead of inspecting
// error message text.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind uint8

const (
	Unknown Kind = iota
	Unauthenticated
	Validation
	NotFound
	Forbidden
	Upstream
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Message is the caller-facing text, without the wrapped cause.
func (e *Error) Message() string { return e.Msg }

func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// MessageOf returns the caller-facing message for a tagged error, or a
// generic one for untagged failures so that infrastructure details never
// leak into responses.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "internal error"
}

var statusByKind = map[Kind]int{
	Unauthenticated: http.StatusUnauthorized,
	Validation:      http.StatusBadRequest,
	NotFound:        http.StatusNotFound,
	Forbidden:       http.StatusForbidden,
	Upstream:        http.StatusInternalServerError,
	Unknown:         http.StatusInternalServerError,
}

func HTTPStatus(err error) int {
	return statusByKind[KindOf(err)]
}
