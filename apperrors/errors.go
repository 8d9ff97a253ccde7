// Package apperrors holds the error taxonomy shared by the store, services and controllers.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindNotFound            Kind = "not_found"
	KindConflict            Kind = "conflict"
	KindValidation          Kind = "validation"
	KindUnauthorized        Kind = "unauthorized"
	KindForbidden           Kind = "forbidden"
	KindNotInitialized      Kind = "not_initialized"
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	KindTooManyRequests     Kind = "too_many_requests"
)

// Error is a classified failure. Two errors match under errors.Is when their kinds match.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Sentinels for errors.Is checks. They carry no message so they match any error of the kind.
var (
	ErrNotFound            = &Error{Kind: KindNotFound}
	ErrConflict            = &Error{Kind: KindConflict}
	ErrValidation          = &Error{Kind: KindValidation}
	ErrUnauthorized        = &Error{Kind: KindUnauthorized}
	ErrForbidden           = &Error{Kind: KindForbidden}
	ErrNotInitialized      = &Error{Kind: KindNotInitialized}
	ErrUpstreamUnavailable = &Error{Kind: KindUpstreamUnavailable}
)

func NotFound(msg string) error     { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) error     { return &Error{Kind: KindConflict, Message: msg} }
func Validation(msg string) error   { return &Error{Kind: KindValidation, Message: msg} }
func Unauthorized(msg string) error { return &Error{Kind: KindUnauthorized, Message: msg} }
func Forbidden(msg string) error    { return &Error{Kind: KindForbidden, Message: msg} }
func TooManyRequests(msg string) error {
	return &Error{Kind: KindTooManyRequests, Message: msg}
}

// Upstream wraps a store or transport failure.
func Upstream(msg string, err error) error {
	return &Error{Kind: KindUpstreamUnavailable, Message: msg, Err: err}
}

// Status maps an error to the HTTP status the controllers answer with.
func Status(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindUpstreamUnavailable:
		return http.StatusServiceUnavailable
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the message safe to show to API callers.
func PublicMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) || e.Kind == KindUpstreamUnavailable || e.Kind == KindNotInitialized {
		return "Something went wrong"
	}
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}
