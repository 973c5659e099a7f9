package booking

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds, machine-readable for the API layer.
const (
	KindNotFound           = "not_found"           // form or service node missing
	KindInvalidState       = "invalid_state"       // no eligible employees, none available
	KindConfig             = "config"              // integration not configured
	KindExternalValidation = "external_validation" // external system rejected payload
	KindExternalAuth       = "external_auth"       // external system rejected credentials
	KindInternal           = "internal"            // anything else
)

// Error is the booking engine's categorized error. Message is always safe to
// show to the end user.
type Error struct {
	Kind    string
	Message string
	err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.err
}

// HTTPStatus maps the kind to a status code for the API layer.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidState:
		return http.StatusConflict
	case KindConfig:
		return http.StatusPreconditionFailed
	case KindExternalValidation:
		return http.StatusBadRequest
	case KindExternalAuth:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NewError builds a categorized booking error wrapping an underlying cause.
func NewError(kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, err: cause}
}

// KindOf returns the kind of a booking error, or KindInternal for anything else.
func KindOf(err error) string {
	var bErr *Error
	if errors.As(err, &bErr) {
		return bErr.Kind
	}
	return KindInternal
}
