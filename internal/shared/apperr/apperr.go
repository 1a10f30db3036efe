package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error for transport mapping.
type Kind string

// Error kinds raised by domain components.
const (
	KindUnauthorized         Kind = "Unauthorized"
	KindForbidden            Kind = "Forbidden"
	KindNotFound             Kind = "NotFound"
	KindConflict             Kind = "Conflict"
	KindAlreadySubmitted     Kind = "AlreadySubmitted"
	KindAlreadyCompleted     Kind = "AlreadyCompleted"
	KindInvalidAmount        Kind = "InvalidAmount"
	KindInvalidChoice        Kind = "InvalidChoice"
	KindInvalidStarter       Kind = "InvalidStarter"
	KindInsufficientFunds    Kind = "InsufficientFunds"
	KindInsufficientQuantity Kind = "InsufficientQuantity"
	KindNoActiveMission      Kind = "NoActiveMission"
	KindValidationFailed     Kind = "ValidationFailed"
	KindServiceUnavailable   Kind = "ServiceUnavailable"
	KindInternal             Kind = "Internal"
)

// FieldError carries field-level validation detail.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is an application error with a kind, a human-readable message
// and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new application error
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap wraps a cause with a kind and message
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NotFound creates a NotFound error for a resource
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

// Unauthorized creates an Unauthorized error
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Forbidden creates a Forbidden error
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// Conflict creates a Conflict error
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// InvalidAmount creates an InvalidAmount error
func InvalidAmount(message string) *Error {
	return &Error{Kind: KindInvalidAmount, Message: message}
}

// Validation creates a ValidationFailed error with field detail
func Validation(message string, fields ...FieldError) *Error {
	return &Error{Kind: KindValidationFailed, Message: message, Fields: fields}
}

// ServiceUnavailable creates a ServiceUnavailable error
func ServiceUnavailable(message string, err error) *Error {
	return &Error{Kind: KindServiceUnavailable, Message: message, Err: err}
}

// Internal creates an Internal error wrapping an unclassified cause
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// From extracts an *Error from err, folding unclassified errors into
// KindInternal without leaking detail to the caller.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf returns the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	return From(err).Kind
}

// HTTPStatus maps an error kind to its HTTP status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindAlreadySubmitted, KindAlreadyCompleted:
		return http.StatusConflict
	case KindInvalidAmount, KindInvalidChoice, KindInvalidStarter,
		KindInsufficientFunds, KindInsufficientQuantity,
		KindNoActiveMission, KindValidationFailed:
		return http.StatusBadRequest
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
