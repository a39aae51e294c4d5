package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error. Handlers map kinds to HTTP status
// codes; callers match on Kind, never on concrete error types.
type Kind string

const (
	KindNotFound            Kind = "not_found"
	KindForbidden           Kind = "forbidden"
	KindAlreadyExists       Kind = "already_exists"
	KindInvalidCredentials  Kind = "invalid_credentials"
	KindValidation          Kind = "validation"
	KindFetchFailed         Kind = "fetch_failed"
	KindNoValidContext      Kind = "no_valid_context"
	KindInsertFailed        Kind = "insert_failed"
	KindDeleteFailed        Kind = "delete_failed"
	KindStorageDeleteFailed Kind = "storage_delete_failed"
	KindUpstreamGeneration  Kind = "upstream_generation"
	KindInternal            Kind = "internal"
)

// AppError is the tagged error carried across service boundaries.
type AppError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a tagged error without an underlying cause.
func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// Wrap creates a tagged error around an underlying cause.
func Wrap(kind Kind, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

func NotFound(message string) *AppError {
	return New(KindNotFound, message)
}

func Forbidden(message string) *AppError {
	return New(KindForbidden, message)
}

func AlreadyExists(message string) *AppError {
	return New(KindAlreadyExists, message)
}

func InvalidCredentials(message string) *AppError {
	return New(KindInvalidCredentials, message)
}

func Validation(message string) *AppError {
	return New(KindValidation, message)
}

// KindOf returns the Kind of err, or KindInternal for untagged errors.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Message returns the user-visible detail for err.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// StatusCode maps an error kind to its HTTP status.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindAlreadyExists, KindValidation:
		return http.StatusBadRequest
	case KindInvalidCredentials:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
