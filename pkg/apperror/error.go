package apperror

import (
	"errors"
	"net/http"
)

// Kind is the stable, machine-readable error code sent to clients.
type Kind string

const (
	KindUnauthenticated    Kind = "UNAUTHENTICATED"
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"
	KindConfiguration      Kind = "CONFIG_ERROR"
	KindNotFound           Kind = "NOT_FOUND"
	KindForbidden          Kind = "FORBIDDEN"
	KindInvalidStatus      Kind = "INVALID_STATUS"
	KindValidation         Kind = "VALIDATION_ERROR"
	KindDuplicate          Kind = "DUPLICATE_ENTRY"
	KindRateLimited        Kind = "RATE_LIMITED"
	KindUnavailable        Kind = "UNAVAILABLE"
	KindInternal           Kind = "SERVER_ERROR"
)

type AppError struct {
	Code    int    `json:"-"`
	Kind    Kind   `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, kind Kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// KindOf returns the Kind carried by err, or KindInternal when err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err is an AppError of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func Unauthenticated(message string) *AppError {
	return New(http.StatusUnauthorized, KindUnauthenticated, message, nil)
}

// MalformedCredentials is raised when a credential cannot be decoded as text.
func MalformedCredentials(err error) *AppError {
	return New(http.StatusUnauthorized, KindUnauthenticated, "Malformed credentials", err)
}

func InvalidCredentials() *AppError {
	return New(http.StatusUnauthorized, KindInvalidCredentials, "Invalid credentials", nil)
}

func Configuration(message string) *AppError {
	return New(http.StatusInternalServerError, KindConfiguration, message, nil)
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, KindValidation, message, nil)
}

func Validation(message string, err error) *AppError {
	return New(http.StatusBadRequest, KindValidation, message, err)
}

func InvalidStatus(message string) *AppError {
	return New(http.StatusBadRequest, KindInvalidStatus, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, KindForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, KindNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, KindDuplicate, message, nil)
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, KindRateLimited, message, nil)
}

// Unavailable hides a storage failure behind a generic message. The cause stays in Err
// for server-side logging only.
func Unavailable(err error) *AppError {
	return New(http.StatusServiceUnavailable, KindUnavailable, "Service temporarily unavailable", err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, KindInternal, "Internal Server Error", err)
}
