package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ValidationError   ErrorType = "VALIDATION_ERROR"
	NotFoundError     ErrorType = "NOT_FOUND"
	AuthError         ErrorType = "AUTHENTICATION_ERROR"
	ConnectivityError ErrorType = "CONNECTIVITY_ERROR"
	ServerError       ErrorType = "SERVER_ERROR"
	TripNotFoundError ErrorType = "TRIP_NOT_FOUND"
	CodeExpiredError  ErrorType = "VERIFICATION_CODE_EXPIRED"
	CodeMismatchError ErrorType = "VERIFICATION_CODE_MISMATCH"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Raw
}

// New creates a new AppError
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// Helper functions for common errors

func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    fmt.Sprintf("%s not found", entity),
		Detail:     fmt.Sprintf("ID: %v", id),
		HTTPStatus: http.StatusNotFound,
	}
}

func ValidationFailed(message string, details string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		Detail:     details,
		HTTPStatus: http.StatusBadRequest,
	}
}

func AuthenticationFailed(message string) *AppError {
	return &AppError{
		Type:       AuthError,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// ConnectionFailed wraps a network-level failure (timeout, DNS, refused
// connection). Errors of this type are the trigger for offline queueing.
func ConnectionFailed(err error) *AppError {
	return &AppError{
		Type:       ConnectivityError,
		Message:    "Unable to reach the server",
		Detail:     err.Error(),
		HTTPStatus: 0,
		Raw:        err,
	}
}

// RemoteError represents a non-2xx response from the backend with whatever
// detail could be extracted from its body.
func RemoteError(status int, detail string) *AppError {
	if detail == "" {
		detail = fmt.Sprintf("HTTP %d", status)
	}
	return &AppError{
		Type:       ServerError,
		Message:    detail,
		HTTPStatus: status,
	}
}

func TripNotFound(id string) *AppError {
	return &AppError{
		Type:       TripNotFoundError,
		Message:    "Trip not found",
		Detail:     fmt.Sprintf("Trip ID: %s", id),
		HTTPStatus: http.StatusNotFound,
	}
}

func CodeExpired(email string) *AppError {
	return &AppError{
		Type:       CodeExpiredError,
		Message:    "Verification code has expired",
		Detail:     fmt.Sprintf("email: %s", email),
		HTTPStatus: http.StatusBadRequest,
	}
}

func CodeMismatch(email string) *AppError {
	return &AppError{
		Type:       CodeMismatchError,
		Message:    "Invalid verification code",
		Detail:     fmt.Sprintf("email: %s", email),
		HTTPStatus: http.StatusBadRequest,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// IsConnectivity reports whether err is a connectivity failure. Mutating
// calls that fail this way are queued for later replay; reads fall back to
// the offline cache.
func IsConnectivity(err error) bool {
	return IsType(err, ConnectivityError)
}

// IsNotFound reports whether err indicates a missing entity, either the
// generic kind or the trip-specific kind.
func IsNotFound(err error) bool {
	return IsType(err, NotFoundError) || IsType(err, TripNotFoundError)
}

// IsType reports whether err is an *AppError of the given type.
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case NotFoundError, TripNotFoundError:
		return http.StatusNotFound
	case AuthError:
		return http.StatusUnauthorized
	case CodeExpiredError, CodeMismatchError:
		return http.StatusBadRequest
	case ConnectivityError:
		return 0
	default:
		return http.StatusInternalServerError
	}
}
