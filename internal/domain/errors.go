package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError carries an HTTP status alongside a client-facing message. Handlers
// funnel every failure through one responder that maps an AppError to the
// response envelope; anything else becomes a generic 500.
type AppError struct {
	Status  int
	Message string
	Details []string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func BadRequest(message string, details ...string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message, Details: details}
}

func Unauthorized(message string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Status: http.StatusForbidden, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Status: http.StatusConflict, Message: message}
}

// Internal wraps an unexpected dependency failure. The wrapped error is kept
// for logging; the message is what clients see.
func Internal(message string, err error) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Message: message, Err: err}
}

// AsAppError extracts an *AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
