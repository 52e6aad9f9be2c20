package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
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

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrUnauthorized
	ErrForbidden
	ErrInternal
	ErrValidation
	ErrConflict
	ErrUpstream
	ErrUnavailable
)

var statuses = map[ErrorCode]int{
	ErrNotFound:     http.StatusNotFound,
	ErrBadRequest:   http.StatusBadRequest,
	ErrUnauthorized: http.StatusUnauthorized,
	ErrForbidden:    http.StatusForbidden,
	ErrInternal:     http.StatusInternalServerError,
	ErrValidation:   http.StatusUnprocessableEntity,
	ErrConflict:     http.StatusConflict,
	ErrUpstream:     http.StatusBadGateway,
	ErrUnavailable:  http.StatusServiceUnavailable,
}

// Status is the HTTP status for the error code.
func (e *AppError) Status() int {
	if s, ok := statuses[e.Code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error constructors
func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

func Unauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Code:    ErrForbidden,
		Message: message,
	}
}

// Validation carries field-level messages in Details.
func Validation(details interface{}, err error) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: "validation failed",
		Details: details,
		Err:     err,
	}
}

func Conflict(message string, err error) *AppError {
	return &AppError{
		Code:    ErrConflict,
		Message: message,
		Err:     err,
	}
}

// Upstream reports a failure of the restaurant API. status is the
// upstream HTTP status when one was received.
func Upstream(status int, message string, err error) *AppError {
	code := ErrUpstream
	switch status {
	case http.StatusNotFound:
		code = ErrNotFound
	case http.StatusUnauthorized:
		code = ErrUnauthorized
	case http.StatusForbidden:
		code = ErrForbidden
	case http.StatusUnprocessableEntity:
		code = ErrValidation
	case http.StatusConflict:
		code = ErrConflict
	default:
		if status >= 400 && status < 500 {
			code = ErrBadRequest
		}
	}
	return &AppError{Code: code, Message: message, Err: err}
}

func Unavailable(message string, err error) *AppError {
	return &AppError{
		Code:    ErrUnavailable,
		Message: message,
		Err:     err,
	}
}
