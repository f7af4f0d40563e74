package errors

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"net"
	"net/http"
)

// Kind classifies where an error originated
type Kind string

const (
	KindNetwork    Kind = "network"
	KindHTTP       Kind = "http"
	KindDecode     Kind = "decode"
	KindState      Kind = "state"
	KindValidation Kind = "validation"
)

// ErrorCode is a stable identifier for an error condition
type ErrorCode string

const (
	ErrorCode_NETWORK_UNAVAILABLE ErrorCode = "NETWORK_UNAVAILABLE"
	ErrorCode_REQUEST_TIMEOUT     ErrorCode = "REQUEST_TIMEOUT"
	ErrorCode_REQUEST_CANCELLED   ErrorCode = "REQUEST_CANCELLED"
	ErrorCode_INVALID_ARGUMENT    ErrorCode = "INVALID_ARGUMENT"
	ErrorCode_UNAUTHENTICATED     ErrorCode = "UNAUTHENTICATED"
	ErrorCode_PERMISSION_DENIED   ErrorCode = "PERMISSION_DENIED"
	ErrorCode_NOT_FOUND           ErrorCode = "NOT_FOUND"
	ErrorCode_CONFLICT            ErrorCode = "CONFLICT"
	ErrorCode_BACKEND_REJECTED    ErrorCode = "BACKEND_REJECTED"
	ErrorCode_BACKEND_FAILURE     ErrorCode = "BACKEND_FAILURE"
	ErrorCode_DECODE_FAILED       ErrorCode = "DECODE_FAILED"
	ErrorCode_INVALID_TRANSITION  ErrorCode = "INVALID_TRANSITION"
	ErrorCode_MISSING_ID          ErrorCode = "MISSING_ID"
	ErrorCode_VALIDATION_FAILED   ErrorCode = "VALIDATION_FAILED"
)

// String returns the code as text
func (c ErrorCode) String() string {
	return string(c)
}

// AppError is the error type returned by every client operation
type AppError struct {
	Raw      error
	Kind     Kind
	HTTPCode int
	Code     ErrorCode
	Message  string
	Data     json.RawMessage
	Details  map[string]string
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying cause
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// Transport errors

// ErrNetwork wraps a failure that happened before any HTTP response arrived
func ErrNetwork(method, path string, err error) AppError {
	code := ErrorCode_NETWORK_UNAVAILABLE
	message := "Backend unreachable"

	var netErr net.Error
	switch {
	case stdErrors.Is(err, context.Canceled):
		code = ErrorCode_REQUEST_CANCELLED
		message = "Request cancelled"
	case stdErrors.Is(err, context.DeadlineExceeded):
		code = ErrorCode_REQUEST_TIMEOUT
		message = "Request timed out"
	case stdErrors.As(err, &netErr) && netErr.Timeout():
		code = ErrorCode_REQUEST_TIMEOUT
		message = "Request timed out"
	}

	return AppError{
		Raw:     err,
		Kind:    KindNetwork,
		Code:    code,
		Message: message,
	}.WithDetail("method", method).WithDetail("path", path)
}

// ErrHTTP represents a non-2xx response; detail is the backend's message
func ErrHTTP(status int, detail string, data []byte) AppError {
	if detail == "" {
		detail = http.StatusText(status)
	}
	return AppError{
		Kind:     KindHTTP,
		HTTPCode: status,
		Code:     codeForStatus(status),
		Message:  detail,
		Data:     json.RawMessage(data),
	}
}

// ErrDecode represents a response body that could not be parsed
func ErrDecode(err error, data []byte) AppError {
	return AppError{
		Raw:     err,
		Kind:    KindDecode,
		Code:    ErrorCode_DECODE_FAILED,
		Message: "Failed to parse backend response",
		Data:    json.RawMessage(data),
	}
}

// Client state errors

// ErrInvalidTransition is returned when a workflow move is not allowed
func ErrInvalidTransition(resource, from, to string) AppError {
	return AppError{
		Kind:    KindState,
		Code:    ErrorCode_INVALID_TRANSITION,
		Message: fmt.Sprintf("%s cannot move from %s to %s", resource, from, to),
	}.WithDetail("from", from).WithDetail("to", to)
}

// ErrMissingID is returned when an operation needs an id that is empty
func ErrMissingID(resource string) AppError {
	return AppError{
		Kind:    KindState,
		Code:    ErrorCode_MISSING_ID,
		Message: fmt.Sprintf("%s id is required", resource),
	}
}

// ErrValidation wraps a payload rejected before it was sent
func ErrValidation(err error) AppError {
	return AppError{
		Raw:     err,
		Kind:    KindValidation,
		Code:    ErrorCode_VALIDATION_FAILED,
		Message: "Invalid request payload",
	}
}

// ErrInvalidArgument is returned for a request that makes no sense locally
func ErrInvalidArgument(message string) AppError {
	return AppError{
		Kind:    KindValidation,
		Code:    ErrorCode_INVALID_ARGUMENT,
		Message: message,
	}
}

func codeForStatus(status int) ErrorCode {
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return ErrorCode_INVALID_ARGUMENT
	case status == http.StatusUnauthorized:
		return ErrorCode_UNAUTHENTICATED
	case status == http.StatusForbidden:
		return ErrorCode_PERMISSION_DENIED
	case status == http.StatusNotFound:
		return ErrorCode_NOT_FOUND
	case status == http.StatusConflict:
		return ErrorCode_CONFLICT
	case status >= 500:
		return ErrorCode_BACKEND_FAILURE
	default:
		return ErrorCode_BACKEND_REJECTED
	}
}

// Inspection helpers

// As extracts an AppError from err
func As(err error) (AppError, bool) {
	var appErr AppError
	if stdErrors.As(err, &appErr) {
		return appErr, true
	}
	return AppError{}, false
}

// KindOf returns the kind of err, or "" when it is not an AppError
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return ""
}

// StatusOf returns the HTTP status carried by err, or 0
func StatusOf(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.HTTPCode
	}
	return 0
}

func IsNetwork(err error) bool {
	return KindOf(err) == KindNetwork
}

func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

func IsClientError(err error) bool {
	s := StatusOf(err)
	return s >= 400 && s < 500
}

func IsServerError(err error) bool {
	return StatusOf(err) >= 500
}

// UserMessage converts err into a short message suitable for a banner
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	appErr, ok := As(err)
	if !ok {
		return err.Error()
	}
	switch appErr.Kind {
	case KindNetwork:
		return fmt.Sprintf("%s. Check your connection and retry.", appErr.Message)
	case KindHTTP:
		if IsServerError(appErr) {
			return fmt.Sprintf("%s (HTTP %d). Try again later.", appErr.Message, appErr.HTTPCode)
		}
		return fmt.Sprintf("%s (HTTP %d)", appErr.Message, appErr.HTTPCode)
	default:
		return appErr.Message
	}
}
