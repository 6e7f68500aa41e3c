// Package apperror defines the error type shared by services and the HTTP
// layer. Services return *AppError values; handler.HTTPErrorHandler is the
// single place they are mapped to a status code and response envelope.
package apperror

import (
	"errors"
	"fmt"
)

// Code is a stable error category for programmatic handling.
type Code string

const (
	CodeInvalid          Code = "invalid"
	CodeUnauthorized     Code = "unauthorized"
	CodeForbidden        Code = "forbidden"
	CodeNotFound         Code = "not_found"
	CodeConflict         Code = "conflict"
	CodeTooManyRequests  Code = "too_many_requests"
	CodeUnsupportedMedia Code = "unsupported_media_type"
	CodeInternal         Code = "internal"
)

// ValidationFailed is the message attached to every field-level validation error.
const ValidationFailed = "Validation failed"

// AppError carries a code, a client-facing message, the wrapped cause and
// optional per-field details.
type AppError struct {
	Code    Code
	Message string
	Err     error
	Fields  map[string]any
}

func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause for errors.Is/As.
func (e *AppError) Unwrap() error { return e.Err }

// WithField attaches a field-level detail.
func (e *AppError) WithField(k string, v any) *AppError {
	if e.Fields == nil {
		e.Fields = map[string]any{}
	}
	e.Fields[k] = v
	return e
}

// New creates an AppError with code and message.
func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps err with code and message.
func Wrap(err error, code Code, message string) *AppError {
	if err == nil {
		return New(code, message)
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// Validation builds the error returned for rejected input.
func Validation(fields map[string]any) *AppError {
	return &AppError{Code: CodeInvalid, Message: ValidationFailed, Fields: fields}
}

// IsCode reports whether err (or anything it wraps) is an AppError with code.
func IsCode(err error, code Code) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

// As extracts the AppError from err.
func As(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
