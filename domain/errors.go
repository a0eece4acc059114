package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "VALIDATION_ERROR"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error. Details carries optional
// structured context such as the offending field of a validation failure.
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NewValidationError builds a validation error naming the field and the
// constraint it violated.
func NewValidationError(message, field, constraint string) *Error {
	return &Error{
		Code:    ErrCodeInvalid,
		Message: message,
		Details: map[string]string{"field": field, "constraint": constraint},
	}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors. ErrTaskNotFound covers both a missing task and a
// task owned by someone else; the two are indistinguishable outward.
var (
	ErrTaskNotFound   = NewError(ErrCodeNotFound, "task not found")
	ErrUnauthorized   = NewError(ErrCodeUnauthorized, "invalid or missing authentication token")
	ErrInvalidPayload = NewError(ErrCodeInvalid, "invalid payload")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
