package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	ErrCodeInvalid  ErrorCode = "INVALID"
	ErrCodeConflict ErrorCode = "CONFLICT"
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
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

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrColumnNotFound   = NewError(ErrCodeNotFound, "column not found")
	ErrCardNotFound     = NewError(ErrCodeNotFound, "card not found")
	ErrIndexOutOfRange  = NewError(ErrCodeInvalid, "index out of range")
	ErrInvalidTitle     = NewError(ErrCodeInvalid, "title must not be empty")
	ErrSnapshotNotFound = NewError(ErrCodeNotFound, "board snapshot not found")
	ErrCorruptSnapshot  = NewError(ErrCodeInvalid, "board snapshot is corrupt")
	ErrInvalidPayload   = NewError(ErrCodeInvalid, "invalid payload")
	ErrUnknownCommand   = NewError(ErrCodeNotFound, "unknown command")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
