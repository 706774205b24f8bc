package service

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrorValidation ErrorCode = "VALIDATION"
	ErrorNotFound   ErrorCode = "NOT_FOUND"
	ErrorInternal   ErrorCode = "INTERNAL"
)

// Error is returned by every service operation that fails. Message is safe
// to show to clients; Err carries the underlying cause for logs only.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("service: %s (%s)", e.Code, e.Message)
	}
	return fmt.Sprintf("service: %s (%s): %v", e.Code, e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// CodeOf reports the service error code carried by err, or ErrorInternal
func CodeOf(err error) ErrorCode {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}
	return ErrorInternal
}

func validationError(message string) *Error {
	return &Error{Code: ErrorValidation, Message: message}
}

func notFoundError(message string) *Error {
	return &Error{Code: ErrorNotFound, Message: message}
}

func internalError(op string, err error) *Error {
	return &Error{Code: ErrorInternal, Message: op, Err: err}
}
