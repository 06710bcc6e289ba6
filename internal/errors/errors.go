// Package errors provides domain-specific error types for mikrotik-addresslist.
//
// Errors carry a code so the CLI and HTTP surfaces can map them to exit
// codes and status codes consistently.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a category of error that can occur in the application.
type ErrorCode string

const (
	// ErrCodeInput indicates that no usable input source was supplied.
	ErrCodeInput ErrorCode = "INPUT_ERROR"

	// ErrCodeSourceNotFound indicates that the resolved source path does not
	// exist or is not a regular file.
	ErrCodeSourceNotFound ErrorCode = "SOURCE_NOT_FOUND"

	// ErrCodeDownload indicates that fetching a remote source failed.
	ErrCodeDownload ErrorCode = "DOWNLOAD_ERROR"

	// ErrCodeConfig indicates a configuration-related error, including a
	// reference to an unknown script name.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"

	// ErrCodeValidation indicates a validation error.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Error represents a domain-specific error with an error code and optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new domain error with the specified code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewInputError creates an error for a missing input source.
func NewInputError(message string) *Error {
	return New(ErrCodeInput, message)
}

// NewSourceNotFoundError creates an error for a missing source file.
func NewSourceNotFoundError(message string) *Error {
	return New(ErrCodeSourceNotFound, message)
}

// NewDownloadError creates an error for a failed remote fetch.
func NewDownloadError(message string, cause error) *Error {
	return Wrap(ErrCodeDownload, message, cause)
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, cause error) *Error {
	return Wrap(ErrCodeConfig, message, cause)
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, cause error) *Error {
	return Wrap(ErrCodeValidation, message, cause)
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, cause error) *Error {
	return Wrap(ErrCodeInternal, message, cause)
}

// CodeOf returns the error code of err if it is a domain error,
// or ErrCodeInternal otherwise.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}
