package apperror

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation Code = "VALIDATION_ERROR"
	CodeNotFound   Code = "NOT_FOUND"
	CodeStore      Code = "STORE_ERROR"
)

var statusByCode = map[Code]int{
	CodeValidation: http.StatusBadRequest,
	CodeNotFound:   http.StatusNotFound,
	CodeStore:      http.StatusInternalServerError,
}

// Error is an error carrying a Code that decides how it is reported to clients.
type Error struct {
	code    Code
	message string
	cause   error
}

// Validation reports malformed or out-of-range input.
func Validation(format string, args ...any) *Error {
	return &Error{code: CodeValidation, message: fmt.Sprintf(format, args...)}
}

// NotFound reports that a referenced entity does not exist.
func NotFound(format string, args ...any) *Error {
	return &Error{code: CodeNotFound, message: fmt.Sprintf(format, args...)}
}

// Store wraps a persistence failure.
func Store(err error, message string) *Error {
	return &Error{code: CodeStore, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeStore
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As returns the first *Error in err's chain, or nil.
func As(err error) *Error {
	var target *Error
	if stdErrors.As(err, &target) {
		return target
	}
	return nil
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.code == code
}

// StatusFor maps err to an HTTP status. Untyped errors are treated as store failures.
func StatusFor(err error) int {
	typed := As(err)
	if typed == nil {
		return http.StatusInternalServerError
	}
	if status, ok := statusByCode[typed.code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
