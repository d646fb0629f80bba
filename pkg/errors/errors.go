// Package errors defines the coded errors shared by skillring's packages.
//
// Every failure a caller might act on carries a [Code]: the CLI prints the
// message, the HTTP server maps the code to a status, and tests match on it.
// Codes group by prefix:
//   - INVALID_*: the caller supplied something unusable
//   - EMPTY_CONTENT: a deck or carousel with nothing in it
//   - *NOT_FOUND, SESSION_CLOSED: the addressed thing is gone
//   - NETWORK_ERROR, TIMEOUT: a backing service misbehaved
//   - INTERNAL_ERROR, UNSUPPORTED: everything else
//
// Codes are errors themselves, so the standard library can match them
// anywhere in a chain:
//
//	err := errors.Wrap(errors.ErrCodeNetwork, dialErr, "dial mongo")
//	stderrors.Is(err, errors.ErrCodeNetwork) // true
//	errors.GetCode(err).Status()             // 502
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error class.
type Code string

const (
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidSymbol  Code = "INVALID_SYMBOL"
	ErrCodeInvalidContent Code = "INVALID_CONTENT"
	ErrCodeInvalidIndex   Code = "INVALID_INDEX"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	ErrCodeEmptyContent Code = "EMPTY_CONTENT"

	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"
	ErrCodeSessionClosed   Code = "SESSION_CLOSED"

	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error makes a bare code usable as an errors.Is target.
func (c Code) Error() string { return string(c) }

// Status is the HTTP status a response carrying c should use. The empty
// code is an internal error.
func (c Code) Status() int {
	switch c {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidSymbol,
		ErrCodeInvalidContent, ErrCodeInvalidIndex, ErrCodeInvalidPath,
		ErrCodeEmptyContent:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeFileNotFound, ErrCodeSessionNotFound:
		return http.StatusNotFound
	case ErrCodeSessionClosed:
		return http.StatusGone
	case ErrCodeUnsupported:
		return http.StatusTooManyRequests
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeNetwork:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// Temporary reports whether retrying the failed operation later may help.
func (c Code) Temporary() bool {
	return c == ErrCodeNetwork || c == ErrCodeTimeout
}

// Error is a coded failure with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches a bare Code equal to e.Code.
func (e *Error) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.Code
}

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost coded error in err's chain has code.
// Unlike the standard errors.Is with a Code target, inner codes hidden
// behind a rewrap do not match.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode returns the outermost code in err's chain, or "" if none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost coded error without its
// code or cause, falling back to err.Error().
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
