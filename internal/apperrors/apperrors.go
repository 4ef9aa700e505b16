package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure and decides the HTTP status of the response.
type Kind int

const (
	Validation Kind = iota
	Auth
	Forbidden
	NotFound
	TokenExpired
	Conflict
	RateLimit
	Upstream
)

var kindStatus = map[Kind]int{
	Validation:   http.StatusBadRequest,
	Auth:         http.StatusUnauthorized,
	Forbidden:    http.StatusForbidden,
	NotFound:     http.StatusNotFound,
	TokenExpired: http.StatusRequestTimeout,
	Conflict:     http.StatusConflict,
	RateLimit:    http.StatusTooManyRequests,
	Upstream:     http.StatusInternalServerError,
}

type Error struct {
	Kind    Kind
	Message string

	// RetryAfter is set only for RateLimit errors, in whole seconds.
	RetryAfter int
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func RateLimited(retryAfter int) *Error {
	return &Error{
		Kind:       RateLimit,
		Message:    fmt.Sprintf("too many requests, retry after %d seconds", retryAfter),
		RetryAfter: retryAfter,
	}
}

// StatusCode maps any error to an HTTP status. Errors outside the taxonomy
// are treated as internal.
func StatusCode(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		if code, ok := kindStatus[appErr.Kind]; ok {
			return code
		}
	}
	return http.StatusInternalServerError
}

// UserMessage returns the text safe to show the caller. Errors outside the
// taxonomy keep their details out of the response.
func UserMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}

func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
