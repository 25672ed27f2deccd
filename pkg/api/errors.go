package api

import (
	"errors"
	"fmt"
	"net/http"
)

// E.g., unknown algorithm name.
var ErrBadRequest *Error = NewError(http.StatusBadRequest, fmt.Errorf("Bad Request")) // 400

// Missing or rejected credentials.
var ErrUnauthorized *Error = NewError(http.StatusUnauthorized, fmt.Errorf("Unauthorized")) // 401

var ErrForbidden *Error = NewError(http.StatusForbidden, fmt.Errorf("Forbidden")) // 403

// Wrong base url, typically.
var ErrNotFound *Error = NewError(http.StatusNotFound, fmt.Errorf("Not Found")) // 404

// Error due to exceeded rate limit.
var ErrTooManyRequests *Error = NewError(http.StatusTooManyRequests, fmt.Errorf("Too Many Requests")) // 429

var ErrInternalServerError *Error = NewError(http.StatusInternalServerError, fmt.Errorf("Internal Server Error")) // 500

var ErrServiceUnavailable *Error = NewError(http.StatusServiceUnavailable, fmt.Errorf("Service Unavailable")) // 503

// An error with an associated HTTP status code.
type Error struct {
	statusCode int // HTTP status code for this error
	err        error
}

func (e *Error) StatusCode() int {
	return e.statusCode
}

func (e *Error) Error() string {
	return fmt.Sprintf("(%d) %s", e.statusCode, e.err)
}

func (e *Error) Unwrap() error {
	return e.err
}

// Return a new error, with same status code, but the supplied
// underlying error.
func (e *Error) WithError(err error) *Error {
	return &Error{statusCode: e.statusCode, err: err}
}

// An error is considered matching if the status code is the same.
// Example usage:
//
//	if errors.Is(err, api.ErrTooManyRequests) {...}
func (e *Error) Is(err error) bool {
	if err, ok := err.(*Error); ok {
		return e.statusCode == err.statusCode
	}
	return false
}

func NewError(statusCode int, err error) *Error {
	if statusCode/100 == 2 || err == nil {
		panic(fmt.Sprintf("Invalid call to NewError, status = %d, err = %v",
			statusCode, err))
	}
	if statusCode == 0 {
		return &Error{
			statusCode: http.StatusInternalServerError,
			err:        fmt.Errorf("invalid status code 0 for error: %s", err),
		}
	}
	return &Error{statusCode: statusCode, err: err}
}

// Returns the status code of an api error, or 0 if err doesn't carry
// one, e.g., a transport failure.
func ErrorStatusCode(err error) int {
	var apiError *Error
	if errors.As(err, &apiError) {
		return apiError.StatusCode()
	}
	return 0
}
