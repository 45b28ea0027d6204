// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrTimeout indicates an operation timed out.
	ErrTimeout = errors.New("operation timed out")

	// ErrBadResultCode indicates the NEIS API returned a non-success result code.
	ErrBadResultCode = errors.New("upstream result code indicates failure")

	// ErrMalformedData indicates a static data file has a broken structure.
	ErrMalformedData = errors.New("malformed static data")

	// ErrInvalidSignature indicates webhook signature verification failed.
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// Is reports whether any error in err's tree matches target.
// Re-exported so callers don't need a second errors import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// FetchError represents an upstream data fetch failure with context.
type FetchError struct {
	Endpoint   string
	StatusCode int
	ResultCode string
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.ResultCode != "":
		return fmt.Sprintf("fetch error (endpoint=%s, result=%s): %v", e.Endpoint, e.ResultCode, e.Err)
	case e.StatusCode > 0:
		return fmt.Sprintf("fetch error (endpoint=%s, status=%d): %v", e.Endpoint, e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("fetch error (endpoint=%s): %v", e.Endpoint, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new fetch error for an HTTP-level failure.
func NewFetchError(endpoint string, statusCode int, err error) *FetchError {
	return &FetchError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Err:        err,
	}
}

// NewResultCodeError creates a fetch error for a non-success NEIS result code.
func NewResultCodeError(endpoint, resultCode, message string) *FetchError {
	return &FetchError{
		Endpoint:   endpoint,
		ResultCode: resultCode,
		Err:        fmt.Errorf("%w: %s %s", ErrBadResultCode, resultCode, message),
	}
}
