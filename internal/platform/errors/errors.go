// Package errors provides the sentinel errors shared by the archive
// transport and the pipeline, plus thin wrappers over the standard library.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for transport-level failure classes.
var (
	// ErrTimeout indicates a request exceeded its time limit
	ErrTimeout = errors.New("operation timed out")

	// ErrRateLimit indicates the remote side refused us for sending too much.
	// It is the only transport failure that aborts a whole batch.
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrNotFound indicates the remote resource does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates invalid input was provided
	ErrInvalidInput = errors.New("invalid input")

	// ErrConnectionFailed indicates a connection could not be established
	ErrConnectionFailed = errors.New("connection failed")

	// ErrServiceUnavailable indicates a 5xx answer
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrInvalidResponse indicates a body we cannot use (bad status, non-text content)
	ErrInvalidResponse = errors.New("invalid response")
)

// wrappedError wraps an error with additional context
type wrappedError struct {
	msg   string
	cause error
}

func (e *wrappedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e *wrappedError) Unwrap() error {
	return e.cause
}

// Wrap wraps an error with a context message. Wrap(nil, ...) returns nil.
//
// Example:
//
//	body, err := client.Get(ctx, url)
//	if err != nil {
//	    return errors.Wrap(err, "cdx query")
//	}
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: msg, cause: err}
}

// Wrapf wraps an error with a formatted context message.
// If err is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: fmt.Sprintf(format, args...), cause: err}
}

// FromStatus maps a non-2xx HTTP status code to the matching sentinel.
// It returns nil for 2xx codes.
func FromStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusTooManyRequests:
		return ErrRateLimit
	case code == http.StatusNotFound || code == http.StatusGone:
		return ErrNotFound
	case code == http.StatusRequestTimeout || code == http.StatusGatewayTimeout:
		return ErrTimeout
	case code >= 500:
		return ErrServiceUnavailable
	default:
		return ErrInvalidResponse
	}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New creates a new error with the given message.
func New(msg string) error {
	return errors.New(msg)
}

// Errorf is fmt.Errorf.
func Errorf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Join returns an error that wraps the given errors, discarding nils.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// IsTimeout reports whether the error is a timeout error
func IsTimeout(err error) bool { return Is(err, ErrTimeout) }

// IsRateLimit reports whether the error is a rate limit error
func IsRateLimit(err error) bool { return Is(err, ErrRateLimit) }

// IsNotFound reports whether the error is a not found error
func IsNotFound(err error) bool { return Is(err, ErrNotFound) }

// IsInvalidInput reports whether the error is an invalid input error
func IsInvalidInput(err error) bool { return Is(err, ErrInvalidInput) }

// IsConnectionFailed reports whether the error is a connection failed error
func IsConnectionFailed(err error) bool { return Is(err, ErrConnectionFailed) }

// IsServiceUnavailable reports whether the error is a service unavailable error
func IsServiceUnavailable(err error) bool { return Is(err, ErrServiceUnavailable) }

// IsInvalidResponse reports whether the error is an invalid response error
func IsInvalidResponse(err error) bool { return Is(err, ErrInvalidResponse) }

// Kind names the failure class of err for log fields. Unclassified errors
// are "other"; nil is "".
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsRateLimit(err):
		return "rate_limit"
	case IsTimeout(err):
		return "timeout"
	case IsConnectionFailed(err):
		return "connection"
	case IsNotFound(err):
		return "not_found"
	case IsServiceUnavailable(err):
		return "unavailable"
	case IsInvalidResponse(err):
		return "invalid_response"
	case IsInvalidInput(err):
		return "invalid_input"
	default:
		return "other"
	}
}
