package autobahn

import (
	"errors"
	"fmt"
)

// Error types
const (
	// ErrUnknownHighway is returned when a highway identifier is not in the
	// catalog. Detected locally, before any network call.
	ErrUnknownHighway = "unknown_highway"

	// ErrUpstreamTimeout is returned when an upstream call exceeds its
	// per-request deadline, retry included.
	ErrUpstreamTimeout = "upstream_timeout"

	// ErrUpstreamUnavailable is returned on connection or DNS failure, or
	// a 5xx response after retry exhaustion.
	ErrUpstreamUnavailable = "upstream_unavailable"

	// ErrUpstreamBadResponse is returned on 4xx responses, malformed JSON,
	// or an unexpected payload shape.
	ErrUpstreamBadResponse = "upstream_bad_response"
)

// Error represents a failure in the traffic data layer.
type Error struct {
	// Type is the error type
	Type string

	// Message is the error message
	Message string

	// Cause is the underlying error
	Cause error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error
func NewError(errorType, message string, cause error) *Error {
	return &Error{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NewUnknownHighwayError creates a new unknown highway error
func NewUnknownHighwayError(id string) *Error {
	return NewError(ErrUnknownHighway, fmt.Sprintf("highway %q is not a known autobahn", id), nil)
}

// NewUpstreamTimeoutError creates a new upstream timeout error
func NewUpstreamTimeoutError(message string, cause error) *Error {
	return NewError(ErrUpstreamTimeout, message, cause)
}

// NewUpstreamUnavailableError creates a new upstream unavailable error
func NewUpstreamUnavailableError(message string, cause error) *Error {
	return NewError(ErrUpstreamUnavailable, message, cause)
}

// NewUpstreamBadResponseError creates a new upstream bad response error
func NewUpstreamBadResponseError(message string, cause error) *Error {
	return NewError(ErrUpstreamBadResponse, message, cause)
}

func isType(err error, errorType string) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == errorType
}

// IsUnknownHighway checks if the error is an unknown highway error
func IsUnknownHighway(err error) bool {
	return isType(err, ErrUnknownHighway)
}

// IsUpstreamTimeout checks if the error is an upstream timeout error
func IsUpstreamTimeout(err error) bool {
	return isType(err, ErrUpstreamTimeout)
}

// IsUpstreamUnavailable checks if the error is an upstream unavailable error
func IsUpstreamUnavailable(err error) bool {
	return isType(err, ErrUpstreamUnavailable)
}

// IsUpstreamBadResponse checks if the error is an upstream bad response error
func IsUpstreamBadResponse(err error) bool {
	return isType(err, ErrUpstreamBadResponse)
}
