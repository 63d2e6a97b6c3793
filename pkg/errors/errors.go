// Package errors defines the typed domain error taxonomy surfaced by the
// scheduling core. There is no HTTP transport in this module, so unlike a
// REST service's error type this carries no status code — only a stable
// Code for callers to switch on and a Retriable hint for upstream failures.
package errors

import (
	"errors"
	"fmt"
)

// Error represents a typed domain error.
type Error struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retriable bool   `json:"retriable"`
	Err       error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Predefined errors for the taxonomy described in the core's error handling design.
var (
	// ErrUnknownTimeBoundary: a begin/end time is not a recognized slot boundary. Fatal to the request.
	ErrUnknownTimeBoundary = New("UNKNOWN_TIME_BOUNDARY", "time is not a recognized slot boundary")
	// ErrUnknownDay: a day name is not one of the seven canonical weekdays. Fatal to the request.
	ErrUnknownDay = New("UNKNOWN_DAY", "unrecognized day name")
	// ErrNoValidCombinations: a course had zero surviving tuples after enumeration and filtering.
	ErrNoValidCombinations = New("NO_VALID_COMBINATIONS", "no valid section combinations found")
	// ErrInvalidSolverKind: the requested solver kind is neither "random" nor "cp". Fatal.
	ErrInvalidSolverKind = New("INVALID_SOLVER_KIND", "invalid solver kind")
	// ErrUpstreamUnavailable: the SectionStore or enrollment oracle failed. Never retriable by the core itself.
	ErrUpstreamUnavailable = &Error{Code: "UPSTREAM_UNAVAILABLE", Message: "upstream section store unavailable", Retriable: false}
	// ErrTooManyCourses: request-level validation, cap of 10 course codes.
	ErrTooManyCourses = New("TOO_MANY_COURSES", "at most 10 course codes may be requested")
	// ErrValidation: generic request validation failure.
	ErrValidation = New("VALIDATION_ERROR", "invalid request")
	// ErrCacheMiss: the requested key was not present in the cache.
	ErrCacheMiss = New("CACHE_MISS", "cache miss")
)

// FromError normalizes any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, "INTERNAL_ERROR", "internal error")
}

// Clone returns a copy of the error, allowing a message override.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// WithCause returns a copy of err with the given underlying cause attached.
func WithCause(err *Error, cause error) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	clone.Err = cause
	return &clone
}
