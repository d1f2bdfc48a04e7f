// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

/*
Package apperr defines the centralized error handling framework for the
library runtime.

It provides a rich error type that bridges the gap between low-level
storage errors and the transient, dismissible notifications the surrounding
shell presents to the reader.

Architecture:

  - AppError: A struct containing a machine-readable Code and a user-friendly message.
  - Taxonomy: Unauthorized engagement, persistence failure, malformed import,
    validation failure. Stale session pointers are deliberately NOT errors.
  - Propagation: Engine-level pure functions never fail; only boundary
    operations (persistence, import, unauthorized actions) produce an AppError.

Every error that leaves a service layer should be wrapped as an [AppError] so
the shell can decide how loudly to surface it.
*/
package apperr

import (
	"errors"
	"fmt"
)

// AppError is the canonical error type for the library runtime.
//
// It carries a machine-readable code, a display-safe message, and an optional
// slice of field-level validation errors.
//
// # Security
//
// The Cause field is for logging only and is never rendered to the reader,
// to avoid leaking internal implementation details (e.g., SQL statements).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "PERSISTENCE").
	Code string `json:"code"`
	// Message is a human-readable description safe to display to the reader.
	Message string `json:"error"`
	// Cause is the underlying error, used for logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the display-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Boundary Errors

// NotFound creates a NOT_FOUND [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Comic") // Returns "Comic not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: resource + " not found",
	}
}

// Unauthorized creates an UNAUTHORIZED [AppError].
//
// Used when an engagement (follow, comment, like) is attempted without an
// authenticated profile. The shell surfaces it as a sign-in prompt.
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: msg,
	}
}

// Conflict creates a CONFLICT [AppError] for duplicate or unique-constraint violations.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: msg,
	}
}

// ValidationError creates a VALIDATION_ERROR [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: msg,
		Details: details,
	}
}

// Persistence creates a PERSISTENCE [AppError] wrapping a failed store write.
//
// In-memory state is not rolled back for optimistic engagement writes; the
// shell shows a non-fatal notification instead.
func Persistence(cause error) *AppError {
	return &AppError{
		Code:    "PERSISTENCE",
		Message: "Failed to save changes to the local library",
		Cause:   cause,
	}
}

// MalformedImport creates a MALFORMED_IMPORT [AppError] for an unparseable
// import payload. The existing library is left untouched.
func MalformedImport(cause error) *AppError {
	return &AppError{
		Code:    "MALFORMED_IMPORT",
		Message: "The import file is not a valid library export",
		Cause:   cause,
	}
}

// Internal creates an INTERNAL_ERROR [AppError] wrapping an unexpected failure.
// The cause is stored for logging but is never displayed.
func Internal(cause error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "An unexpected error occurred",
		Cause:   cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsCode reports whether err carries the given machine-readable code.
func IsCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}

// Wrapf wraps an arbitrary error with formatted context while keeping the
// chain traversable.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
