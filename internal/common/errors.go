package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	// ErrNotFound means the input PDF could not be resolved anywhere.
	ErrNotFound = errors.New("input file not found")
	// ErrBackendUnavailable means an extraction backend's prerequisite
	// (the tabula jar, or python with camelot) is missing from the host.
	ErrBackendUnavailable = errors.New("extraction backend unavailable")
	// ErrExtractionFailed means a backend ran but raised; callers treat it
	// as zero tables found.
	ErrExtractionFailed = errors.New("extraction failed")
	// ErrNoTables means no attempted backend produced a table.
	ErrNoTables = errors.New("no tables found")
	// ErrWriteError means persisting an extracted table failed.
	ErrWriteError = errors.New("write failed")
	// ErrInvalidInput means a flag or argument failed validation.
	ErrInvalidInput = errors.New("invalid input")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
