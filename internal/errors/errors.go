// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	// ErrInvalidInput indicates a raw field failed to parse to a finite
	// number at finalize time.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDivisionByZero indicates a degenerate entry price of zero where a
	// percentage is required.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrNotFound indicates an operation referenced a nonexistent id.
	ErrNotFound = errors.New("not found")
)

// InvalidInputError reports a raw field that could not be finalized.
type InvalidInputError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s (%v): %s", e.Field, e.Value, e.Message)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// NewInvalidInputError creates a new InvalidInputError.
func NewInvalidInputError(field string, value interface{}, message string) *InvalidInputError {
	return &InvalidInputError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NotFoundError reports a missing entity by kind and id.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{
		Kind: kind,
		ID:   id,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
