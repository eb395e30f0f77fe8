// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInputValidation    = errors.New("input validation failed")
	ErrConfigInvalid      = errors.New("invalid configuration")
	ErrUnknownStrategy    = errors.New("unknown strategy")
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrPositionFileAccess = errors.New("position file not readable")
)

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// Unwrap lets errors.Is match ErrInputValidation.
func (e *ValidationError) Unwrap() error {
	return ErrInputValidation
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// StrategyError represents a failure to build a named strategy preset.
type StrategyError struct {
	Strategy string
	Reason   string
	Err      error
}

func (e *StrategyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("strategy error [%s]: %s: %v", e.Strategy, e.Reason, e.Err)
	}
	return fmt.Sprintf("strategy error [%s]: %s", e.Strategy, e.Reason)
}

func (e *StrategyError) Unwrap() error {
	return e.Err
}

// NewStrategyError creates a new StrategyError.
func NewStrategyError(strategy, reason string, err error) *StrategyError {
	return &StrategyError{
		Strategy: strategy,
		Reason:   reason,
		Err:      err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join combines multiple errors into one.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// ValidationErrors collects every ValidationError in err's tree, including
// errors combined with Join.
func ValidationErrors(err error) []*ValidationError {
	var out []*ValidationError
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if ve, ok := e.(*ValidationError); ok {
			out = append(out, ve)
			return
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return out
}
