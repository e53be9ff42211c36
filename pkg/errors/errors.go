package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrNotFound          = errors.New("record not found")
	ErrValidation        = errors.New("validation failed")
	ErrInconsistentState = errors.New("inconsistent state")
	ErrExecution         = errors.New("query execution failed")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeExecution         = "EXECUTION_ERROR"
	ErrCodeInconsistentState = "INCONSISTENT_STATE"
)

// Wrap common errors with business context

func WrapNotFound(entity string, key interface{}) *BusinessError {
	return NewBusinessError(
		ErrCodeNotFound,
		fmt.Sprintf("%s %v not found", entity, key),
		ErrNotFound,
	)
}

func WrapValidation(message string) *BusinessError {
	return NewBusinessError(
		ErrCodeValidation,
		message,
		ErrValidation,
	)
}

// WrapExecution wraps an opaque persistence failure. Never retried by the
// core since non-idempotent writes risk duplication.
func WrapExecution(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeExecution,
		"database operation failed",
		err,
	)
}

func WrapInconsistentState(message string) *BusinessError {
	return NewBusinessError(
		ErrCodeInconsistentState,
		message,
		ErrInconsistentState,
	)
}

// IsNotFound reports whether err is a not-found business error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
