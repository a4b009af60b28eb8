package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that an order ID matched no row. Handlers map it to 404.
var ErrNotFound = errors.New("not found")

// ErrInvalidCredentials signals a failed staff login. Handlers map it to 401.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError is a rejected input, surfaced as a 400 with a
// human-readable message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a named field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// StoreError wraps a database or network failure, surfaced as a 500 with the
// operation name as diagnostic detail.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err with the failing operation.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
