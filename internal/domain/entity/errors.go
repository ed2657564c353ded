package entity

import (
	"strings"

	"github.com/oksasatya/go-user-validation/pkg/validation"
)

// ValidationError is a message-only validation failure.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// EntityValidationError is returned by the entity boundary when its rules reject a state.
// Errors carries every violation, keyed by field.
type EntityValidationError struct {
	Errors validation.FieldErrors
}

func NewEntityValidationError(errs validation.FieldErrors) *EntityValidationError {
	return &EntityValidationError{Errors: errs}
}

func (e *EntityValidationError) Error() string {
	fields := e.Errors.Fields()
	if len(fields) == 0 {
		return "entity validation error"
	}
	return "entity validation error: " + strings.Join(fields, ", ")
}
