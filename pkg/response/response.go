package response

import (
	"errors"
	"time"

	"github.com/oksasatya/go-user-validation/internal/domain/entity"
)

// Envelope is the JSON record written for every processed input.
type Envelope[T any] struct {
	Timestamp time.Time   `json:"timestamp"`
	Record    int         `json:"record"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      T           `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
}

func Success[T any](record int, data T, message string) Envelope[T] {
	return Envelope[T]{
		Timestamp: time.Now(),
		Record:    record,
		Success:   true,
		Message:   message,
		Data:      data,
	}
}

// Error renders err; entity validation errors expose their field mapping as details.
func Error[T any](record int, err error) Envelope[T] {
	env := Envelope[T]{
		Timestamp: time.Now(),
		Record:    record,
		Success:   false,
		Message:   err.Error(),
	}
	var verr *entity.EntityValidationError
	var perr *entity.ValidationError
	switch {
	case errors.As(err, &verr):
		env.Message = "validation failed"
		env.Error = verr.Errors
	case errors.As(err, &perr):
		env.Error = map[string]string{"payload": perr.Message}
	}
	return env
}
