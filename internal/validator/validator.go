package validator

import (
	"sync"

	"github.com/go-playground/validator/v10"
	ierr "github.com/groupwarden/groupwarden/internal/errors"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// GetValidator returns the process-wide validator instance.
func GetValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateRequest runs struct-tag validation and converts failures into the
// standard validation error shape.
func ValidateRequest(req interface{}) error {
	if err := GetValidator().Struct(req); err != nil {
		return ierr.WithError(err).
			WithHint("Request validation failed").
			Mark(ierr.ErrValidation)
	}
	return nil
}
