package errors

import "github.com/cockroachdb/errors"

// Sentinel errors used to classify failures across the codebase.
// Errors are attached to one of these via Mark and checked with errors.Is,
// so wrapping never hides the classification.
var (
	ErrValidation       = errors.New("validation_error")
	ErrNotFound         = errors.New("not_found")
	ErrAlreadyExists    = errors.New("already_exists")
	ErrPermissionDenied = errors.New("permission_denied")
	ErrInvalidOperation = errors.New("invalid_operation")
	ErrDatabase         = errors.New("database_error")
	ErrInternal         = errors.New("internal_error")
	ErrSystem           = errors.New("system_error")
)

// IsNotFound returns true if the error is marked as a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation returns true if the error is marked as a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsAlreadyExists returns true if the error is marked as an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsPermissionDenied returns true if the error is marked as a permission denied error
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// IsInvalidOperation returns true if the error is marked as an invalid operation error
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsDatabase returns true if the error is marked as a database error
func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}

// IsSystem returns true if the error is marked as a system error
func IsSystem(err error) bool {
	return errors.Is(err, ErrSystem)
}
