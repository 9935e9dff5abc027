package errors

import "net/http"

// ErrorDetail carries the caller-visible portion of an error.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse is the standard error envelope returned by the HTTP layer.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// NewErrorResponse converts any error into the standard response envelope.
// The message prefers the attached hint over the raw error text so internal
// wording never leaks to callers unintentionally.
func NewErrorResponse(err error) *ErrorResponse {
	message := Hint(err)
	if message == "" {
		message = err.Error()
	}

	return &ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    codeOf(err),
			Message: message,
			Details: Details(err),
		},
	}
}

// HTTPStatusFromErr maps a classified error to an HTTP status code.
func HTTPStatusFromErr(err error) int {
	switch {
	case IsValidation(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	case IsAlreadyExists(err):
		return http.StatusConflict
	case IsPermissionDenied(err):
		return http.StatusForbidden
	case IsInvalidOperation(err):
		return http.StatusUnprocessableEntity
	case IsDatabase(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func codeOf(err error) string {
	switch {
	case IsValidation(err):
		return ErrValidation.Error()
	case IsNotFound(err):
		return ErrNotFound.Error()
	case IsAlreadyExists(err):
		return ErrAlreadyExists.Error()
	case IsPermissionDenied(err):
		return ErrPermissionDenied.Error()
	case IsInvalidOperation(err):
		return ErrInvalidOperation.Error()
	case IsDatabase(err):
		return ErrDatabase.Error()
	case IsSystem(err):
		return ErrSystem.Error()
	default:
		return ErrInternal.Error()
	}
}
