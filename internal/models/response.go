package models

import "time"

// Machine-readable error codes included in every error envelope.
const (
	ErrCodeMissingToken     = "MISSING_TOKEN"
	ErrCodeInvalidToken     = "INVALID_TOKEN"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeUpstream         = "UPSTREAM_ERROR"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// SuccessResponse is the uniform envelope for successful responses.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the uniform envelope for failed responses. Stack is
// only populated for server errors outside production mode.
type ErrorResponse struct {
	Success   bool      `json:"success"`
	Error     string    `json:"error"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
	Stack     string    `json:"stack,omitempty"`
}

// NewSuccessResponse wraps data in the success envelope.
func NewSuccessResponse(data interface{}) SuccessResponse {
	return SuccessResponse{Success: true, Data: data}
}

// NewErrorResponse builds the error envelope for the given request path.
func NewErrorResponse(message, code, path string) ErrorResponse {
	return ErrorResponse{
		Success:   false,
		Error:     message,
		Code:      code,
		Timestamp: time.Now().UTC(),
		Path:      path,
	}
}
