package errors

import (
	"net/http"
)

// ValidationError carries the per-field messages of a rejected request.
// Message is the first encountered field message.
type ValidationError struct {
	httpCode int
	message  string
	fields   map[string]string
}

// NewValidationError builds a validation failure answered with httpCode.
// An empty message falls back to a generic one.
func NewValidationError(httpCode int, message string, fields map[string]string) *ValidationError {
	if message == "" {
		message = "Invalid request input."
	}
	if httpCode == 0 {
		httpCode = http.StatusBadRequest
	}

	return &ValidationError{
		httpCode: httpCode,
		message:  message,
		fields:   fields,
	}
}

func (e *ValidationError) Error() string {
	return e.message
}

func (e *ValidationError) HTTPCode() int {
	return e.httpCode
}

func (e *ValidationError) ErrorCode() string {
	return "VALIDATION_FAILED"
}

func (e *ValidationError) Message() string {
	return e.message
}

func (e *ValidationError) Details() string {
	return ""
}

// Fields returns the field -> message map. Callers must not mutate it.
func (e *ValidationError) Fields() map[string]string {
	return e.fields
}
