// Package response defines the JSON bodies written by the API.
package response

import (
	"net/http"

	"faceauth/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// Messages returned on success.
const (
	LoginSucceeded = "Login successful!"
	IndexText      = "respond with a resource"
)

// ErrorResponse is the single error shape of every endpoint.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"` // per-field messages, validation failures only
}

// LoginResponse is written after a successful login.
type LoginResponse struct {
	Success string `json:"success"`
	Token   string `json:"token"`
}

// CheckResponse carries the descriptors extracted by the check endpoint.
type CheckResponse struct {
	Success     bool                        `json:"success"`
	Descriptors []entity.LabeledDescriptors `json:"descriptors"`
}

// HealthResponse is written by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// Success writes data as JSON with statusCode.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, data)
}

// Error writes an error response
func Error(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, ErrorResponse{Error: message})
}

// ValidationError writes an error response listing the rejected fields.
func ValidationError(c echo.Context, statusCode int, message string, fields map[string]string) error {
	return c.JSON(statusCode, ErrorResponse{Error: message, Fields: fields})
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, message string) error {
	return Error(c, http.StatusInternalServerError, message)
}
