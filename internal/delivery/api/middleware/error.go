package middleware

import (
	"log/slog"
	"net/http"

	"faceauth/internal/delivery/api/response"
	deliverycontext "faceauth/internal/delivery/context"
	domainerrors "faceauth/internal/domain/errors"
	"faceauth/internal/errors"

	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "Internal server error, please try again later."

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler. It is the only
// place an error response is written.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var validationErr *domainerrors.ValidationError
	if errors.As(err, &validationErr) {
		_ = response.ValidationError(c, validationErr.HTTPCode(), validationErr.Message(), validationErr.Fields())

		return
	}

	// Attempt to parse as AppError
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.logError(c, err, appErr.ErrorCode())
		}
		// Predefined messages never carry internal details
		_ = response.Error(c, appErr.HTTPCode(), appErr.Message())

		return
	}

	// Check if it is an Echo HTTPError
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok && msg != "" {
			message = msg
		}
		if httpErr.Code >= http.StatusInternalServerError {
			m.logError(c, err, "HTTP_ERROR")
			message = internalErrorMessage
		}

		_ = response.Error(c, httpErr.Code, message)

		return
	}

	// Default to internal error, log the error but return a generic message (do not expose internal details)
	m.logError(c, err, "INTERNAL_ERROR")
	_ = response.InternalServerError(c, internalErrorMessage)
}

func (m *ErrorMiddleware) logError(c echo.Context, err error, code string) {
	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
	logger.Error("Request failed",
		slog.String("code", code),
		slog.String("error", err.Error()),
		slog.String("stack", errors.Stack(err)),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)
}
