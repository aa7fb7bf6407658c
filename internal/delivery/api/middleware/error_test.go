package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"faceauth/internal/delivery/api/response"
	domainerrors "faceauth/internal/domain/errors"
	"faceauth/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveError(t *testing.T, handlerErr error) (int, response.ErrorResponse) {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = NewErrorMiddleware(slog.Default()).HandleHTTPError
	e.GET("/", func(c echo.Context) error {
		return handlerErr
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec.Code, body
}

func TestHandleHTTPError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
		wantFields map[string]string
	}{
		{
			name:       "validation error keeps its status and fields",
			err:        errors.WithStack(domainerrors.NewValidationError(http.StatusUnauthorized, "Email field is required", map[string]string{"email": "Email field is required"})),
			wantStatus: http.StatusUnauthorized,
			wantError:  "Email field is required",
			wantFields: map[string]string{"email": "Email field is required"},
		},
		{
			name:       "conflict",
			err:        errors.WithStack(domainerrors.ErrUserAlreadyExists),
			wantStatus: http.StatusBadRequest,
			wantError:  "A user with that email already exists.",
		},
		{
			name:       "wrapped app error uses its own message",
			err:        domainerrors.ErrIncorrectPassword.WrapMessage("bcrypt mismatch for user 42"),
			wantStatus: http.StatusBadRequest,
			wantError:  "Incorrect password!",
		},
		{
			name:       "database error hides the driver message",
			err:        domainerrors.NewDatabaseExecuteError(errors.New("connection refused"), "insert user"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Database operation failed, please try again later.",
		},
		{
			name:       "echo not found",
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantError:  "Not Found",
		},
		{
			name:       "echo 5xx is generic",
			err:        echo.NewHTTPError(http.StatusServiceUnavailable, "pool exhausted"),
			wantStatus: http.StatusServiceUnavailable,
			wantError:  internalErrorMessage,
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantError:  internalErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := serveError(t, tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantError, body.Error)
			assert.Equal(t, tt.wantFields, body.Fields)
		})
	}
}

func TestHandleHTTPError_CommittedResponse(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = NewErrorMiddleware(slog.Default()).HandleHTTPError
	e.GET("/", func(c echo.Context) error {
		if err := c.String(http.StatusOK, "done"); err != nil {
			return err
		}

		return errors.New("late failure")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}
