package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"faceauth/config"
	deliverycontext "faceauth/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	var seenID, seenIP string
	err := mw.Process(func(c echo.Context) error {
		ctx := c.Request().Context()
		seenID = deliverycontext.GetRequestIDFromContext(ctx)
		seenIP = deliverycontext.GetRemoteIPFromContext(ctx)
		assert.NotNil(t, deliverycontext.GetLogger(ctx))

		return nil
	})(c)
	require.NoError(t, err)

	assert.Len(t, seenID, 36)
	assert.Equal(t, seenID, rec.Header().Get(deliverycontext.HeaderXRequestID))
	assert.Equal(t, "10.1.2.3", seenIP)
}

func TestRequestIDMiddleware_PropagatesClientID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "client-id")
	rec := httptest.NewRecorder()

	mw := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, mw.Process(func(c echo.Context) error { return nil })(e.NewContext(req, rec)))
	assert.Equal(t, "client-id", rec.Header().Get(deliverycontext.HeaderXRequestID))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, strings.Repeat("x", 500))
	rec = httptest.NewRecorder()
	require.NoError(t, mw.Process(func(c echo.Context) error { return nil })(e.NewContext(req, rec)))
	assert.Len(t, rec.Header().Get(deliverycontext.HeaderXRequestID), 36)
}

func TestLoggerMiddleware_LogsFinalStatus(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := &config.Config{}
	cfg.Env.Debug = true

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/login", nil), rec)

	mw := NewLoggerMiddleware(slog.New(slog.NewTextHandler(buf, nil)), cfg)
	err := mw.Handle(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "short and stout")
	})(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, buf.String(), "status=418")
	assert.Contains(t, buf.String(), "uri=/login")
}

func TestLoggerMiddleware_DisabledOutsideDebug(t *testing.T) {
	buf := &bytes.Buffer{}
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	mw := NewLoggerMiddleware(slog.New(slog.NewTextHandler(buf, nil)), &config.Config{})
	sentinel := echo.NewHTTPError(http.StatusBadRequest)
	err := mw.Handle(func(c echo.Context) error { return sentinel })(c)

	assert.Equal(t, sentinel, err)
	assert.Empty(t, buf.String())
}

func TestLoggerMiddleware_UsesRequestLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := &config.Config{}
	cfg.Env.Debug = true
	logger := slog.New(slog.NewTextHandler(buf, nil))

	e := echo.New()
	e.Use(NewRequestIDMiddleware(logger).Process, NewLoggerMiddleware(logger, cfg).Handle)
	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "req-7")
	e.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), "request_id=req-7")
	assert.Contains(t, buf.String(), "route=/health")
	assert.Contains(t, buf.String(), "level=INFO")
}

func TestStatusLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, statusLevel(http.StatusOK))
	assert.Equal(t, slog.LevelWarn, statusLevel(http.StatusUnauthorized))
	assert.Equal(t, slog.LevelError, statusLevel(http.StatusBadGateway))
}

func TestRequestIDMiddleware_ReplacesUnprintableID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "bad\x01id")
	rec := httptest.NewRecorder()

	mw := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, mw.Process(func(c echo.Context) error { return nil })(e.NewContext(req, rec)))

	got := rec.Header().Get(deliverycontext.HeaderXRequestID)
	assert.NotEqual(t, "bad\x01id", got)
	assert.Len(t, got, 36)
}
