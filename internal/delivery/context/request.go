// Package context carries per-request metadata from the HTTP layer to the
// services and repositories it calls.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is the HTTP header name for request ID.
const HeaderXRequestID = "X-Request-Id"

// maxRequestIDLength bounds client supplied request ids.
const maxRequestIDLength = 128

// echoRequestIDKey stores the request id on the echo.Context.
const echoRequestIDKey = "request_id"

type requestKey struct{}

// Request is the metadata attached to a request's context.
type Request struct {
	ID       string
	RemoteIP string
	Logger   *slog.Logger // request-scoped, already tagged with ID
}

// WithRequest returns a context carrying req.
func WithRequest(ctx context.Context, req Request) context.Context {
	return context.WithValue(ctx, requestKey{}, req)
}

// RequestFromContext returns the metadata stored by WithRequest.
func RequestFromContext(ctx context.Context) (Request, bool) {
	if ctx == nil {
		return Request{}, false
	}
	req, ok := ctx.Value(requestKey{}).(Request)

	return req, ok
}

// WithLogger returns a context whose request metadata uses logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	req, _ := RequestFromContext(ctx)
	req.Logger = logger

	return WithRequest(ctx, req)
}

// GetRequestIDFromContext returns the request id or an empty string.
func GetRequestIDFromContext(ctx context.Context) string {
	req, _ := RequestFromContext(ctx)

	return req.ID
}

// GetRemoteIPFromContext returns the client address or an empty string.
func GetRemoteIPFromContext(ctx context.Context) string {
	req, _ := RequestFromContext(ctx)

	return req.RemoteIP
}

// GetLogger returns the request-scoped logger, or nil outside a request.
func GetLogger(ctx context.Context) *slog.Logger {
	req, _ := RequestFromContext(ctx)

	return req.Logger
}

// GetLoggerOrDefault returns the request-scoped logger, or fallback outside a request.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// SetRequestID stores the request id on the echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoRequestIDKey, requestID)
}

// GetRequestID returns the id stored by SetRequestID, or an empty string.
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(echoRequestIDKey).(string)

	return id
}

// ResolveRequestID keeps a client supplied id when it is short printable
// ASCII and generates a new one otherwise.
func ResolveRequestID(clientID string) string {
	if clientID == "" || len(clientID) > maxRequestIDLength {
		return uuid.NewString()
	}
	for i := 0; i < len(clientID); i++ {
		if clientID[i] < 0x21 || clientID[i] > 0x7e {
			return uuid.NewString()
		}
	}

	return clientID
}
