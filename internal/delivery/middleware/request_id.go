package middleware

import (
	"log/slog"

	deliverycontext "faceauth/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// RequestIDMiddleware tags every request with an id, echoes it in the
// response and attaches request metadata to the request context.
type RequestIDMiddleware struct {
	logger *slog.Logger
}

// NewRequestIDMiddleware creates a new Request ID middleware
func NewRequestIDMiddleware(logger *slog.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{
		logger: logger,
	}
}

// Process resolves the request id, then stores it with the client address
// and a logger tagged with both.
func (m *RequestIDMiddleware) Process(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := deliverycontext.ResolveRequestID(c.Request().Header.Get(deliverycontext.HeaderXRequestID))
		remoteIP := c.RealIP()

		deliverycontext.SetRequestID(c, requestID)
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

		ctx := deliverycontext.WithRequest(c.Request().Context(), deliverycontext.Request{
			ID:       requestID,
			RemoteIP: remoteIP,
			Logger: m.logger.With(
				slog.String("request_id", requestID),
				slog.String("remote_ip", remoteIP),
			),
		})
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
