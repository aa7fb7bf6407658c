package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"faceauth/config"
	deliverycontext "faceauth/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// LoggerMiddleware writes one access log line per request when env.debug is set.
type LoggerMiddleware struct {
	logger *slog.Logger
	debug  bool
}

// NewLoggerMiddleware creates a new logger middleware
func NewLoggerMiddleware(logger *slog.Logger, config *config.Config) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger: logger,
		debug:  config.Env.Debug,
	}
}

// Handle logs the request after the response is final. A handler error is
// handed to echo's error handler first so the logged status is the one sent.
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.debug {
			return next(c)
		}

		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		req, res := c.Request(), c.Response()
		attrs := []slog.Attr{
			slog.String("method", req.Method),
			slog.String("uri", req.URL.Path),
			slog.String("route", c.Path()),
			slog.Int("status", res.Status),
			slog.Int64("bytes_out", res.Size),
			slog.Duration("latency", time.Since(start)),
			slog.String("user_agent", req.UserAgent()),
		}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}

		deliverycontext.GetLoggerOrDefault(req.Context(), m.logger).
			LogAttrs(req.Context(), statusLevel(res.Status), "HTTP request", attrs...)

		return nil
	}
}

func statusLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
