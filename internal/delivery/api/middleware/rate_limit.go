package middleware

import (
	"time"

	domainerrors "faceauth/internal/domain/errors"
	"faceauth/internal/errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const rateLimitVisitorTTL = 3 * time.Minute

// NewRateLimiter limits each client IP to perSecond requests with a burst of
// twice that rate. A non-positive rate returns nil.
func NewRateLimiter(perSecond float64) echo.MiddlewareFunc {
	if perSecond <= 0 {
		return nil
	}

	burst := int(perSecond * 2)
	if burst < 1 {
		burst = 1
	}

	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     burst,
		ExpiresIn: rateLimitVisitorTTL,
	})

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errors.WithStack(domainerrors.ErrInternalError.WrapMessage(err.Error()))
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return errors.WithStack(domainerrors.ErrTooManyRequests.WrapMessage(identifier))
		},
	})
}
