package middleware

import (
	"strings"

	domainerrors "faceauth/internal/domain/errors"
	"faceauth/internal/domain/service"
	"faceauth/internal/errors"

	"github.com/labstack/echo/v4"
)

const (
	claimsContextKey = "claims"
	bearerPrefix     = "Bearer "
)

// AuthMiddleware checks the bearer token issued by the login endpoint.
type AuthMiddleware struct {
	tokenService service.TokenService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenService service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate rejects requests without a valid bearer token and stores the
// token claims on the echo context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
			return errors.WithStack(domainerrors.ErrInvalidToken.WrapMessage("missing bearer token"))
		}

		claims, err := m.tokenService.ValidateToken(strings.TrimSpace(header[len(bearerPrefix):]))
		if err != nil {
			return errors.WithStack(err)
		}

		c.Set(claimsContextKey, claims)

		return next(c)
	}
}

// GetClaims returns the claims stored by Authenticate.
func GetClaims(c echo.Context) (*service.Claims, bool) {
	claims, ok := c.Get(claimsContextKey).(*service.Claims)

	return claims, ok && claims != nil
}
