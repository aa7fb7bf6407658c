package middleware

import (
	"github.com/labstack/echo/v4"
)

// AllowAnyOrigin marks the response of a public endpoint as readable from any origin.
func AllowAnyOrigin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderAccessControlAllowOrigin, "*")

		return next(c)
	}
}
