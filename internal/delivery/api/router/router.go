// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"faceauth/config"
	"faceauth/internal/delivery/api/middleware"
	"faceauth/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		authMiddleware: params.AuthMiddleware,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Index)
	e.GET("/health", handler.HealthCheck)

	// Account routes are callable from any origin
	e.POST("/register", r.authHandler.Register, middleware.AllowAnyOrigin)
	e.POST("/login", r.authHandler.Login, middleware.AllowAnyOrigin)
	e.POST("/check", r.authHandler.Check, r.checkMiddleware()...)

	e.GET("/profile", r.authHandler.Profile, r.authMiddleware.Authenticate)
}

// checkMiddleware limits the unauthenticated descriptor extraction endpoint
// when a rate is configured.
func (r *router) checkMiddleware() []echo.MiddlewareFunc {
	chain := []echo.MiddlewareFunc{middleware.AllowAnyOrigin}
	if r.config.Check == nil {
		return chain
	}
	if limiter := middleware.NewRateLimiter(r.config.Check.RateLimit); limiter != nil {
		chain = append(chain, limiter)
	}

	return chain
}
