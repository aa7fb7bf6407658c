package handler

import (
	"log/slog"
	"net/http"

	"faceauth/internal/delivery/api/middleware"
	"faceauth/internal/delivery/api/response"
	"faceauth/internal/delivery/api/validator"
	deliverycontext "faceauth/internal/delivery/context"
	domainerrors "faceauth/internal/domain/errors"
	"faceauth/internal/errors"
	"faceauth/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler serves the account endpoints. Every handler either writes one
// success response or returns an error for the central error handler.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// Register creates an account and responds with the stored user.
func (h *AuthHandler) Register(c echo.Context) error {
	var req validator.RegisterRequest
	if err := bindStrict(c, &req, http.StatusBadRequest); err != nil {
		return errors.WithStack(err)
	}

	if err := validator.ValidateRegistration(&req).Err(http.StatusBadRequest); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.authUC.Register(c.Request().Context(), &usecase.RegisterInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		FaceDescriptors: req.FaceDescriptors,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output.User)
}

// Login authenticates with a password or a face payload and responds with a token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req validator.LoginRequest
	if err := bindStrict(c, &req, http.StatusUnauthorized); err != nil {
		return errors.WithStack(err)
	}

	if err := validator.ValidateLogin(&req).Err(http.StatusUnauthorized); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.authUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:          req.Email,
		Password:       req.Password,
		FaceDescriptor: req.FaceDescriptor,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).Debug("Login accepted",
		slog.String("method", output.Method),
	)

	return response.Success(c, http.StatusOK, response.LoginResponse{
		Success: response.LoginSucceeded,
		Token:   output.Token,
	})
}

// Check extracts the descriptors of the submitted face without storing them.
func (h *AuthHandler) Check(c echo.Context) error {
	var req validator.CheckRequest
	if err := bindStrict(c, &req, http.StatusBadRequest); err != nil {
		return errors.WithStack(err)
	}

	if err := validator.ValidateCheck(&req).Err(http.StatusBadRequest); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.authUC.Check(c.Request().Context(), &usecase.CheckInput{
		Email:          req.Email,
		FaceDescriptor: req.FaceDescriptor,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, response.CheckResponse{
		Success:     true,
		Descriptors: output.Descriptors,
	})
}

// Profile returns the account of the token holder.
func (h *AuthHandler) Profile(c echo.Context) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrInvalidToken)
	}

	user, err := h.authUC.Profile(c.Request().Context(), claims)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user)
}

// Index answers the root path with a placeholder.
func Index(c echo.Context) error {
	return c.String(http.StatusOK, response.IndexText)
}

// HealthCheck reports that the process is serving.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, response.HealthResponse{Status: "ok"})
}
