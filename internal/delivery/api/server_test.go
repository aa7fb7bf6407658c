package api

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"faceauth/config"
	"faceauth/internal/delivery/api/middleware"
	"faceauth/internal/delivery/api/router"
	"faceauth/internal/delivery/api/router/handler"
	"faceauth/internal/domain/entity"
	"faceauth/internal/domain/service"
	"faceauth/internal/infra/auth"
	mockusecase "faceauth/internal/mocks/usecase"
	"faceauth/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type serverFixture struct {
	echo         *echo.Echo
	usecase      *mockusecase.MockAuthUsecase
	tokenService service.TokenService
}

func newServerFixture(t *testing.T, checkRate float64) *serverFixture {
	t.Helper()

	cfg := &config.Config{
		Check: &config.CheckConfig{RateLimit: checkRate},
	}
	cfg.Env.Debug = true
	cfg.HTTP.MaxRequestBodySize = "1KB"
	cfg.SecretKey.Access = "server-test-secret"

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	authUC := mockusecase.NewMockAuthUsecase(t)
	e := newEcho(cfg, slog.Default(), router.RouterParams{
		AuthHandler:    handler.NewAuthHandler(handler.AuthHandlerParams{AuthUC: authUC, Logger: slog.Default()}),
		AuthMiddleware: middleware.NewAuthMiddleware(tokenService),
		Config:         cfg,
	})

	return &serverFixture{echo: e, usecase: authUC, tokenService: tokenService}
}

func (f *serverFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	return rec
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	return req
}

func TestServer_AccountRoutesAllowAnyOrigin(t *testing.T) {
	f := newServerFixture(t, 0)
	f.usecase.EXPECT().Login(mock.Anything, mock.Anything).
		Return(&usecase.LoginOutput{Token: "signed"}, nil).Once()

	rec := f.do(jsonRequest(http.MethodPost, "/login", `{"email":"a@x.com","password":"p1"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestServer_Preflight(t *testing.T) {
	f := newServerFixture(t, 0)

	req := httptest.NewRequest(http.MethodOptions, "/register", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := f.do(req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestServer_ErrorsAreWrittenOnce(t *testing.T) {
	f := newServerFixture(t, 0)

	rec := f.do(jsonRequest(http.MethodPost, "/register", `{"email":"a@x.com"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{
		"error": "First name field is required",
		"fields": {
			"firstName": "First name field is required",
			"lastName": "Last name field is required",
			"password": "Password field is required",
			"confirmPassword": "Confirm password field is required"
		}
	}`, rec.Body.String())
}

func TestServer_BodyLimit(t *testing.T) {
	f := newServerFixture(t, 0)

	body := `{"email":"a@x.com","faceDescriptor":"` + strings.Repeat("A", 2048) + `"}`
	rec := f.do(jsonRequest(http.MethodPost, "/check", body))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestServer_ProfileRequiresToken(t *testing.T) {
	f := newServerFixture(t, 0)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/profile", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid or expired token"}`, rec.Body.String())

	userID := uuid.New()
	token, err := f.tokenService.GenerateToken(userID, "a@x.com")
	require.NoError(t, err)
	f.usecase.EXPECT().Profile(mock.Anything, mock.MatchedBy(func(claims *service.Claims) bool {
		return claims.UserID == userID && claims.Email == "a@x.com"
	})).Return(&entity.User{ID: userID, Email: "a@x.com"}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec = f.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID.String())
}

func TestServer_CheckRateLimit(t *testing.T) {
	f := newServerFixture(t, 1)
	f.usecase.EXPECT().Check(mock.Anything, mock.Anything).
		Return(&usecase.CheckOutput{}, nil).Times(2)

	codes := make([]int, 0, 3)
	for range 3 {
		rec := f.do(jsonRequest(http.MethodPost, "/check", `{"email":"a@x.com","faceDescriptor":"payload"}`))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestServer_UnknownRoute(t *testing.T) {
	f := newServerFixture(t, 0)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
}
