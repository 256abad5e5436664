package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"checker/config"
	deliverycontext "checker/internal/delivery/context"
	httpmiddleware "checker/internal/delivery/http/middleware"
	"checker/internal/delivery/http/response"
	"checker/internal/delivery/http/router"
	"checker/internal/delivery/http/router/handler"
	"checker/internal/domain/entity"
	domainerrors "checker/internal/domain/errors"
	"checker/internal/domain/service"
	"checker/internal/errors"
	mockSvc "checker/internal/mocks/service"
	mockUC "checker/internal/mocks/usecase"
	"checker/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type serverFixtures struct {
	echo      *echo.Echo
	userUC    *mockUC.MockUserUsecase
	routingUC *mockUC.MockRoutingUsecase
	tokens    *mockSvc.MockTokenService
}

func newServerFixtures(t *testing.T) serverFixtures {
	t.Helper()

	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "10KB"
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f := serverFixtures{
		userUC:    mockUC.NewMockUserUsecase(t),
		routingUC: mockUC.NewMockRoutingUsecase(t),
		tokens:    mockSvc.NewMockTokenService(t),
	}
	f.echo = newEcho(cfg, logger)
	router.NewRouter(router.RouterParams{
		UserHandler:    handler.NewUserHandler(f.userUC, logger),
		RouteHandler:   handler.NewRouteHandler(f.routingUC),
		AuthMiddleware: httpmiddleware.NewAuthMiddleware(f.tokens),
	}).RegisterRoutes(f.echo)

	return f
}

func (f serverFixtures) do(method, target, body string, headers map[string]string) (*httptest.ResponseRecorder, response.Response) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	var env response.Response
	_ = json.Unmarshal(rec.Body.Bytes(), &env)

	return rec, env
}

func (f serverFixtures) authorize(userID uuid.UUID) map[string]string {
	claims := &service.Claims{
		Type:             service.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()},
	}
	f.tokens.EXPECT().ValidateAccessToken("good-token").Return(claims, nil)

	return map[string]string{echo.HeaderAuthorization: "Bearer good-token"}
}

func TestServer_HealthCarriesRequestID(t *testing.T) {
	f := newServerFixtures(t)

	rec, env := f.do(http.MethodGet, "/health", "", map[string]string{deliverycontext.HeaderXRequestID: "abc"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "abc", env.RequestID)
	assert.Equal(t, "abc", rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestServer_Register(t *testing.T) {
	f := newServerFixtures(t)
	userID := uuid.New()

	f.userUC.EXPECT().
		RegisterUser(mock.Anything, &usecase.RegisterUserInput{Name: "Ann", Email: "ann@example.com", Password: "pw"}).
		Return(&usecase.RegisterOutput{User: &entity.User{ID: userID, Name: "Ann", Email: "ann@example.com"}}, nil)

	rec, env := f.do(http.MethodPost, "/auth/register", `{"name":"Ann","email":"ann@example.com","password":"pw"}`, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	assert.Contains(t, rec.Body.String(), userID.String())
	assert.NotContains(t, rec.Body.String(), "digest")
}

func TestServer_RegisterValidation(t *testing.T) {
	f := newServerFixtures(t)

	rec, env := f.do(http.MethodPost, "/auth/register", `{"name":"Ann","email":"nope"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), env.Error.Code)
	assert.Contains(t, env.Error.Details, "email must be a valid email")
	assert.Contains(t, env.Error.Details, "password is required")
}

func TestServer_RegisterBlankPassword(t *testing.T) {
	f := newServerFixtures(t)

	f.userUC.EXPECT().RegisterUser(mock.Anything, mock.Anything).
		Return(nil, errors.Wrap(domainerrors.ErrInvalidCredential, "failed to hash password during registration"))

	rec, env := f.do(http.MethodPost, "/auth/register", `{"name":"Ann","email":"ann@example.com","password":"   "}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domainerrors.ErrInvalidCredential.ErrorCode(), env.Error.Code)
}

func TestServer_LoginFailureHidesCause(t *testing.T) {
	f := newServerFixtures(t)

	f.userUC.EXPECT().Login(mock.Anything, mock.Anything).
		Return(nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed"))

	rec, env := f.do(http.MethodPost, "/auth/login", `{"email":"ann@example.com","password":"bad"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, domainerrors.ErrInvalidCredentials.Message(), env.Message)
}

func TestServer_LoginSuccess(t *testing.T) {
	f := newServerFixtures(t)
	user := &entity.User{ID: uuid.New(), Email: "ann@example.com"}

	f.userUC.EXPECT().Login(mock.Anything, &usecase.LoginInput{Email: user.Email, Password: "pw"}).
		Return(&usecase.LoginOutput{AccessToken: "a", RefreshToken: "r", ExpiresIn: 900, User: user}, nil)

	rec, _ := f.do(http.MethodPost, "/auth/login", `{"email":"ann@example.com","password":"pw"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access_token":"a"`)
	assert.Contains(t, rec.Body.String(), `"token_type":"Bearer"`)
}

func TestServer_SaltStoreFailureIsOpaque(t *testing.T) {
	f := newServerFixtures(t)

	f.userUC.EXPECT().Login(mock.Anything, mock.Anything).
		Return(nil, errors.WithStack(domainerrors.ErrResourceNotFound.WithDetails("/secret/path/salt.txt")))

	rec, env := f.do(http.MethodPost, "/auth/login", `{"email":"ann@example.com","password":"pw"}`, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "/secret/path")
	assert.Equal(t, domainerrors.ErrResourceNotFound.ErrorCode(), env.Error.Code)
}

func TestServer_ChangePasswordRequiresToken(t *testing.T) {
	f := newServerFixtures(t)

	rec, env := f.do(http.MethodPost, "/user/password", `{"old_password":"a","new_password":"b"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, domainerrors.ErrUnauthorized.ErrorCode(), env.Error.Code)
}

func TestServer_ChangePasswordRejectsBadToken(t *testing.T) {
	f := newServerFixtures(t)
	f.tokens.EXPECT().ValidateAccessToken("bad").Return(nil, errors.New("token is expired"))

	rec, _ := f.do(http.MethodPost, "/user/password", `{"old_password":"a","new_password":"b"}`,
		map[string]string{echo.HeaderAuthorization: "Bearer bad"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_ChangePassword(t *testing.T) {
	f := newServerFixtures(t)
	userID := uuid.New()
	headers := f.authorize(userID)

	f.userUC.EXPECT().
		ChangePassword(mock.Anything, userID, &usecase.ChangePasswordInput{OldPassword: "a", NewPassword: "b"}).
		Return(nil)

	rec, env := f.do(http.MethodPost, "/user/password", `{"old_password":"a","new_password":"b"}`, headers)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
}

func TestServer_CalculateRoute(t *testing.T) {
	f := newServerFixtures(t)
	headers := f.authorize(uuid.New())

	source := usecase.Coordinate{Lat: 25.033, Lng: 121.5654}
	target := usecase.Coordinate{Lat: 25.0425, Lng: 121.5649}
	f.routingUC.EXPECT().CalculateRoute(mock.Anything, source, target).
		Return(&usecase.RouteResult{Source: source, Target: target, DistanceKm: 1.06, IsReachable: true, Provider: usecase.RouteProviderHaversine}, nil)

	rec, _ := f.do(http.MethodGet, "/routes?fromLat=25.033&fromLng=121.5654&toLat=25.0425&toLng=121.5649", "", headers)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"provider":"haversine"`)
}

func TestServer_CalculateRouteBadQuery(t *testing.T) {
	f := newServerFixtures(t)

	headers := f.authorize(uuid.New())
	rec, _ := f.do(http.MethodGet, "/routes?fromLat=abc&fromLng=1&toLat=2&toLng=3", "", headers)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := f.do(http.MethodGet, "/routes?fromLat=95&fromLng=1&toLat=2&toLng=3", "", headers)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), env.Error.Code)
}
