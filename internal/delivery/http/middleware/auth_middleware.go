package middleware

import (
	"strings"

	deliverycontext "checker/internal/delivery/context"
	domainerrors "checker/internal/domain/errors"
	"checker/internal/domain/service"
	"checker/internal/errors"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer access token and stores the user ID for handlers.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return errors.WithStack(domainerrors.ErrUnauthorized.WithDetails("authorization header is missing"))
		}

		tokenString, found := strings.CutPrefix(authHeader, bearerPrefix)
		if !found || tokenString == "" {
			return errors.WithStack(domainerrors.ErrUnauthorized.WithDetails("authorization must be a bearer token"))
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return errors.Wrap(domainerrors.ErrUnauthorized.WithDetails("invalid or expired token"), err.Error())
		}

		userID, err := claims.UserID()
		if err != nil {
			return errors.WithStack(domainerrors.ErrUnauthorized.WithDetails("invalid subject in token"))
		}

		deliverycontext.SetUserID(c, userID)

		return next(c)
	}
}
