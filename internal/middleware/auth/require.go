package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nkraev/pos-backend/internal/service"
)

const identityKey = "identity"

type Middleware struct {
	Auth *service.AuthService
}

func New(auth *service.AuthService) *Middleware {
	return &Middleware{Auth: auth}
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}

func (m *Middleware) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := bearerToken(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}

		identity, err := m.Auth.Verify(c.Request().Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrInvalidToken) {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot verify token")
		}

		c.Set(identityKey, identity)
		return next(c)
	}
}

func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireUser(func(c echo.Context) error {
		if err := m.Auth.RequireAdmin(IdentityFrom(c)); err != nil {
			return echo.NewHTTPError(http.StatusForbidden, "admin role required")
		}
		return next(c)
	})
}

func IdentityFrom(c echo.Context) *service.Identity {
	if id, ok := c.Get(identityKey).(*service.Identity); ok {
		return id
	}
	return nil
}
