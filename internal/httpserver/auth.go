package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nkraev/pos-backend/internal/logging"
	"github.com/nkraev/pos-backend/internal/service"
	"github.com/nkraev/pos-backend/internal/transport"
)

type AuthHandler struct {
	Svc *service.AuthService
}

// Token exchanges form credentials for a bearer token.
func (h *AuthHandler) Token(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.token")

	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		l.Warn("token_failed", "status", 400, "reason", "missing credentials")
		return echo.NewHTTPError(http.StatusBadRequest, "username and password required")
	}

	token, err := h.Svc.Issue(ctx, username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			l.Warn("token_failed", "status", 401, "reason", "invalid credentials", "username", username)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
		}
		l.Error("token_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot issue token")
	}

	l.Info("token_issued", "username", username)
	return c.JSON(http.StatusOK, transport.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
