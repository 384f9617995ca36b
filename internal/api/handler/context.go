package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/evrikaedu/catalog-api/internal/api/middleware"
	"github.com/evrikaedu/catalog-api/internal/core/domain"
)

// ctxPrincipal extracts the identity injected by the Auth middleware.
// An empty user id means the middleware did not run for this route.
func ctxPrincipal(c echo.Context) (*domain.Principal, error) {
	userID, _ := c.Get(middleware.ContextUserID).(string)
	if userID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims").
			SetInternal(domain.ErrUnauthenticated)
	}
	email, _ := c.Get(middleware.ContextEmail).(string)
	role, _ := c.Get(middleware.ContextRole).(string)
	return &domain.Principal{UserID: userID, Email: email, Role: role}, nil
}

// bearerToken returns the raw token from the Authorization header, or "".
func bearerToken(c echo.Context) string {
	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
