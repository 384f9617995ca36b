package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/evrikaedu/catalog-api/internal/core/domain"
	"github.com/evrikaedu/catalog-api/internal/core/ports"
)

// Context keys set by Auth for downstream handlers.
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// Auth validates the bearer token and injects the principal into context.
// A missing or malformed header yields 401; a token that fails verification
// yields 403.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header").
					SetInternal(domain.ErrUnauthenticated)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header").
					SetInternal(domain.ErrUnauthenticated)
			}

			principal, err := verifier.VerifyToken(strings.TrimSpace(parts[1]))
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "invalid or expired token").
					SetInternal(domain.ErrInvalidToken)
			}

			c.Set(ContextUserID, principal.UserID)
			c.Set(ContextEmail, principal.Email)
			c.Set(ContextRole, principal.Role)

			return next(c)
		}
	}
}
