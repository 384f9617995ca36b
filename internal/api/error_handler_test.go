package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/evrikaedu/catalog-api/internal/core/domain"
)

func runErrorHandler(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/cards", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec, body
}

func TestHTTPErrorHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", domain.NewValidationError("email", "is required"), http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("%w: title is required", domain.ErrValidation), http.StatusBadRequest},
		{"duplicate", domain.ErrDuplicateIdentity, http.StatusConflict},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized},
		{"invalid token", domain.ErrInvalidToken, http.StatusForbidden},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"card not found", domain.ErrCardNotFound, http.StatusNotFound},
		{"storage", fmt.Errorf("list cards: %w: %w", domain.ErrStorageUnavailable, errors.New("dial tcp")), http.StatusServiceUnavailable},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed},
		{"http error with domain cause", echo.NewHTTPError(http.StatusUnauthorized).SetInternal(domain.ErrInvalidToken), http.StatusForbidden},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := runErrorHandler(t, tc.err)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if _, ok := body["error"].(string); !ok {
				t.Fatalf("expected error envelope, got %v", body)
			}
		})
	}
}

func TestHTTPErrorHandler_LockedIncludesRemainingMinutes(t *testing.T) {
	rec, body := runErrorHandler(t, &domain.LockedError{RemainingMinutes: 12})

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if body["remaining_minutes"] != float64(12) {
		t.Fatalf("expected remaining_minutes 12, got %v", body["remaining_minutes"])
	}
}

func TestHTTPErrorHandler_HidesInternalDetails(t *testing.T) {
	_, body := runErrorHandler(t, errors.New("pq: password authentication failed for user app"))
	if body["error"] != "internal server error" {
		t.Fatalf("internal error leaked: %v", body["error"])
	}

	_, body = runErrorHandler(t, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, errors.New("secret dsn")))
	if body["error"] != "service temporarily unavailable" {
		t.Fatalf("storage error leaked: %v", body["error"])
	}
}

func TestHTTPErrorHandler_CommittedResponseIsLeftAlone(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response was modified: %d %q", rec.Code, rec.Body.String())
	}
}
