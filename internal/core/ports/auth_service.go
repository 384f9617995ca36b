package ports

import (
	"context"

	"github.com/evrikaedu/catalog-api/internal/core/domain"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// TokenVerifier checks a bearer token and returns the identity it carries.
type TokenVerifier interface {
	VerifyToken(token string) (*domain.Principal, error)
}

type AuthService interface {
	TokenVerifier
	Register(ctx context.Context, email, name, password, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	GetUserByToken(ctx context.Context, token string) (*domain.User, error)
}
