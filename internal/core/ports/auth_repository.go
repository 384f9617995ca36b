package ports

import (
	"context"

	"github.com/evrikaedu/catalog-api/internal/core/domain"
)

// AuthRepository defines the interface for user persistence.
type AuthRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no row matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID returns domain.ErrUserNotFound when no row matches.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create returns domain.ErrDuplicateIdentity when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
