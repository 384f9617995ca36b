package ports

import (
	"context"

	"github.com/evrikaedu/catalog-api/internal/core/domain"
)

// CardRepository defines persistence operations for cards.
// List and Count must agree on which rows match a filter.
type CardRepository interface {
	List(ctx context.Context, filter domain.CardFilter) ([]*domain.Card, error)
	Count(ctx context.Context, filter domain.CardFilter) (int64, error)
	GetByID(ctx context.Context, id string) (*domain.Card, error)
	Create(ctx context.Context, card *domain.Card) (*domain.Card, error)
	Update(ctx context.Context, card *domain.Card) (*domain.Card, error)
	Delete(ctx context.Context, id string) error
	// IncrementViews is a no-op for unknown ids.
	IncrementViews(ctx context.Context, id string) error
}
