package ports

import (
	"context"

	"github.com/evrikaedu/catalog-api/internal/core/domain"
)

// CardInput carries the writable fields of a card.
type CardInput struct {
	Title       string
	Description string
	Content     string
	TimeMinutes *int
	FileURL     *string
	AgeGroups   []string
	Skills      []string
	Stages      []string
	Types       []string
}

// CardPage is one page of a filtered listing.
type CardPage struct {
	Items  []*domain.Card
	Total  int64
	Limit  *int
	Offset *int
}

// CardService defines use-case operations for cards.
type CardService interface {
	ListCards(ctx context.Context, filter domain.CardFilter) (*CardPage, error)
	ViewCard(ctx context.Context, id string) (*domain.Card, error)
	CreateCard(ctx context.Context, input CardInput) (*domain.Card, error)
	UpdateCard(ctx context.Context, id string, input CardInput) (*domain.Card, error)
	DeleteCard(ctx context.Context, id string) error
}
