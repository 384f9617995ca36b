package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/evrikaedu/catalog-api/internal/core/domain"
	"github.com/evrikaedu/catalog-api/internal/core/ports"
)

type CardService struct {
	repo   ports.CardRepository
	logger zerolog.Logger
}

func NewCardService(repo ports.CardRepository, logger zerolog.Logger) *CardService {
	return &CardService{repo: repo, logger: logger}
}

// ListCards returns one page of cards matching filter together with the total
// number of matches. Both queries share the same predicates.
func (s *CardService) ListCards(ctx context.Context, filter domain.CardFilter) (*ports.CardPage, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	filter = filter.NormalizePaging()

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, filter.WithoutPaging())
	if err != nil {
		return nil, err
	}

	for _, c := range items {
		c.NormalizeTags()
	}

	s.logger.Debug().
		Int("count", len(items)).
		Int64("total", total).
		Bool("filtered", !filter.IsEmpty()).
		Msg("cards listed")

	return &ports.CardPage{
		Items:  items,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

// ViewCard loads a card and counts one view for it.
func (s *CardService) ViewCard(ctx context.Context, id string) (*domain.Card, error) {
	card, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	card.Views++
	card.NormalizeTags()
	return card, nil
}

func (s *CardService) CreateCard(ctx context.Context, input ports.CardInput) (*domain.Card, error) {
	if err := validateCardInput(input); err != nil {
		return nil, err
	}

	minutes := domain.DefaultTimeMinutes
	if input.TimeMinutes != nil {
		minutes = *input.TimeMinutes
	}

	now := time.Now().UTC()
	card := &domain.Card{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Content:     input.Content,
		TimeMinutes: minutes,
		FileURL:     input.FileURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	applyTags(card, input)

	created, err := s.repo.Create(ctx, card)
	if err != nil {
		return nil, err
	}
	created.NormalizeTags()

	s.logger.Info().Str("card_id", created.ID).Str("title", created.Title).Msg("card created")
	return created, nil
}

// UpdateCard replaces the writable fields of an existing card. A nil
// TimeMinutes keeps the stored duration.
func (s *CardService) UpdateCard(ctx context.Context, id string, input ports.CardInput) (*domain.Card, error) {
	if err := validateCardInput(input); err != nil {
		return nil, err
	}

	card, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	card.Title = strings.TrimSpace(input.Title)
	card.Description = input.Description
	card.Content = input.Content
	card.FileURL = input.FileURL
	if input.TimeMinutes != nil {
		card.TimeMinutes = *input.TimeMinutes
	}
	card.UpdatedAt = time.Now().UTC()
	applyTags(card, input)

	updated, err := s.repo.Update(ctx, card)
	if err != nil {
		return nil, err
	}
	updated.NormalizeTags()

	s.logger.Info().Str("card_id", updated.ID).Msg("card updated")
	return updated, nil
}

func (s *CardService) DeleteCard(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("card_id", id).Msg("card deleted")
	return nil
}

func validateFilter(f domain.CardFilter) error {
	if f.Limit != nil && *f.Limit < 0 {
		return domain.NewValidationError("limit", "must not be negative")
	}
	if f.Offset != nil && *f.Offset < 0 {
		return domain.NewValidationError("offset", "must not be negative")
	}
	if domain.IsDeprecatedTimeRange(f.TimeRange) {
		return domain.NewValidationError("timeRange", "uses a retired bucket name")
	}
	return nil
}

func validateCardInput(in ports.CardInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return domain.NewValidationError("title", "is required")
	}
	if in.TimeMinutes != nil && *in.TimeMinutes < 0 {
		return domain.NewValidationError("time_minutes", "must not be negative")
	}
	return nil
}

// applyTags stores tags in storage form. Caller ids are translated, values
// already in storage form pass through.
func applyTags(card *domain.Card, in ports.CardInput) {
	card.AgeGroups = domain.StorageTags(domain.CategoryAgeGroups, in.AgeGroups)
	card.Skills = domain.StorageTags(domain.CategorySkills, in.Skills)
	card.Stages = domain.StorageTags(domain.CategoryStages, in.Stages)
	card.Types = domain.StorageTags(domain.CategoryTypes, in.Types)
	card.NormalizeTags()
}
