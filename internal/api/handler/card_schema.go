package handler

import (
	"github.com/evrikaedu/catalog-api/internal/core/domain"
	"github.com/evrikaedu/catalog-api/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error            string `json:"error"`
	RemainingMinutes *int   `json:"remaining_minutes,omitempty"`
}

// --- Request / Response types ---

type cardRequest struct {
	Title       string   `json:"title"        validate:"required,max=255"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	TimeMinutes *int     `json:"time_minutes" validate:"omitempty,gte=0"`
	FileURL     *string  `json:"file_url"`
	AgeGroups   []string `json:"age_groups"`
	Skills      []string `json:"skills"`
	Stages      []string `json:"stages"`
	Types       []string `json:"types"`
}

func (r cardRequest) toInput() ports.CardInput {
	return ports.CardInput{
		Title:       r.Title,
		Description: r.Description,
		Content:     r.Content,
		TimeMinutes: r.TimeMinutes,
		FileURL:     r.FileURL,
		AgeGroups:   r.AgeGroups,
		Skills:      r.Skills,
		Stages:      r.Stages,
		Types:       r.Types,
	}
}

type cardListResponse struct {
	Data   []*domain.Card `json:"data"`
	Total  int64          `json:"total"`
	Count  int            `json:"count"`
	Limit  *int           `json:"limit,omitempty"`
	Offset *int           `json:"offset,omitempty"`
}

type cardResponse struct {
	Data *domain.Card `json:"data"`
}

type metadataResponse[T any] struct {
	Data T `json:"data"`
}

type formDataResponse struct {
	Stages []domain.Term `json:"stages"`
	Types  []domain.Term `json:"types"`
	Aims   []domain.Term `json:"aims"`
}
