package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/evrikaedu/catalog-api/internal/core/domain"
)

// MetadataHandler serves the static vocabularies used by filter and card forms.
type MetadataHandler struct{}

func NewMetadataHandler() *MetadataHandler {
	return &MetadataHandler{}
}

// AgeGroups handles GET /api/metadata/age-groups.
//
// @Summary      Age groups
// @Tags         metadata
// @Produce      json
// @Success      200  {object}  metadataResponse[[]domain.Term]
// @Router       /api/metadata/age-groups [get]
func (h *MetadataHandler) AgeGroups(c echo.Context) error {
	return c.JSON(http.StatusOK, metadataResponse[[]domain.Term]{Data: domain.Terms(domain.CategoryAgeGroups)})
}

// Skills handles GET /api/metadata/skills.
//
// @Summary      Skills
// @Tags         metadata
// @Produce      json
// @Success      200  {object}  metadataResponse[[]domain.Term]
// @Router       /api/metadata/skills [get]
func (h *MetadataHandler) Skills(c echo.Context) error {
	return c.JSON(http.StatusOK, metadataResponse[[]domain.Term]{Data: domain.Terms(domain.CategorySkills)})
}

// FormData handles GET /api/metadata/form-data.
//
// @Summary      Card form options
// @Tags         metadata
// @Produce      json
// @Success      200  {object}  metadataResponse[formDataResponse]
// @Router       /api/metadata/form-data [get]
func (h *MetadataHandler) FormData(c echo.Context) error {
	aims := make([]domain.Term, len(domain.Aims))
	copy(aims, domain.Aims)

	return c.JSON(http.StatusOK, metadataResponse[formDataResponse]{Data: formDataResponse{
		Stages: domain.Terms(domain.CategoryStages),
		Types:  domain.Terms(domain.CategoryTypes),
		Aims:   aims,
	}})
}

// TimeRanges handles GET /api/metadata/time-ranges.
//
// @Summary      Time range buckets
// @Tags         metadata
// @Produce      json
// @Success      200  {object}  metadataResponse[[]domain.TimeRange]
// @Router       /api/metadata/time-ranges [get]
func (h *MetadataHandler) TimeRanges(c echo.Context) error {
	ranges := make([]domain.TimeRange, len(domain.TimeRanges))
	copy(ranges, domain.TimeRanges)
	return c.JSON(http.StatusOK, metadataResponse[[]domain.TimeRange]{Data: ranges})
}
