package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/evrikaedu/catalog-api/internal/api/metrics"
	"github.com/evrikaedu/catalog-api/internal/core/domain"
	"github.com/evrikaedu/catalog-api/internal/core/ports"
)

// CardHandler handles HTTP requests for card operations.
type CardHandler struct {
	service ports.CardService
}

func NewCardHandler(service ports.CardService) *CardHandler {
	return &CardHandler{service: service}
}

// List handles GET /api/cards.
//
// @Summary      List cards
// @Description  Category filters are OR within a category and AND across categories.
// @Tags         cards
// @Produce      json
// @Param        ageGroupIds  query     []string  false  "Age group ids"  collectionFormat(multi)
// @Param        skillIds     query     []string  false  "Skill ids"      collectionFormat(multi)
// @Param        stageIds     query     []string  false  "Stage ids"      collectionFormat(multi)
// @Param        typeIds      query     []string  false  "Work type ids"  collectionFormat(multi)
// @Param        timeRange    query     string    false  "Time range bucket"  Enums(up-to-2, 3-5, 5-10, 15-20, 25-30, full-lesson)
// @Param        search       query     string    false  "Substring of title, description or content"
// @Param        limit        query     int       false  "Page size"
// @Param        offset       query     int       false  "Rows to skip (requires limit)"
// @Success      200          {object}  cardListResponse
// @Failure      400          {object}  errorResponse
// @Failure      503          {object}  errorResponse
// @Router       /api/cards [get]
func (h *CardHandler) List(c echo.Context) error {
	filter, err := parseCardFilter(c.QueryParams())
	if err != nil {
		return err
	}

	page, err := h.service.ListCards(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	metrics.CardQueriesTotal.WithLabelValues(strconv.FormatBool(!filter.IsEmpty())).Inc()

	return c.JSON(http.StatusOK, cardListResponse{
		Data:   page.Items,
		Total:  page.Total,
		Count:  len(page.Items),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

// Get handles GET /api/cards/:id and counts one view.
//
// @Summary      Get a card
// @Tags         cards
// @Produce      json
// @Param        id   path      string  true  "Card id"
// @Success      200  {object}  cardResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/cards/{id} [get]
func (h *CardHandler) Get(c echo.Context) error {
	card, err := h.service.ViewCard(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	metrics.CardViewsTotal.Inc()
	return c.JSON(http.StatusOK, cardResponse{Data: card})
}

// Create handles POST /api/cards.
//
// @Summary      Create a card
// @Tags         cards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      cardRequest  true  "Card"
// @Success      201   {object}  cardResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/cards [post]
func (h *CardHandler) Create(c echo.Context) error {
	var req cardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	card, err := h.service.CreateCard(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cardResponse{Data: card})
}

// Update handles PUT /api/cards/:id.
//
// @Summary      Update a card
// @Tags         cards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Card id"
// @Param        body  body      cardRequest  true  "Card"
// @Success      200   {object}  cardResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/cards/{id} [put]
func (h *CardHandler) Update(c echo.Context) error {
	var req cardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	card, err := h.service.UpdateCard(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cardResponse{Data: card})
}

// Delete handles DELETE /api/cards/:id.
//
// @Summary      Delete a card
// @Tags         cards
// @Security     BearerAuth
// @Param        id   path  string  true  "Card id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/cards/{id} [delete]
func (h *CardHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteCard(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// parseCardFilter reads list filters from the query string. Multi-valued
// filters accept repeated keys and comma-separated values.
func parseCardFilter(q url.Values) (domain.CardFilter, error) {
	f := domain.CardFilter{
		AgeGroupIDs: multiValue(q, "ageGroupIds"),
		SkillIDs:    multiValue(q, "skillIds"),
		StageIDs:    multiValue(q, "stageIds"),
		TypeIDs:     multiValue(q, "typeIds"),
		TimeRange:   strings.TrimSpace(q.Get("timeRange")),
		Search:      strings.TrimSpace(q.Get("search")),
	}

	var err error
	if f.Limit, err = optionalInt(q, "limit"); err != nil {
		return domain.CardFilter{}, err
	}
	if f.Offset, err = optionalInt(q, "offset"); err != nil {
		return domain.CardFilter{}, err
	}
	return f, nil
}

func multiValue(q url.Values, key string) []string {
	var out []string
	for _, raw := range q[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func optionalInt(q url.Values, key string) (*int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.NewValidationError(key, "must be an integer")
	}
	return &n, nil
}
