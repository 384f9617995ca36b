package domain

import "time"

// DefaultTimeMinutes is applied to new cards that do not state a duration.
const DefaultTimeMinutes = 5

// Card is a single teaching technique in the catalog.
// Tag slices hold storage-form tags and are never nil.
type Card struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	TimeMinutes int       `json:"time_minutes"`
	FileURL     *string   `json:"file_url"`
	Views       int       `json:"views"`
	AgeGroups   []string  `json:"age_groups"`
	Skills      []string  `json:"skills"`
	Stages      []string  `json:"stages"`
	Types       []string  `json:"types"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NormalizeTags replaces nil tag slices with empty ones.
func (c *Card) NormalizeTags() {
	c.AgeGroups = nonNil(c.AgeGroups)
	c.Skills = nonNil(c.Skills)
	c.Stages = nonNil(c.Stages)
	c.Types = nonNil(c.Types)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// CardFilter is the caller-supplied set of optional card constraints.
// Category ids are in the caller lexicon; see Vocabulary.
type CardFilter struct {
	AgeGroupIDs []string
	SkillIDs    []string
	StageIDs    []string
	TypeIDs     []string
	TimeRange   string
	Search      string
	Limit       *int // nil or 0 = no row cap
	Offset      *int // ignored unless a limit applies
}

// WithoutPaging returns a copy of f with Limit and Offset cleared.
func (f CardFilter) WithoutPaging() CardFilter {
	f.Limit = nil
	f.Offset = nil
	return f
}

// HasLimit reports whether a positive row cap is set. A zero limit means
// "no limit".
func (f CardFilter) HasLimit() bool {
	return f.Limit != nil && *f.Limit > 0
}

// NormalizePaging drops a zero limit, and the offset along with it.
func (f CardFilter) NormalizePaging() CardFilter {
	if !f.HasLimit() {
		return f.WithoutPaging()
	}
	return f
}

// IsEmpty reports whether no predicate would be applied.
func (f CardFilter) IsEmpty() bool {
	_, hasRange := LookupTimeRange(f.TimeRange)
	return len(f.AgeGroupIDs) == 0 && len(f.SkillIDs) == 0 &&
		len(f.StageIDs) == 0 && len(f.TypeIDs) == 0 &&
		!hasRange && f.Search == ""
}
