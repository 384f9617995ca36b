package postgres

import (
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/evrikaedu/catalog-api/internal/core/domain"
)

const cardColumns = `id, title, description, content, time_minutes, file_url, views, age_groups, skills, stages, types, created_at, updated_at`

// binder collects bound values and hands out their $n placeholders.
type binder struct {
	args []any
}

func (b *binder) bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

// predicate is one typed WHERE clause.
type predicate interface {
	render(b *binder) string
}

// tagOverlap matches rows whose tag column shares at least one tag with tags.
type tagOverlap struct {
	column string
	tags   []string
}

func (p tagOverlap) render(b *binder) string {
	return p.column + " && " + b.bind(pq.Array(p.tags)) + "::text[]"
}

// minuteRange matches durations inside an inclusive bucket.
type minuteRange struct {
	min, max int
}

func (p minuteRange) render(b *binder) string {
	return "time_minutes BETWEEN " + b.bind(p.min) + " AND " + b.bind(p.max)
}

// textSearch is a case-insensitive substring match over the text columns.
type textSearch struct {
	term string
}

func (p textSearch) render(b *binder) string {
	ph := b.bind("%" + escapeLike(p.term) + "%")
	return "(title ILIKE " + ph + " OR description ILIKE " + ph + " OR content ILIKE " + ph + ")"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// cardPredicates translates a filter into clauses, in a fixed order.
// Caller ids are mapped to storage tags; empty categories add nothing.
func cardPredicates(f domain.CardFilter) []predicate {
	var preds []predicate

	categories := []struct {
		cat    domain.Category
		column string
		ids    []string
	}{
		{domain.CategoryAgeGroups, "age_groups", f.AgeGroupIDs},
		{domain.CategorySkills, "skills", f.SkillIDs},
		{domain.CategoryStages, "stages", f.StageIDs},
		{domain.CategoryTypes, "types", f.TypeIDs},
	}
	for _, c := range categories {
		if tags := domain.StorageTags(c.cat, c.ids); len(tags) > 0 {
			preds = append(preds, tagOverlap{column: c.column, tags: tags})
		}
	}

	if tr, ok := domain.LookupTimeRange(f.TimeRange); ok {
		preds = append(preds, minuteRange{min: tr.Min, max: tr.Max})
	}

	if term := strings.TrimSpace(f.Search); term != "" {
		preds = append(preds, textSearch{term: term})
	}
	return preds
}

// where renders the shared WHERE clause, or "" when nothing applies.
func where(f domain.CardFilter, b *binder) string {
	preds := cardPredicates(f)
	if len(preds) == 0 {
		return ""
	}
	parts := make([]string, len(preds))
	for i, p := range preds {
		parts[i] = p.render(b)
	}
	return " WHERE " + strings.Join(parts, " AND ")
}

func buildListQuery(f domain.CardFilter) (string, []any) {
	b := &binder{}
	var sb strings.Builder
	sb.WriteString("SELECT " + cardColumns + " FROM cards")
	sb.WriteString(where(f, b))
	sb.WriteString(" ORDER BY created_at DESC, id")

	if f.HasLimit() {
		sb.WriteString(" LIMIT " + b.bind(*f.Limit))
		if f.Offset != nil {
			sb.WriteString(" OFFSET " + b.bind(*f.Offset))
		}
	}
	return sb.String(), b.args
}

func buildCountQuery(f domain.CardFilter) (string, []any) {
	b := &binder{}
	return "SELECT COUNT(*) FROM cards" + where(f, b), b.args
}
