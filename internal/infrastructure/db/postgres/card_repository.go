package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/evrikaedu/catalog-api/internal/core/domain"
)

type CardRepository struct {
	store *Store
}

func NewCardRepository(db DBTX) *CardRepository {
	return &CardRepository{store: NewStore(db)}
}

func (r *CardRepository) List(ctx context.Context, filter domain.CardFilter) ([]*domain.Card, error) {
	query, args := buildListQuery(filter)
	rows, err := r.store.Select(ctx, query, args...)
	if err != nil {
		return nil, storageError("list cards", err)
	}
	defer rows.Close()

	cards := make([]*domain.Card, 0)
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, storageError("scan card", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list cards", err)
	}
	return cards, nil
}

func (r *CardRepository) Count(ctx context.Context, filter domain.CardFilter) (int64, error) {
	query, args := buildCountQuery(filter)
	var n int64
	if err := r.store.Get(ctx, query, args...).Scan(&n); err != nil {
		return 0, storageError("count cards", err)
	}
	return n, nil
}

func (r *CardRepository) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrCardNotFound
	}
	c, err := scanCard(r.store.Get(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundOr("get card", err, domain.ErrCardNotFound)
	}
	return c, nil
}

func (r *CardRepository) Create(ctx context.Context, card *domain.Card) (*domain.Card, error) {
	c := *card
	c.NormalizeTags()

	id, err := r.store.Insert(ctx,
		`INSERT INTO cards (id, title, description, content, time_minutes, file_url, views,
		                    age_groups, skills, stages, types, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8, $9, $10, $11, $12)
		 RETURNING id`,
		uuid.NewString(), c.Title, c.Description, c.Content, c.TimeMinutes, nullString(c.FileURL),
		pq.Array(c.AgeGroups), pq.Array(c.Skills), pq.Array(c.Stages), pq.Array(c.Types),
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return nil, storageError("insert card", err)
	}

	c.ID = id
	c.Views = 0
	return &c, nil
}

func (r *CardRepository) Update(ctx context.Context, card *domain.Card) (*domain.Card, error) {
	if _, err := uuid.Parse(card.ID); err != nil {
		return nil, domain.ErrCardNotFound
	}
	c := *card
	c.NormalizeTags()

	n, err := r.store.Run(ctx,
		`UPDATE cards
		 SET title = $2, description = $3, content = $4, time_minutes = $5, file_url = $6,
		     age_groups = $7, skills = $8, stages = $9, types = $10, updated_at = $11
		 WHERE id = $1`,
		c.ID, c.Title, c.Description, c.Content, c.TimeMinutes, nullString(c.FileURL),
		pq.Array(c.AgeGroups), pq.Array(c.Skills), pq.Array(c.Stages), pq.Array(c.Types),
		c.UpdatedAt,
	)
	if err != nil {
		return nil, storageError("update card", err)
	}
	if n == 0 {
		return nil, domain.ErrCardNotFound
	}
	return &c, nil
}

func (r *CardRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrCardNotFound
	}
	n, err := r.store.Run(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return storageError("delete card", err)
	}
	if n == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}

// IncrementViews adds one view. Unknown ids affect no rows and are not an error.
func (r *CardRepository) IncrementViews(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	if _, err := r.store.Run(ctx, `UPDATE cards SET views = views + 1 WHERE id = $1`, id); err != nil {
		return storageError("increment views", err)
	}
	return nil
}

func scanCard(row rowScanner) (*domain.Card, error) {
	var (
		c       domain.Card
		fileURL sql.NullString
	)
	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.Content, &c.TimeMinutes, &fileURL, &c.Views,
		pq.Array(&c.AgeGroups), pq.Array(&c.Skills), pq.Array(&c.Stages), pq.Array(&c.Types),
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if fileURL.Valid {
		c.FileURL = &fileURL.String
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	c.NormalizeTags()
	return &c, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
