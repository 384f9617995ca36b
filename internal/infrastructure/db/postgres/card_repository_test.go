package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evrikaedu/catalog-api/internal/core/domain"
)

const testCardID = "1b4e28ba-2fa1-11d2-883f-0016d3cca427"

var cardRowColumns = []string{
	"id", "title", "description", "content", "time_minutes", "file_url", "views",
	"age_groups", "skills", "stages", "types", "created_at", "updated_at",
}

func exact(query string) string {
	return "^" + regexp.QuoteMeta(query) + "$"
}

func TestCardRepository_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCardRepository(db)
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	filter := domain.CardFilter{AgeGroupIDs: []string{"primary"}, Limit: intPtr(10)}
	query, _ := buildListQuery(filter)

	mock.ExpectQuery(exact(query)).
		WithArgs(pq.Array([]string{"начальные-классы"}), 10).
		WillReturnRows(sqlmock.NewRows(cardRowColumns).
			AddRow(testCardID, "Mind map", "d", "c", 7, "https://files/x.pdf", 3,
				"{начальные-классы}", "{}", "{начало-урока,закрепление}", "{}", created, created).
			AddRow("2b4e28ba-2fa1-11d2-883f-0016d3cca427", "Quiz", "", "", 5, nil, 0,
				"{начальные-классы,старшие-классы}", "{рефлексия}", "{}", "{}", created, created))

	cards, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, cards, 2)

	first := cards[0]
	assert.Equal(t, testCardID, first.ID)
	assert.Equal(t, 7, first.TimeMinutes)
	require.NotNil(t, first.FileURL)
	assert.Equal(t, "https://files/x.pdf", *first.FileURL)
	assert.Equal(t, []string{"начальные-классы"}, first.AgeGroups)
	assert.Equal(t, []string{"начало-урока", "закрепление"}, first.Stages)
	assert.NotNil(t, first.Skills)
	assert.Empty(t, first.Skills)

	assert.Nil(t, cards[1].FileURL)
	assert.Equal(t, []string{"рефлексия"}, cards[1].Skills)
}

func TestCardRepository_List_EmptyIsNotNil(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCardRepository(db)

	query, _ := buildListQuery(domain.CardFilter{})
	mock.ExpectQuery(exact(query)).WillReturnRows(sqlmock.NewRows(cardRowColumns))

	cards, err := repo.List(context.Background(), domain.CardFilter{})
	require.NoError(t, err)
	assert.NotNil(t, cards)
	assert.Empty(t, cards)
}

func TestCardRepository_List_StorageError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCardRepository(db)

	mock.ExpectQuery(`^SELECT`).WillReturnError(errors.New("db down"))

	_, err := repo.List(context.Background(), domain.CardFilter{})
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestCardRepository_Count(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCardRepository(db)

	filter := domain.CardFilter{TimeRange: "full-lesson", Search: "game"}
	query, _ := buildCountQuery(filter)

	mock.ExpectQuery(exact(query)).
		WithArgs(40, 50, "%game%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := repo.Count(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestCardRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCardRepository(db)
	now := time.Now()

	mock.ExpectQuery(exact(`SELECT ` + cardColumns + ` FROM cards WHERE id = $1`)).
		WithArgs(testCardID).
		WillReturnRows(sqlmock.NewRows(cardRowColumns).
			AddRow(testCardID, "Mind map", "", "", 5, nil, 9, "{}", "{}", "{}", "{парная}", now, now))

	c, err := repo.GetByID(context.Background(), testCardID)
	require.NoError(t, err)
	assert.Equal(t, 9, c.Views)
	assert.Equal(t, []string{"парная"}, c.Types)
}

func TestCardRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCardRepository(db)

	mock.ExpectQuery(`^SELECT`).
		WithArgs(testCardID).
		WillReturnRows(sqlmock.NewRows(cardRowColumns))

	_, err := repo.GetByID(context.Background(), testCardID)
	assert.ErrorIs(t, err, domain.ErrCardNotFound)

	_, err = repo.GetByID(context.Background(), "42")
	assert.ErrorIs(t, err, domain.ErrCardNotFound)
}

func TestCardRepository_Create_RoundTripsTags(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCardRepository(db)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+cards`).
		WithArgs(sqlmock.AnyArg(), "Mind map", "", "", 5, nil,
			pq.Array([]string{"начальные-классы"}), pq.Array([]string{}), pq.Array([]string{}), pq.Array([]string{}),
			now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testCardID))

	created, err := repo.Create(context.Background(), &domain.Card{
		Title:       "Mind map",
		TimeMinutes: 5,
		AgeGroups:   []string{"начальные-классы"},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)
	assert.Equal(t, testCardID, created.ID)
	assert.Equal(t, []string{"начальные-классы"}, created.AgeGroups)
	assert.Equal(t, []string{}, created.Skills)

	mock.ExpectQuery(`^SELECT`).
		WithArgs(testCardID).
		WillReturnRows(sqlmock.NewRows(cardRowColumns).
			AddRow(testCardID, "Mind map", "", "", 5, nil, 0, `{"начальные-классы"}`, "{}", "{}", "{}", now, now))

	read, err := repo.GetByID(context.Background(), testCardID)
	require.NoError(t, err)
	assert.Equal(t, created.AgeGroups, read.AgeGroups)
	assert.Equal(t, created.Skills, read.Skills)
	assert.Equal(t, created.Stages, read.Stages)
	assert.Equal(t, created.Types, read.Types)
}

func TestCardRepository_Update(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCardRepository(db)
	url := "https://files/y.pdf"

	mock.ExpectExec(`(?s)^UPDATE\s+cards\s+SET\s+title`).
		WithArgs(testCardID, "New", "", "", 10, url,
			pq.Array([]string{}), pq.Array([]string{}), pq.Array([]string{}), pq.Array([]string{}),
			sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.Update(context.Background(), &domain.Card{ID: testCardID, Title: "New", TimeMinutes: 10, FileURL: &url})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
}

func TestCardRepository_Update_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCardRepository(db)

	mock.ExpectExec(`(?s)^UPDATE\s+cards`).WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), &domain.Card{ID: testCardID, Title: "x"})
	assert.ErrorIs(t, err, domain.ErrCardNotFound)
}

func TestCardRepository_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCardRepository(db)

	mock.ExpectExec(exact(`DELETE FROM cards WHERE id = $1`)).
		WithArgs(testCardID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(exact(`DELETE FROM cards WHERE id = $1`)).
		WithArgs(testCardID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), testCardID))
	assert.ErrorIs(t, repo.Delete(context.Background(), testCardID), domain.ErrCardNotFound)
}

func TestCardRepository_IncrementViews(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCardRepository(db)

	mock.ExpectExec(exact(`UPDATE cards SET views = views + 1 WHERE id = $1`)).
		WithArgs(testCardID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementViews(context.Background(), testCardID))
}

func TestCardRepository_IncrementViews_MissingIDIsNoOp(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCardRepository(db)

	mock.ExpectExec(exact(`UPDATE cards SET views = views + 1 WHERE id = $1`)).
		WithArgs(testCardID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.IncrementViews(context.Background(), testCardID))
	assert.NoError(t, repo.IncrementViews(context.Background(), "not-a-uuid"))
}

func TestCardRepository_IncrementViews_StorageError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCardRepository(db)

	mock.ExpectExec(`^UPDATE`).WillReturnError(errors.New("db down"))

	assert.ErrorIs(t, repo.IncrementViews(context.Background(), testCardID), domain.ErrStorageUnavailable)
}
