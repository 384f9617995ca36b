package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/evrikaedu/catalog-api/internal/core/domain"
)

// DBTX is the subset of database/sql used by the repositories.
// *sql.DB, *sql.Tx and sqlmock all satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store exposes the four statement primitives every repository is written
// against. Statements use $n placeholders.
type Store struct {
	db DBTX
}

func NewStore(db DBTX) *Store {
	return &Store{db: db}
}

// Select runs a query and returns its rows. The caller closes them.
func (s *Store) Select(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, query, args...)
}

// Get runs a query expected to return at most one row.
func (s *Store) Get(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, query, args...)
}

// Run executes a statement and reports the number of affected rows.
func (s *Store) Run(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Insert executes an INSERT ... RETURNING id statement and returns the new id.
func (s *Store) Insert(ctx context.Context, query string, args ...any) (string, error) {
	var id string
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// storageError wraps a driver error so callers can match
// domain.ErrStorageUnavailable while keeping the cause.
func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
}

// notFoundOr maps sql.ErrNoRows to notFound and anything else to a storage error.
func notFoundOr(op string, err, notFound error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return storageError(op, err)
}
