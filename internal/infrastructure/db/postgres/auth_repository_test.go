package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/evrikaedu/catalog-api/internal/core/domain"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

const (
	testUserID = "6f1c2b9e-8a1d-4c3e-9b7a-2d5e4f6a8b0c"
	insertUser = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*email,\s*name,\s*password_hash,\s*role,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*RETURNING\s+id\s*$`
	selectUser = `(?s)^SELECT\s+id,\s*email,\s*name,\s*password_hash,\s*role,\s*created_at\s+FROM\s+users\s+WHERE\s+`
)

var userRowColumns = []string{"id", "email", "name", "password_hash", "role", "created_at"}

func TestAuthRepository_Create_Success(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAuthRepository(db)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(insertUser).
		WithArgs(sqlmock.AnyArg(), "ann@example.com", "Ann", "hash", domain.RoleUser, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testUserID))

	got, err := repo.Create(context.Background(), &domain.User{
		Email: "ann@example.com", Name: "Ann", PasswordHash: "hash", Role: domain.RoleUser, CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != testUserID || got.Email != "ann@example.com" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestAuthRepository_Create_Duplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAuthRepository(db)

	mock.ExpectQuery(insertUser).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	_, err := repo.Create(context.Background(), &domain.User{Email: "ann@example.com"})
	if !errors.Is(err, domain.ErrDuplicateIdentity) {
		t.Fatalf("expected ErrDuplicateIdentity, got %v", err)
	}
}

func TestAuthRepository_Create_StorageError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAuthRepository(db)

	mock.ExpectQuery(insertUser).WillReturnError(errors.New("connection refused"))

	_, err := repo.Create(context.Background(), &domain.User{Email: "ann@example.com"})
	if !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if errors.Is(err, domain.ErrDuplicateIdentity) {
		t.Fatalf("generic failure must not look like a duplicate")
	}
}

func TestAuthRepository_FindByEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAuthRepository(db)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(selectUser + `email\s*=\s*\$1\s*$`).
		WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(testUserID, "ann@example.com", "Ann", "hash", "admin", created))

	u, err := repo.FindByEmail(context.Background(), "ann@example.com")
	if err != nil {
		t.Fatalf("FindByEmail error: %v", err)
	}
	if u.ID != testUserID || u.Role != "admin" || u.PasswordHash != "hash" || !u.CreatedAt.Equal(created) {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestAuthRepository_FindByEmail_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAuthRepository(db)

	mock.ExpectQuery(selectUser + `email\s*=\s*\$1\s*$`).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthRepository_FindByEmail_StorageError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAuthRepository(db)

	mock.ExpectQuery(selectUser + `email\s*=\s*\$1\s*$`).WillReturnError(errors.New("db down"))

	_, err := repo.FindByEmail(context.Background(), "ann@example.com")
	if !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestAuthRepository_FindByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAuthRepository(db)

	mock.ExpectQuery(selectUser + `id\s*=\s*\$1\s*$`).
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(testUserID, "ann@example.com", "Ann", "hash", "user", time.Now()))

	u, err := repo.FindByID(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if u.Email != "ann@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestAuthRepository_FindByID_MalformedIDSkipsQuery(t *testing.T) {
	db, _ := newMock(t)
	repo := NewAuthRepository(db)

	_, err := repo.FindByID(context.Background(), "not-a-uuid")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
