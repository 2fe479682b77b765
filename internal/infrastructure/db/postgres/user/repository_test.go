package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "file-storage-api/internal/domain/user"
)

var userColumns = []string{"id", "uuid", "username", "email", "password_hash", "created_at", "updated_at"}

func newMock(t *testing.T) (pgxmock.PgxPoolIface, domain.Repository) {
	t.Helper()

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewRepository(mock)
}

func someRow(id uuid.UUID) []any {
	hash := "$2a$10$abcdefghijklmnopqrstuv"
	now := time.Now().UTC()
	return []any{uint64(1), id, "alice", "alice@example.com", &hash, now, now}
}

func TestRepository_FetchUserByEmail(t *testing.T) {
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(SelectUserByEmail).
			WithArgs("alice@example.com").
			WillReturnRows(pgxmock.NewRows(userColumns).AddRow(someRow(id)...))

		u, err := repo.FetchUserByEmail(context.Background(), "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, id, u.UUID)
		assert.Equal(t, "alice", u.Username)
		require.NotNil(t, u.PasswordHash)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown email maps to nil user", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(SelectUserByEmail).
			WithArgs("nobody@example.com").
			WillReturnError(pgx.ErrNoRows)

		u, err := repo.FetchUserByEmail(context.Background(), "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, u)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_CreateUser_UniqueViolations(t *testing.T) {
	hash := "h"

	tests := []struct {
		name       string
		constraint string
		wantErr    error
	}{
		{"duplicate email", "users_email_key", ErrEmailAlreadyExists},
		{"duplicate username", "users_username_key", ErrUsernameAlreadyExists},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			mock, repo := newMock(t)
			mock.ExpectQuery(InsertUser).
				WithArgs("alice", "alice@example.com", &hash).
				WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: tt.constraint})

			u, err := repo.CreateUser(context.Background(), domain.User{
				Username:     "alice",
				Email:        "alice@example.com",
				PasswordHash: &hash,
			})
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, u)

			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_CreateUser_Success(t *testing.T) {
	id := uuid.New()
	hash := "$2a$10$abcdefghijklmnopqrstuv"

	mock, repo := newMock(t)
	mock.ExpectQuery(InsertUser).
		WithArgs("alice", "alice@example.com", &hash).
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow(someRow(id)...))

	u, err := repo.CreateUser(context.Background(), domain.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: &hash,
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, id, u.UUID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdatePassword(t *testing.T) {
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectExec(UpdatePasswordByUUID).
			WithArgs("new-hash", id.String()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, repo.UpdatePassword(context.Background(), id, "new-hash"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown uuid errors", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectExec(UpdatePasswordByUUID).
			WithArgs("new-hash", id.String()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdatePassword(context.Background(), id, "new-hash")
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_FetchInternalID(t *testing.T) {
	id := uuid.New()

	mock, repo := newMock(t)
	mock.ExpectQuery(SelectIdByUUID).
		WithArgs(id.String()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(uint64(42)))

	got, err := repo.FetchInternalID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.ID(42), got)

	require.NoError(t, mock.ExpectationsWereMet())
}
