package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"miniblog/internal/apperror"
	"miniblog/internal/database"
)

func newMockDB(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return &database.DB{DB: sqlxDB}, mock
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, bcrypt.MinCost)

	ctx := context.Background()

	t.Run("creates user with hashed password", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO user (username, password_hash) VALUES (?, ?)`).
			WithArgs("alice", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		user, err := repo.Create(ctx, "alice", "secret")

		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.NotEqual(t, "secret", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate username becomes conflict", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO user (username, password_hash) VALUES (?, ?)`).
			WithArgs("alice", sqlmock.AnyArg()).
			WillReturnError(errors.New("UNIQUE constraint failed: user.username"))

		user, err := repo.Create(ctx, "alice", "secret")

		assert.Nil(t, user)
		assert.True(t, apperror.IsConflict(err))
		assert.Contains(t, err.Error(), "User alice is already registered.")
	})

	t.Run("other database errors are not conflicts", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO user (username, password_hash) VALUES (?, ?)`).
			WithArgs("bob", sqlmock.AnyArg()).
			WillReturnError(errors.New("disk I/O error"))

		user, err := repo.Create(ctx, "bob", "secret")

		assert.Nil(t, user)
		assert.Error(t, err)
		assert.False(t, apperror.IsConflict(err))
	})
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, bcrypt.MinCost)

	ctx := context.Background()

	t.Run("returns the user row", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "username", "password_hash"}).
			AddRow(int64(7), "alice", "hash")

		mock.ExpectQuery(`SELECT id, username, password_hash FROM user WHERE id = ?`).
			WithArgs(int64(7)).
			WillReturnRows(rows)

		user, err := repo.GetByID(ctx, 7)

		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("missing id is not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, username, password_hash FROM user WHERE id = ?`).
			WithArgs(int64(42)).
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetByID(ctx, 42)

		assert.Nil(t, user)
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, bcrypt.MinCost)

	ctx := context.Background()

	t.Run("returns the user row", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "username", "password_hash"}).
			AddRow(int64(1), "alice", "hash")

		mock.ExpectQuery(`SELECT id, username, password_hash FROM user WHERE username = ?`).
			WithArgs("alice").
			WillReturnRows(rows)

		user, err := repo.GetByUsername(ctx, "alice")

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("missing username is not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, username, password_hash FROM user WHERE username = ?`).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetByUsername(ctx, "ghost")

		assert.Nil(t, user)
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestUserRepository_VerifyPassword(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, bcrypt.MinCost)

	ctx := context.Background()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "username", "password_hash"}).
			AddRow(int64(1), "alice", string(hashedPassword))

		mock.ExpectQuery(`SELECT id, username, password_hash FROM user WHERE username = ?`).
			WithArgs("alice").
			WillReturnRows(rows)

		user, err := repo.VerifyPassword(ctx, "alice", "correct")

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "username", "password_hash"}).
			AddRow(int64(1), "alice", string(hashedPassword))

		mock.ExpectQuery(`SELECT id, username, password_hash FROM user WHERE username = ?`).
			WithArgs("alice").
			WillReturnRows(rows)

		user, err := repo.VerifyPassword(ctx, "alice", "wrong")

		assert.Nil(t, user)
		assert.True(t, apperror.IsAuth(err))
	})

	t.Run("unknown username", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, username, password_hash FROM user WHERE username = ?`).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.VerifyPassword(ctx, "ghost", "whatever")

		assert.Nil(t, user)
		assert.True(t, apperror.IsNotFound(err))
	})
}
