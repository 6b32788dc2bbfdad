package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"miniblog/internal/apperror"
	"miniblog/internal/database"
	"miniblog/internal/models"
)

type userRepository struct {
	db         *database.DB
	bcryptCost int
}

func NewUserRepository(db *database.DB, bcryptCost int) UserRepository {
	return &userRepository{db: db, bcryptCost: bcryptCost}
}

func (r *userRepository) Create(ctx context.Context, username, password string) (*models.User, error) {
	q, err := r.db.Querier(ctx)
	if err != nil {
		return nil, apperror.NewDatabase("failed to acquire connection", err)
	}

	// never store the plaintext password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), r.bcryptCost)
	if err != nil {
		return nil, apperror.New(apperror.InternalError, "failed to hash password", err)
	}

	query := `INSERT INTO user (username, password_hash) VALUES (?, ?)`

	result, err := q.ExecContext(ctx, query, username, string(hashedPassword))
	if err != nil {
		// the schema enforces uniqueness, so a concurrent duplicate
		// registration surfaces here even after the pre-check passed
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, apperror.NewConflict(fmt.Sprintf("User %s is already registered.", username))
		}
		return nil, apperror.NewDatabase("failed to create user", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, apperror.NewDatabase("failed to read new user id", err)
	}

	return &models.User{
		ID:           id,
		Username:     username,
		PasswordHash: string(hashedPassword),
	}, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	q, err := r.db.Querier(ctx)
	if err != nil {
		return nil, apperror.NewDatabase("failed to acquire connection", err)
	}

	var user models.User

	query := `SELECT id, username, password_hash FROM user WHERE id = ?`

	err = q.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NewNotFound(fmt.Sprintf("user with id %d not found", id))
		}
		return nil, apperror.NewDatabase("failed to get user", err)
	}

	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	q, err := r.db.Querier(ctx)
	if err != nil {
		return nil, apperror.NewDatabase("failed to acquire connection", err)
	}

	var user models.User

	query := `SELECT id, username, password_hash FROM user WHERE username = ?`

	err = q.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NewNotFound(fmt.Sprintf("user %s not found", username))
		}
		return nil, apperror.NewDatabase("failed to get user by username", err)
	}

	return &user, nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, username, password string) (*models.User, error) {
	user, err := r.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, apperror.NewAuth("incorrect password")
	}

	return user, nil
}
