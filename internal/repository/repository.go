package repository

import (
	"context"

	"miniblog/internal/config"
	"miniblog/internal/database"
	"miniblog/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, username, password string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	VerifyPassword(ctx context.Context, username, password string) (*models.User, error)
}

type PostRepository interface {
	ListWithAuthors(ctx context.Context) ([]models.PostWithAuthor, error)
	GetByID(ctx context.Context, postID int64) (*models.PostWithAuthor, error)
	Create(ctx context.Context, title, body string, authorID int64) (*models.Post, error)
	Update(ctx context.Context, postID int64, title, body string) error
	Delete(ctx context.Context, postID int64) error
}

type Repository struct {
	User UserRepository
	Post PostRepository
}

func NewRepository(db *database.DB, cfg *config.Config) *Repository {
	return &Repository{
		User: NewUserRepository(db, cfg.BcryptCost),
		Post: NewPostRepository(db),
	}
}
