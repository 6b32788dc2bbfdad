package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"miniblog/internal/apperror"
	"miniblog/internal/database"
	"miniblog/internal/models"
)

type postRepository struct {
	db *database.DB
}

func NewPostRepository(db *database.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) ListWithAuthors(ctx context.Context) ([]models.PostWithAuthor, error) {
	q, err := r.db.Querier(ctx)
	if err != nil {
		return nil, apperror.NewDatabase("failed to acquire connection", err)
	}

	// newest first, id breaks ties between posts created in the same second
	query := `SELECT p.id, p.title, p.body, p.created, p.author_id, u.username FROM post p JOIN user u ON p.author_id = u.id ORDER BY p.created DESC, p.id DESC`

	var posts []models.PostWithAuthor
	err = q.SelectContext(ctx, &posts, query)
	if err != nil {
		return nil, apperror.NewDatabase("failed to list posts", err)
	}

	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, postID int64) (*models.PostWithAuthor, error) {
	q, err := r.db.Querier(ctx)
	if err != nil {
		return nil, apperror.NewDatabase("failed to acquire connection", err)
	}

	query := `SELECT p.id, p.title, p.body, p.created, p.author_id, u.username FROM post p JOIN user u ON p.author_id = u.id WHERE p.id = ?`

	var post models.PostWithAuthor
	err = q.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NewNotFound(fmt.Sprintf("Post id %d doesn't exist.", postID))
		}
		return nil, apperror.NewDatabase("failed to get post", err)
	}

	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, title, body string, authorID int64) (*models.Post, error) {
	q, err := r.db.Querier(ctx)
	if err != nil {
		return nil, apperror.NewDatabase("failed to acquire connection", err)
	}

	query := `INSERT INTO post (title, body, created, author_id) VALUES (?, ?, ?, ?)`

	created := time.Now().UTC()

	result, err := q.ExecContext(ctx, query, title, body, created, authorID)
	if err != nil {
		return nil, apperror.NewDatabase("failed to create post", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, apperror.NewDatabase("failed to read new post id", err)
	}

	return &models.Post{
		ID:       id,
		Title:    title,
		Body:     body,
		Created:  created,
		AuthorID: authorID,
	}, nil
}

func (r *postRepository) Update(ctx context.Context, postID int64, title, body string) error {
	q, err := r.db.Querier(ctx)
	if err != nil {
		return apperror.NewDatabase("failed to acquire connection", err)
	}

	// id and created are never touched
	query := `UPDATE post SET title = ?, body = ? WHERE id = ?`

	result, err := q.ExecContext(ctx, query, title, body, postID)
	if err != nil {
		return apperror.NewDatabase("failed to update post", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDatabase("failed to check updated rows", err)
	}

	if rowsAffected == 0 {
		return apperror.NewNotFound(fmt.Sprintf("Post id %d doesn't exist.", postID))
	}

	return nil
}

func (r *postRepository) Delete(ctx context.Context, postID int64) error {
	q, err := r.db.Querier(ctx)
	if err != nil {
		return apperror.NewDatabase("failed to acquire connection", err)
	}

	query := `DELETE FROM post WHERE id = ?`

	result, err := q.ExecContext(ctx, query, postID)
	if err != nil {
		return apperror.NewDatabase("failed to delete post", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDatabase("failed to check deleted rows", err)
	}

	if rowsAffected == 0 {
		return apperror.NewNotFound(fmt.Sprintf("Post id %d doesn't exist.", postID))
	}

	return nil
}
