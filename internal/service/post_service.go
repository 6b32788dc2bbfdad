package service

import (
	"context"

	"miniblog/internal/apperror"
	"miniblog/internal/models"
	"miniblog/internal/repository"
)

type PostService interface {
	List(ctx context.Context) ([]models.PostWithAuthor, error)
	Get(ctx context.Context, postID, userID int64, enforceOwner bool) (*models.PostWithAuthor, error)
	Create(ctx context.Context, title, body string, authorID int64) (*models.Post, error)
	Update(ctx context.Context, postID int64, title, body string, userID int64) error
	Delete(ctx context.Context, postID, userID int64) error
}

type postService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{postRepo: postRepo}
}

func (s *postService) List(ctx context.Context) ([]models.PostWithAuthor, error) {
	return s.postRepo.ListWithAuthors(ctx)
}

// Get is the single lookup-with-policy behind update and delete. With
// enforceOwner false it is a plain fetch.
func (s *postService) Get(ctx context.Context, postID, userID int64, enforceOwner bool) (*models.PostWithAuthor, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if enforceOwner && post.AuthorID != userID {
		return nil, apperror.NewForbidden("you are not the author of this post")
	}

	return post, nil
}

func (s *postService) Create(ctx context.Context, title, body string, authorID int64) (*models.Post, error) {
	if title == "" {
		return nil, apperror.NewValidation("Title is required.")
	}

	return s.postRepo.Create(ctx, title, body, authorID)
}

func (s *postService) Update(ctx context.Context, postID int64, title, body string, userID int64) error {
	_, err := s.Get(ctx, postID, userID, true)
	if err != nil {
		return err
	}

	if title == "" {
		return apperror.NewValidation("Title is required.")
	}

	return s.postRepo.Update(ctx, postID, title, body)
}

func (s *postService) Delete(ctx context.Context, postID, userID int64) error {
	_, err := s.Get(ctx, postID, userID, true)
	if err != nil {
		return err
	}

	return s.postRepo.Delete(ctx, postID)
}
