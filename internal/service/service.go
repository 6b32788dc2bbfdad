package service

import (
	"miniblog/internal/repository"
	"miniblog/internal/session"
)

type Service struct {
	Auth AuthService
	Post PostService
}

func NewService(repo *repository.Repository, sessions *session.Manager) *Service {
	return &Service{
		Auth: NewAuthService(repo.User, sessions),
		Post: NewPostService(repo.Post),
	}
}
