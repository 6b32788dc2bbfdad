package service

import (
	"context"
	"fmt"

	"miniblog/internal/apperror"
	"miniblog/internal/models"
	"miniblog/internal/repository"
	"miniblog/internal/session"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	sessions *session.Manager
}

func NewAuthService(userRepo repository.UserRepository, sessions *session.Manager) AuthService {
	return &authService{
		userRepo: userRepo,
		sessions: sessions,
	}
}

func (s *authService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" {
		return nil, apperror.NewValidation("Username is required.")
	}
	if password == "" {
		return nil, apperror.NewValidation("Password is required.")
	}

	// friendly pre-check; the schema's UNIQUE constraint still catches a
	// concurrent duplicate inside Create
	existingUser, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil && existingUser != nil {
		return nil, apperror.NewConflict(fmt.Sprintf("User %s is already registered.", username))
	}
	if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}

	return s.userRepo.Create(ctx, username, password)
}

func (s *authService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, username, password)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, "", apperror.NewValidation("Incorrect username.")
		}
		if apperror.IsAuth(err) {
			return nil, "", apperror.NewValidation("Incorrect password.")
		}
		return nil, "", err
	}

	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return nil, "", apperror.New(apperror.InternalError, "failed to create session", err)
	}

	return user, token, nil
}

// CurrentUser resolves a session token to a full user record. Anything that
// fails along the way means the client is anonymous, not an error.
func (s *authService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}

	userID, err := s.sessions.Parse(token)
	if err != nil {
		return nil, nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			// the id no longer resolves (stale cookie), treat as anonymous
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}
