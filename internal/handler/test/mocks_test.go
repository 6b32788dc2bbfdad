package test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"miniblog/internal/models"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) List(ctx context.Context) ([]models.PostWithAuthor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PostWithAuthor), args.Error(1)
}

func (m *MockPostService) Get(ctx context.Context, postID, userID int64, enforceOwner bool) (*models.PostWithAuthor, error) {
	args := m.Called(ctx, postID, userID, enforceOwner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PostWithAuthor), args.Error(1)
}

func (m *MockPostService) Create(ctx context.Context, title, body string, authorID int64) (*models.Post, error) {
	args := m.Called(ctx, title, body, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) Update(ctx context.Context, postID int64, title, body string, userID int64) error {
	args := m.Called(ctx, postID, title, body, userID)
	return args.Error(0)
}

func (m *MockPostService) Delete(ctx context.Context, postID, userID int64) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}
