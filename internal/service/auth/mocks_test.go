package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/foyerapp/foyer-backend/internal/domain"
)

var (
	_ userRepo   = &userRepoMock{}
	_ tokenRepo  = &tokenRepoMock{}
	_ txManager  = &txManagerMock{}
	_ jwtManager = &jwtManagerMock{}
)

type userRepoMock struct {
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc      func(ctx context.Context, email string) (*domain.User, error)
	CreateFunc          func(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateProfileFunc   func(ctx context.Context, id uuid.UUID, name, email, avatarURL *string) (*domain.User, error)
	UpdatePushTokenFunc func(ctx context.Context, id uuid.UUID, token *string) error
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *userRepoMock) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return m.CreateFunc(ctx, user)
}

func (m *userRepoMock) UpdateProfile(ctx context.Context, id uuid.UUID, name, email, avatarURL *string) (*domain.User, error) {
	return m.UpdateProfileFunc(ctx, id, name, email, avatarURL)
}

func (m *userRepoMock) UpdatePushToken(ctx context.Context, id uuid.UUID, token *string) error {
	return m.UpdatePushTokenFunc(ctx, id, token)
}

type tokenRepoMock struct {
	CreateFunc          func(ctx context.Context, token *domain.RefreshToken) error
	GetByHashFunc       func(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeByIDFunc      func(ctx context.Context, id uuid.UUID, at time.Time) error
	RevokeAllByUserFunc func(ctx context.Context, userID uuid.UUID, at time.Time) error
}

func (m *tokenRepoMock) Create(ctx context.Context, token *domain.RefreshToken) error {
	return m.CreateFunc(ctx, token)
}

func (m *tokenRepoMock) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	return m.GetByHashFunc(ctx, tokenHash)
}

func (m *tokenRepoMock) RevokeByID(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.RevokeByIDFunc(ctx, id, at)
}

func (m *tokenRepoMock) RevokeAllByUser(ctx context.Context, userID uuid.UUID, at time.Time) error {
	return m.RevokeAllByUserFunc(ctx, userID, at)
}

// txManagerMock runs the callback without a real transaction.
type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type jwtManagerMock struct {
	GenerateAccessTokenFunc  func(userID uuid.UUID) (string, error)
	ValidateAccessTokenFunc  func(token string) (uuid.UUID, error)
	GenerateRefreshTokenFunc func() (string, string, error)
}

func (m *jwtManagerMock) GenerateAccessToken(userID uuid.UUID) (string, error) {
	return m.GenerateAccessTokenFunc(userID)
}

func (m *jwtManagerMock) ValidateAccessToken(token string) (uuid.UUID, error) {
	return m.ValidateAccessTokenFunc(token)
}

func (m *jwtManagerMock) GenerateRefreshToken() (string, string, error) {
	return m.GenerateRefreshTokenFunc()
}
