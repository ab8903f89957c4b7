package auth

// Package auth contains a deterministic in-memory AuthRepository used in
// mock mode and in tests. Fixture values are stable so flows can be
// asserted end to end without a network.

import (
	"context"

	domainauth "github.com/notesapp/noteskit/internal/domain/auth"
	apperrors "github.com/notesapp/noteskit/internal/errors"
	"github.com/notesapp/noteskit/internal/ports"
)

// Fixture values returned by the mock repository.
const (
	AccessToken           = "mock-access-token"
	RefreshToken          = "mock-refresh-token"
	RefreshedAccessToken  = "mock-access-token-refreshed"
	RefreshedRefreshToken = "mock-refresh-token-refreshed"

	// InvalidRefreshToken is the sentinel the mock rejects, for exercising
	// the failed-refresh path.
	InvalidRefreshToken = "invalid-refresh-token"

	UserID    = "mock-user-1"
	UserEmail = "test@example.com"
	UserName  = "Test User"
)

var _ ports.AuthRepository = (*MockAuthRepository)(nil)

// MockAuthRepository simulates the auth endpoints with deterministic
// fixtures. Individual methods can be overridden per test via the func
// fields.
type MockAuthRepository struct {
	LoginFunc          func(ctx context.Context, creds domainauth.Credentials) (domainauth.TokenPair, error)
	RefreshTokenFunc   func(ctx context.Context, refreshToken string) (domainauth.TokenPair, error)
	GetCurrentUserFunc func(ctx context.Context) (domainauth.User, error)
}

// NewMockAuthRepository creates a MockAuthRepository with default fixtures.
func NewMockAuthRepository() *MockAuthRepository {
	return &MockAuthRepository{}
}

func (m *MockAuthRepository) Login(
	ctx context.Context,
	creds domainauth.Credentials,
) (domainauth.TokenPair, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds)
	}

	// A zero-value Credentials never passed construction validation.
	if creds.Email() == "" || creds.Password() == "" {
		return domainauth.TokenPair{}, apperrors.Unauthorized("invalid credentials")
	}

	return domainauth.TokenPair{
		AccessToken:  AccessToken,
		RefreshToken: RefreshToken,
		TokenType:    "bearer",
	}, nil
}

func (m *MockAuthRepository) RefreshToken(
	ctx context.Context,
	refreshToken string,
) (domainauth.TokenPair, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshToken)
	}

	if refreshToken == "" || refreshToken == InvalidRefreshToken {
		return domainauth.TokenPair{}, apperrors.Unauthorized("invalid refresh token")
	}

	return domainauth.TokenPair{
		AccessToken:  RefreshedAccessToken,
		RefreshToken: RefreshedRefreshToken,
		TokenType:    "bearer",
	}, nil
}

func (m *MockAuthRepository) GetCurrentUser(ctx context.Context) (domainauth.User, error) {
	if m.GetCurrentUserFunc != nil {
		return m.GetCurrentUserFunc(ctx)
	}

	return domainauth.User{
		ID:    UserID,
		Email: UserEmail,
		Name:  UserName,
	}, nil
}
