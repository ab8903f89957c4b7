package ports

// Package ports defines interfaces (hexagonal ports) for the client core.
// Implementations live in internal/adapters and internal/mocks;
// orchestration in internal/service and internal/session.

import (
	"context"

	domainauth "github.com/notesapp/noteskit/internal/domain/auth"
)

// AuthRepository talks to the authentication endpoints of the notes service.
type AuthRepository interface {
	// Login exchanges credentials for a token pair.
	Login(ctx context.Context, creds domainauth.Credentials) (domainauth.TokenPair, error)

	// RefreshToken mints a new token pair from a refresh token.
	RefreshToken(ctx context.Context, refreshToken string) (domainauth.TokenPair, error)

	// GetCurrentUser returns the principal the current access token belongs to.
	GetCurrentUser(ctx context.Context) (domainauth.User, error)
}

// TokenStore persists the access and refresh token strings. It is pure
// storage: no validation or decoding of token contents. An empty string
// returned with a nil error means the token is absent.
type TokenStore interface {
	SetAccessToken(ctx context.Context, token string) error
	GetAccessToken(ctx context.Context) (string, error)
	SetRefreshToken(ctx context.Context, token string) error
	GetRefreshToken(ctx context.Context) (string, error)

	// ClearTokens removes both tokens.
	ClearTokens(ctx context.Context) error

	// HasTokens reports whether both tokens are present.
	HasTokens(ctx context.Context) (bool, error)
}
