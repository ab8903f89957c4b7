package service

// Package service contains orchestration over the ports: the session token
// facade, the refresh coordinator, and the note service.

import (
	"context"

	"github.com/notesapp/noteskit/internal/ports"
)

// SessionService is a thin facade over the token store. It is the single
// injection point session state and the refresh coordinator go through, so
// tests and mock mode can substitute backends in one place.
type SessionService struct {
	store ports.TokenStore
}

// NewSessionService constructs a SessionService over store.
func NewSessionService(store ports.TokenStore) *SessionService {
	return &SessionService{store: store}
}

func (s *SessionService) SetAccessToken(ctx context.Context, token string) error {
	return s.store.SetAccessToken(ctx, token)
}

func (s *SessionService) GetAccessToken(ctx context.Context) (string, error) {
	return s.store.GetAccessToken(ctx)
}

func (s *SessionService) SetRefreshToken(ctx context.Context, token string) error {
	return s.store.SetRefreshToken(ctx, token)
}

func (s *SessionService) GetRefreshToken(ctx context.Context) (string, error) {
	return s.store.GetRefreshToken(ctx)
}

func (s *SessionService) ClearTokens(ctx context.Context) error {
	return s.store.ClearTokens(ctx)
}

func (s *SessionService) HasTokens(ctx context.Context) (bool, error) {
	return s.store.HasTokens(ctx)
}
