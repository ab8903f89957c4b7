package tokenstore

// Package tokenstore provides interchangeable backends for persisting the
// access and refresh token strings. All backends satisfy ports.TokenStore
// and differ only in durability.

import (
	"context"
	"sync"

	"github.com/notesapp/noteskit/internal/ports"
)

const (
	accessTokenKey  = "auth_access_token"
	refreshTokenKey = "auth_refresh_token"
)

var _ ports.TokenStore = (*Memory)(nil)

// Memory is a volatile in-process token store, used in mock mode and tests.
type Memory struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// NewMemory creates an empty in-memory token store.
func NewMemory() *Memory {
	return &Memory{tokens: make(map[string]string)}
}

func (m *Memory) SetAccessToken(_ context.Context, token string) error {
	m.set(accessTokenKey, token)
	return nil
}

func (m *Memory) GetAccessToken(_ context.Context) (string, error) {
	return m.get(accessTokenKey), nil
}

func (m *Memory) SetRefreshToken(_ context.Context, token string) error {
	m.set(refreshTokenKey, token)
	return nil
}

func (m *Memory) GetRefreshToken(_ context.Context) (string, error) {
	return m.get(refreshTokenKey), nil
}

func (m *Memory) ClearTokens(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, accessTokenKey)
	delete(m.tokens, refreshTokenKey)
	return nil
}

func (m *Memory) HasTokens(_ context.Context) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tokens[accessTokenKey] != "" && m.tokens[refreshTokenKey] != "", nil
}

func (m *Memory) set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if value == "" {
		delete(m.tokens, key)
		return
	}
	m.tokens[key] = value
}

func (m *Memory) get(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tokens[key]
}
