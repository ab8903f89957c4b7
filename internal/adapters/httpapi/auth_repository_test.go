package httpapi

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/notesapp/noteskit/internal/domain/auth"
	apperrors "github.com/notesapp/noteskit/internal/errors"
)

func TestAuthRepository_Login(t *testing.T) {
	var gotEndpoint string
	var gotPayload any
	repo := NewAuthRepository(&fakeRequester{
		PostFunc: func(_ context.Context, endpoint string, payload any) (json.RawMessage, error) {
			gotEndpoint = endpoint
			gotPayload = payload
			return json.RawMessage(`{
				"access_token": "access-1",
				"refresh_token": "refresh-1",
				"token_type": "bearer"
			}`), nil
		},
	})

	creds, err := domainauth.NewCredentials("test@example.com", "password123")
	require.NoError(t, err)

	pair, err := repo.Login(context.Background(), creds)

	require.NoError(t, err)
	assert.Equal(t, loginEndpoint, gotEndpoint)
	assert.Equal(t, loginRequest{Email: "test@example.com", Password: "password123"}, gotPayload)
	assert.Equal(t, "access-1", pair.AccessToken)
	assert.Equal(t, "refresh-1", pair.RefreshToken)
	assert.Equal(t, "bearer", pair.TokenType)
}

func TestAuthRepository_Login_ErrorPassthrough(t *testing.T) {
	repo := NewAuthRepository(&fakeRequester{
		PostFunc: func(_ context.Context, _ string, _ any) (json.RawMessage, error) {
			return nil, apperrors.Unauthorized("invalid credentials")
		},
	})

	creds, err := domainauth.NewCredentials("test@example.com", "wrong")
	require.NoError(t, err)

	_, err = repo.Login(context.Background(), creds)

	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestAuthRepository_RefreshToken(t *testing.T) {
	var gotPayload any
	repo := NewAuthRepository(&fakeRequester{
		PostFunc: func(_ context.Context, endpoint string, payload any) (json.RawMessage, error) {
			assert.Equal(t, refreshEndpoint, endpoint)
			gotPayload = payload
			return json.RawMessage(`{
				"access_token": "access-2",
				"refresh_token": "refresh-2",
				"token_type": "bearer"
			}`), nil
		},
	})

	pair, err := repo.RefreshToken(context.Background(), "refresh-1")

	require.NoError(t, err)
	assert.Equal(t, refreshRequest{RefreshToken: "refresh-1"}, gotPayload)
	assert.Equal(t, "access-2", pair.AccessToken)
}

func TestAuthRepository_GetCurrentUser(t *testing.T) {
	repo := NewAuthRepository(&fakeRequester{
		GetFunc: func(_ context.Context, endpoint string) (json.RawMessage, error) {
			assert.Equal(t, currentUserEndpoint, endpoint)
			return json.RawMessage(`{"id":"u1","email":"test@example.com","name":"Test User"}`), nil
		},
	})

	user, err := repo.GetCurrentUser(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domainauth.User{ID: "u1", Email: "test@example.com", Name: "Test User"}, user)
}

func TestAuthRepository_GetCurrentUser_DecodeError(t *testing.T) {
	repo := NewAuthRepository(&fakeRequester{
		GetFunc: func(_ context.Context, _ string) (json.RawMessage, error) {
			return json.RawMessage(`not json`), nil
		},
	})

	_, err := repo.GetCurrentUser(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode current user")
}
