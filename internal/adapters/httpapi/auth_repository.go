package httpapi

import (
	"context"
	"encoding/json"
	"fmt"

	domainauth "github.com/notesapp/noteskit/internal/domain/auth"
	"github.com/notesapp/noteskit/internal/ports"
)

// Endpoint paths are a deployment convention shared with the notes service.
const (
	loginEndpoint       = "/auth/login"
	refreshEndpoint     = "/auth/refresh"
	currentUserEndpoint = "/auth/me"
)

var _ ports.AuthRepository = (*AuthRepository)(nil)

// AuthRepository is the HTTP-backed implementation of ports.AuthRepository.
type AuthRepository struct {
	client ports.Requester
}

// NewAuthRepository constructs an AuthRepository over client. The refresh
// path must be given a client without the auth decorator so a rejected
// refresh cannot recurse into another refresh.
func NewAuthRepository(client ports.Requester) *AuthRepository {
	return &AuthRepository{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *AuthRepository) Login(
	ctx context.Context,
	creds domainauth.Credentials,
) (domainauth.TokenPair, error) {
	payload := loginRequest{Email: creds.Email(), Password: creds.Password()}
	data, err := r.client.Post(ctx, loginEndpoint, payload)
	if err != nil {
		return domainauth.TokenPair{}, err
	}
	return decodeTokenPair(data)
}

func (r *AuthRepository) RefreshToken(
	ctx context.Context,
	refreshToken string,
) (domainauth.TokenPair, error) {
	data, err := r.client.Post(ctx, refreshEndpoint, refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return domainauth.TokenPair{}, err
	}
	return decodeTokenPair(data)
}

func (r *AuthRepository) GetCurrentUser(ctx context.Context) (domainauth.User, error) {
	data, err := r.client.Get(ctx, currentUserEndpoint)
	if err != nil {
		return domainauth.User{}, err
	}

	var user domainauth.User
	if unmarshalErr := json.Unmarshal(data, &user); unmarshalErr != nil {
		return domainauth.User{}, fmt.Errorf("decode current user: %w", unmarshalErr)
	}
	return user, nil
}

func decodeTokenPair(data json.RawMessage) (domainauth.TokenPair, error) {
	var pair domainauth.TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return domainauth.TokenPair{}, fmt.Errorf("decode token response: %w", err)
	}
	return pair, nil
}
