package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of transport/adapter concerns.

import (
	"strings"
	"time"

	apperrors "github.com/notesapp/noteskit/internal/errors"
)

// Credentials is an immutable email/password pair, validated at construction.
type Credentials struct {
	email    string
	password string
}

// NewCredentials validates and constructs a Credentials value.
// The email must be non-empty and contain "@"; the password must be non-empty.
func NewCredentials(email, password string) (Credentials, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return Credentials{}, apperrors.ValidationField("email", "email is required")
	}
	if !strings.Contains(email, "@") {
		return Credentials{}, apperrors.ValidationField("email", "email must contain @")
	}
	if password == "" {
		return Credentials{}, apperrors.ValidationField("password", "password is required")
	}
	return Credentials{email: email, password: password}, nil
}

// Email returns the validated email address.
func (c Credentials) Email() string { return c.email }

// Password returns the password.
func (c Credentials) Password() string { return c.password }

// TokenPair is the credential set returned by login and refresh responses.
// Its fields are written into the token store individually; the pair itself
// is never persisted.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Claims is the decoded payload of a bearer token. All fields are optional;
// zero values mean the claim was absent.
type Claims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
	IssuedAt  time.Time
	Type      string
}

// HasExpiry reports whether the token carried an exp claim.
func (c Claims) HasExpiry() bool { return !c.ExpiresAt.IsZero() }

// User represents the authenticated principal returned by the auth API.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
