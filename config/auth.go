package config

import (
	"fmt"
	"strings"
	"time"
)

// RepoMode selects which repository implementations back the client.
type RepoMode string

const (
	// RepoModeHTTP talks to a real notes service over HTTP.
	RepoModeHTTP RepoMode = "http"
	// RepoModeMock uses deterministic in-memory repositories (for development and demos).
	RepoModeMock RepoMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for RepoMode.
func (m *RepoMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "http", "mock":
		*m = RepoMode(v)
		return nil
	default:
		return fmt.Errorf("invalid RepoMode: %q (valid options: http, mock)", v)
	}
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines whether repositories are HTTP-backed or mocked.
	Mode RepoMode `env:"MODE" envDefault:"http"`

	// TokenBuffer is subtracted from token expiry so tokens about to
	// expire are refreshed early.
	TokenBuffer time.Duration `env:"TOKEN_BUFFER" envDefault:"60s"`

	// LoginRoute is the name of the public login route the access guard
	// redirects to.
	LoginRoute string `env:"LOGIN_ROUTE" envDefault:"login"`
}

// Sanitize applies guardrails to auth configuration.
func (c *AuthConfig) Sanitize() {
	if c.TokenBuffer < 0 {
		c.TokenBuffer = 0
	}
	if c.LoginRoute == "" {
		c.LoginRoute = "login"
	}
}
