package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - api.go: Notes service API configuration
//   - auth.go: Authentication configuration
//   - storage.go: Token storage configuration
type AppConfig struct {
	// IsDev controls development mode behavior (verbose logging, mock
	// defaults). Set DEV=true for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// API is the notes service API configuration.
	API APIConfig `envPrefix:"API_"`

	// Auth is the authentication configuration.
	Auth AuthConfig `envPrefix:"AUTH_"`

	// Storage is the token storage configuration.
	Storage StorageConfig `envPrefix:"STORAGE_"`

	// Redis configures the redis token store backend.
	Redis RedisConfig `envPrefix:"REDIS_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.API.Sanitize()
	c.Auth.Sanitize()
	c.Storage.Sanitize()
	c.detectDevMode()
}

// detectDevMode checks NODE_ENV as a fallback for the DEV flag, which is a
// convention shared with the frontend tooling this service pairs with.
func (c *AppConfig) detectDevMode() {
	if c.IsDev {
		return
	}
	if strings.EqualFold(os.Getenv("NODE_ENV"), "development") {
		c.IsDev = true
	}
}
