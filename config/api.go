package config

import "time"

// APIConfig contains the notes service API endpoint configuration.
type APIConfig struct {
	// BaseURL is the root of the notes service API.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8000"`

	// Timeout is the per-request timeout of the underlying HTTP client.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

const defaultAPITimeout = 30 * time.Second

// Sanitize applies guardrails to API configuration.
func (c *APIConfig) Sanitize() {
	if c.Timeout <= 0 {
		c.Timeout = defaultAPITimeout
	}
}
