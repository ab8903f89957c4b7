package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StorageBackend selects the token store implementation.
type StorageBackend string

const (
	// StorageBackendFile persists tokens in a JSON file (default).
	StorageBackendFile StorageBackend = "file"
	// StorageBackendMemory keeps tokens in process memory only.
	StorageBackendMemory StorageBackend = "memory"
	// StorageBackendRedis persists tokens in Redis for shared sessions.
	StorageBackendRedis StorageBackend = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for StorageBackend.
func (b *StorageBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "file", "memory", "redis":
		*b = StorageBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid StorageBackend: %q (valid options: file, memory, redis)", v)
	}
}

// StorageConfig groups token storage configuration.
type StorageConfig struct {
	// Backend selects where token strings are persisted.
	Backend StorageBackend `env:"BACKEND" envDefault:"file"`

	// FilePath is the token file location for the file backend.
	// Defaults to ~/.noteskit/tokens.json.
	FilePath string `env:"FILE_PATH"`
}

// Sanitize applies guardrails to storage configuration.
func (c *StorageConfig) Sanitize() {
	if c.Backend == StorageBackendFile && c.FilePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		c.FilePath = filepath.Join(home, ".noteskit", "tokens.json")
	}
}

// RedisConfig contains connection settings for the redis token store.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB"       envDefault:"0"`

	// KeyPrefix namespaces the token keys, e.g. per user or per host.
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"noteskit:"`
}
