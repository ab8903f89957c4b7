package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/notesapp/noteskit/internal/ports"
)

var _ ports.TokenStore = (*File)(nil)

// File is a durable token store backed by a JSON file. It survives process
// restarts and is the default backend for the CLI.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile creates a file-backed token store at path. The parent directory is
// created on first write.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) SetAccessToken(_ context.Context, token string) error {
	return f.update(func(t map[string]string) {
		setOrDelete(t, accessTokenKey, token)
	})
}

func (f *File) GetAccessToken(_ context.Context) (string, error) {
	tokens, err := f.load()
	if err != nil {
		return "", err
	}
	return tokens[accessTokenKey], nil
}

func (f *File) SetRefreshToken(_ context.Context, token string) error {
	return f.update(func(t map[string]string) {
		setOrDelete(t, refreshTokenKey, token)
	})
}

func (f *File) GetRefreshToken(_ context.Context) (string, error) {
	tokens, err := f.load()
	if err != nil {
		return "", err
	}
	return tokens[refreshTokenKey], nil
}

func (f *File) ClearTokens(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

func (f *File) HasTokens(_ context.Context) (bool, error) {
	tokens, err := f.load()
	if err != nil {
		return false, err
	}
	return tokens[accessTokenKey] != "" && tokens[refreshTokenKey] != "", nil
}

func (f *File) update(mutate func(map[string]string)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	tokens, err := f.read()
	if err != nil {
		return err
	}
	mutate(tokens)
	return f.write(tokens)
}

func (f *File) load() (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

func (f *File) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read token file: %w", err)
	}

	tokens := map[string]string{}
	if unmarshalErr := json.Unmarshal(data, &tokens); unmarshalErr != nil {
		// A corrupt token file is equivalent to no stored tokens.
		return map[string]string{}, nil
	}
	return tokens, nil
}

// write persists tokens via write-to-temp-then-rename so a crash never
// leaves a half-written file behind.
func (f *File) write(tokens map[string]string) error {
	data, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("marshal tokens: %w", err)
	}

	dir := filepath.Dir(f.path)
	if mkErr := os.MkdirAll(dir, 0o700); mkErr != nil {
		return fmt.Errorf("create token dir: %w", mkErr)
	}

	tmp, err := os.CreateTemp(dir, ".tokens-*")
	if err != nil {
		return fmt.Errorf("create temp token file: %w", err)
	}
	tmpName := tmp.Name()
	if _, writeErr := tmp.Write(data); writeErr != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp token file: %w", writeErr)
	}
	if closeErr := tmp.Close(); closeErr != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp token file: %w", closeErr)
	}
	if chmodErr := os.Chmod(tmpName, 0o600); chmodErr != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod token file: %w", chmodErr)
	}
	if renameErr := os.Rename(tmpName, f.path); renameErr != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename token file: %w", renameErr)
	}
	return nil
}

func setOrDelete(tokens map[string]string, key, value string) {
	if value == "" {
		delete(tokens, key)
		return
	}
	tokens[key] = value
}
