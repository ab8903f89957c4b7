package tokenstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notesapp/noteskit/internal/ports"
)

// runContractTests exercises the behavior every backend must share.
func runContractTests(t *testing.T, newStore func(t *testing.T) ports.TokenStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty store has no tokens", func(t *testing.T) {
		store := newStore(t)

		access, err := store.GetAccessToken(ctx)
		require.NoError(t, err)
		assert.Empty(t, access)

		refresh, err := store.GetRefreshToken(ctx)
		require.NoError(t, err)
		assert.Empty(t, refresh)

		has, err := store.HasTokens(ctx)
		require.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("set and get round trip", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.SetAccessToken(ctx, "access-1"))
		require.NoError(t, store.SetRefreshToken(ctx, "refresh-1"))

		access, err := store.GetAccessToken(ctx)
		require.NoError(t, err)
		assert.Equal(t, "access-1", access)

		refresh, err := store.GetRefreshToken(ctx)
		require.NoError(t, err)
		assert.Equal(t, "refresh-1", refresh)

		has, err := store.HasTokens(ctx)
		require.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("has tokens requires both", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.SetAccessToken(ctx, "access-only"))

		has, err := store.HasTokens(ctx)
		require.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("clear removes both", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.SetAccessToken(ctx, "access-1"))
		require.NoError(t, store.SetRefreshToken(ctx, "refresh-1"))
		require.NoError(t, store.ClearTokens(ctx))

		access, err := store.GetAccessToken(ctx)
		require.NoError(t, err)
		assert.Empty(t, access)

		has, err := store.HasTokens(ctx)
		require.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("overwrite replaces value", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.SetAccessToken(ctx, "old"))
		require.NoError(t, store.SetAccessToken(ctx, "new"))

		access, err := store.GetAccessToken(ctx)
		require.NoError(t, err)
		assert.Equal(t, "new", access)
	})
}

func TestMemory_Contract(t *testing.T) {
	runContractTests(t, func(_ *testing.T) ports.TokenStore {
		return NewMemory()
	})
}

func TestFile_Contract(t *testing.T) {
	runContractTests(t, func(t *testing.T) ports.TokenStore {
		return NewFile(filepath.Join(t.TempDir(), "tokens.json"))
	})
}

func TestFile_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tokens.json")

	first := NewFile(path)
	require.NoError(t, first.SetAccessToken(ctx, "access-1"))
	require.NoError(t, first.SetRefreshToken(ctx, "refresh-1"))

	reopened := NewFile(path)
	access, err := reopened.GetAccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-1", access)

	has, err := reopened.HasTokens(ctx)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestFile_CorruptFileTreatedAsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewFile(path)

	access, err := store.GetAccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, access)

	has, err := store.HasTokens(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestFile_PermissionsRestricted(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tokens.json")

	store := NewFile(path)
	require.NoError(t, store.SetAccessToken(ctx, "secret"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
