package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notesapp/noteskit/internal/adapters/tokenstore"
	domainauth "github.com/notesapp/noteskit/internal/domain/auth"
	apperrors "github.com/notesapp/noteskit/internal/errors"
	mockauth "github.com/notesapp/noteskit/internal/mocks/auth"
	"github.com/notesapp/noteskit/internal/service"
)

func signAccessToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"sub":   "user-1",
		"email": "test@example.com",
		"type":  "access",
		"exp":   expiresAt.Unix(),
	}).SignedString([]byte("session-test-key"))
	require.NoError(t, err)
	return raw
}

func newTestStore(repo *mockauth.MockAuthRepository) (*Store, *service.SessionService) {
	sessions := service.NewSessionService(tokenstore.NewMemory())
	store := NewStore(StoreOptions{
		Sessions: sessions,
		Repo:     repo,
	})
	return store, sessions
}

func TestStore_InitialStateEmpty(t *testing.T) {
	store, _ := newTestStore(mockauth.NewMockAuthRepository())

	st := store.Snapshot()

	assert.Nil(t, st.User)
	assert.Empty(t, st.AccessToken)
	assert.False(t, st.IsAuthenticated)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Err)
}

func TestStore_Login_Success(t *testing.T) {
	store, sessions := newTestStore(mockauth.NewMockAuthRepository())

	err := store.Login(context.Background(), "test@example.com", "password123")

	require.NoError(t, err)

	st := store.Snapshot()
	assert.True(t, st.IsAuthenticated)
	assert.Equal(t, mockauth.AccessToken, st.AccessToken)
	assert.Equal(t, mockauth.RefreshToken, st.RefreshToken)
	require.NotNil(t, st.User)
	assert.Equal(t, mockauth.UserID, st.User.ID)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Err)

	// Write-through: storage holds the same pair.
	access, err := sessions.GetAccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, mockauth.AccessToken, access)
}

func TestStore_Login_ValidationError(t *testing.T) {
	store, _ := newTestStore(mockauth.NewMockAuthRepository())

	err := store.Login(context.Background(), "not-an-email", "pw")

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	st := store.Snapshot()
	assert.False(t, st.IsAuthenticated)
	assert.NotEmpty(t, st.Err)
	assert.False(t, st.Loading, "loading reset even on failure")
}

func TestStore_Login_RepositoryFailure(t *testing.T) {
	repo := &mockauth.MockAuthRepository{
		LoginFunc: func(_ context.Context, _ domainauth.Credentials) (domainauth.TokenPair, error) {
			return domainauth.TokenPair{}, apperrors.Unauthorized("invalid credentials")
		},
	}
	store, sessions := newTestStore(repo)

	err := store.Login(context.Background(), "test@example.com", "wrong")

	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))

	st := store.Snapshot()
	assert.False(t, st.IsAuthenticated)
	assert.Equal(t, "invalid credentials", st.Err)
	assert.False(t, st.Loading)

	has, hasErr := sessions.HasTokens(context.Background())
	require.NoError(t, hasErr)
	assert.False(t, has, "no tokens persisted on failed login")
}

func TestStore_Logout_ClearsEverything(t *testing.T) {
	ctx := context.Background()
	store, sessions := newTestStore(mockauth.NewMockAuthRepository())

	require.NoError(t, store.Login(ctx, "a@b.com", "pw"))
	require.True(t, store.Snapshot().IsAuthenticated)

	require.NoError(t, store.Logout(ctx))

	st := store.Snapshot()
	assert.False(t, st.IsAuthenticated)
	assert.Nil(t, st.User)
	assert.Empty(t, st.AccessToken)
	assert.Empty(t, st.RefreshToken)

	has, err := sessions.HasTokens(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestStore_InitializeAuth_AdoptsValidTokens(t *testing.T) {
	ctx := context.Background()
	store, sessions := newTestStore(mockauth.NewMockAuthRepository())

	access := signAccessToken(t, time.Now().Add(time.Hour))
	require.NoError(t, sessions.SetAccessToken(ctx, access))
	require.NoError(t, sessions.SetRefreshToken(ctx, "refresh-1"))

	require.NoError(t, store.InitializeAuth(ctx))

	st := store.Snapshot()
	assert.True(t, st.IsAuthenticated)
	assert.Equal(t, access, st.AccessToken)
	assert.Equal(t, "refresh-1", st.RefreshToken)
	assert.Nil(t, st.User, "initialize does not fetch the user")
}

func TestStore_InitializeAuth_Idempotent(t *testing.T) {
	ctx := context.Background()
	var repoCalls atomic.Int64
	repo := &mockauth.MockAuthRepository{
		GetCurrentUserFunc: func(_ context.Context) (domainauth.User, error) {
			repoCalls.Add(1)
			return domainauth.User{}, nil
		},
	}
	store, sessions := newTestStore(repo)

	access := signAccessToken(t, time.Now().Add(time.Hour))
	require.NoError(t, sessions.SetAccessToken(ctx, access))
	require.NoError(t, sessions.SetRefreshToken(ctx, "refresh-1"))

	require.NoError(t, store.InitializeAuth(ctx))
	first := store.Snapshot()

	require.NoError(t, store.InitializeAuth(ctx))
	second := store.Snapshot()

	assert.Equal(t, first, second, "repeat initialization causes no state drift")
	assert.EqualValues(t, 0, repoCalls.Load(), "initialization never touches the network")
}

func TestStore_InitializeAuth_ExpiredAccessTokenClears(t *testing.T) {
	ctx := context.Background()
	store, sessions := newTestStore(mockauth.NewMockAuthRepository())

	require.NoError(t, sessions.SetAccessToken(ctx, signAccessToken(t, time.Now().Add(-time.Hour))))
	require.NoError(t, sessions.SetRefreshToken(ctx, "refresh-1"))

	require.NoError(t, store.InitializeAuth(ctx))

	st := store.Snapshot()
	assert.False(t, st.IsAuthenticated)
	assert.Empty(t, st.AccessToken)

	has, err := sessions.HasTokens(ctx)
	require.NoError(t, err)
	assert.False(t, has, "expired credentials purged from storage")
}

func TestStore_InitializeAuth_AbsentTokensNoOp(t *testing.T) {
	store, _ := newTestStore(mockauth.NewMockAuthRepository())

	require.NoError(t, store.InitializeAuth(context.Background()))

	st := store.Snapshot()
	assert.False(t, st.IsAuthenticated)
	assert.Empty(t, st.Err)
}

func TestStore_FetchCurrentUser_UnauthorizedClearsSession(t *testing.T) {
	ctx := context.Background()
	repo := &mockauth.MockAuthRepository{
		GetCurrentUserFunc: func(_ context.Context) (domainauth.User, error) {
			return domainauth.User{}, apperrors.Unauthorized("session expired")
		},
	}
	store, sessions := newTestStore(repo)

	require.NoError(t, store.SetTokens(ctx, "access-1", "refresh-1"))

	err := store.FetchCurrentUser(ctx)

	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))

	st := store.Snapshot()
	assert.False(t, st.IsAuthenticated)
	assert.Nil(t, st.User)
	assert.Equal(t, "session expired", st.Err, "message survives the session clear")

	has, hasErr := sessions.HasTokens(ctx)
	require.NoError(t, hasErr)
	assert.False(t, has)
}

func TestStore_FetchCurrentUser_NonAuthFailureKeepsSession(t *testing.T) {
	ctx := context.Background()
	repo := &mockauth.MockAuthRepository{
		GetCurrentUserFunc: func(_ context.Context) (domainauth.User, error) {
			return domainauth.User{}, apperrors.Internal("backend down")
		},
	}
	store, _ := newTestStore(repo)

	require.NoError(t, store.SetTokens(ctx, "access-1", "refresh-1"))

	err := store.FetchCurrentUser(ctx)

	require.Error(t, err)

	st := store.Snapshot()
	assert.True(t, st.IsAuthenticated, "only unauthorized failures force logout")
	assert.Equal(t, "backend down", st.Err)
}

// refreshWriteFailStore rejects refresh-token writes while delegating
// everything else to an in-memory store.
type refreshWriteFailStore struct {
	*tokenstore.Memory
}

func (s *refreshWriteFailStore) SetRefreshToken(context.Context, string) error {
	return apperrors.Internal("disk full")
}

func TestStore_SetTokens_PartialWriteRollsBack(t *testing.T) {
	ctx := context.Background()
	backing := &refreshWriteFailStore{Memory: tokenstore.NewMemory()}
	sessions := service.NewSessionService(backing)
	store := NewStore(StoreOptions{
		Sessions: sessions,
		Repo:     mockauth.NewMockAuthRepository(),
	})

	err := store.SetTokens(ctx, "access-1", "refresh-1")

	require.Error(t, err)

	access, getErr := sessions.GetAccessToken(ctx)
	require.NoError(t, getErr)
	assert.Empty(t, access, "no lone access token left behind")

	st := store.Snapshot()
	assert.False(t, st.IsAuthenticated)
	assert.Empty(t, st.AccessToken)
}

func TestStore_AccessTokenFunc_SeesRotation(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(mockauth.NewMockAuthRepository())
	getToken := store.AccessTokenFunc()

	assert.Empty(t, getToken())

	require.NoError(t, store.SetTokens(ctx, "access-1", "refresh-1"))
	assert.Equal(t, "access-1", getToken())

	require.NoError(t, store.SetTokens(ctx, "access-2", "refresh-2"))
	assert.Equal(t, "access-2", getToken())
}

func TestStore_Subscribe_NotifiedOnChange(t *testing.T) {
	store, _ := newTestStore(mockauth.NewMockAuthRepository())

	var notified atomic.Int64
	var lastAuthenticated atomic.Bool
	store.Subscribe(func(st State) {
		notified.Add(1)
		lastAuthenticated.Store(st.IsAuthenticated)
	})

	require.NoError(t, store.Login(context.Background(), "test@example.com", "password123"))

	assert.Positive(t, notified.Load())
	assert.True(t, lastAuthenticated.Load())
}
