package session

// Package session holds the reactive session state container: the current
// user, the token pair, and the authentication flag, together with the
// login/logout/initialize orchestration. State is owned by the Store and
// handed out only as snapshots.

import (
	"context"
	"log/slog"
	"sync"
	"time"

	domainauth "github.com/notesapp/noteskit/internal/domain/auth"
	apperrors "github.com/notesapp/noteskit/internal/errors"
	"github.com/notesapp/noteskit/internal/ports"
	"github.com/notesapp/noteskit/internal/service"
	"github.com/notesapp/noteskit/internal/token"
)

// State is an immutable snapshot of the session.
type State struct {
	User            *domainauth.User
	AccessToken     string
	RefreshToken    string
	IsAuthenticated bool
	Loading         bool
	Err             string
}

// StoreOptions groups dependencies for Store.
type StoreOptions struct {
	Sessions *service.SessionService
	Repo     ports.AuthRepository
	Checker  *token.Checker
	Logger   *slog.Logger

	// Buffer widens the expiry check on stored access tokens.
	// Zero means token.DefaultExpiryBuffer.
	Buffer time.Duration
}

// Store owns the session state. All mutation goes through its methods; reads
// go through Snapshot. Mutations never run while a network call is in
// flight, so observers only ever see fully consistent states.
type Store struct {
	mu          sync.Mutex
	state       State
	subscribers []func(State)

	sessions *service.SessionService
	repo     ports.AuthRepository
	checker  *token.Checker
	logger   *slog.Logger
	buffer   time.Duration
}

// NewStore constructs an empty, unauthenticated Store.
func NewStore(opts StoreOptions) *Store {
	checker := opts.Checker
	if checker == nil {
		checker = token.NewChecker()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	buffer := opts.Buffer
	if buffer <= 0 {
		buffer = token.DefaultExpiryBuffer
	}
	return &Store{
		sessions: opts.Sessions,
		repo:     opts.Repo,
		checker:  checker,
		logger:   logger,
		buffer:   buffer,
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyState()
}

// Subscribe registers fn to be called with a snapshot after every state
// change. Callbacks run outside the store lock.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// AccessTokenFunc returns a closure that reads the current access token at
// call time, so the request client always sees rotated tokens.
func (s *Store) AccessTokenFunc() func() string {
	return func() string {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.state.AccessToken
	}
}

// InitializeAuth hydrates session state from the token store. Both tokens
// present with a non-expired access token adopt the session; a present but
// expired access token clears everything; absent tokens leave the store
// untouched. Calling it again with the same stored tokens is a no-op.
func (s *Store) InitializeAuth(ctx context.Context) error {
	access, err := s.sessions.GetAccessToken(ctx)
	if err != nil {
		return err
	}
	refresh, err := s.sessions.GetRefreshToken(ctx)
	if err != nil {
		return err
	}

	switch {
	case access != "" && refresh != "" && !s.checker.IsExpired(access, s.buffer):
		s.mutate(func(st *State) {
			st.AccessToken = access
			st.RefreshToken = refresh
			st.IsAuthenticated = true
		})
		return nil
	case access != "" || refresh != "":
		// Expired or partial credentials are useless; drop them entirely.
		return s.ClearAuth(ctx)
	default:
		return nil
	}
}

// Login exchanges credentials for tokens, adopts them, and fetches the
// current user. On any failure the error message is captured into state and
// the error is returned so the caller can react immediately.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.mutate(func(st *State) {
		st.Loading = true
		st.Err = ""
	})
	defer s.mutate(func(st *State) { st.Loading = false })

	creds, err := domainauth.NewCredentials(email, password)
	if err != nil {
		s.mutate(func(st *State) { st.Err = err.Error() })
		return err
	}

	pair, err := s.repo.Login(ctx, creds)
	if err != nil {
		s.mutate(func(st *State) {
			st.Err = err.Error()
			st.IsAuthenticated = false
		})
		return err
	}

	if err := s.SetTokens(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
		s.mutate(func(st *State) { st.Err = err.Error() })
		return err
	}

	return s.fetchCurrentUser(ctx)
}

// SetTokens writes the pair through to storage and adopts it into state.
// Storage stays all-or-nothing: a failed second write rolls the first back.
func (s *Store) SetTokens(ctx context.Context, access, refresh string) error {
	if err := s.sessions.SetAccessToken(ctx, access); err != nil {
		return err
	}
	if err := s.sessions.SetRefreshToken(ctx, refresh); err != nil {
		if clearErr := s.sessions.ClearTokens(ctx); clearErr != nil {
			s.logger.WarnContext(ctx, "clear tokens after partial write", "error", clearErr)
		}
		return err
	}
	s.mutate(func(st *State) {
		st.AccessToken = access
		st.RefreshToken = refresh
		st.IsAuthenticated = true
	})
	return nil
}

// FetchCurrentUser loads the authenticated principal into state. An
// unauthorized failure additionally clears the whole session.
func (s *Store) FetchCurrentUser(ctx context.Context) error {
	s.mutate(func(st *State) {
		st.Loading = true
		st.Err = ""
	})
	defer s.mutate(func(st *State) { st.Loading = false })

	return s.fetchCurrentUser(ctx)
}

func (s *Store) fetchCurrentUser(ctx context.Context) error {
	user, err := s.repo.GetCurrentUser(ctx)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			if clearErr := s.ClearAuth(ctx); clearErr != nil {
				s.logger.WarnContext(ctx, "clear session after auth failure", "error", clearErr)
			}
		}
		// Recorded after any clear so the message survives for observers.
		s.mutate(func(st *State) { st.Err = err.Error() })
		return err
	}

	s.mutate(func(st *State) { st.User = &user })
	return nil
}

// Logout drops the session. It is an alias of ClearAuth; no network call.
func (s *Store) Logout(ctx context.Context) error {
	return s.ClearAuth(ctx)
}

// ClearAuth resets all session state and purges the token store.
func (s *Store) ClearAuth(ctx context.Context) error {
	s.mutate(func(st *State) {
		st.User = nil
		st.AccessToken = ""
		st.RefreshToken = ""
		st.IsAuthenticated = false
		st.Err = ""
	})
	return s.sessions.ClearTokens(ctx)
}

// mutate applies fn under the lock and notifies subscribers afterwards.
func (s *Store) mutate(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	snapshot := s.copyState()
	subs := make([]func(State), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// copyState returns a deep copy of the state. Callers must hold the lock.
func (s *Store) copyState() State {
	st := s.state
	if st.User != nil {
		user := *st.User
		st.User = &user
	}
	return st
}
