package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/notesapp/noteskit/internal/ports"
	"github.com/notesapp/noteskit/internal/token"
)

// RefreshCoordinatorOptions groups dependencies for RefreshCoordinator.
type RefreshCoordinatorOptions struct {
	Sessions *SessionService
	Repo     ports.AuthRepository
	Checker  *token.Checker
	Logger   *slog.Logger

	// Buffer widens the expiry pre-check on the stored refresh token.
	// Zero means token.DefaultExpiryBuffer.
	Buffer time.Duration
}

// RefreshCoordinator exchanges the stored refresh token for a new token
// pair. It converts every failure into a false return plus cleared storage;
// no error ever escapes. Single-flight de-duplication is the caller's
// responsibility (see httpapi.AuthClient).
type RefreshCoordinator struct {
	sessions *SessionService
	repo     ports.AuthRepository
	checker  *token.Checker
	logger   *slog.Logger
	buffer   time.Duration
}

// NewRefreshCoordinator constructs a RefreshCoordinator.
func NewRefreshCoordinator(opts RefreshCoordinatorOptions) *RefreshCoordinator {
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
	return &RefreshCoordinator{
		sessions: opts.Sessions,
		repo:     opts.Repo,
		checker:  checker,
		logger:   logger,
		buffer:   buffer,
	}
}

// RefreshAccessToken reports whether a new token pair was stored.
//
// The stored refresh token is only pre-checked for expiry when it decodes as
// a JWT; opaque refresh tokens are sent to the server, which is the
// authority on their validity. A decodable token that is already expired
// short-circuits without a network call.
func (c *RefreshCoordinator) RefreshAccessToken(ctx context.Context) bool {
	refreshToken, err := c.sessions.GetRefreshToken(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "read refresh token failed", "error", err)
		return false
	}
	if refreshToken == "" {
		return false
	}

	if claims, ok := c.checker.Decode(refreshToken); ok {
		if !claims.HasExpiry() || c.checker.IsExpired(refreshToken, c.buffer) {
			c.logger.InfoContext(ctx, "stored refresh token expired, clearing session")
			c.clear(ctx)
			return false
		}
	}

	pair, err := c.repo.RefreshToken(ctx, refreshToken)
	if err != nil {
		c.logger.WarnContext(ctx, "token refresh rejected", "error", err)
		c.clear(ctx)
		return false
	}

	if err := c.sessions.SetAccessToken(ctx, pair.AccessToken); err != nil {
		c.logger.WarnContext(ctx, "store access token failed", "error", err)
		c.clear(ctx)
		return false
	}
	if err := c.sessions.SetRefreshToken(ctx, pair.RefreshToken); err != nil {
		c.logger.WarnContext(ctx, "store refresh token failed", "error", err)
		c.clear(ctx)
		return false
	}
	return true
}

func (c *RefreshCoordinator) clear(ctx context.Context) {
	if err := c.sessions.ClearTokens(ctx); err != nil {
		c.logger.WarnContext(ctx, "clear tokens failed", "error", err)
	}
}
