package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"golang.org/x/sync/singleflight"

	apperrors "github.com/notesapp/noteskit/internal/errors"
	"github.com/notesapp/noteskit/internal/ports"
)

// Refresher attempts to mint a new access token from the stored refresh
// token. It reports success; it never returns an error.
type Refresher interface {
	RefreshAccessToken(ctx context.Context) bool
}

var _ ports.Requester = (*AuthClient)(nil)

// AuthClient decorates a Requester so that a request failing with an
// unauthorized error triggers exactly one token refresh followed by exactly
// one retry of the original request. Concurrent unauthorized failures share
// a single in-flight refresh; each caller observes the same refresh outcome.
type AuthClient struct {
	next      ports.Requester
	refresher Refresher
	group     singleflight.Group
	logger    *slog.Logger
}

// NewAuthClient constructs an AuthClient around next.
func NewAuthClient(next ports.Requester, refresher Refresher, logger *slog.Logger) *AuthClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthClient{
		next:      next,
		refresher: refresher,
		logger:    logger,
	}
}

func (a *AuthClient) Get(ctx context.Context, endpoint string) (json.RawMessage, error) {
	return a.execute(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return a.next.Get(ctx, endpoint)
	})
}

func (a *AuthClient) Post(ctx context.Context, endpoint string, payload any) (json.RawMessage, error) {
	return a.execute(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return a.next.Post(ctx, endpoint, payload)
	})
}

func (a *AuthClient) Put(ctx context.Context, endpoint string, payload any) (json.RawMessage, error) {
	return a.execute(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return a.next.Put(ctx, endpoint, payload)
	})
}

func (a *AuthClient) Delete(ctx context.Context, endpoint string) (json.RawMessage, error) {
	return a.execute(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return a.next.Delete(ctx, endpoint)
	})
}

// UploadFile buffers contents up front so a retry after refresh re-sends
// the full body; the first attempt would otherwise have drained the reader.
func (a *AuthClient) UploadFile(
	ctx context.Context,
	endpoint, field, filename string,
	contents io.Reader,
) (json.RawMessage, error) {
	data, err := io.ReadAll(contents)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnknown, "read upload contents")
	}
	return a.execute(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return a.next.UploadFile(ctx, endpoint, field, filename, bytes.NewReader(data))
	})
}

// execute runs call once, and on an unauthorized failure funnels all
// concurrent callers through one shared refresh before retrying call exactly
// once. Any non-unauthorized failure propagates unchanged, and a failed
// refresh propagates the original unauthorized error rather than a synthetic
// refresh error.
func (a *AuthClient) execute(
	ctx context.Context,
	call func(ctx context.Context) (json.RawMessage, error),
) (json.RawMessage, error) {
	result, err := call(ctx)
	if err == nil || !apperrors.IsUnauthorized(err) {
		return result, err
	}

	if !a.refresh(ctx) {
		return nil, err
	}

	a.logger.DebugContext(ctx, "access token refreshed, retrying request")
	return call(ctx)
}

// refresh collapses concurrent refresh attempts into one in-flight call.
// The shared slot is cleared when the call completes, so the next
// unauthorized burst triggers a fresh refresh. The refresh itself runs
// detached from the caller's cancellation: canceling one request must not
// poison the outcome every concurrent waiter shares.
func (a *AuthClient) refresh(ctx context.Context) bool {
	ok, _, _ := a.group.Do("refresh", func() (any, error) {
		return a.refresher.RefreshAccessToken(context.WithoutCancel(ctx)), nil
	})
	refreshed, _ := ok.(bool)
	return refreshed
}
