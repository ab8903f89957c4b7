package bootstrap

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/notesapp/noteskit/config"
	"github.com/notesapp/noteskit/internal/adapters/httpapi"
	"github.com/notesapp/noteskit/internal/adapters/tokenstore"
	"github.com/notesapp/noteskit/internal/guard"
	mockauth "github.com/notesapp/noteskit/internal/mocks/auth"
	mocknotes "github.com/notesapp/noteskit/internal/mocks/notes"
	"github.com/notesapp/noteskit/internal/ports"
	"github.com/notesapp/noteskit/internal/service"
	"github.com/notesapp/noteskit/internal/session"
	"github.com/notesapp/noteskit/internal/token"
)

// App holds the wired application graph.
type App struct {
	Config  config.AppConfig
	Logger  *slog.Logger
	Session *session.Store
	Guard   *guard.Guard
	Notes   *service.NoteService

	redisClient *redis.Client
}

// BuildAppOptions allows callers (mainly tests) to override pieces of the
// default wiring.
type BuildAppOptions struct {
	Config config.AppConfig
	Logger *slog.Logger

	// HTTPClient overrides the transport used in http mode. Optional.
	HTTPClient *http.Client

	// TokenStore overrides the storage backend selected by config. Optional.
	TokenStore ports.TokenStore
}

// BuildApp wires the full client graph: token store, session service,
// refresh coordinator, request clients and repositories, session store,
// and the route guard.
func BuildApp(opts BuildAppOptions) (*App, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	app := &App{Config: cfg, Logger: logger}

	store := opts.TokenStore
	if store == nil {
		var err error
		store, err = app.buildTokenStore(cfg)
		if err != nil {
			return nil, err
		}
	}

	sessions := service.NewSessionService(store)
	checker := token.NewChecker()

	var (
		authRepo ports.AuthRepository
		noteRepo ports.NoteRepository
	)

	// The session store is assigned after the clients are built; the token
	// closure reads it lazily so the decorated client and the store can
	// reference each other without a constructor cycle.
	var sessionStore *session.Store

	switch cfg.Auth.Mode {
	case config.RepoModeMock:
		authRepo = mockauth.NewMockAuthRepository()
		noteRepo = mocknotes.NewSeededNoteRepository()

	default:
		httpClient := opts.HTTPClient
		if httpClient == nil && cfg.API.Timeout > 0 {
			httpClient = &http.Client{Timeout: cfg.API.Timeout}
		}
		base, err := httpapi.NewClient(httpapi.ClientOptions{
			BaseURL: cfg.API.BaseURL,
			TokenFunc: func() string {
				if sessionStore == nil {
					return ""
				}
				return sessionStore.AccessTokenFunc()()
			},
			HTTPClient: httpClient,
			Logger:     logger,
		})
		if err != nil {
			return nil, fmt.Errorf("build API client: %w", err)
		}

		// The auth repository stays on the undecorated client: a refresh
		// request that itself fails with 401 must not trigger another
		// refresh.
		authRepo = httpapi.NewAuthRepository(base)

		coordinator := service.NewRefreshCoordinator(service.RefreshCoordinatorOptions{
			Sessions: sessions,
			Repo:     authRepo,
			Checker:  checker,
			Logger:   logger,
			Buffer:   cfg.Auth.TokenBuffer,
		})

		authed := httpapi.NewAuthClient(base, coordinator, logger)
		noteRepo = httpapi.NewNoteRepository(authed)
	}

	sessionStore = session.NewStore(session.StoreOptions{
		Sessions: sessions,
		Repo:     authRepo,
		Checker:  checker,
		Logger:   logger,
		Buffer:   cfg.Auth.TokenBuffer,
	})

	app.Session = sessionStore
	app.Guard = guard.New(sessionStore, cfg.Auth.LoginRoute, logger)
	app.Notes = service.NewNoteService(noteRepo)
	return app, nil
}

func (a *App) buildTokenStore(cfg config.AppConfig) (ports.TokenStore, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendMemory:
		return tokenstore.NewMemory(), nil

	case config.StorageBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		a.redisClient = client
		return tokenstore.NewRedisWithPrefix(client, cfg.Redis.KeyPrefix), nil

	case config.StorageBackendFile:
		return tokenstore.NewFile(cfg.Storage.FilePath), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// Close releases resources held by the app.
func (a *App) Close() error {
	if a.redisClient != nil {
		return a.redisClient.Close()
	}
	return nil
}
