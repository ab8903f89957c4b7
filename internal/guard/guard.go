package guard

// Package guard decides, for each requested route, whether navigation may
// proceed or must be redirected to the login route. Every route is
// protected unless explicitly marked public.

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/notesapp/noteskit/internal/session"
)

// RouteMeta is the per-route metadata relevant to access control.
type RouteMeta struct {
	// Public marks a route reachable without a session. Absent means
	// protected; an explicit false is treated identically to absent.
	Public bool
}

// Route describes a navigation target.
type Route struct {
	Name     string
	Path     string
	RawQuery string
	Meta     RouteMeta

	// Matched is the chain of ancestor route records for nested routes,
	// outermost first. A public ancestor makes the whole chain public.
	Matched []RouteMeta
}

// FullPath returns the path including the query string.
func (r Route) FullPath() string {
	if r.RawQuery == "" {
		return r.Path
	}
	return r.Path + "?" + r.RawQuery
}

// isPublic reports whether the route or any matched ancestor is public.
func (r Route) isPublic() bool {
	if r.Meta.Public {
		return true
	}
	for _, m := range r.Matched {
		if m.Public {
			return true
		}
	}
	return false
}

// RedirectQueryParam carries the originally requested destination through
// the login redirect.
const RedirectQueryParam = "redirect"

// Decision is the outcome of a guard check.
type Decision struct {
	Allow bool

	// Redirect is set when Allow is false: the login route carrying the
	// original destination as a query parameter.
	Redirect *Route
}

// Navigator applies navigation, typically by driving the embedding UI.
type Navigator interface {
	NavigateTo(route Route)
}

// Guard gates navigation on session state.
type Guard struct {
	store      *session.Store
	loginRoute string
	logger     *slog.Logger
}

// New constructs a Guard redirecting unauthenticated navigation to the
// route named loginRoute.
func New(store *session.Store, loginRoute string, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{
		store:      store,
		loginRoute: loginRoute,
		logger:     logger,
	}
}

// Check evaluates target. Public routes pass without touching storage.
// Otherwise the session is lazily hydrated from storage on first use, and
// navigation is either allowed or redirected to the login route with the
// full original path (including query) preserved.
func (g *Guard) Check(ctx context.Context, target Route) Decision {
	if target.isPublic() {
		return Decision{Allow: true}
	}

	state := g.store.Snapshot()
	if !state.IsAuthenticated && !state.Loading {
		if err := g.store.InitializeAuth(ctx); err != nil {
			g.logger.WarnContext(ctx, "session hydration failed", "error", err)
		}
		state = g.store.Snapshot()
	}

	if !state.IsAuthenticated {
		query := url.Values{RedirectQueryParam: {target.FullPath()}}
		return Decision{
			Redirect: &Route{
				Name:     g.loginRoute,
				RawQuery: query.Encode(),
			},
		}
	}

	return Decision{Allow: true}
}

// Apply runs Check and drives nav with the outcome: the target itself when
// allowed, the login redirect otherwise. It reports whether navigation to
// the target was allowed.
func (g *Guard) Apply(ctx context.Context, target Route, nav Navigator) bool {
	decision := g.Check(ctx, target)
	if decision.Allow {
		nav.NavigateTo(target)
		return true
	}
	nav.NavigateTo(*decision.Redirect)
	return false
}
