package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/notesapp/noteskit/internal/guard"
)

// routeTable mirrors the navigable surface of the notes frontend so the
// guard can be exercised from the command line.
func routeTable() []guard.Route {
	return []guard.Route{
		{Name: "login", Path: "/login", Meta: guard.RouteMeta{Public: true}},
		{Name: "about", Path: "/about", Meta: guard.RouteMeta{Public: true}},
		{Name: "notes", Path: "/notes"},
		{Name: "note-detail", Path: "/notes/:id"},
		{Name: "settings", Path: "/settings"},
	}
}

func openCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Resolve a route through the access guard",
		Long: `Resolve a route through the access guard and print the outcome.

Protected routes require a valid session; without one, the guard redirects
to the login route with the requested destination preserved in the
"redirect" query parameter.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := resolveRoute(args[0])

			decision := c.app.Guard.Check(cmd.Context(), target)
			if decision.Allow {
				cmd.Printf("allowed: %s\n", target.FullPath())
				return nil
			}
			cmd.Printf("redirect: %s?%s\n", decision.Redirect.Name, decision.Redirect.RawQuery)
			return nil
		},
	}
}

// resolveRoute matches path against the route table; unknown paths become
// protected ad hoc routes so the guard still applies.
func resolveRoute(raw string) guard.Route {
	path := raw
	rawQuery := ""
	if i := strings.Index(raw, "?"); i >= 0 {
		path = raw[:i]
		rawQuery = raw[i+1:]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	for _, r := range routeTable() {
		if routeMatches(r.Path, path) {
			r.RawQuery = rawQuery
			r.Path = path
			return r
		}
	}
	return guard.Route{Name: path, Path: path, RawQuery: rawQuery}
}

func routeMatches(pattern, path string) bool {
	pp := strings.Split(strings.Trim(pattern, "/"), "/")
	sp := strings.Split(strings.Trim(path, "/"), "/")
	if len(pp) != len(sp) {
		return false
	}
	for i := range pp {
		if strings.HasPrefix(pp[i], ":") {
			continue
		}
		if pp[i] != sp[i] {
			return false
		}
	}
	return true
}
