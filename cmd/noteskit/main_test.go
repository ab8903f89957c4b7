package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRoute_KnownRoutes(t *testing.T) {
	r := resolveRoute("/login")
	assert.Equal(t, "login", r.Name)
	assert.True(t, r.Meta.Public)

	r = resolveRoute("/notes")
	assert.Equal(t, "notes", r.Name)
	assert.False(t, r.Meta.Public)

	r = resolveRoute("/notes/abc-123")
	assert.Equal(t, "note-detail", r.Name)
	assert.Equal(t, "/notes/abc-123", r.Path)
}

func TestResolveRoute_QueryPreserved(t *testing.T) {
	r := resolveRoute("/notes?filter=active")
	require.Equal(t, "notes", r.Name)
	assert.Equal(t, "filter=active", r.RawQuery)
	assert.Equal(t, "/notes?filter=active", r.FullPath())
}

func TestResolveRoute_UnknownPathIsProtected(t *testing.T) {
	r := resolveRoute("/admin/secrets")
	assert.False(t, r.Meta.Public)
	assert.Equal(t, "/admin/secrets", r.Path)
}

func TestResolveRoute_AddsLeadingSlash(t *testing.T) {
	r := resolveRoute("notes")
	assert.Equal(t, "/notes", r.Path)
}

func TestRouteMatches(t *testing.T) {
	assert.True(t, routeMatches("/notes/:id", "/notes/42"))
	assert.False(t, routeMatches("/notes/:id", "/notes"))
	assert.False(t, routeMatches("/notes", "/settings"))
}
