package notes

// Package notes contains an in-memory NoteRepository used in mock mode and
// in tests.

import (
	"context"
	"sort"
	"sync"
	"time"

	domainnote "github.com/notesapp/noteskit/internal/domain/note"
	apperrors "github.com/notesapp/noteskit/internal/errors"
	"github.com/notesapp/noteskit/internal/ports"
)

var _ ports.NoteRepository = (*MemoryNoteRepository)(nil)

// MemoryNoteRepository stores notes in a map guarded by a mutex.
type MemoryNoteRepository struct {
	mu    sync.RWMutex
	notes map[string]domainnote.Note
}

// NewMemoryNoteRepository creates an empty repository.
func NewMemoryNoteRepository() *MemoryNoteRepository {
	return &MemoryNoteRepository{notes: make(map[string]domainnote.Note)}
}

// NewSeededNoteRepository creates a repository preloaded with a couple of
// fixture notes for mock mode.
func NewSeededNoteRepository() *MemoryNoteRepository {
	repo := NewMemoryNoteRepository()
	seedTime := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	repo.notes["mock-note-1"] = domainnote.Note{
		ID:              "mock-note-1",
		Title:           "Welcome",
		Content:         "This is your first note.",
		Category:        "general",
		Tags:            []string{"welcome"},
		LastModifiedUTC: seedTime,
	}
	repo.notes["mock-note-2"] = domainnote.Note{
		ID:              "mock-note-2",
		Title:           "Getting things done",
		Content:         "Capture, clarify, organize.",
		Category:        "productivity",
		Tags:            []string{"gtd", "work"},
		LastModifiedUTC: seedTime.Add(time.Hour),
	}
	return repo
}

func (r *MemoryNoteRepository) List(_ context.Context) ([]domainnote.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(), nil
}

func (r *MemoryNoteRepository) Get(_ context.Context, id string) (domainnote.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.notes[id]
	if !ok {
		return domainnote.Note{}, apperrors.NotFoundf("note %q not found", id)
	}
	return n, nil
}

func (r *MemoryNoteRepository) Create(_ context.Context, n domainnote.Note) (domainnote.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.notes[n.ID]; exists {
		return domainnote.Note{}, apperrors.Conflictf("note %q already exists", n.ID)
	}
	r.notes[n.ID] = n
	return n, nil
}

func (r *MemoryNoteRepository) Update(_ context.Context, n domainnote.Note) (domainnote.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.notes[n.ID]; !exists {
		return domainnote.Note{}, apperrors.NotFoundf("note %q not found", n.ID)
	}
	n.LastModifiedUTC = time.Now().UTC()
	r.notes[n.ID] = n
	return n, nil
}

func (r *MemoryNoteRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.notes[id]; !exists {
		return apperrors.NotFoundf("note %q not found", id)
	}
	delete(r.notes, id)
	return nil
}

func (r *MemoryNoteRepository) Search(_ context.Context, query string) ([]domainnote.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []domainnote.Note
	for _, n := range r.sorted() {
		if n.Matches(query) {
			matched = append(matched, n)
		}
	}
	return matched, nil
}

// sorted returns notes ordered by most recently modified first.
// Callers must hold at least a read lock.
func (r *MemoryNoteRepository) sorted() []domainnote.Note {
	out := make([]domainnote.Note, 0, len(r.notes))
	for _, n := range r.notes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastModifiedUTC.Equal(out[j].LastModifiedUTC) {
			return out[i].ID < out[j].ID
		}
		return out[i].LastModifiedUTC.After(out[j].LastModifiedUTC)
	})
	return out
}
