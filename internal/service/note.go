package service

import (
	"context"
	"strings"

	domainnote "github.com/notesapp/noteskit/internal/domain/note"
	apperrors "github.com/notesapp/noteskit/internal/errors"
	"github.com/notesapp/noteskit/internal/ports"
)

// NoteService validates note operations before delegating to the repository.
type NoteService struct {
	repo ports.NoteRepository
}

// NewNoteService constructs a NoteService over repo.
func NewNoteService(repo ports.NoteRepository) *NoteService {
	return &NoteService{repo: repo}
}

func (s *NoteService) List(ctx context.Context) ([]domainnote.Note, error) {
	return s.repo.List(ctx)
}

func (s *NoteService) Get(ctx context.Context, id string) (domainnote.Note, error) {
	if strings.TrimSpace(id) == "" {
		return domainnote.Note{}, apperrors.ValidationField("id", "id is required")
	}
	return s.repo.Get(ctx, id)
}

// Create builds a new note from the given fields and persists it.
func (s *NoteService) Create(
	ctx context.Context,
	title, content, category string,
	tags []string,
) (domainnote.Note, error) {
	n := domainnote.New(title, content, category, tags)
	if err := n.Validate(); err != nil {
		return domainnote.Note{}, err
	}
	return s.repo.Create(ctx, n)
}

func (s *NoteService) Update(ctx context.Context, n domainnote.Note) (domainnote.Note, error) {
	if err := n.Validate(); err != nil {
		return domainnote.Note{}, err
	}
	return s.repo.Update(ctx, n)
}

func (s *NoteService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.ValidationField("id", "id is required")
	}
	return s.repo.Delete(ctx, id)
}

// Search returns notes matching query. An empty query lists everything.
func (s *NoteService) Search(ctx context.Context, query string) ([]domainnote.Note, error) {
	if strings.TrimSpace(query) == "" {
		return s.repo.List(ctx)
	}
	return s.repo.Search(ctx, query)
}
