package ports

import (
	"context"

	domainnote "github.com/notesapp/noteskit/internal/domain/note"
)

// NoteRepository provides CRUD and search over notes.
type NoteRepository interface {
	List(ctx context.Context) ([]domainnote.Note, error)
	Get(ctx context.Context, id string) (domainnote.Note, error)
	Create(ctx context.Context, n domainnote.Note) (domainnote.Note, error)
	Update(ctx context.Context, n domainnote.Note) (domainnote.Note, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]domainnote.Note, error)
}
