package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	domainnote "github.com/notesapp/noteskit/internal/domain/note"
	"github.com/notesapp/noteskit/internal/ports"
)

const notesEndpoint = "/notes"

var _ ports.NoteRepository = (*NoteRepository)(nil)

// NoteRepository is the HTTP-backed implementation of ports.NoteRepository.
// It is built over the auth-decorated client, so expired access tokens are
// refreshed transparently mid-operation.
type NoteRepository struct {
	client ports.Requester
}

// NewNoteRepository constructs a NoteRepository over client.
func NewNoteRepository(client ports.Requester) *NoteRepository {
	return &NoteRepository{client: client}
}

func (r *NoteRepository) List(ctx context.Context) ([]domainnote.Note, error) {
	data, err := r.client.Get(ctx, notesEndpoint)
	if err != nil {
		return nil, err
	}
	return decodeNotes(data)
}

func (r *NoteRepository) Get(ctx context.Context, id string) (domainnote.Note, error) {
	data, err := r.client.Get(ctx, notesEndpoint+"/"+url.PathEscape(id))
	if err != nil {
		return domainnote.Note{}, err
	}
	return decodeNote(data)
}

func (r *NoteRepository) Create(ctx context.Context, n domainnote.Note) (domainnote.Note, error) {
	data, err := r.client.Post(ctx, notesEndpoint, n)
	if err != nil {
		return domainnote.Note{}, err
	}
	return decodeNote(data)
}

func (r *NoteRepository) Update(ctx context.Context, n domainnote.Note) (domainnote.Note, error) {
	data, err := r.client.Put(ctx, notesEndpoint+"/"+url.PathEscape(n.ID), n)
	if err != nil {
		return domainnote.Note{}, err
	}
	return decodeNote(data)
}

func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Delete(ctx, notesEndpoint+"/"+url.PathEscape(id))
	return err
}

func (r *NoteRepository) Search(ctx context.Context, query string) ([]domainnote.Note, error) {
	endpoint := notesEndpoint + "/search?q=" + url.QueryEscape(query)
	data, err := r.client.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return decodeNotes(data)
}

func decodeNote(data json.RawMessage) (domainnote.Note, error) {
	var n domainnote.Note
	if err := json.Unmarshal(data, &n); err != nil {
		return domainnote.Note{}, fmt.Errorf("decode note: %w", err)
	}
	return n, nil
}

func decodeNotes(data json.RawMessage) ([]domainnote.Note, error) {
	var notes []domainnote.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	return notes, nil
}
