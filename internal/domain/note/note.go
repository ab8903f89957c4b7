package note

// Package note contains the Note domain entity.

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/notesapp/noteskit/internal/errors"
)

// Note is a single user note as stored by the notes service.
type Note struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Category        string    `json:"category,omitempty"`
	Tags            []string  `json:"tags"`
	LastModifiedUTC time.Time `json:"last_modified_utc"`
}

// New constructs a Note with a generated ID and current modification time.
func New(title, content, category string, tags []string) Note {
	return Note{
		ID:              uuid.New().String(),
		Title:           title,
		Content:         content,
		Category:        category,
		Tags:            tags,
		LastModifiedUTC: time.Now().UTC(),
	}
}

// Validate checks invariants that must hold for any persisted note.
func (n Note) Validate() error {
	if strings.TrimSpace(n.ID) == "" {
		return apperrors.ValidationField("id", "id is required")
	}
	if strings.TrimSpace(n.Title) == "" {
		return apperrors.ValidationField("title", "title is required")
	}
	if strings.TrimSpace(n.Content) == "" {
		return apperrors.ValidationField("content", "content is required")
	}
	return nil
}

// Matches reports whether the note matches a case-insensitive search query
// against title, content, category, or any tag.
func (n Note) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(n.Title), q) ||
		strings.Contains(strings.ToLower(n.Content), q) ||
		strings.Contains(strings.ToLower(n.Category), q) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
