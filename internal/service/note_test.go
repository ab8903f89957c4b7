package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainnote "github.com/notesapp/noteskit/internal/domain/note"
	apperrors "github.com/notesapp/noteskit/internal/errors"
	mocknotes "github.com/notesapp/noteskit/internal/mocks/notes"
)

func TestNoteService_Create(t *testing.T) {
	svc := NewNoteService(mocknotes.NewMemoryNoteRepository())

	created, err := svc.Create(context.Background(), "Title", "Content", "cat", []string{"t"})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Title", created.Title)
}

func TestNoteService_Create_InvalidFields(t *testing.T) {
	svc := NewNoteService(mocknotes.NewMemoryNoteRepository())

	_, err := svc.Create(context.Background(), "", "content", "", nil)

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestNoteService_Get_RequiresID(t *testing.T) {
	svc := NewNoteService(mocknotes.NewMemoryNoteRepository())

	_, err := svc.Get(context.Background(), "  ")

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestNoteService_Update_Validates(t *testing.T) {
	svc := NewNoteService(mocknotes.NewMemoryNoteRepository())

	_, err := svc.Update(context.Background(), domainnote.Note{ID: "n1", Title: "", Content: "c"})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestNoteService_Delete_RequiresID(t *testing.T) {
	svc := NewNoteService(mocknotes.NewMemoryNoteRepository())

	err := svc.Delete(context.Background(), "")

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestNoteService_Search_EmptyQueryLists(t *testing.T) {
	svc := NewNoteService(mocknotes.NewSeededNoteRepository())

	all, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	matched, err := svc.Search(context.Background(), "welcome")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "mock-note-1", matched[0].ID)
}
