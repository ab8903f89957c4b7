package note

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/notesapp/noteskit/internal/errors"
)

func TestNew_PopulatesIDAndTimestamp(t *testing.T) {
	n := New("Groceries", "milk, eggs", "home", []string{"shopping"})

	assert.NotEmpty(t, n.ID)
	assert.False(t, n.LastModifiedUTC.IsZero())
	assert.Equal(t, "Groceries", n.Title)
	require.NoError(t, n.Validate())
}

func TestNote_Validate(t *testing.T) {
	valid := New("t", "c", "", nil)

	tests := []struct {
		name   string
		mutate func(*Note)
		field  string
	}{
		{"missing id", func(n *Note) { n.ID = "" }, "id"},
		{"blank title", func(n *Note) { n.Title = "   " }, "title"},
		{"missing content", func(n *Note) { n.Content = "" }, "content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := valid
			tt.mutate(&n)

			err := n.Validate()

			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, tt.field, apperrors.GetField(err))
		})
	}
}

func TestNote_Matches(t *testing.T) {
	n := Note{
		ID:      "n1",
		Title:   "Meeting Notes",
		Content: "Discuss Q3 roadmap",
		Tags:    []string{"work", "planning"},
	}

	assert.True(t, n.Matches("meeting"))
	assert.True(t, n.Matches("ROADMAP"))
	assert.True(t, n.Matches("plan"))
	assert.True(t, n.Matches(""))
	assert.False(t, n.Matches("grocery"))
}
