package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatModified(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "—", FormatModified(time.Time{}, now))
	assert.Equal(t, "just now", FormatModified(now.Add(-30*time.Second), now))
	assert.Equal(t, "5m ago", FormatModified(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3h ago", FormatModified(now.Add(-3*time.Hour), now))
	assert.Equal(t, "2d ago", FormatModified(now.Add(-48*time.Hour), now))
	assert.Equal(t, "2026-01-01", FormatModified(time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC), now))
}

func TestFormatModified_FutureTimeShowsTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)

	assert.Equal(t, "2026-03-15 13:00", FormatModified(future, now))
}
