package util //nolint:revive // package name util hosts shared formatting helpers used across CLI output

import (
	"fmt"
	"time"
)

// FormatModified formats a note modification time for display. Recent times
// render as a relative age, older ones as a date.
func FormatModified(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "—"
	}

	age := now.Sub(t)
	switch {
	case age < 0:
		return t.Format("2006-01-02 15:04")
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	case age < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}
