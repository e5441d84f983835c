package types

import "strings"

// DateOnly trims a backend timestamp down to its calendar date. The backend
// returns some date fields as full RFC 3339 timestamps and others as bare
// YYYY-MM-DD strings; the UI always shows the date part.
func DateOnly(value string) string {
	value = strings.TrimSpace(value)
	if idx := strings.IndexByte(value, 'T'); idx >= 0 {
		return value[:idx]
	}
	return value
}
