// Shared row codec helpers for the table accessors.
package sqlite

import (
	"encoding/json"
	"fmt"
	"time"
)

// formatTime renders a timestamp as UTC RFC3339 for storage. RFC3339 strings
// compare lexicographically in date order, which the upcoming-only filter
// and the event ordering rely on. The zero time stores as an empty string.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// parseTime is the inverse of formatTime.
func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// marshalStringList encodes a string slice as a JSON array column value.
// A nil slice encodes as an empty array.
func marshalStringList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("marshaling string list: %w", err)
	}
	return string(data), nil
}

// unmarshalStringList decodes a JSON array column value.
func unmarshalStringList(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("parsing string list: %w", err)
	}
	return values, nil
}
