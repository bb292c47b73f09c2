// Column encoding helpers: timestamps are stored as fixed-width UTC strings
// so index order matches chronological order, and materialized paths are
// stored as JSON string arrays.
package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// timeLayout is fixed-width (nanoseconds always printed) so the stored text
// sorts lexicographically in chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func encodeTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func decodeTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

func encodePath(path []string) (string, error) {
	if path == nil {
		path = []string{}
	}
	data, err := json.Marshal(path)
	if err != nil {
		return "", fmt.Errorf("encoding path: %w", err)
	}
	return string(data), nil
}

func decodePath(s string) ([]string, error) {
	if s == "" {
		return []string{}, nil
	}
	var path []string
	if err := json.Unmarshal([]byte(s), &path); err != nil {
		return nil, fmt.Errorf("decoding path %q: %w", s, err)
	}
	if path == nil {
		path = []string{}
	}
	return path, nil
}
