package crawl

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// ProgressUpdate is sent when an hour file has been stored
type ProgressUpdate struct {
	Asset string
	Hour  time.Time
}

// ProgressPath returns path to .progress.json inside dir
func ProgressPath(dir string) string {
	return filepath.Join(dir, ".progress.json")
}

// LoadProgress returns the latest stored hour per asset, formatted YYYY-MM-DDTHH.
// A missing or unreadable file yields an empty map.
func LoadProgress(path string) map[string]string {
	data, err := os.ReadFile(path)
	if err != nil {
		return make(map[string]string)
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return make(map[string]string)
	}
	return m
}

// RunProgressWriter receives updates and persists to file (run as goroutine).
// Only the latest hour per asset is kept; updates arrive out of order from workers.
func RunProgressWriter(path string, updates <-chan ProgressUpdate) {
	m := LoadProgress(path)
	for u := range updates {
		h := u.Hour.UTC().Format(hourLayout)
		if cur, ok := m[u.Asset]; ok && cur >= h {
			continue
		}
		m[u.Asset] = h
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			slog.Warn("progress marshal error", "error", err)
			continue
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			slog.Warn("progress write error", "error", err)
		}
	}
}
