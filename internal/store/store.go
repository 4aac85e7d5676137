// Package store keeps downloaded hour files on disk using the datafeed layout.
package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"duka-data/internal/provider/dukascopy"
)

// Store is a directory of raw .bi5 files laid out as {root}/{ASSET}/{YYYY}/{MM}/{DD}/{HH}h_ticks.bi5
// with zero-based months.
type Store struct {
	Root string
}

// New returns a Store rooted at dir.
func New(dir string) *Store {
	return &Store{Root: dir}
}

// Path is the file path of one asset-hour.
func (s *Store) Path(asset string, hour time.Time) string {
	return filepath.Join(s.Root, filepath.FromSlash(dukascopy.HourPath(asset, hour)))
}

// Exists reports whether the hour file is already on disk, including empty files.
func (s *Store) Exists(asset string, hour time.Time) bool {
	_, err := os.Stat(s.Path(asset, hour))
	return err == nil
}

// Write stores raw bytes for an hour, creating parent directories.
// The file is written under a temporary name and renamed into place.
func (s *Store) Write(asset string, hour time.Time, raw []byte) error {
	p := s.Path(asset, hour)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return fmt.Errorf("create folder %s: %w", filepath.Dir(p), err)
	}
	tmp := p + ".part"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", p, err)
	}
	return nil
}

// Fetch reads an hour from disk. A missing file is reported as unavailable.
func (s *Store) Fetch(ctx context.Context, asset string, hour time.Time) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	raw, err := os.ReadFile(s.Path(asset, hour))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", s.Path(asset, hour), err)
	}
	return raw, true, nil
}
