// Package store implements the flat-file record store behind studylog.
// Each table is one JSON Lines file in the data directory, rewritten
// whole on every mutation. The dataset is personal-sized (thousands of
// records), so linear scans and whole-table writes are the deliberate
// tradeoff; what the package does guarantee is that a crash mid-write
// never leaves a table half-written.
package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// New prepares a data directory for table files, creating it if needed.
func New(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return dir, nil
}

// DefaultDataDir returns the per-OS config location for studylog data,
// e.g. ~/.config/studylog/data on Linux.
func DefaultDataDir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "studylog", "data"), nil
}
