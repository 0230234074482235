package store

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// versionFile holds the single persisted schema version for the data dir.
const versionFile = "version"

// Migration is a one-shot transform applied to the data directory when the
// persisted schema version is below Version. Transforms re-run after a
// mid-transform crash (the version is bumped only once the writes succeed),
// so they must be written to be safely re-appliable.
type Migration struct {
	Version int
	Name    string
	Apply   func() error
}

// ReadVersion returns the persisted schema version, or 0 when none has
// been written yet.
func ReadVersion(dir string) int {
	data, err := os.ReadFile(filepath.Join(dir, versionFile))
	if err != nil {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// WriteVersion persists the schema version crash-safely.
func WriteVersion(dir string, v int) error {
	path := filepath.Join(dir, versionFile)
	if err := atomicWrite(path, []byte(strconv.Itoa(v)+"\n")); err != nil {
		return fmt.Errorf("write schema version: %w", err)
	}
	return nil
}

// Migrate applies every pending migration in ascending version order,
// persisting the new version after each successful transform. A failing
// transform aborts the runner and leaves the version untouched; the error
// is logged and returned, but the caller is expected to keep going with
// whatever state exists.
func Migrate(dir string, migrations []Migration) error {
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	current := ReadVersion(dir)
	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := m.Apply(); err != nil {
			log.Printf("migration %d (%s) failed, schema stays at %d: %v",
				m.Version, m.Name, current, err)
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}
		if err := WriteVersion(dir, m.Version); err != nil {
			log.Printf("migration %d (%s) applied but version write failed: %v",
				m.Version, m.Name, err)
			return err
		}
		current = m.Version
	}
	return nil
}
