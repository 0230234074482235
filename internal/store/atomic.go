package store

import (
	"errors"
	"fmt"
	"os"
)

// ErrRestoreFailed reports that a table write failed and the backup could
// not be moved back into place. This is the one genuinely fatal condition
// in the store: the primary file may be missing and the caller must
// surface it loudly.
var ErrRestoreFailed = errors.New("store: backup restore failed")

// renameFile is swapped out by tests to simulate a crash between the
// temp write and the final rename.
var renameFile = os.Rename

// atomicWrite persists data at path through a temp/backup/rename sequence:
//
//	primary -> temp written -> backup made -> temp renamed into place
//
// If anything after the temp write fails, the backup is restored into the
// primary path before the error propagates.
func atomicWrite(path string, data []byte) error {
	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	hadPrimary := false
	if _, err := os.Stat(path); err == nil {
		hadPrimary = true
		if err := renameFile(path, bak); err != nil {
			os.Remove(tmp)
			return fmt.Errorf("make backup: %w", err)
		}
	}

	if err := renameFile(tmp, path); err != nil {
		os.Remove(tmp)
		if hadPrimary {
			if rerr := os.Rename(bak, path); rerr != nil {
				return fmt.Errorf("%w: after %v: %v", ErrRestoreFailed, err, rerr)
			}
		}
		return fmt.Errorf("replace table file: %w", err)
	}
	return nil
}
