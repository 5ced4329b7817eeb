package journal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrLocked means another program holds the table file. The caller may
	// retry once the other program lets go; nothing was written.
	ErrLocked = errors.New("table file is open in another program")

	// ErrSchemaMismatch means an existing table file has a different header.
	ErrSchemaMismatch = errors.New("table header does not match schema")
)

// LockFiles lists the owner files spreadsheet programs create next to a
// document they have open: Excel's "~$name" and LibreOffice's
// ".~lock.name#".
func LockFiles(path string) []string {
	dir, base := filepath.Split(path)
	out := []string{
		filepath.Join(dir, "~$"+base),
		filepath.Join(dir, ".~lock."+base+"#"),
	}
	// Word-style owner files drop the first two characters of long names.
	if len(base) > 8 {
		out = append(out, filepath.Join(dir, "~$"+base[2:]))
	}
	return out
}

// HeldBy returns the owner files of path that currently exist.
func HeldBy(path string) []string {
	var held []string
	for _, lf := range LockFiles(path) {
		if _, err := os.Stat(lf); err == nil {
			held = append(held, lf)
		}
	}
	return held
}

// checkHeld returns ErrLocked when an owner file is present.
func checkHeld(path string) error {
	if held := HeldBy(path); len(held) > 0 {
		return fmt.Errorf("%s (%s): %w", path, filepath.Base(held[0]), ErrLocked)
	}
	return nil
}

// classify wraps an I/O error, tagging sharing violations with ErrLocked.
func classify(op, path string, err error) error {
	if isLockError(err) {
		return fmt.Errorf("%s %s: %w: %w", op, path, ErrLocked, err)
	}
	return fmt.Errorf("%s %s: %w", op, path, err)
}
