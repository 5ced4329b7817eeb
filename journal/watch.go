package journal

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WaitUnlocked blocks until no owner file of path exists, or ctx ends.
// It only waits; it never touches the table.
func WaitUnlocked(ctx context.Context, path string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	// Checked after Add so a release between the two is not missed.
	if len(HeldBy(path)) == 0 {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return errors.New("lock watcher closed")
			}
			if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 && len(HeldBy(path)) == 0 {
				return nil
			}

		case err, ok := <-w.Errors:
			if !ok {
				return errors.New("lock watcher closed")
			}
			return err
		}
	}
}
