package host

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// RunFileWatch runs path once, then re-runs it on every write to (or
// creation of) path itself — the watch is placed on path's directory,
// but events for other files in it are ignored — resetting the two error flags each time exactly as the
// REPL does between lines (§4.5). It blocks until the watcher errors or
// the caller's process is killed; a watch session has no single exit
// code of its own, since it never terminates on its own account — each
// run's outcome is logged instead.
func (h *Host) RunFileWatch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	runOnce := func() {
		code := h.RunFile(abs)
		h.Log.Infof("run finished: exit=%d", code)
	}
	runOnce()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			runOnce()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)
		}
	}
}
