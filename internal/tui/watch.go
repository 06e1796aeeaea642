package tui

import (
	"log/slog"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// presetWatcher reports edits to the preset files so the picker refreshes
// without restarting. The parent directories are watched because editors
// commonly replace the file instead of writing in place.
type presetWatcher struct {
	watcher *fsnotify.Watcher
	paths   map[string]struct{}
}

func newPresetWatcher(paths ...string) (*presetWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	pw := &presetWatcher{watcher: w, paths: make(map[string]struct{})}
	dirs := make(map[string]struct{})
	for _, path := range paths {
		if path == "" {
			continue
		}
		pw.paths[filepath.Clean(path)] = struct{}{}
		dirs[filepath.Dir(path)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			// A missing directory just means that source has no file yet.
			slog.Debug("preset watch skipped", "dir", dir, "error", err)
		}
	}
	return pw, nil
}

// wait blocks until a watched preset file changes, then yields the reload
// message. Update re-arms it after each delivery.
func (pw *presetWatcher) wait() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-pw.watcher.Events:
				if !ok {
					return nil
				}
				if _, watched := pw.paths[filepath.Clean(event.Name)]; !watched {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
					return presetFileChangedMsg{}
				}
			case err, ok := <-pw.watcher.Errors:
				if !ok {
					return nil
				}
				slog.Debug("preset watch error", "error", err)
			}
		}
	}
}

func (pw *presetWatcher) Close() error {
	return pw.watcher.Close()
}
