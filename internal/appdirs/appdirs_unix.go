//go:build !windows

// Package appdirs resolves the directories muffin keeps its configuration
// and runtime state in.
package appdirs

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigDir returns the directory holding config.toml and presets.kdl,
// creating it if needed.
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return ensureDir(filepath.Join(dir, "muffin"), 0o755)
}

// StateDir returns the directory used for mutable state such as log files.
func StateDir() (string, error) {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return ensureDir(filepath.Join(xdg, "muffin"), 0o700)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return ensureDir(filepath.Join(home, ".local", "state", "muffin"), 0o700)
}

func ensureDir(dir string, perm os.FileMode) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("stat dir: %w", err)
		}
		if err := os.MkdirAll(dir, perm); err != nil {
			return "", fmt.Errorf("create dir: %w", err)
		}
		return dir, nil
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%q is not a directory", dir)
	}
	return dir, nil
}
