//go:build windows

package appdirs

import (
	"fmt"
	"os"
	"path/filepath"
)

func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return ensureDir(filepath.Join(dir, "muffin"), 0o755)
}

func StateDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	return ensureDir(filepath.Join(dir, "muffin", "state"), 0o700)
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
