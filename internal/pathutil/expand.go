// Package pathutil handles ~-prefixed paths used throughout preset files
// and configuration.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandUser expands a leading ~ to the current user's home directory.
// Paths that do not start with ~, and lookups where the home directory is
// unknown, come back unchanged.
func ExpandUser(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// ShortenUser replaces the current user's home directory prefix with ~ for
// display.
func ShortenUser(path string) string {
	if path == "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || !strings.HasPrefix(path, home) {
		return path
	}
	return "~" + strings.TrimPrefix(path, home)
}
