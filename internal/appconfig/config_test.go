package appconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing.toml")
	loader := NewLoader(path)
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Tmux.Binary != "" {
		t.Fatalf("Tmux.Binary=%q want empty", cfg.Tmux.Binary)
	}
	if cfg.Presets.ProjectFile != defaultProjectFile {
		t.Fatalf("Presets.ProjectFile=%q want %q", cfg.Presets.ProjectFile, defaultProjectFile)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := []byte(`
[tmux]
binary = "/opt/tmux/bin/tmux"

[presets]
path = "~/presets/work.kdl"
project_file = ".layouts.kdl"

[logging]
level = "debug"
sink = "file"
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	loader := NewLoader(path)
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Tmux.Binary != "/opt/tmux/bin/tmux" {
		t.Fatalf("Tmux.Binary=%q", cfg.Tmux.Binary)
	}
	if cfg.Presets.Path != "~/presets/work.kdl" {
		t.Fatalf("Presets.Path=%q", cfg.Presets.Path)
	}
	if cfg.Presets.ProjectFile != ".layouts.kdl" {
		t.Fatalf("Presets.ProjectFile=%q", cfg.Presets.ProjectFile)
	}
	if cfg.Logging.Level == nil || *cfg.Logging.Level != "debug" {
		t.Fatalf("Logging.Level=%v want debug", cfg.Logging.Level)
	}
	if cfg.Logging.Sink == nil || *cfg.Logging.Sink != "file" {
		t.Fatalf("Logging.Sink=%v want file", cfg.Logging.Sink)
	}
}

func TestLoadCachesUntilFileChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[tmux]\nbinary = \"first\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	loader := NewLoader(path)
	if cfg, _ := loader.Load(); cfg.Tmux.Binary != "first" {
		t.Fatalf("Tmux.Binary=%q", cfg.Tmux.Binary)
	}

	// A rewrite with different size invalidates the cache.
	if err := os.WriteFile(path, []byte("[tmux]\nbinary = \"second!\"\n"), 0o600); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	if cfg, _ := loader.Load(); cfg.Tmux.Binary != "second!" {
		t.Fatalf("Tmux.Binary=%q want second!", cfg.Tmux.Binary)
	}
}
