// Package appconfig reads muffin's TOML configuration file.
package appconfig

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/zSuperx/muffin/internal/appdirs"
	"github.com/zSuperx/muffin/internal/logging"
)

const EnvConfigPath = "MUFFIN_CONFIG"

// Config represents config.toml in the muffin config directory.
type Config struct {
	Tmux    TmuxConfig     `toml:"tmux"`
	Presets PresetsConfig  `toml:"presets"`
	Logging logging.Config `toml:"logging"`
}

// TmuxConfig selects the multiplexer binary.
type TmuxConfig struct {
	// Binary overrides PATH lookup of tmux.
	Binary string `toml:"binary"`
}

// PresetsConfig points at the preset definition files.
type PresetsConfig struct {
	// Path overrides the global presets.kdl location.
	Path string `toml:"path"`
	// ProjectFile is the per-directory preset file name looked up in the
	// working directory.
	ProjectFile string `toml:"project_file"`
}

const defaultProjectFile = ".muffin.kdl"

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Presets: PresetsConfig{ProjectFile: defaultProjectFile},
	}
}

// DefaultPath returns the global config path, honoring MUFFIN_CONFIG.
func DefaultPath() (string, error) {
	if env := strings.TrimSpace(os.Getenv(EnvConfigPath)); env != "" {
		return env, nil
	}
	dir, err := appdirs.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Loader caches config values and reloads when the file changes.
type Loader struct {
	path     string
	lastRead fileState
	cached   Config
}

type fileState struct {
	modTime time.Time
	size    int64
}

// NewLoader creates a config loader for the provided path.
func NewLoader(path string) *Loader {
	return &Loader{
		path:   strings.TrimSpace(path),
		cached: Defaults(),
	}
}

// Load returns the cached config, reloading if the file changed. A missing
// file is not an error; the defaults apply.
func (l *Loader) Load() (Config, error) {
	if l == nil {
		return Defaults(), errors.New("nil loader")
	}
	path := strings.TrimSpace(l.path)
	if path == "" {
		return Defaults(), errors.New("empty config path")
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.cached = Defaults()
			l.lastRead = fileState{}
			return l.cached, nil
		}
		return Defaults(), err
	}
	state := fileState{modTime: info.ModTime(), size: info.Size()}
	if state == l.lastRead {
		return l.cached, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults(), err
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Defaults(), err
	}
	applyDefaults(&cfg)
	l.cached = cfg
	l.lastRead = state
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if strings.TrimSpace(cfg.Presets.ProjectFile) == "" {
		cfg.Presets.ProjectFile = defaultProjectFile
	}
}
