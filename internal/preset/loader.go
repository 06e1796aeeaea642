package preset

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zSuperx/muffin/internal/pathutil"
)

//go:embed defaults/*.kdl
var embeddedPresets embed.FS

const (
	presetsFileName = "presets.kdl"
	projectFileName = ".muffin.kdl"

	// EnvPresetsPath overrides where the global presets file is looked up.
	EnvPresetsPath = "MUFFIN_PRESETS"

	SourceBuiltin = "builtin"
	SourceGlobal  = "global"
	SourceProject = "project"
)

// Loader merges presets from the builtin defaults, the user's global presets
// file, and a project-local file. Later sources win on name collisions,
// matching the parser's last-wins rule within a single document.
type Loader struct {
	globalPath  string
	projectDir  string
	projectFile string

	sources map[string]string
}

// NewLoader creates a loader using the default global path and the current
// directory as the project directory.
func NewLoader() (*Loader, error) {
	globalPath, err := DefaultPresetsPath()
	if err != nil {
		return nil, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determine working directory: %w", err)
	}
	return NewLoaderWithPaths(globalPath, cwd), nil
}

// NewLoaderWithPaths creates a loader with explicit paths. Either may be
// empty to skip that source.
func NewLoaderWithPaths(globalPath, projectDir string) *Loader {
	return &Loader{
		globalPath:  globalPath,
		projectDir:  projectDir,
		projectFile: projectFileName,
		sources:     make(map[string]string),
	}
}

// SetProjectFile overrides the per-directory preset file name.
func (l *Loader) SetProjectFile(name string) {
	if name = strings.TrimSpace(name); name != "" {
		l.projectFile = name
	}
}

// DefaultPresetsPath resolves the global presets file: $MUFFIN_PRESETS if
// set, otherwise <user config dir>/muffin/presets.kdl.
func DefaultPresetsPath() (string, error) {
	if env := strings.TrimSpace(os.Getenv(EnvPresetsPath)); env != "" {
		return pathutil.ExpandUser(env), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "muffin", presetsFileName), nil
}

// GlobalPath returns the resolved global presets file path.
func (l *Loader) GlobalPath() string { return l.globalPath }

// ProjectPath returns the project-local presets file path, or "" when the
// loader has no project directory.
func (l *Loader) ProjectPath() string {
	if l.projectDir == "" {
		return ""
	}
	return filepath.Join(l.projectDir, l.projectFile)
}

// Source reports which source a loaded preset came from.
func (l *Loader) Source(name string) string { return l.sources[name] }

// LoadAll merges all sources in precedence order. A missing global or
// project file is not an error; a file that exists but fails to parse is.
func (l *Loader) LoadAll() (Presets, error) {
	merged := make(Presets)

	builtins, err := loadBuiltins()
	if err != nil {
		return nil, err
	}
	l.merge(merged, builtins, SourceBuiltin)

	if l.globalPath != "" {
		global, err := parseFileIfExists(l.globalPath)
		if err != nil {
			return nil, err
		}
		l.merge(merged, global, SourceGlobal)
	}

	if l.projectDir != "" {
		project, err := parseFileIfExists(filepath.Join(l.projectDir, l.projectFile))
		if err != nil {
			return nil, err
		}
		l.merge(merged, project, SourceProject)
	}

	return merged, nil
}

func (l *Loader) merge(dst, src Presets, source string) {
	for name, preset := range src {
		dst[name] = preset
		l.sources[name] = source
	}
}

// ParseFile parses a single presets file.
func ParseFile(path string) (Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets file: %w", err)
	}
	presets, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return presets, nil
}

func parseFileIfExists(path string) (Presets, error) {
	presets, err := ParseFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return presets, nil
}

func loadBuiltins() (Presets, error) {
	entries, err := embeddedPresets.ReadDir("defaults")
	if err != nil {
		return nil, fmt.Errorf("read embedded presets: %w", err)
	}
	merged := make(Presets)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".kdl") {
			continue
		}
		data, err := embeddedPresets.ReadFile("defaults/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read embedded %s: %w", entry.Name(), err)
		}
		presets, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse embedded %s: %w", entry.Name(), err)
		}
		for name, preset := range presets {
			merged[name] = preset
		}
	}
	return merged, nil
}
