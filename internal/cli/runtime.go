package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/zSuperx/muffin/internal/appconfig"
	"github.com/zSuperx/muffin/internal/cli/output"
	"github.com/zSuperx/muffin/internal/pathutil"
	"github.com/zSuperx/muffin/internal/preset"
	"github.com/zSuperx/muffin/internal/tmuxctl"
)

func (d Dependencies) config() appconfig.Config {
	if d.Config == nil {
		return appconfig.Defaults()
	}
	cfg, err := d.Config.Load()
	if err != nil {
		fmt.Fprintf(d.Stderr, "muffin: config: %v (using defaults)\n", err)
		return appconfig.Defaults()
	}
	return cfg
}

func (d Dependencies) Client() (*tmuxctl.Client, error) {
	return d.NewClient(d.config().Tmux.Binary)
}

// presetLoader builds the three-source loader: builtin defaults, the global
// presets file, and the project file in the working directory.
func (d Dependencies) PresetLoader() (*preset.Loader, error) {
	cfg := d.config()

	globalPath := cfg.Presets.Path
	if globalPath == "" {
		var err error
		globalPath, err = preset.DefaultPresetsPath()
		if err != nil {
			return nil, err
		}
	}
	globalPath = pathutil.ExpandUser(globalPath)

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determine working directory: %w", err)
	}
	loader := preset.NewLoaderWithPaths(globalPath, cwd)
	loader.SetProjectFile(cfg.Presets.ProjectFile)
	return loader, nil
}

func (d Dependencies) LoadPresets() (preset.Presets, *preset.Loader, error) {
	loader, err := d.PresetLoader()
	if err != nil {
		return nil, nil, err
	}
	presets, err := loader.LoadAll()
	if err != nil {
		return nil, nil, err
	}
	return presets, loader, nil
}

// emitJSON finishes a --json command: success envelope with data, or error
// envelope plus silent non-zero exit so scripts see exactly one JSON line.
func (d Dependencies) emitJSON(command string, start time.Time, data any, err error) error {
	meta := output.WithDuration(output.NewMeta(command, d.Version), start)
	if err != nil {
		_ = output.WriteError(d.Stdout, meta, "command_failed", err.Error(), nil)
		return cli.Exit("", 1)
	}
	return output.WriteSuccess(d.Stdout, meta, data)
}
