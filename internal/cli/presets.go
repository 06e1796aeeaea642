package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/zSuperx/muffin/internal/pathutil"
	"github.com/zSuperx/muffin/internal/preset"
)

type presetInfo struct {
	Name    string `json:"name"`
	Cwd     string `json:"cwd"`
	Windows int    `json:"windows"`
	Source  string `json:"source"`
	Running bool   `json:"running"`
}

func runList(ctx context.Context, cmd *cli.Command, deps Dependencies) error {
	start := time.Now()
	asJSON := cmd.Bool("json")

	infos, err := listPresets(ctx, deps)
	if asJSON {
		return deps.emitJSON("list", start, map[string]any{"presets": infos}, err)
	}
	if err != nil {
		return err
	}
	for _, info := range infos {
		marker := " "
		if info.Running {
			marker = "*"
		}
		fmt.Fprintf(deps.Stdout, "%s %-20s %-8s %d windows  %s\n",
			marker, info.Name, info.Source, info.Windows, info.Cwd)
	}
	return nil
}

func listPresets(ctx context.Context, deps Dependencies) ([]presetInfo, error) {
	presets, loader, err := deps.LoadPresets()
	if err != nil {
		return nil, err
	}

	// Marking running presets is best effort; no tmux is not an error here.
	if client, err := deps.Client(); err == nil {
		if names, err := client.SessionNames(ctx); err == nil {
			presets.MarkRunning(names)
		}
	}

	infos := make([]presetInfo, 0, len(presets))
	for _, name := range presets.Names() {
		p := presets[name]
		infos = append(infos, presetInfo{
			Name:    p.Name,
			Cwd:     p.Cwd,
			Windows: len(p.Windows),
			Source:  loader.Source(name),
			Running: p.Running,
		})
	}
	return infos, nil
}

func runValidate(_ context.Context, cmd *cli.Command, deps Dependencies) error {
	start := time.Now()
	asJSON := cmd.Bool("json")
	file := cmd.String("file")

	count, err := validatePresets(deps, file)
	if asJSON {
		return deps.emitJSON("validate", start, map[string]any{"presets": count}, err)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "ok: %d presets\n", count)
	return nil
}

func validatePresets(deps Dependencies, file string) (int, error) {
	var presets preset.Presets
	var err error
	if file != "" {
		presets, err = preset.ParseFile(pathutil.ExpandUser(file))
	} else {
		presets, _, err = deps.LoadPresets()
	}
	if err != nil {
		return 0, err
	}
	for _, name := range presets.Names() {
		if err := presets[name].Validate(); err != nil {
			return 0, err
		}
	}
	return len(presets), nil
}

func runExport(_ context.Context, cmd *cli.Command, deps Dependencies) error {
	start := time.Now()
	asJSON := cmd.Bool("json")

	name, err := requireArg(cmd, 0, "PRESET")
	if err != nil {
		return err
	}

	doc, err := exportPreset(deps, name)
	if asJSON {
		return deps.emitJSON("export", start, map[string]any{"preset": name, "yaml": doc}, err)
	}
	if err != nil {
		return err
	}
	fmt.Fprint(deps.Stdout, doc)
	return nil
}

func exportPreset(deps Dependencies, name string) (string, error) {
	presets, _, err := deps.LoadPresets()
	if err != nil {
		return "", err
	}
	p, ok := presets[name]
	if !ok {
		return "", fmt.Errorf("unknown preset %q", name)
	}
	return p.ToYAML()
}
