package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/zSuperx/muffin/internal/spawn"
)

func runStart(ctx context.Context, cmd *cli.Command, deps Dependencies) error {
	start := time.Now()
	asJSON := cmd.Bool("json")
	attach := !cmd.Bool("no-attach")

	name, err := requireArg(cmd, 0, "PRESET")
	if err != nil {
		return err
	}

	status, err := StartPreset(ctx, deps, name, attach && !asJSON)
	if asJSON {
		return deps.emitJSON("start", start, map[string]any{
			"preset": name,
			"status": status,
		}, err)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "%s session %q\n", status, name)
	return nil
}

// StartPreset spawns the named preset unless its session already exists, in
// which case it only attaches. Returns "created" or "attached".
func StartPreset(ctx context.Context, deps Dependencies, name string, attach bool) (string, error) {
	presets, _, err := deps.LoadPresets()
	if err != nil {
		return "", err
	}
	p, ok := presets[name]
	if !ok {
		return "", fmt.Errorf("unknown preset %q (run %q to see what's available)", name, "muffin list")
	}

	client, err := deps.Client()
	if err != nil {
		return "", err
	}
	exists, err := client.HasSession(ctx, p.Name)
	if err != nil {
		return "", err
	}
	status := "attached"
	if !exists {
		if err := spawn.Spawn(ctx, spawn.TmuxBackend{Client: client}, p); err != nil {
			return "", fmt.Errorf("spawn preset %q: %w", name, err)
		}
		status = "created"
		slog.Info("spawned preset", "preset", name)
	}
	if attach {
		if err := client.Attach(ctx, p.Name); err != nil {
			return "", err
		}
	}
	return status, nil
}
