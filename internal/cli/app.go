// Package cli assembles the muffin command tree.
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// BuildApp constructs the root command. Running without a subcommand opens
// the interactive picker.
func BuildApp(deps Dependencies) *cli.Command {
	jsonFlag := &cli.BoolFlag{Name: "json", Usage: "emit machine-readable JSON"}

	app := &cli.Command{
		Name:      deps.AppName,
		Usage:     "tmux session presets",
		Version:   deps.Version,
		Writer:    deps.Stdout,
		ErrWriter: deps.Stderr,
		Commands: []*cli.Command{
			{
				Name:      "start",
				Usage:     "spawn a preset's session and attach to it",
				ArgsUsage: "PRESET",
				Flags: []cli.Flag{
					jsonFlag,
					&cli.BoolFlag{Name: "no-attach", Usage: "leave the session detached"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runStart(ctx, cmd, deps)
				},
			},
			{
				Name:  "list",
				Usage: "list available presets",
				Flags: []cli.Flag{jsonFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runList(ctx, cmd, deps)
				},
			},
			{
				Name:  "sessions",
				Usage: "list live tmux sessions",
				Flags: []cli.Flag{jsonFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runSessions(ctx, cmd, deps)
				},
			},
			{
				Name:      "switch",
				Usage:     "attach or switch the client to a session",
				ArgsUsage: "SESSION",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runSwitch(ctx, cmd, deps)
				},
			},
			{
				Name:      "new",
				Usage:     "create a plain session and attach to it",
				ArgsUsage: "[NAME]",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runNew(ctx, cmd, deps)
				},
			},
			{
				Name:      "rename",
				Usage:     "rename a session",
				ArgsUsage: "OLD NEW",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runRename(ctx, cmd, deps)
				},
			},
			{
				Name:      "kill",
				Usage:     "destroy a session",
				ArgsUsage: "SESSION",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "skip the confirmation prompt"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runKill(ctx, cmd, deps)
				},
			},
			{
				Name:  "validate",
				Usage: "parse and check preset files",
				Flags: []cli.Flag{
					jsonFlag,
					&cli.StringFlag{Name: "file", Usage: "validate a single presets file instead of the merged sources"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runValidate(ctx, cmd, deps)
				},
			},
			{
				Name:      "export",
				Usage:     "print a preset as YAML",
				ArgsUsage: "PRESET",
				Flags:     []cli.Flag{jsonFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runExport(ctx, cmd, deps)
				},
			},
			{
				Name:  "ui",
				Usage: "open the interactive picker",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runUI(ctx, deps)
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runUI(ctx, deps)
		},
	}
	return app
}

func runUI(ctx context.Context, deps Dependencies) error {
	if deps.RunUI == nil {
		return fmt.Errorf("interactive UI not available in this build")
	}
	return deps.RunUI(ctx, deps)
}

func requireArg(cmd *cli.Command, position int, name string) (string, error) {
	value := cmd.Args().Get(position)
	if value == "" {
		return "", fmt.Errorf("missing %s argument", name)
	}
	return value, nil
}
