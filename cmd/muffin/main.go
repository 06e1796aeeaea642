package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	ucli "github.com/urfave/cli/v3"

	"github.com/zSuperx/muffin/internal/appconfig"
	"github.com/zSuperx/muffin/internal/cli"
	"github.com/zSuperx/muffin/internal/logging"
	"github.com/zSuperx/muffin/internal/tui"
)

// version is stamped by the release build.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	configPath, err := appconfig.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "muffin: %v\n", err)
		return 1
	}

	deps := cli.DefaultDependencies(version, configPath)
	deps.RunUI = tui.Run

	cfg, err := deps.Config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "muffin: config: %v (using defaults)\n", err)
		cfg = appconfig.Defaults()
	}

	closeLogs, err := logging.Init(cfg.Logging, logging.InitOptions{
		App:     "muffin",
		Version: version,
		Mode:    logging.ModeFromArgs(os.Args),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "muffin: logging: %v\n", err)
		return 1
	}
	defer func() {
		if err := closeLogs(); err != nil {
			slog.Debug("close log sink", "error", err)
		}
	}()

	app := cli.BuildApp(deps)
	if err := app.Run(context.Background(), os.Args); err != nil {
		var exitCoder ucli.ExitCoder
		if errors.As(err, &exitCoder) {
			if msg := err.Error(); msg != "" {
				fmt.Fprintf(os.Stderr, "muffin: %s\n", msg)
			}
			return exitCoder.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "muffin: %v\n", err)
		return 1
	}
	return 0
}
