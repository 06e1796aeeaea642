package cli

import (
	"context"
	"io"
	"os"

	"github.com/zSuperx/muffin/internal/appconfig"
	"github.com/zSuperx/muffin/internal/tmuxctl"
)

// Dependencies provides external services for CLI handlers. Tests swap the
// constructors and writers; production wiring happens in DefaultDependencies
// and package main.
type Dependencies struct {
	Version string
	AppName string

	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	Config *appconfig.Loader

	// NewClient builds the tmux client for the configured binary.
	NewClient func(binary string) (*tmuxctl.Client, error)

	// RunUI opens the interactive picker. Wired by package main so the CLI
	// does not depend on the TUI.
	RunUI func(ctx context.Context, deps Dependencies) error
}

// DefaultDependencies returns dependencies wired to production services.
func DefaultDependencies(version, configPath string) Dependencies {
	return Dependencies{
		Version:   version,
		AppName:   "muffin",
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Stdin:     os.Stdin,
		Config:    appconfig.NewLoader(configPath),
		NewClient: tmuxctl.NewClient,
	}
}
