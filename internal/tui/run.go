package tui

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zSuperx/muffin/internal/cli"
)

// Run opens the picker and, after it exits, carries out whatever the user
// selected. Attaching has to happen here rather than inside the program:
// tmux needs the terminal back in its normal state.
func Run(ctx context.Context, deps cli.Dependencies) error {
	detectBackground()

	model := NewModel(ctx, deps)
	if model.watcher != nil {
		defer func() {
			if err := model.watcher.Close(); err != nil {
				slog.Debug("close preset watcher", "error", err)
			}
		}()
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("run picker: %w", err)
	}

	finalModel, ok := final.(Model)
	if !ok {
		return nil
	}
	switch finalModel.result.Action {
	case ActionStartPreset:
		_, err := cli.StartPreset(ctx, deps, finalModel.result.Target, true)
		return err
	case ActionAttachSession:
		client, err := deps.Client()
		if err != nil {
			return err
		}
		return client.Attach(ctx, finalModel.result.Target)
	}
	return nil
}
