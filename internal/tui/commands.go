package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zSuperx/muffin/internal/cli"
)

func loadPresetsCmd(deps cli.Dependencies) tea.Cmd {
	return func() tea.Msg {
		presets, loader, err := deps.LoadPresets()
		if err != nil {
			return errMsg{err: err}
		}
		sources := make(map[string]string, len(presets))
		for name := range presets {
			sources[name] = loader.Source(name)
		}
		return presetsLoadedMsg{presets: presets, sources: sources}
	}
}

func loadSessionsCmd(ctx context.Context, deps cli.Dependencies) tea.Cmd {
	return func() tea.Msg {
		client, err := deps.Client()
		if err != nil {
			return errMsg{err: err}
		}
		sessions, err := client.ListSessions(ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return sessionsLoadedMsg{sessions: sessions}
	}
}

func killSessionCmd(ctx context.Context, deps cli.Dependencies, target string) tea.Cmd {
	return func() tea.Msg {
		client, err := deps.Client()
		if err != nil {
			return errMsg{err: err}
		}
		if err := client.KillSession(ctx, target); err != nil {
			return errMsg{err: err}
		}
		return sessionChangedMsg{}
	}
}

func renameSessionCmd(ctx context.Context, deps cli.Dependencies, target, newName string) tea.Cmd {
	return func() tea.Msg {
		client, err := deps.Client()
		if err != nil {
			return errMsg{err: err}
		}
		if err := client.RenameSession(ctx, target, newName); err != nil {
			return errMsg{err: err}
		}
		return sessionChangedMsg{}
	}
}

func newSessionCmd(ctx context.Context, deps cli.Dependencies, name string) tea.Cmd {
	return func() tea.Msg {
		client, err := deps.Client()
		if err != nil {
			return errMsg{err: err}
		}
		if err := client.NewSession(ctx, name); err != nil {
			return errMsg{err: err}
		}
		return sessionChangedMsg{}
	}
}
