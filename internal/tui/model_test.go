package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zSuperx/muffin/internal/cli"
	"github.com/zSuperx/muffin/internal/preset"
	"github.com/zSuperx/muffin/internal/tmuxctl"
)

func testModel(t *testing.T) Model {
	t.Helper()
	deps := cli.Dependencies{
		Version: "test",
		AppName: "muffin",
		NewClient: func(string) (*tmuxctl.Client, error) {
			return nil, errors.New("no tmux in tests")
		},
	}
	return Model{
		ctx:   context.Background(),
		deps:  deps,
		input: textinput.New(),
		width: 80,
	}
}

func apply(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func loadedPresets(t *testing.T, m Model) Model {
	t.Helper()
	presets, err := preset.Parse([]byte(`
session name="work" cwd="~/work"
session name="writing" cwd="~/docs"
session name="dotfiles"
`))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	m, _ = apply(t, m, presetsLoadedMsg{
		presets: presets,
		sources: map[string]string{"work": "global", "writing": "global", "dotfiles": "project"},
	})
	return m
}

func TestPresetsLoadedPopulatesRows(t *testing.T) {
	m := loadedPresets(t, testModel(t))
	rows := m.visibleRows()
	if len(rows) != 3 {
		t.Fatalf("rows = %v, want 3", rows)
	}
	if rows[0] != "dotfiles" {
		t.Fatalf("rows = %v, want sorted names", rows)
	}
}

func TestFuzzyFilterNarrowsRows(t *testing.T) {
	m := loadedPresets(t, testModel(t))
	m.filter = "wrk"
	rows := m.visibleRows()
	if len(rows) != 1 || rows[0] != "work" {
		t.Fatalf("rows = %v, want [work]", rows)
	}
}

func TestTabTogglesView(t *testing.T) {
	m := loadedPresets(t, testModel(t))
	m, _ = apply(t, m, sessionsLoadedMsg{sessions: []tmuxctl.Session{{Name: "work", Windows: 2, Attached: true}}})

	m, _ = apply(t, m, keyMsg("tab"))
	if m.view != viewSessions {
		t.Fatalf("view = %v, want sessions", m.view)
	}
	rows := m.visibleRows()
	if len(rows) != 1 || rows[0] != "work" {
		t.Fatalf("rows = %v", rows)
	}
	m, _ = apply(t, m, keyMsg("tab"))
	if m.view != viewPresets {
		t.Fatalf("view = %v, want presets", m.view)
	}
}

func TestEnterSelectsPreset(t *testing.T) {
	m := loadedPresets(t, testModel(t))
	m, _ = apply(t, m, keyMsg("j")) // move to second row
	m, cmd := apply(t, m, keyMsg("enter"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.result.Action != ActionStartPreset || m.result.Target != "work" {
		t.Fatalf("result = %+v", m.result)
	}
}

func TestEnterOnSessionAttaches(t *testing.T) {
	m := testModel(t)
	m, _ = apply(t, m, sessionsLoadedMsg{sessions: []tmuxctl.Session{{Name: "chat"}}})
	m.view = viewSessions
	m, cmd := apply(t, m, keyMsg("enter"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.result.Action != ActionAttachSession || m.result.Target != "chat" {
		t.Fatalf("result = %+v", m.result)
	}
}

func TestKillPromptRequiresConfirmation(t *testing.T) {
	m := testModel(t)
	m, _ = apply(t, m, sessionsLoadedMsg{sessions: []tmuxctl.Session{{Name: "chat"}}})
	m.view = viewSessions

	m, _ = apply(t, m, keyMsg("x"))
	if m.prompt != promptKill {
		t.Fatalf("prompt = %v, want kill confirmation", m.prompt)
	}

	// Anything but y declines.
	m, cmd := apply(t, m, keyMsg("n"))
	if m.prompt != promptNone || cmd != nil {
		t.Fatalf("decline: prompt = %v, cmd = %v", m.prompt, cmd)
	}

	m, _ = apply(t, m, keyMsg("x"))
	m, cmd = apply(t, m, keyMsg("y"))
	if m.prompt != promptNone || cmd == nil {
		t.Fatal("confirm should fire the kill command")
	}
}

func TestFilterPromptLiveUpdates(t *testing.T) {
	m := loadedPresets(t, testModel(t))
	m, _ = apply(t, m, keyMsg("/"))
	if m.prompt != promptFilter {
		t.Fatalf("prompt = %v, want filter", m.prompt)
	}
	m, _ = apply(t, m, keyMsg("d"))
	if m.filter != "d" {
		t.Fatalf("filter = %q, want d", m.filter)
	}
	m, _ = apply(t, m, keyMsg("enter"))
	if m.prompt != promptNone {
		t.Fatal("enter should close the prompt")
	}
	rows := m.visibleRows()
	if len(rows) != 1 || rows[0] != "dotfiles" {
		t.Fatalf("rows = %v, want [dotfiles]", rows)
	}
}

func TestErrShownInView(t *testing.T) {
	m := testModel(t)
	m, _ = apply(t, m, errMsg{err: errors.New("tmux exploded")})
	if !strings.Contains(m.View(), "tmux exploded") {
		t.Fatal("view should surface the error")
	}
}

func TestRenderRowKeepsMinimumWidth(t *testing.T) {
	m := loadedPresets(t, testModel(t))
	m.width = 10 // narrower than the floor

	row := m.renderRow(1, "writing")
	if !strings.Contains(row, "writing") {
		t.Fatalf("row %q lost the name at narrow width", row)
	}
}

func TestRunningPresetMarked(t *testing.T) {
	m := loadedPresets(t, testModel(t))
	m, _ = apply(t, m, sessionsLoadedMsg{sessions: []tmuxctl.Session{{Name: "work"}}})
	if !m.presets["work"].Running {
		t.Fatal("work should be marked running")
	}
	if !strings.Contains(m.View(), "work") {
		t.Fatal("view should list the preset")
	}
}
