// Package tui implements the interactive preset and session picker.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"github.com/zSuperx/muffin/internal/cli"
	"github.com/zSuperx/muffin/internal/preset"
	"github.com/zSuperx/muffin/internal/tmuxctl"
)

type view int

const (
	viewPresets view = iota
	viewSessions
)

type prompt int

const (
	promptNone prompt = iota
	promptFilter
	promptNewSession
	promptRename
	promptKill
)

// Action is what Run performs once the program has left the alt screen.
type Action int

const (
	ActionNone Action = iota
	ActionStartPreset
	ActionAttachSession
)

type Result struct {
	Action Action
	Target string
}

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Tab     key.Binding
	Filter  key.Binding
	Select  key.Binding
	New     key.Binding
	Rename  key.Binding
	Kill    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k")),
	Down:    key.NewBinding(key.WithKeys("down", "j")),
	Tab:     key.NewBinding(key.WithKeys("tab")),
	Filter:  key.NewBinding(key.WithKeys("/")),
	Select:  key.NewBinding(key.WithKeys("enter")),
	New:     key.NewBinding(key.WithKeys("n")),
	Rename:  key.NewBinding(key.WithKeys("r")),
	Kill:    key.NewBinding(key.WithKeys("x")),
	Refresh: key.NewBinding(key.WithKeys("ctrl+r")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c")),
}

type Model struct {
	ctx  context.Context
	deps cli.Dependencies

	view   view
	prompt prompt
	input  textinput.Model
	filter string
	cursor int
	width  int

	presets     preset.Presets
	presetNames []string
	sources     map[string]string
	sessions    []tmuxctl.Session

	watcher *presetWatcher
	err     error

	result Result
}

func NewModel(ctx context.Context, deps cli.Dependencies) Model {
	input := textinput.New()
	input.CharLimit = 80

	m := Model{
		ctx:   ctx,
		deps:  deps,
		input: input,
		width: 80,
	}
	if loader, err := deps.PresetLoader(); err == nil {
		if watcher, err := newPresetWatcher(loader.GlobalPath(), loader.ProjectPath()); err == nil {
			m.watcher = watcher
		}
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		loadPresetsCmd(m.deps),
		loadSessionsCmd(m.ctx, m.deps),
	}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.wait())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case presetsLoadedMsg:
		m.presets = msg.presets
		m.presetNames = msg.presets.Names()
		m.sources = msg.sources
		m.markRunning()
		m.clampCursor()
		return m, nil

	case sessionsLoadedMsg:
		m.sessions = msg.sessions
		m.markRunning()
		m.clampCursor()
		return m, nil

	case sessionChangedMsg:
		return m, loadSessionsCmd(m.ctx, m.deps)

	case presetFileChangedMsg:
		cmds := []tea.Cmd{loadPresetsCmd(m.deps)}
		if m.watcher != nil {
			cmds = append(cmds, m.watcher.wait())
		}
		return m, tea.Batch(cmds...)

	case errMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Tab):
		if m.view == viewPresets {
			m.view = viewSessions
		} else {
			m.view = viewPresets
		}
		m.cursor = 0
		m.filter = ""
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.visibleRows())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, keys.Filter):
		m.prompt = promptFilter
		m.input.Placeholder = "filter"
		m.input.SetValue(m.filter)
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.Refresh):
		m.err = nil
		return m, tea.Batch(loadPresetsCmd(m.deps), loadSessionsCmd(m.ctx, m.deps))

	case key.Matches(msg, keys.Select):
		return m.selectCurrent()

	case key.Matches(msg, keys.New):
		if m.view == viewSessions {
			m.prompt = promptNewSession
			m.input.Placeholder = "session name"
			m.input.SetValue("")
			m.input.Focus()
			return m, textinput.Blink
		}

	case key.Matches(msg, keys.Rename):
		if m.view == viewSessions {
			if target, ok := m.currentRow(); ok {
				m.prompt = promptRename
				m.input.Placeholder = "new name"
				m.input.SetValue(target)
				m.input.Focus()
				return m, textinput.Blink
			}
		}

	case key.Matches(msg, keys.Kill):
		if m.view == viewSessions {
			if _, ok := m.currentRow(); ok {
				m.prompt = promptKill
			}
		}
	}

	if msg.String() == "esc" && m.filter != "" {
		m.filter = ""
		m.cursor = 0
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt == promptKill {
		target, _ := m.currentRow()
		switch msg.String() {
		case "y", "Y", "enter":
			m.prompt = promptNone
			return m, killSessionCmd(m.ctx, m.deps, target)
		default:
			m.prompt = promptNone
			return m, nil
		}
	}

	switch msg.String() {
	case "esc":
		m.prompt = promptNone
		m.input.Blur()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		current, _ := m.currentRow()
		active := m.prompt
		m.prompt = promptNone
		m.input.Blur()
		switch active {
		case promptFilter:
			m.filter = value
			m.cursor = 0
			return m, nil
		case promptNewSession:
			if value == "" {
				return m, nil
			}
			return m, newSessionCmd(m.ctx, m.deps, value)
		case promptRename:
			if value == "" || value == current {
				return m, nil
			}
			return m, renameSessionCmd(m.ctx, m.deps, current, value)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.prompt == promptFilter {
		// Live filtering while typing.
		m.filter = strings.TrimSpace(m.input.Value())
		m.cursor = 0
	}
	return m, cmd
}

// selectCurrent records the chosen action and quits; attaching happens
// outside the program, once the terminal is back in cooked mode.
func (m Model) selectCurrent() (tea.Model, tea.Cmd) {
	target, ok := m.currentRow()
	if !ok {
		return m, nil
	}
	if m.view == viewPresets {
		m.result = Result{Action: ActionStartPreset, Target: target}
	} else {
		m.result = Result{Action: ActionAttachSession, Target: target}
	}
	return m, tea.Quit
}

func (m *Model) markRunning() {
	if m.presets == nil {
		return
	}
	names := make([]string, 0, len(m.sessions))
	for _, s := range m.sessions {
		names = append(names, s.Name)
	}
	m.presets.MarkRunning(names)
}

func (m *Model) clampCursor() {
	if max := len(m.visibleRows()) - 1; m.cursor > max {
		if max < 0 {
			max = 0
		}
		m.cursor = max
	}
}

func (m Model) currentRow() (string, bool) {
	rows := m.visibleRows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return "", false
	}
	return rows[m.cursor], true
}

// visibleRows returns the names in the active view, fuzzy-filtered.
func (m Model) visibleRows() []string {
	var names []string
	if m.view == viewPresets {
		names = m.presetNames
	} else {
		for _, s := range m.sessions {
			names = append(names, s.Name)
		}
	}
	if m.filter == "" {
		return names
	}
	matches := fuzzy.Find(m.filter, names)
	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.Str)
	}
	return out
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("muffin"))
	b.WriteString("  ")
	if m.view == viewPresets {
		b.WriteString(styleTabActive.Render("presets"))
		b.WriteString("  ")
		b.WriteString(styleTabInactive.Render("sessions"))
	} else {
		b.WriteString(styleTabInactive.Render("presets"))
		b.WriteString("  ")
		b.WriteString(styleTabActive.Render("sessions"))
	}
	b.WriteString("\n\n")

	rows := m.visibleRows()
	if len(rows) == 0 {
		b.WriteString(styleMuted.Render("nothing here"))
		b.WriteString("\n")
	}
	for i, name := range rows {
		b.WriteString(m.renderRow(i, name))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch m.prompt {
	case promptFilter, promptNewSession, promptRename:
		b.WriteString(m.input.View())
	case promptKill:
		target, _ := m.currentRow()
		b.WriteString(styleError.Render(fmt.Sprintf("kill session %q? (y/N)", target)))
	default:
		if m.filter != "" {
			b.WriteString(styleMuted.Render("filter: " + m.filter + "  "))
		}
		b.WriteString(styleMuted.Render(m.helpLine()))
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(styleError.Render(m.err.Error()))
	}
	return styleApp.Render(b.String())
}

func (m Model) renderRow(i int, name string) string {
	marker := "  "
	desc := ""
	switch m.view {
	case viewPresets:
		if p, ok := m.presets[name]; ok {
			if p.Running {
				marker = styleRunning.Render("* ")
			}
			desc = fmt.Sprintf("%-8s %d windows  %s", m.sources[name], len(p.Windows), p.Cwd)
		}
	case viewSessions:
		for _, s := range m.sessions {
			if s.Name == name {
				if s.Attached {
					marker = styleRunning.Render("* ")
				}
				desc = fmt.Sprintf("%d windows", s.Windows)
				break
			}
		}
	}

	line := fmt.Sprintf("%s%-20s %s", marker, name, desc)
	line = runewidth.Truncate(line, max(20, m.width-4), "…")
	if i == m.cursor {
		return styleSelected.Render(line)
	}
	return styleRow.Render(line)
}

func (m Model) helpLine() string {
	if m.view == viewSessions {
		return "enter attach · n new · r rename · x kill · tab presets · / filter · q quit"
	}
	return "enter start · tab sessions · / filter · ctrl+r reload · q quit"
}
