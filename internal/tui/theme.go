package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Design tokens shared by every view.
var (
	accent     = lipgloss.Color("#3B82F6")
	accentAlt  = lipgloss.Color("#22C55E")
	colorError = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"}

	textPrimary   = lipgloss.Color("#F8FAFC")
	textSecondary = lipgloss.Color("#CBD5E1")
	textMuted     = lipgloss.Color("#94A3B8")
)

var (
	styleApp = lipgloss.NewStyle().Padding(1, 2)

	styleTitle = lipgloss.NewStyle().
			Foreground(textPrimary).
			Background(accent).
			Padding(0, 1)

	styleTabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(textPrimary).
			Underline(true)

	styleTabInactive = lipgloss.NewStyle().
				Foreground(textMuted)

	styleSelected = lipgloss.NewStyle().
			Foreground(textPrimary).
			Background(lipgloss.Color("#2E2E2E")).
			Bold(true)

	styleRow = lipgloss.NewStyle().
			Foreground(textSecondary)

	styleRunning = lipgloss.NewStyle().
			Foreground(accentAlt)

	styleMuted = lipgloss.NewStyle().
			Foreground(textMuted)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)
)

// detectBackground aligns lipgloss adaptive colors with the terminal's
// actual background instead of the library default.
func detectBackground() {
	lipgloss.SetHasDarkBackground(termenv.HasDarkBackground())
}
