package logging

import "strings"

type Mode uint8

const (
	ModeCLI Mode = iota + 1
	ModeTUI
)

// ModeFromArgs picks the logging mode before the CLI has parsed anything:
// a bare invocation (or explicit "ui") opens the TUI, everything else is a
// one-shot CLI run.
func ModeFromArgs(args []string) Mode {
	if len(args) < 2 {
		return ModeTUI
	}
	cmd := strings.ToLower(strings.TrimSpace(args[1]))
	if cmd == "" || cmd == "ui" {
		return ModeTUI
	}
	return ModeCLI
}

func (m Mode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	default:
		return "cli"
	}
}
