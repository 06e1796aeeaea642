package tui

import (
	"github.com/zSuperx/muffin/internal/preset"
	"github.com/zSuperx/muffin/internal/tmuxctl"
)

type presetsLoadedMsg struct {
	presets preset.Presets
	sources map[string]string
}

type sessionsLoadedMsg struct {
	sessions []tmuxctl.Session
}

type sessionChangedMsg struct{}

type presetFileChangedMsg struct{}

type errMsg struct {
	err error
}
