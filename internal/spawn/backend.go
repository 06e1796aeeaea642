package spawn

import (
	"context"

	"github.com/zSuperx/muffin/internal/preset"
	"github.com/zSuperx/muffin/internal/tmuxctl"
)

// PaneRef addresses one pane in the backend.
type PaneRef struct {
	Session string
	Window  string
	Pane    int
}

// Backend is the multiplexer capability the materializer needs. It is
// deliberately narrow: pairwise percentage splits and keystroke injection
// are the only geometry and content primitives tmux exposes, and the
// materializer is written against exactly those.
type Backend interface {
	// CreateSession creates a detached session. The backend unavoidably
	// gives it one initial window with one pane.
	CreateSession(ctx context.Context, name string) error
	// RenameWindow renames a window addressed by index or name.
	RenameWindow(ctx context.Context, session, window, newName string) error
	// NewWindow appends a window and returns its session:index address.
	NewWindow(ctx context.Context, session, name string) (string, error)
	// SplitPane splits target, giving percent of the area to the new pane,
	// and returns the new pane's address.
	SplitPane(ctx context.Context, target string, direction preset.Direction, percent int) (PaneRef, error)
	// SendText types a line into the target pane. Success of whatever the
	// line does is not observable.
	SendText(ctx context.Context, target, text string) error
}

// TmuxBackend adapts tmuxctl's client to the Backend capability.
type TmuxBackend struct {
	Client *tmuxctl.Client
}

var _ Backend = TmuxBackend{}

func (b TmuxBackend) CreateSession(ctx context.Context, name string) error {
	return b.Client.NewSession(ctx, name)
}

func (b TmuxBackend) RenameWindow(ctx context.Context, session, window, newName string) error {
	return b.Client.RenameWindow(ctx, session, window, newName)
}

func (b TmuxBackend) NewWindow(ctx context.Context, session, name string) (string, error) {
	return b.Client.NewWindow(ctx, session, name)
}

func (b TmuxBackend) SplitPane(ctx context.Context, target string, direction preset.Direction, percent int) (PaneRef, error) {
	pane, err := b.Client.SplitPane(ctx, target, direction, percent)
	if err != nil {
		return PaneRef{}, err
	}
	return PaneRef{Session: pane.Session, Window: pane.Window, Pane: pane.Pane}, nil
}

func (b TmuxBackend) SendText(ctx context.Context, target, text string) error {
	return b.Client.SendKeys(ctx, target, text)
}
