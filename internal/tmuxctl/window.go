package tmuxctl

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/zSuperx/muffin/internal/preset"
)

const (
	windowFormat = "#{session_name}:#{window_index}"
	paneFormat   = "#{session_name}:#{window_index}.#{pane_index}"
)

// PaneTarget addresses a single pane as session:window.pane.
type PaneTarget struct {
	Session string
	Window  string
	Pane    int
}

func (t PaneTarget) String() string {
	return fmt.Sprintf("%s:%s.%d", t.Session, t.Window, t.Pane)
}

// RenameWindow renames the window addressed by session plus window index or
// name.
func (c *Client) RenameWindow(ctx context.Context, session, window, newName string) error {
	return c.exec(ctx, "rename-window", "-t", session+":"+window, newName)
}

// NewWindow appends a named window to the session and returns its address.
func (c *Client) NewWindow(ctx context.Context, session, name string) (string, error) {
	out, err := c.output(ctx, "new-window", "-t", session, "-n", name, "-P", "-F", windowFormat)
	if err != nil {
		return "", err
	}
	if out == "" {
		return "", invocationErrorf("new-window", "empty window address: %w", ErrProtocol)
	}
	return out, nil
}

// SplitPane splits the target pane along the given axis. percent is the
// share of the divided area handed to the new pane; the original pane keeps
// its position and content. The returned target addresses the new pane.
func (c *Client) SplitPane(ctx context.Context, target string, direction preset.Direction, percent int) (PaneTarget, error) {
	flag := "-v"
	if direction == preset.Horizontal {
		flag = "-h"
	}
	out, err := c.output(ctx, "split-window", "-t", target, flag,
		"-p", strconv.Itoa(percent), "-P", "-F", paneFormat)
	if err != nil {
		return PaneTarget{}, err
	}
	return parsePaneTarget(out)
}

func parsePaneTarget(out string) (PaneTarget, error) {
	session, rest, ok := strings.Cut(out, ":")
	if !ok {
		return PaneTarget{}, invocationErrorf("split-window", "pane address %q: %w", out, ErrProtocol)
	}
	window, paneRaw, ok := strings.Cut(rest, ".")
	if !ok {
		return PaneTarget{}, invocationErrorf("split-window", "pane address %q: %w", out, ErrProtocol)
	}
	pane, err := strconv.Atoi(paneRaw)
	if err != nil {
		return PaneTarget{}, invocationErrorf("split-window", "pane index %q: %w", paneRaw, ErrProtocol)
	}
	return PaneTarget{Session: session, Window: window, Pane: pane}, nil
}

// SendKeys types text into the target pane followed by Enter. Whether the
// injected line succeeds is never checked.
func (c *Client) SendKeys(ctx context.Context, target, text string) error {
	return c.exec(ctx, "send-keys", "-t", target, text, "Enter")
}
