package tmuxctl

import (
	"context"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Session describes one live tmux session.
type Session struct {
	Name     string
	Windows  int
	Attached bool
}

const sessionFormat = "#{session_name}\t#{session_windows}\t#{session_attached}"

// ListSessions returns the live sessions. Attached sessions sort first,
// otherwise the server's order is kept. A missing server yields an empty
// list.
func (c *Client) ListSessions(ctx context.Context) ([]Session, error) {
	out, err := c.output(ctx, "list-sessions", "-F", sessionFormat)
	if err != nil {
		if noServerRunning(err) {
			return nil, nil
		}
		return nil, err
	}

	var sessions []Session
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			return nil, invocationErrorf("list-sessions", "line %q: %w", line, ErrProtocol)
		}
		windows, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, invocationErrorf("list-sessions", "window count %q: %w", fields[1], ErrProtocol)
		}
		sessions = append(sessions, Session{
			Name:     fields[0],
			Windows:  windows,
			Attached: fields[2] != "0" && fields[2] != "",
		})
	}

	// Attached sessions first so pickers default to where the user is.
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Attached && !sessions[j].Attached
	})
	return sessions, nil
}

// SessionNames returns just the session names, in ListSessions order.
func (c *Client) SessionNames(ctx context.Context) ([]string, error) {
	sessions, err := c.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(sessions))
	for _, s := range sessions {
		names = append(names, s.Name)
	}
	return names, nil
}

// HasSession reports whether the named session exists.
func (c *Client) HasSession(ctx context.Context, name string) (bool, error) {
	err := c.exec(ctx, "has-session", "-t", name)
	if err != nil {
		if noServerRunning(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// NewSession creates a detached session. An empty name lets tmux pick one.
// The new session always carries exactly one window with one pane; that is
// a tmux property callers building layouts have to work around.
func (c *Client) NewSession(ctx context.Context, name string) error {
	if name == "" {
		return c.exec(ctx, "new-session", "-d")
	}
	return c.exec(ctx, "new-session", "-s", name, "-d")
}

// SwitchClient moves the attached client to the target session.
func (c *Client) SwitchClient(ctx context.Context, target string) error {
	return c.exec(ctx, "switch-client", "-t", target)
}

// AttachSession attaches the calling terminal to the target session.
func (c *Client) AttachSession(ctx context.Context, target string) error {
	return c.exec(ctx, "attach-session", "-t", target)
}

// Attach picks switch-client when already inside tmux, attach-session
// otherwise.
func (c *Client) Attach(ctx context.Context, target string) error {
	if insideTmux() {
		return c.SwitchClient(ctx, target)
	}
	return c.AttachSession(ctx, target)
}

// RenameSession renames an existing session.
func (c *Client) RenameSession(ctx context.Context, target, newName string) error {
	return c.exec(ctx, "rename-session", "-t", target, newName)
}

// KillSession destroys the target session and everything in it.
func (c *Client) KillSession(ctx context.Context, target string) error {
	return c.exec(ctx, "kill-session", "-t", target)
}

func insideTmux() bool {
	return strings.TrimSpace(os.Getenv("TMUX")) != ""
}
