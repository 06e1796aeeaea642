// Package tmuxctl drives a tmux server through its command-line interface.
// Every operation is a synchronous invocation of the tmux binary; pane and
// window addresses produced by one call feed the next.
package tmuxctl

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrProtocol marks tmux output that did not match the expected textual
// shape, such as a split-window print missing the pane address.
var ErrProtocol = errors.New("unexpected tmux output")

// Client coordinates tmux operations.
type Client struct {
	bin string
	run func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewClient resolves the tmux binary and returns a Client. An empty path
// searches PATH.
func NewClient(tmuxPath string) (*Client, error) {
	if tmuxPath == "" {
		var err error
		tmuxPath, err = exec.LookPath("tmux")
		if err != nil {
			return nil, fmt.Errorf("tmux not found in PATH: %w", err)
		}
	}
	return &Client{bin: tmuxPath, run: exec.CommandContext}, nil
}

// Binary returns the tmux binary the client invokes.
func (c *Client) Binary() string { return c.bin }

// WithExec allows tests to override the exec implementation.
func (c *Client) WithExec(fn func(context.Context, string, ...string) *exec.Cmd) {
	c.run = fn
}

// output runs tmux and returns trimmed stdout. Non-zero exits come back as
// an error carrying tmux's stderr.
func (c *Client) output(ctx context.Context, args ...string) (string, error) {
	cmd := c.run(ctx, c.bin, args...)
	out, err := cmd.Output()
	if err != nil {
		return "", invocationError(args, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// exec runs tmux for its side effect only.
func (c *Client) exec(ctx context.Context, args ...string) error {
	_, err := c.output(ctx, args...)
	return err
}

func invocationError(args []string, err error) error {
	op := "tmux"
	if len(args) > 0 {
		op = "tmux " + args[0]
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if stderr := strings.TrimSpace(string(exitErr.Stderr)); stderr != "" {
			return fmt.Errorf("%s: %s: %w", op, stderr, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func invocationErrorf(op, format string, args ...any) error {
	return fmt.Errorf("tmux "+op+": "+format, args...)
}

// noServerRunning reports the exit tmux produces when no server exists.
// Listing operations treat it as an empty result rather than a failure.
func noServerRunning(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr) && exitErr.ExitCode() == 1
}
