// Package spawn materializes a parsed preset into live multiplexer state.
//
// The backend only knows how to split one pane into two, parameterized by
// the percentage handed to the new pane. Spawn turns each N-ary weighted
// split in the preset into n-1 such binary splits, threading the pane
// address returned by each call into the next. The chain is strictly
// sequential; there is nothing to parallelize because every step's target
// comes out of the previous step.
package spawn

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/zSuperx/muffin/internal/preset"
)

// Spawn builds a live session matching the preset. The first backend error
// aborts the remaining sequence; completed calls are not rolled back, so a
// partially built session may remain for the caller to surface or delete.
func Spawn(ctx context.Context, backend Backend, p *preset.Preset) error {
	slog.Debug("spawning preset", "preset", p.Name, "windows", len(p.Windows))
	if err := backend.CreateSession(ctx, p.Name); err != nil {
		return err
	}

	for i, window := range p.Windows {
		var target string
		if i == 0 {
			// Session creation always leaves one window with one pane
			// behind and tmux offers no way to suppress it, so the first
			// window adopts it instead of creating another.
			if err := backend.RenameWindow(ctx, p.Name, "0", window.Name); err != nil {
				return err
			}
			target = fmt.Sprintf("%s:%s.0", p.Name, window.Name)
		} else {
			address, err := backend.NewWindow(ctx, p.Name, window.Name)
			if err != nil {
				return err
			}
			target = address + ".0"
		}
		if err := applyNode(ctx, backend, target, window.Layout); err != nil {
			return err
		}
	}
	return nil
}

func applyNode(ctx context.Context, backend Backend, target string, node preset.Node) error {
	switch n := node.(type) {
	case *preset.Pane:
		return fillPane(ctx, backend, target, n)
	case *preset.Split:
		return applySplit(ctx, backend, target, n)
	default:
		return fmt.Errorf("unknown layout node %T", node)
	}
}

// applySplit carves the split's children out of target in order. Each
// iteration splits off the area for the remaining children, fills the pane
// that stopped growing, and moves the cursor to the new pane; the last
// child inherits whatever is left without another split.
func applySplit(ctx context.Context, backend Backend, target string, split *preset.Split) error {
	// Ratios run against the actual child-size sum rather than 100 so the
	// parser's truncated totals still produce proportional panes.
	remaining := 0.0
	for _, child := range split.Children {
		remaining += float64(child.Size())
	}

	current := target
	for i, child := range split.Children {
		if i == len(split.Children)-1 {
			return applyNode(ctx, backend, current, child)
		}

		percent := splitPercent(remaining, float64(child.Size()))
		slog.Debug("splitting pane",
			"target", current, "direction", split.Direction.String(), "percent", percent)
		next, err := backend.SplitPane(ctx, current, split.Direction, percent)
		if err != nil {
			return err
		}
		if err := applyNode(ctx, backend, current, child); err != nil {
			return err
		}
		current = fmt.Sprintf("%s:%s.%d", next.Session, next.Window, next.Pane)
		remaining -= float64(child.Size())
	}
	return nil
}

// splitPercent computes the new pane's share: carving a child of the given
// size out of remaining leaves the original pane with size/remaining of the
// pre-split area. Rounds half away from zero, clamped to [0,100].
func splitPercent(remaining, size float64) int {
	if remaining <= 0 {
		return 0
	}
	percent := int(math.Round((remaining - size) / remaining * 100))
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// fillPane changes into the pane's directory and, if configured, types its
// command. Both are injected keystrokes; neither outcome is verified.
func fillPane(ctx context.Context, backend Backend, target string, pane *preset.Pane) error {
	if err := backend.SendText(ctx, target, "cd "+pane.Cwd); err != nil {
		return err
	}
	if pane.Command != "" {
		if err := backend.SendText(ctx, target, pane.Command); err != nil {
			return err
		}
	}
	return nil
}
