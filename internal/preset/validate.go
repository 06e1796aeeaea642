package preset

import (
	"fmt"

	"github.com/kballard/go-shellquote"
)

// Validate checks properties a structurally valid preset can still get
// wrong. Pane commands are injected as literal keystrokes and never
// verified at spawn time, so the one early check worth making is that they
// at least tokenize as shell words.
func (p *Preset) Validate() error {
	for _, window := range p.Windows {
		if err := validateNode(window.Layout, p.Name, window.Name); err != nil {
			return err
		}
	}
	return nil
}

func validateNode(node Node, preset, window string) error {
	switch n := node.(type) {
	case *Pane:
		if n.Command == "" {
			return nil
		}
		if _, err := shellquote.Split(n.Command); err != nil {
			return fmt.Errorf("preset %q window %q: command %q: %w", preset, window, n.Command, err)
		}
	case *Split:
		for _, child := range n.Children {
			if err := validateNode(child, preset, window); err != nil {
				return err
			}
		}
	}
	return nil
}
