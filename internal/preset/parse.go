package preset

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// Parse reads a KDL preset document and returns its presets keyed by name.
func Parse(data []byte) (Presets, error) {
	doc, err := kdl.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	presets := make(Presets, len(doc.Nodes))
	for _, node := range doc.Nodes {
		preset, err := parseSession(node)
		if err != nil {
			return nil, err
		}
		presets[preset.Name] = preset
	}
	return presets, nil
}

func parseSession(node *document.Node) (*Preset, error) {
	if name := nodeName(node); name != "session" {
		return nil, structureErrorf(name, "unexpected top-level node %q, want \"session\"", name)
	}

	name, ok := stringProp(node, "name")
	if !ok || strings.TrimSpace(name) == "" {
		return nil, structureErrorf("session", "session node is missing a name")
	}
	cwd := DefaultCwd
	if value, ok := stringProp(node, "cwd"); ok {
		cwd = value
	}

	windows, err := parseWindows(node.Children, cwd)
	if err != nil {
		return nil, err
	}
	return &Preset{Name: name, Cwd: cwd, Windows: windows}, nil
}

func parseWindows(nodes []*document.Node, sessionCwd string) ([]Window, error) {
	if len(nodes) == 0 {
		// A bare session still yields one full-size window.
		return []Window{{
			Name:   "main",
			Cwd:    sessionCwd,
			Layout: &Pane{Cwd: sessionCwd, Percent: 100},
		}}, nil
	}

	windows := make([]Window, 0, len(nodes))
	for idx, node := range nodes {
		if name := nodeName(node); name != "window" {
			return nil, structureErrorf(name, "unknown session child node %q", name)
		}

		cwd := sessionCwd
		if value, ok := stringProp(node, "cwd"); ok {
			cwd = value
		}
		name := strconv.Itoa(idx)
		if value, ok := stringProp(node, "name"); ok {
			name = value
		}

		layout, err := parseWindowBody(node.Children, cwd)
		if err != nil {
			return nil, err
		}
		windows = append(windows, Window{Name: name, Cwd: cwd, Layout: layout})
	}
	return windows, nil
}

func parseWindowBody(nodes []*document.Node, windowCwd string) (Node, error) {
	if len(nodes) == 0 {
		return &Pane{Cwd: windowCwd, Percent: 100}, nil
	}
	if len(nodes) != 1 {
		return nil, structureErrorf("window", "window body must hold exactly one root \"split\" or \"pane\" node")
	}
	root, err := parseLayoutNode(nodes[0], windowCwd)
	if err != nil {
		return nil, err
	}
	// The root occupies the whole window regardless of any declared or
	// computed share.
	root.SetSize(100)
	return root, nil
}

func parseLayoutNode(node *document.Node, parentCwd string) (Node, error) {
	switch name := nodeName(node); name {
	case "pane":
		pane := &Pane{Cwd: parentCwd}
		if value, ok := stringProp(node, "cwd"); ok {
			pane.Cwd = value
		}
		if value, ok := stringProp(node, "command"); ok {
			pane.Command = value
		}
		if value, ok := intProp(node, "size"); ok {
			pane.Percent = value
		}
		return pane, nil
	case "split":
		return parseSplit(node, parentCwd)
	default:
		return nil, structureErrorf(name, "unexpected node %q", name)
	}
}

func parseSplit(node *document.Node, parentCwd string) (Node, error) {
	direction := Vertical
	if value, ok := stringProp(node, "direction"); ok {
		parsed, err := ParseDirection(value)
		if err != nil {
			return nil, err
		}
		direction = parsed
	}

	split := &Split{Direction: direction}
	if value, ok := intProp(node, "size"); ok {
		split.Percent = value
	}

	totalExplicit := 0
	var implicit []int
	for idx, child := range node.Children {
		layoutChild, err := parseLayoutNode(child, parentCwd)
		if err != nil {
			return nil, err
		}
		if value, ok := intProp(child, "size"); ok {
			layoutChild.SetSize(value)
			totalExplicit += value
		} else {
			implicit = append(implicit, idx)
		}
		split.Children = append(split.Children, layoutChild)
	}
	if len(split.Children) == 0 {
		return nil, structureErrorf("split", "split nodes must contain children")
	}

	// Children that omit size split whatever the explicit ones leave behind.
	// Truncating division; the remainder is not redistributed, so totals can
	// land under 100. The spawn package works off ratios and tolerates that.
	if len(implicit) > 0 {
		remaining := 100 - totalExplicit
		if totalExplicit >= 100 {
			remaining = 0
		}
		share := remaining / len(implicit)
		for _, idx := range implicit {
			split.Children[idx].SetSize(share)
		}
	}
	return split, nil
}

// ParseDirection maps the KDL direction attribute to a Direction.
func ParseDirection(value string) (Direction, error) {
	switch value {
	case "h", "horizontal":
		return Horizontal, nil
	case "v", "vertical":
		return Vertical, nil
	default:
		return Vertical, structureErrorf("split", "invalid split direction %q", value)
	}
}
