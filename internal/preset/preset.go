// Package preset holds the declarative session/window/pane layout model and
// the KDL parser that builds it. Parsing is pure: the package never talks to
// a multiplexer, it only produces trees for the spawn package to materialize.
package preset

import (
	"fmt"
	"sort"
)

// DefaultCwd is used when a session omits its working directory. It is kept
// as a literal "~" so the pane's shell performs the expansion.
const DefaultCwd = "~"

// Direction selects the axis a split divides panes along.
type Direction int

const (
	Vertical Direction = iota
	Horizontal
)

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Node is one element of a window's layout tree. Size and SetSize give the
// parser a uniform way to patch computed percentages into either variant;
// neither validates, so a split's children are not guaranteed to sum to 100
// after the truncating distribution pass.
type Node interface {
	Size() int
	SetSize(percent int)
}

// Pane is a leaf node: a single terminal viewport with a working directory
// and an optional command typed into it after creation.
type Pane struct {
	Cwd     string
	Command string
	Percent int
}

func (p *Pane) Size() int           { return p.Percent }
func (p *Pane) SetSize(percent int) { p.Percent = percent }

// Split divides one area into two or more ordered children along an axis.
type Split struct {
	Direction Direction
	Children  []Node
	Percent   int
}

func (s *Split) Size() int           { return s.Percent }
func (s *Split) SetSize(percent int) { s.Percent = percent }

// Window is one multiplexer window holding a layout tree. The root node's
// size is always 100, forced after parsing.
type Window struct {
	Name   string
	Cwd    string
	Layout Node
}

// Preset is a named, reusable session layout definition. Running is owned by
// the surrounding application, which toggles it by diffing live session
// names against preset names; the parser always leaves it false.
type Preset struct {
	Name    string
	Cwd     string
	Windows []Window
	Running bool
}

// Presets maps preset names to their definitions. Within one document a
// later session with a duplicate name silently overwrites the earlier one;
// last wins.
type Presets map[string]*Preset

// Names returns the preset names in sorted order so listings are
// deterministic.
func (p Presets) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MarkRunning clears every Running flag and sets it again for presets whose
// name matches a live session.
func (p Presets) MarkRunning(sessions []string) {
	for _, preset := range p {
		preset.Running = false
	}
	for _, session := range sessions {
		if preset, ok := p[session]; ok {
			preset.Running = true
		}
	}
}

// StructureError reports a preset document whose shape cannot be used:
// an unknown or misplaced node, a missing required attribute, or an empty
// split. It is always fatal to parsing the document.
type StructureError struct {
	Node    string // offending node name, empty when not tied to one node
	Message string
}

func (e *StructureError) Error() string { return e.Message }

func structureErrorf(node, format string, args ...any) *StructureError {
	return &StructureError{Node: node, Message: fmt.Sprintf(format, args...)}
}
