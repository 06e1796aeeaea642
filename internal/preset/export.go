package preset

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type exportPreset struct {
	Name    string         `yaml:"name"`
	Cwd     string         `yaml:"cwd"`
	Windows []exportWindow `yaml:"windows"`
}

type exportWindow struct {
	Name   string `yaml:"name"`
	Cwd    string `yaml:"cwd"`
	Layout any    `yaml:"layout"`
}

// ToYAML renders the preset as YAML for inspection and documentation.
func (p *Preset) ToYAML() (string, error) {
	doc := exportPreset{Name: p.Name, Cwd: p.Cwd}
	for _, window := range p.Windows {
		doc.Windows = append(doc.Windows, exportWindow{
			Name:   window.Name,
			Cwd:    window.Cwd,
			Layout: exportNode(window.Layout),
		})
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("export preset %q: %w", p.Name, err)
	}
	return string(data), nil
}

func exportNode(node Node) any {
	switch n := node.(type) {
	case *Pane:
		out := map[string]any{
			"type": "pane",
			"cwd":  n.Cwd,
			"size": n.Percent,
		}
		if n.Command != "" {
			out["command"] = n.Command
		}
		return out
	case *Split:
		children := make([]any, 0, len(n.Children))
		for _, child := range n.Children {
			children = append(children, exportNode(child))
		}
		return map[string]any{
			"type":      "split",
			"direction": n.Direction.String(),
			"size":      n.Percent,
			"children":  children,
		}
	default:
		return nil
	}
}
