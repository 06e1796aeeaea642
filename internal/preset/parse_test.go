package preset

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func mustParse(t *testing.T, src string) Presets {
	t.Helper()
	presets, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return presets
}

func TestParseBareSession(t *testing.T) {
	presets := mustParse(t, `session name="solo" cwd="~/work"`)
	p, ok := presets["solo"]
	if !ok {
		t.Fatalf("preset %q missing, got %v", "solo", presets.Names())
	}
	if p.Cwd != "~/work" {
		t.Fatalf("Cwd = %q", p.Cwd)
	}
	if len(p.Windows) != 1 {
		t.Fatalf("Windows = %d, want 1", len(p.Windows))
	}
	window := p.Windows[0]
	if window.Name != "main" || window.Cwd != "~/work" {
		t.Fatalf("window = %+v", window)
	}
	pane, ok := window.Layout.(*Pane)
	if !ok {
		t.Fatalf("layout = %T, want *Pane", window.Layout)
	}
	if pane.Cwd != "~/work" || pane.Command != "" || pane.Percent != 100 {
		t.Fatalf("pane = %+v", pane)
	}
}

func TestParseDefaultCwd(t *testing.T) {
	presets := mustParse(t, `session name="bare"`)
	if got := presets["bare"].Cwd; got != "~" {
		t.Fatalf("Cwd = %q, want ~", got)
	}
}

func TestParsePropertiesAndImplicitRemainder(t *testing.T) {
	presets := mustParse(t, `
session name="foo" cwd="~" {
    window name="main" cwd="~/proj" {
        split direction="h" {
            pane size=30 command="nvim"
            pane command="echo done"
        }
    }
}`)
	p, ok := presets["foo"]
	if !ok {
		t.Fatalf("preset %q missing, got %v", "foo", presets.Names())
	}
	window := p.Windows[0]
	if window.Name != "main" || window.Cwd != "~/proj" {
		t.Fatalf("window = %+v", window)
	}
	split, ok := window.Layout.(*Split)
	if !ok {
		t.Fatalf("layout = %T, want *Split", window.Layout)
	}
	if split.Direction != Horizontal || split.Percent != 100 {
		t.Fatalf("split = %+v, want horizontal at 100", split)
	}
	if len(split.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(split.Children))
	}
	first := split.Children[0].(*Pane)
	if first.Percent != 30 || first.Command != "nvim" {
		t.Fatalf("first pane = %+v, want size 30 running nvim", first)
	}
	// The unsized sibling absorbs the remaining 70.
	second := split.Children[1].(*Pane)
	if second.Percent != 70 || second.Command != "echo done" {
		t.Fatalf("second pane = %+v, want size 70", second)
	}
}

func TestParseImplicitSizeDistribution(t *testing.T) {
	presets := mustParse(t, `
session name="x" {
    window name="w" {
        split direction="h" {
            pane size=33
            pane command="nvim"
            pane size=33
        }
    }
}`)
	split, ok := presets["x"].Windows[0].Layout.(*Split)
	if !ok {
		t.Fatalf("layout = %T, want *Split", presets["x"].Windows[0].Layout)
	}
	sizes := make([]int, 0, len(split.Children))
	for _, child := range split.Children {
		sizes = append(sizes, child.Size())
	}
	if !reflect.DeepEqual(sizes, []int{33, 34, 33}) {
		t.Fatalf("child sizes = %v, want [33 34 33]", sizes)
	}
}

func TestParseTruncationLeavesTotalUnder100(t *testing.T) {
	// 100/3 truncates to 33 per child; the remainder is not redistributed.
	presets := mustParse(t, `
session name="x" {
    window {
        split {
            pane
            pane
            pane
        }
    }
}`)
	split := presets["x"].Windows[0].Layout.(*Split)
	total := 0
	for _, child := range split.Children {
		if child.Size() != 33 {
			t.Fatalf("child size = %d, want 33", child.Size())
		}
		total += child.Size()
	}
	if total != 99 {
		t.Fatalf("total = %d, want 99", total)
	}
}

func TestParseRootSizeForcedTo100(t *testing.T) {
	presets := mustParse(t, `
session name="x" {
    window {
        split direction="v" size=40 {
            pane size=50
            pane size=50
        }
    }
}`)
	if got := presets["x"].Windows[0].Layout.Size(); got != 100 {
		t.Fatalf("root size = %d, want 100", got)
	}
}

func TestParseExplicitOversubscriptionClampsRemaining(t *testing.T) {
	presets := mustParse(t, `
session name="x" {
    window {
        split {
            pane size=70
            pane size=50
            pane
        }
    }
}`)
	split := presets["x"].Windows[0].Layout.(*Split)
	if got := split.Children[2].Size(); got != 0 {
		t.Fatalf("implicit child size = %d, want 0", got)
	}
}

func TestParseUnknownWindowNode(t *testing.T) {
	_, err := Parse([]byte(`
session name="x" {
    window {
        foo {
            pane
        }
    }
}`))
	if err == nil {
		t.Fatal("Parse() expected error")
	}
	if !strings.Contains(err.Error(), "foo") {
		t.Fatalf("error %q does not name the offending node", err)
	}
	var structErr *StructureError
	if !errors.As(err, &structErr) || structErr.Node != "foo" {
		t.Fatalf("error = %#v, want StructureError{Node: foo}", err)
	}
}

func TestParseUnknownSessionChild(t *testing.T) {
	_, err := Parse([]byte(`session name="x" { banana }`))
	if err == nil || !strings.Contains(err.Error(), "banana") {
		t.Fatalf("error = %v, want one naming banana", err)
	}
}

func TestParseEmptySplit(t *testing.T) {
	_, err := Parse([]byte(`session name="x" { window { split } }`))
	if err == nil || !strings.Contains(err.Error(), "split") {
		t.Fatalf("error = %v, want empty-split error", err)
	}
}

func TestParseMissingSessionName(t *testing.T) {
	if _, err := Parse([]byte(`session cwd="~"`)); err == nil {
		t.Fatal("Parse() expected error for missing session name")
	}
}

func TestParseTopLevelNodeMustBeSession(t *testing.T) {
	_, err := Parse([]byte(`window name="w"`))
	if err == nil || !strings.Contains(err.Error(), "window") {
		t.Fatalf("error = %v", err)
	}
}

func TestParseMultipleWindowRoots(t *testing.T) {
	_, err := Parse([]byte(`
session name="x" {
    window {
        pane
        pane
    }
}`))
	if err == nil {
		t.Fatal("Parse() expected error for two window roots")
	}
}

func TestParseDuplicateSessionLastWins(t *testing.T) {
	presets := mustParse(t, `
session name="dup" cwd="~/first"
session name="dup" cwd="~/second"
`)
	if len(presets) != 1 {
		t.Fatalf("len = %d, want 1", len(presets))
	}
	if got := presets["dup"].Cwd; got != "~/second" {
		t.Fatalf("Cwd = %q, want the later session's", got)
	}
}

func TestParseWindowDefaults(t *testing.T) {
	presets := mustParse(t, `
session name="x" cwd="~/proj" {
    window
    window name="named" cwd="~/elsewhere"
}`)
	windows := presets["x"].Windows
	if windows[0].Name != "0" || windows[0].Cwd != "~/proj" {
		t.Fatalf("window 0 = %+v", windows[0])
	}
	if windows[1].Name != "named" || windows[1].Cwd != "~/elsewhere" {
		t.Fatalf("window 1 = %+v", windows[1])
	}
}

func TestParseDeterministic(t *testing.T) {
	src := `
session name="b" {
    window name="w" {
        split direction="h" {
            pane size=30 command="nvim"
            split direction="v" {
                pane
                pane command="echo done"
            }
        }
    }
}
session name="a" cwd="~/a"
`
	first := mustParse(t, src)
	second := mustParse(t, src)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("parsing the same document twice produced different trees")
	}
	if !reflect.DeepEqual(first.Names(), []string{"a", "b"}) {
		t.Fatalf("Names() = %v", first.Names())
	}
}

func TestParseDirection(t *testing.T) {
	cases := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{in: "h", want: Horizontal},
		{in: "horizontal", want: Horizontal},
		{in: "v", want: Vertical},
		{in: "vertical", want: Vertical},
		{in: "diagonal", wantErr: true},
	}
	for _, tt := range cases {
		got, err := ParseDirection(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseDirection(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("ParseDirection(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestMarkRunning(t *testing.T) {
	presets := mustParse(t, `
session name="alpha"
session name="beta"
`)
	presets["beta"].Running = true

	presets.MarkRunning([]string{"alpha", "unrelated"})
	if !presets["alpha"].Running {
		t.Fatal("alpha should be running")
	}
	if presets["beta"].Running {
		t.Fatal("beta should have been cleared")
	}
}
