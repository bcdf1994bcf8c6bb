package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

type fixedWidget struct{ text string }

func (w fixedWidget) Render(width, height int) string {
	return w.text
}

func TestHStackRespectsRatios(t *testing.T) {
	h := HStack{Widgets: []Widget{fixedWidget{"A"}, fixedWidget{"B"}}, Ratios: []float64{0.75, 0.25}, Gap: 1}
	out := h.Render(21, 2)
	line := strings.Split(out, "\n")[0]
	if ansi.StringWidth(line) != 21 {
		t.Fatalf("line width = %d, want 21", ansi.StringWidth(line))
	}
	if idx := strings.Index(line, "B"); idx != 16 {
		t.Fatalf("second column starts at %d, want 16", idx)
	}
}

func TestVStackSpacing(t *testing.T) {
	v := VStack{Widgets: []Widget{fixedWidget{"top"}, fixedWidget{"bottom"}}, Spacing: 1}
	out := v.Render(20, 6)
	if out != "top\n\nbottom" {
		t.Fatalf("out = %q", out)
	}
}

func TestSplitSizesTreatsNonPositiveRatiosAsOne(t *testing.T) {
	got := splitSizes(9, 3, []float64{0, 1, 1})
	if got[0] != 3 || got[1] != 3 || got[2] != 3 {
		t.Fatalf("sizes = %v, want [3 3 3]", got)
	}
}

func TestTextClips(t *testing.T) {
	out := Text("abcdef\nline2\nline3").Render(3, 2)
	if out != "abc\nlin" {
		t.Fatalf("out = %q", out)
	}
}

func TestPaneFramesContent(t *testing.T) {
	out := ansi.Strip(Pane{Title: "Start", Hint: "enter pick", Content: "hello", Focused: true}.Render(24, 4))
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("line count = %d, want 4", len(lines))
	}
	if !strings.Contains(lines[0], "● Start") {
		t.Fatalf("title row = %q", lines[0])
	}
	if !strings.Contains(lines[1], "hello") {
		t.Fatalf("content row = %q", lines[1])
	}
	if !strings.Contains(lines[3], "enter pick") {
		t.Fatalf("hint row = %q", lines[3])
	}
}
