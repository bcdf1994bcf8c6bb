package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	paneBorderOff   = lipgloss.Color("#6c7086")
	paneBorderOn    = lipgloss.Color("#89b4fa")
	paneBorderFocus = lipgloss.Color("#a6e3a1")
	paneText        = lipgloss.Color("#cdd6f4")
)

// Pane draws content inside a rounded frame with the title set into the top
// border and an optional hint set into the bottom one.
type Pane struct {
	Title    string
	Hint     string
	Content  string
	Selected bool
	Focused  bool
}

func (p Pane) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	width = max(width, 4)
	height = max(height, 3)

	border := paneBorderOff
	prefix := "  "
	switch {
	case p.Focused:
		border = paneBorderFocus
		prefix = "● "
	case p.Selected:
		border = paneBorderOn
		prefix = "▶ "
	}
	borderStyle := lipgloss.NewStyle().Foreground(border)
	titleStyle := lipgloss.NewStyle().Foreground(paneText).Bold(true)

	innerWidth := width - 2
	contentWidth := max(1, innerWidth-2)

	rows := make([]string, 0, height)
	rows = append(rows, borderStyle.Render("╭")+borderLabel(borderStyle, titleStyle, strings.TrimSpace(prefix+p.Title), innerWidth)+borderStyle.Render("╮"))
	lines := strings.Split(p.Content, "\n")
	v := borderStyle.Render("│")
	for i := 0; i < height-2; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		rows = append(rows, v+" "+padRight(line, contentWidth)+" "+v)
	}
	hintStyle := lipgloss.NewStyle().Foreground(paneBorderOff)
	rows = append(rows, borderStyle.Render("╰")+borderLabel(borderStyle, hintStyle, p.Hint, innerWidth)+borderStyle.Render("╯"))
	return strings.Join(rows, "\n")
}

// borderLabel fills a horizontal border of width cells, setting label in it
// one cell from the left.
func borderLabel(border, label lipgloss.Style, text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return border.Render(strings.Repeat("─", width))
	}
	text = " " + text + " "
	if ansi.StringWidth(text) > width-1 {
		text = ansi.Truncate(text, max(0, width-1), "")
	}
	rest := max(0, width-1-ansi.StringWidth(text))
	return border.Render("─") + label.Render(text) + border.Render(strings.Repeat("─", rest))
}
