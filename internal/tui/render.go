package tui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Pair is one labelled line of a key/value listing.
type Pair struct {
	Label string
	Value string
}

// Renderer lays out command output. Styles are only applied when styled is
// set; alignment is the same either way.
type Renderer struct {
	styled bool
}

func NewRenderer(styled bool) *Renderer {
	return &Renderer{styled: styled}
}

// RendererFor styles output only when out is a terminal.
func RendererFor(out io.Writer) *Renderer {
	return NewRenderer(IsTerminalWriter(out))
}

func (r *Renderer) render(style lipgloss.Style, text string) string {
	if !r.styled {
		return text
	}
	return style.Render(text)
}

func (r *Renderer) Title(text string) string {
	return r.render(TitleStyle, text)
}

func (r *Renderer) Muted(text string) string {
	return r.render(MutedStyle, text)
}

func (r *Renderer) Error(text string) string {
	return r.render(ErrorStyle, text)
}

// KeyValues renders "label: value" lines with the values aligned.
func (r *Renderer) KeyValues(pairs []Pair) string {
	labelWidth := 0
	for _, pair := range pairs {
		labelWidth = max(labelWidth, lipgloss.Width(pair.Label)+1)
	}

	lines := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		label := pair.Label + ":"
		padding := strings.Repeat(" ", labelWidth-lipgloss.Width(label)+1)
		lines = append(lines, r.render(LabelStyle, label)+padding+r.render(ValueStyle, pair.Value))
	}
	return strings.Join(lines, "\n")
}

// Table renders rows in columns separated by two spaces. Trailing padding is
// trimmed from every line.
func (r *Renderer) Table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = lipgloss.Width(header)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, r.tableLine(headers, widths, HeaderStyle))
	for _, row := range rows {
		lines = append(lines, r.tableLine(row, widths, ValueStyle))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) tableLine(cells []string, widths []int, style lipgloss.Style) string {
	var sb strings.Builder
	pending := 0
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if cell != "" {
			sb.WriteString(strings.Repeat(" ", pending))
			sb.WriteString(r.render(style, cell))
			pending = 0
		}
		pending += width - lipgloss.Width(cell)
		if i < len(widths)-1 {
			pending += 2
		}
	}
	return sb.String()
}
