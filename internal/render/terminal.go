package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dgallion1/annoview/internal/palette"
	"github.com/dgallion1/annoview/internal/webanno"
)

// Terminal writes doc as styled text. Colors are only emitted when w is a
// terminal that supports them. width <= 0 disables wrapping.
func Terminal(w io.Writer, doc *webanno.Document, opts Options, width int) error {
	r := lipgloss.NewRenderer(w)
	heading := r.NewStyle().Bold(true)
	text := r.NewStyle().Italic(true)
	line := r.NewStyle()
	if width > 0 {
		line = line.Width(width)
		text = text.Width(width)
	}

	views := View(doc, opts)
	if len(views) == 0 {
		_, err := fmt.Fprintln(w, "No annotation data found in the selected file")
		return err
	}

	var b strings.Builder
	for _, v := range views {
		b.WriteString(heading.Render(fmt.Sprintf("Text Section %d", v.Index)))
		b.WriteString("\n")
		b.WriteString(text.Render(v.Text))
		b.WriteString("\n")

		parts := make([]string, 0, len(v.Tokens))
		for _, t := range v.Tokens {
			parts = append(parts, terminalToken(r, t))
		}
		b.WriteString(line.Render(strings.Join(parts, " ")))
		b.WriteString("\n\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func terminalToken(r *lipgloss.Renderer, t Token) string {
	if !t.Highlighted() {
		return t.Text
	}
	span := r.NewStyle().
		Background(lipgloss.Color(t.Background)).
		Foreground(lipgloss.Color(hexColor(t.Foreground))).
		Render(t.Text)
	label := r.NewStyle().Faint(true).Render("[" + t.Label + "]")
	return span + label
}

// TerminalLegend writes the color legend.
func TerminalLegend(w io.Writer) error {
	r := lipgloss.NewRenderer(w)
	heading := r.NewStyle().Bold(true)

	var b strings.Builder
	for _, g := range palette.Legend() {
		b.WriteString(heading.Render(g.Title))
		b.WriteString("\n")
		for _, it := range g.Items {
			swatch := r.NewStyle().Background(lipgloss.Color(it.Color)).Render("  ")
			fmt.Fprintf(&b, "  %s %s %s\n", swatch, it.Type, it.Color)
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
