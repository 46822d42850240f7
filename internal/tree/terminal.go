package tree

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// namedColors maps the CSS color names used by palettes to hex values the
// terminal renderer understands.
var namedColors = map[string]string{
	"black":       "#000000",
	"blue":        "#0000FF",
	"brown":       "#A52A2A",
	"crimson":     "#DC143C",
	"darkgreen":   "#006400",
	"darkmagenta": "#8B008B",
	"darkred":     "#8B0000",
	"gray":        "#808080",
	"green":       "#008000",
	"grey":        "#808080",
	"maroon":      "#800000",
	"navy":        "#000080",
	"olive":       "#808000",
	"orange":      "#FFA500",
	"purple":      "#800080",
	"red":         "#FF0000",
	"teal":        "#008080",
}

// TerminalColor converts a palette entry to a lipgloss color. Hex values
// and ANSI indexes pass through unchanged.
func TerminalColor(c string) lipgloss.Color {
	if hex, ok := namedColors[strings.ToLower(strings.TrimSpace(c))]; ok {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(c)
}

// Styler prints rendered text lines with each name in its node color and
// the guides dimmed.
type Styler struct {
	r *lipgloss.Renderer
}

// NewStyler returns a Styler whose color support is detected from w.
func NewStyler(w io.Writer) *Styler {
	return &Styler{r: lipgloss.NewRenderer(w)}
}

// Lines returns out.Text styled for the terminal.
func (s *Styler) Lines(out Output) []string {
	guide := s.r.NewStyle().Faint(true)
	styled := make([]string, len(out.Text))
	for i, line := range out.Text {
		color := ""
		if i < len(out.Colors) {
			color = out.Colors[i]
		}
		if color == "" {
			styled[i] = guide.Render(line)
			continue
		}
		cut := len(line) - len(strings.TrimLeftFunc(line, isPrefixRune))
		prefix, words := line[:cut], line[cut:]
		if prefix != "" {
			prefix = guide.Render(prefix)
		}
		styled[i] = prefix + s.r.NewStyle().Foreground(TerminalColor(color)).Render(words)
	}
	return styled
}

func isPrefixRune(ch rune) bool {
	return ch == ' ' || isGuide(ch)
}
