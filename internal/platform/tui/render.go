package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/block-survivor/internal/core"
)

// Palette holds one foreground style per screen color, bound to the color
// profile of a single output. SSH sessions each get their own.
type Palette struct {
	styles map[core.Color]lipgloss.Style
}

// NewPalette builds styles from the shared RGB table. The renderer degrades
// them to whatever its output supports.
func NewPalette(r *lipgloss.Renderer) *Palette {
	p := &Palette{styles: make(map[core.Color]lipgloss.Style)}
	for c := core.ColorDefault + 1; c <= core.ColorGray; c++ {
		red, green, blue := c.RGB()
		hex := fmt.Sprintf("#%02x%02x%02x", red, green, blue)
		p.styles[c] = r.NewStyle().Foreground(lipgloss.Color(hex))
	}
	return p
}

var defaultPalette = NewPalette(lipgloss.DefaultRenderer())

// RenderScreen converts a Screen buffer to a styled string for the local terminal.
func RenderScreen(s *core.Screen) string {
	return defaultPalette.Render(s)
}

// Render converts a Screen buffer to a styled string.
// Adjacent cells of the same color share one escape sequence.
func (p *Palette) Render(s *core.Screen) string {
	var sb, run strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	flush := func(c core.Color) {
		if run.Len() == 0 {
			return
		}
		if style, ok := p.styles[c]; ok {
			sb.WriteString(style.Render(run.String()))
		} else {
			sb.WriteString(run.String())
		}
		run.Reset()
	}

	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		current := core.ColorDefault
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != current {
				flush(current)
				current = cell.Color
			}
			run.WriteRune(cell.Rune)
		}
		flush(current)
	}
	return sb.String()
}
