package tui

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/block-survivor/internal/core"
)

func TestPaletteRenderPlain(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	p := NewPalette(r)

	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawTextColored(2, 0, "cd", core.ColorBlue)
	s.DrawText(1, 1, "xy")

	got := p.Render(s)
	if got != s.String() {
		t.Errorf("Render() = %q, want %q", got, s.String())
	}
}

func TestPaletteRenderColored(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	p := NewPalette(r)

	s := core.NewScreen(4, 1)
	s.DrawTextColored(0, 0, "##", core.ColorRed)

	got := p.Render(s)
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("Render() = %q, want escape sequences", got)
	}
	// One run per color: "##" is styled once, the blanks are plain.
	if strings.Count(got, "#") != 2 || !strings.HasSuffix(got, "  ") {
		t.Errorf("Render() = %q", got)
	}
}
