package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/rps-arcade/internal/core"
)

// colorCodes maps core.Color to ANSI colour codes.
var colorCodes = map[core.Color]string{
	core.ColorRed:          "1",
	core.ColorGreen:        "2",
	core.ColorYellow:       "3",
	core.ColorBlue:         "4",
	core.ColorMagenta:      "5",
	core.ColorCyan:         "6",
	core.ColorWhite:        "7",
	core.ColorBrightRed:    "9",
	core.ColorBrightGreen:  "10",
	core.ColorBrightYellow: "11",
	core.ColorBrightWhite:  "15",
	core.ColorGray:         "245",
}

// Palette maps core.Color to lipgloss styles bound to one renderer.
type Palette map[core.Color]lipgloss.Style

// NewPalette builds the styles for r. A nil renderer means the process-wide
// default, which follows lipgloss.SetColorProfile.
func NewPalette(r *lipgloss.Renderer) Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := Palette{core.ColorDefault: r.NewStyle()}
	for c, code := range colorCodes {
		p[c] = r.NewStyle().Foreground(lipgloss.Color(code))
	}
	return p
}

var defaultPalette = NewPalette(nil)

// RenderScreen converts a Screen buffer to a styled string using the
// default renderer.
func RenderScreen(s *core.Screen) string {
	return defaultPalette.Render(s)
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (p Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := p[color]
			if !ok {
				style = p[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
