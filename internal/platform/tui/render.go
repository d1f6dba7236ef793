package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mazechase/internal/core"
)

func fg(code string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

// palette is indexed by core.Color. Maze walls use bright blue, the four
// ghosts red, pink, cyan and orange, frightened ghosts blue.
var palette = [...]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           fg("9"),
	core.ColorYellow:        fg("11"),
	core.ColorBlue:          fg("21"),
	core.ColorCyan:          fg("14"),
	core.ColorWhite:         fg("7"),
	core.ColorBrightBlue:    fg("12"),
	core.ColorBrightMagenta: fg("13"),
	core.ColorBrightWhite:   fg("15"),
	core.ColorOrange:        fg("208"),
	core.ColorPink:          fg("218"),
	core.ColorGray:          fg("245"),
}

func styleOf(c core.Color) lipgloss.Style {
	if int(c) < len(palette) {
		return palette[c]
	}
	return palette[core.ColorDefault]
}

// RenderScreen turns the screen buffer into terminal lines. Each run of
// cells sharing a color gets a single style.
func RenderScreen(s *core.Screen) string {
	lines := make([]string, s.Height())
	run := make([]rune, 0, s.Width())
	for y := range lines {
		var line strings.Builder
		color := core.ColorDefault
		run = run[:0]
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != color && len(run) > 0 {
				line.WriteString(styleOf(color).Render(string(run)))
				run = run[:0]
			}
			color = cell.Color
			run = append(run, cell.Rune)
		}
		if len(run) > 0 {
			line.WriteString(styleOf(color).Render(string(run)))
		}
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}
