package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/boulder-daily/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:  lipgloss.NewStyle(),
	core.ColorWall:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorDirt:     lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	core.ColorRock:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
	core.ColorGem:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	core.ColorExit:     lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorExitOpen: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorPlayer:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorEnemy:    lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorHUD:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorAccent:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorAlert:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorMuted:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

var (
	noteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// styleFor returns the style for c, falling back to the default style.
func styleFor(c core.Color) lipgloss.Style {
	if style, ok := colorStyles[c]; ok {
		return style
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one styled run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color
			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(styleFor(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
