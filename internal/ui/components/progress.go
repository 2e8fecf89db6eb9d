package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/ui/theme"
)

const minBarCells = 4

// ProgressBar draws Percent (0 to 1) as a row of filled and empty cells,
// optionally prefixed by Label and followed by the percentage.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int

	// Fill colors the filled cells, theme.Secondary when nil.
	Fill color.Color
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width}
}

func (p ProgressBar) View() string {
	var label, suffix string
	if p.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	frac := min(max(p.Percent, 0), 1)
	if p.ShowPercent {
		suffix = theme.Dimmed.Render(fmt.Sprintf("  %3d%%", int(frac*100)))
	}

	cells := max(p.Width-lipgloss.Width(label)-lipgloss.Width(suffix), minBarCells)
	filled := int(float64(cells) * frac)

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	track := lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", cells-filled))

	return label + track + suffix
}
