// Package theme holds the MathQuest colors and the lipgloss styles built
// from them.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Deep-space palette with bright mission accents.
var (
	Primary   = lipgloss.Color("#6366F1")
	Secondary = lipgloss.Color("#22D3EE")
	Accent    = lipgloss.Color("#FACC15")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Warning   = lipgloss.Color("#F97316")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0B1026")
	Border    = lipgloss.Color("#3730A3")
)

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func strong(c color.Color) lipgloss.Style {
	return fg(c).Bold(true)
}

var (
	Title    = strong(Primary).Align(lipgloss.Center)
	Subtitle = fg(TextDim).Align(lipgloss.Center)
	Hint     = fg(TextDim).Italic(true)
	Topic    = strong(Secondary)
	Stat     = strong(Accent)

	Selected   = strong(Primary)
	Unselected = fg(Text)
	Dimmed     = fg(TextDim)
	Correct    = strong(Success)
	Incorrect  = strong(Error)

	BadgeLocked = fg(TextDim)

	ButtonActive   = strong(Text).Background(Primary).Padding(0, 2)
	ButtonInactive = fg(Text).Padding(0, 2)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Banner = strong(BgDark).Background(Warning).Padding(0, 2)
)
