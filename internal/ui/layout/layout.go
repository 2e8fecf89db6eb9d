// Package layout draws the frame around every screen: a header bar, the
// screen body, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/ui/theme"
)

// Smallest terminal the frame is drawn in.
const (
	MinWidth  = 60
	MinHeight = 20
)

// bar borders and padding take this many columns.
const barChrome = 4

type KeyHint struct {
	Key         string
	Description string
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage fills the screen with a resize request.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(msg)
}

// RenderHeader shows the game name on the left, the screen title centered,
// and the player's level and score on the right.
func RenderHeader(title string, level, score int, width int) string {
	name := theme.Title.Render("  MathQuest")
	stats := theme.Topic.Render(fmt.Sprintf("Lv %d", level)) + "   " +
		theme.Stat.Render(fmt.Sprintf("✦ %d XP", score))
	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	inner := max(width-barChrome, 0)
	lead := max((inner-lipgloss.Width(mid))/2-lipgloss.Width(name), 1)
	trail := max(inner-lipgloss.Width(name)-lead-lipgloss.Width(mid)-lipgloss.Width(stats), 1)

	return bar(name+pad(lead)+mid+pad(trail)+stats, width)
}

// RenderBanner returns "" when there is no message.
func RenderBanner(message string, width int) string {
	if message == "" {
		return ""
	}
	return theme.Banner.Width(width).Render(fmt.Sprintf("⚠ %s  (x to dismiss)", message))
}

// RenderFooter lists the key hints and right-aligns status.
func RenderFooter(hints []KeyHint, status string, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	var b strings.Builder
	b.WriteString("  ")
	for i, h := range hints {
		if i > 0 {
			b.WriteString("   ")
		}
		b.WriteString(keyStyle.Render(h.Key) + " " + theme.Dimmed.Render(h.Description))
	}
	line := b.String()
	if status != "" {
		line += pad(max(width-barChrome-lipgloss.Width(line)-lipgloss.Width(status), 1)) + status
	}
	return bar(line, width)
}

// RenderFrame stacks header, body and footer, giving the body whatever
// height is left.
func RenderFrame(header, content, footer string, width, height int) string {
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(bodyHeight).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

func pad(n int) string {
	return strings.Repeat(" ", n)
}
