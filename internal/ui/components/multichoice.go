package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/ui/theme"
)

// MultiChoice renders a question with numbered options. It holds no input
// state: the cursor and the chosen option come from the caller.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	Cursor       int

	// Answered switches to the reveal view: the correct option in green, a
	// wrong ChosenIndex in red, everything else dimmed.
	Answered    bool
	ChosenIndex int
}

// View renders the question and options.
func (m MultiChoice) View(width int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && !m.Answered {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case m.Answered && i == m.CorrectIndex:
			style = theme.Correct
			line += "  ✓"
		case m.Answered && i == m.ChosenIndex:
			style = theme.Incorrect
			line += "  ✗"
		case m.Answered:
			style = theme.Dimmed
		case i == m.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString("    " + style.Render(line) + "\n")
	}

	return b.String()
}
