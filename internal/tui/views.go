package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/game"
	"github.com/abhisek/mathquest/internal/progress"
	"github.com/abhisek/mathquest/internal/ui/components"
	"github.com/abhisek/mathquest/internal/ui/layout"
	"github.com/abhisek/mathquest/internal/ui/theme"
)

const logo = `  __  __       _   _      ___                  _
 |  \/  | __ _| |_| |__  / _ \ _   _  ___  ___| |_
 | |\/| |/ _' | __| '_ \| | | | | | |/ _ \/ __| __|
 | |  | | (_| | |_| | | | |_| | |_| |  __/\__ \ |_
 |_|  |_|\__,_|\__|_| |_|\__\_\\__,_|\___||___/\__|`

func screenTitle(s game.State) string {
	switch s.Screen {
	case game.ScreenLoading:
		return "Launching"
	case game.ScreenMenu:
		return "Mission Control"
	case game.ScreenPlaying:
		return progress.LevelTopic(s.Progress.Level)
	case game.ScreenDashboard:
		return "Mission Dashboard"
	}
	return ""
}

func keyHints(s game.State) []layout.KeyHint {
	var hints []layout.KeyHint
	switch s.Screen {
	case game.ScreenMenu:
		hints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Tab", Description: "Dashboard"},
		}
	case game.ScreenPlaying:
		if s.Answered() {
			hints = []layout.KeyHint{{Key: "Enter", Description: "Next"}}
		} else {
			hints = []layout.KeyHint{
				{Key: "1-4", Description: "Answer"},
				{Key: "↑↓", Description: "Move"},
				{Key: "Enter", Description: "Submit"},
			}
		}
		hints = append(hints,
			layout.KeyHint{Key: "Tab", Description: "Dashboard"},
			layout.KeyHint{Key: "Esc", Description: "Menu"},
		)
	case game.ScreenDashboard:
		hints = []layout.KeyHint{
			{Key: "Tab", Description: "Play"},
			{Key: "Esc", Description: "Menu"},
		}
	}
	return append(hints, layout.KeyHint{Key: "q", Description: "Quit"})
}

// syncStatus renders the persistence indicator for the footer.
func syncStatus(s game.State) string {
	var parts []string
	if s.Offline {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Warning).Render("offline"))
	}
	switch s.Sync.Status {
	case game.SyncPending:
		parts = append(parts, theme.Dimmed.Render("saving…"))
	case game.SyncSaved:
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Success).Render("✓ saved"))
	case game.SyncFailed:
		label := "✗ unsaved"
		if s.Sync.Temporary {
			label += " (will retry)"
		}
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Error).Render(label))
	}
	return strings.Join(parts, theme.Dimmed.Render(" · "))
}

// center places the block s in the middle of width columns.
func center(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

func (m Model) renderLoading() string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(center(m.width, theme.Title.Render(logo)))
	b.WriteString("\n\n")
	b.WriteString(center(m.width, m.spinner.View()+" "+theme.Dimmed.Render("Contacting mission control...")))
	return b.String()
}

func (m Model) renderMenu() string {
	p := m.state.Progress

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(m.width, theme.Title.Render(logo)))
	b.WriteString("\n\n")
	b.WriteString(center(m.width, theme.Subtitle.Render("A space math adventure")))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("%s %s   %s %s   %s %s",
		theme.Dimmed.Render("Level"), theme.Stat.Render(fmt.Sprint(p.Level)),
		theme.Dimmed.Render("Total XP"), theme.Stat.Render(fmt.Sprint(p.TotalScore)),
		theme.Dimmed.Render("Badges"), theme.Stat.Render(fmt.Sprintf("%d/%d", len(p.Badges), len(progress.Catalog()))),
	)
	b.WriteString(center(m.width, stats))
	b.WriteString("\n")
	b.WriteString(center(m.width, theme.Topic.Render(progress.LevelTopic(p.Level))))
	b.WriteString("\n\n")
	b.WriteString(center(m.width, levelBar(p, 40)))
	b.WriteString("\n\n")
	b.WriteString(m.menu.View(m.width))
	return b.String()
}

// levelBar shows progress toward the next level-up.
func levelBar(p progress.Progress, width int) string {
	if p.Level >= progress.MaxLevel {
		return theme.Stat.Render("★ Max level reached")
	}
	done := p.CorrectAnswers % progress.LevelUpEvery
	bar := components.NewProgressBar(
		fmt.Sprintf("Next level %d/%d", done, progress.LevelUpEvery),
		float64(done)/float64(progress.LevelUpEvery),
		false, width,
	)
	return bar.View()
}

func (m Model) renderPlaying() string {
	s := m.state
	inner := m.width - 4

	var b strings.Builder

	info := theme.Topic.Render("  " + progress.LevelTopic(s.Progress.Level))
	right := theme.Dimmed.Render(fmt.Sprintf("Q %d   streak %d   best %d",
		s.SessionAnswered+boolInt(!s.Answered()), s.Progress.Streak, s.Progress.BestStreak))
	if s.Problem != nil && s.Problem.DifficultyRating > 0 {
		right += theme.Dimmed.Render(fmt.Sprintf("   difficulty %d/10", s.Problem.DifficultyRating))
	}
	gap := inner - lipgloss.Width(info) - lipgloss.Width(right)
	if gap > 0 {
		info += strings.Repeat(" ", gap) + right
	}
	b.WriteString(info)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render("  " + strings.Repeat("─", max(inner-2, 0))))
	b.WriteString("\n\n")

	if s.Generating || s.Problem == nil {
		b.WriteString(center(m.width, m.spinner.View()+" "+theme.Dimmed.Render("Generating problem...")))
		return b.String()
	}

	mc := components.MultiChoice{
		Question:     s.Problem.Question,
		Options:      s.Problem.Options,
		CorrectIndex: s.Problem.CorrectOptionIndex,
		Cursor:       s.Cursor,
		Answered:     s.Answered(),
		ChosenIndex:  -1,
	}
	if s.Feedback != nil {
		mc.ChosenIndex = s.Feedback.ChosenIndex
	}
	b.WriteString(mc.View(m.width))

	if s.Fallback {
		b.WriteString("\n")
		b.WriteString(center(m.width, theme.Hint.Render("practice problem")))
	}

	if s.Feedback != nil {
		b.WriteString("\n")
		b.WriteString(m.renderFeedback(*s.Feedback))
	}
	return b.String()
}

func (m Model) renderFeedback(fb game.Feedback) string {
	s := m.state
	var lines []string

	if fb.Correct {
		lines = append(lines, theme.Correct.Render(fmt.Sprintf("✓ Correct!  +%d XP", fb.PointsEarned)))
	} else {
		lines = append(lines, theme.Incorrect.Render("✗ Incorrect.  The answer was "+s.Problem.CorrectOption()))
	}

	if fb.LeveledUp {
		lines = append(lines, theme.Stat.Render(fmt.Sprintf("🚀 Level up! Welcome to level %d", s.Progress.Level)))
	}
	for _, id := range fb.NewBadges {
		lines = append(lines, badgeStyle(id).Render(fmt.Sprintf("%s Badge unlocked: %s", id.Icon(), id.DisplayName())))
	}

	if fb.Explaining {
		lines = append(lines, m.spinner.View()+" "+theme.Dimmed.Render("Thinking..."))
	} else if fb.Explanation != "" {
		lines = append(lines, lipgloss.NewStyle().
			Width(min(m.width-8, 72)).
			Foreground(theme.Text).
			Render(fb.Explanation))
	}

	lines = append(lines, "", components.Button{Label: "Next problem", Active: true}.View())

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(center(m.width, l))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderDashboard() string {
	s := m.state
	p := s.Progress
	barWidth := min(m.width-8, 50)

	var b strings.Builder
	b.WriteString("\n")

	stat := func(label string, value any) string {
		return fmt.Sprintf("%s %s", theme.Dimmed.Render(fmt.Sprintf("%-18s", label)), theme.Stat.Render(fmt.Sprint(value)))
	}

	statsCard := theme.Card.Render(strings.Join([]string{
		theme.Title.Render("Pilot Stats"),
		"",
		stat("Level", fmt.Sprintf("%d (%s)", p.Level, progress.LevelTopic(p.Level))),
		stat("Total XP", p.TotalScore),
		stat("Problems solved", p.ProblemsSolved),
		stat("Correct answers", p.CorrectAnswers),
		stat("Streak", p.Streak),
		stat("Best streak", p.BestStreak),
		stat("This session", fmt.Sprintf("%d/%d", s.SessionCorrect, s.SessionAnswered)),
		"",
		components.NewProgressBar("Accuracy", p.Accuracy(), true, barWidth).View(),
		levelBar(p, barWidth),
	}, "\n"))
	badgeLines := []string{theme.Title.Render("Badges"), ""}
	for _, def := range progress.Catalog() {
		if p.HasBadge(def.ID) {
			badgeLines = append(badgeLines, fmt.Sprintf("%s %s  %s",
				def.Icon,
				badgeStyle(def.ID).Render(def.Name),
				theme.Dimmed.Render(def.Description)))
		} else {
			badgeLines = append(badgeLines, theme.BadgeLocked.Render(fmt.Sprintf("🔒 %s  %s", def.Name, def.Description)))
		}
	}
	badgesCard := theme.Card.Render(strings.Join(badgeLines, "\n"))

	if m.width >= 120 {
		b.WriteString(center(m.width, lipgloss.JoinHorizontal(lipgloss.Top, statsCard, "  ", badgesCard)))
	} else {
		b.WriteString(center(m.width, statsCard))
		b.WriteString("\n")
		b.WriteString(center(m.width, badgesCard))
	}
	return b.String()
}

func badgeStyle(id progress.BadgeID) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	if def, ok := progress.LookupBadge(id); ok {
		return style.Foreground(lipgloss.Color(def.Color))
	}
	return style.Foreground(theme.Accent)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
