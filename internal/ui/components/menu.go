package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/ui/theme"
)

var menuKeys = struct {
	Up, Down, Choose key.Binding
}{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Choose: key.NewBinding(key.WithKeys("enter")),
}

// MenuItem is one menu entry. Msg is emitted when the item is chosen.
type MenuItem struct {
	Label    string
	Msg      tea.Msg
	Disabled bool
}

// Menu is a vertical list of items navigated with the arrow keys. The
// cursor skips disabled items.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.Selected = m.next(-1, 1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// next returns the first enabled index after from in direction step, or
// -1 when there is none.
func (m Menu) next(from, step int) int {
	for i := from + step; i >= 0 && i < len(m.Items); i += step {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return -1
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, menuKeys.Up):
		if i := m.next(m.Selected, -1); i >= 0 {
			m.Selected = i
		}
	case key.Matches(kmsg, menuKeys.Down):
		if i := m.next(m.Selected, 1); i >= 0 {
			m.Selected = i
		}
	case key.Matches(kmsg, menuKeys.Choose):
		if m.Selected < 0 || m.Selected >= len(m.Items) {
			break
		}
		if item := m.Items[m.Selected]; item.Msg != nil && !item.Disabled {
			return m, func() tea.Msg { return item.Msg }
		}
	}
	return m, nil
}

// View centers each item in width.
func (m Menu) View(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	for i, item := range m.Items {
		line := theme.Dimmed.Render(item.Label)
		if !item.Disabled {
			line = Button{Label: item.Label, Active: i == m.Selected}.View()
		}
		b.WriteString(center.Render(line))
		b.WriteByte('\n')
	}
	return b.String()
}
