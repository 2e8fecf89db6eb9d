// Package tui is the terminal shell around the game controller. It turns
// key presses into game intents and renders game.State.
package tui

import (
	"fmt"
	"os"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathquest/internal/game"
	"github.com/abhisek/mathquest/internal/ui/components"
	"github.com/abhisek/mathquest/internal/ui/layout"
	"github.com/abhisek/mathquest/internal/ui/theme"
)

// Model is the root Bubble Tea model.
type Model struct {
	ctrl    *game.Controller
	state   game.State
	initCmd tea.Cmd

	menu    components.Menu
	spinner spinner.Model

	width  int
	height int
}

// New creates the root model. The controller's startup command runs from
// Init.
func New(ctrl *game.Controller) Model {
	state, cmd := ctrl.Init()
	return Model{
		ctrl:    ctrl,
		state:   state,
		initCmd: cmd,
		menu: components.NewMenu([]components.MenuItem{
			{Label: "Start Mission", Msg: game.StartMissionMsg{}},
			{Label: "Mission Dashboard", Msg: game.ToggleDashboardMsg{}},
			{Label: "Quit", Msg: tea.QuitMsg{}},
		}),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(theme.Topic),
		),
	}
}

// State returns the current game state.
func (m Model) State() game.State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.initCmd, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.dispatch(msg)
}

// dispatch hands msg to the controller.
func (m Model) dispatch(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.state, cmd = m.ctrl.Update(m.state, msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "x":
		if m.state.Banner != "" {
			return m.dispatch(game.DismissBannerMsg{})
		}
		return m, nil
	case "tab":
		return m.dispatch(game.ToggleDashboardMsg{})
	case "esc":
		return m.dispatch(game.BackToMenuMsg{})
	}

	switch m.state.Screen {
	case game.ScreenMenu:
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	case game.ScreenPlaying:
		return m.handlePlayingKey(key)
	}
	return m, nil
}

func (m Model) handlePlayingKey(key string) (Model, tea.Cmd) {
	switch key {
	case "up", "k":
		return m.dispatch(game.MoveCursorMsg{Delta: -1})
	case "down", "j":
		return m.dispatch(game.MoveCursorMsg{Delta: 1})
	case "1", "2", "3", "4":
		return m.dispatch(game.AnswerMsg{Index: int(key[0] - '1')})
	case "enter", "space":
		if m.state.CanAnswer() {
			return m.dispatch(game.AnswerMsg{Index: m.state.Cursor})
		}
		return m.dispatch(game.NextProblemMsg{})
	case "n":
		return m.dispatch(game.NextProblemMsg{})
	}
	return m, nil
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.render())
	return v
}

// render composes the frame for the current size.
func (m Model) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	header := layout.RenderHeader(screenTitle(m.state), m.state.Progress.Level, m.state.Progress.TotalScore, m.width)
	footer := layout.RenderFooter(keyHints(m.state), syncStatus(m.state), m.width)

	content := m.renderContent()
	if banner := layout.RenderBanner(m.state.Banner, m.width); banner != "" {
		content = banner + "\n" + content
	}

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m Model) renderContent() string {
	switch m.state.Screen {
	case game.ScreenLoading:
		return m.renderLoading()
	case game.ScreenMenu:
		return m.renderMenu()
	case game.ScreenPlaying:
		return m.renderPlaying()
	case game.ScreenDashboard:
		return m.renderDashboard()
	}
	return ""
}

// Run starts the Bubble Tea program and returns the game state it ended
// with, so the caller can persist what is still unsaved.
func Run(ctrl *game.Controller) (game.State, error) {
	p := tea.NewProgram(New(ctrl))
	final, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
	}
	if m, ok := final.(Model); ok {
		return m.state, err
	}
	return game.State{}, err
}
