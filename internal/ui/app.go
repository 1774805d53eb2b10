// Package ui is the terminal client: a dashboard of habit cards beside an
// assistant pane, driven by a single Bubble Tea update loop.
package ui

import (
	"fmt"
	"time"

	"github.com/brk3/habitdash/internal/theme"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type pane int

const (
	dashboardPane pane = iota
	assistantPane
)

// sideBySideWidth is the narrowest terminal that shows both panes in columns.
const sideBySideWidth = 110

type App struct {
	dashboard *Dashboard
	assistant *Assistant
	theme     *theme.State

	focus pane
	alert *AlertMsg

	spin spinner.Model
	help help.Model

	width, height int
}

func NewApp(client Client, th *theme.State) *App {
	return &App{
		dashboard: NewDashboard(client, time.Now),
		assistant: NewAssistant(client),
		theme:     th,
		spin:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:      help.New(),
	}
}

func (a *App) Dashboard() *Dashboard { return a.dashboard }
func (a *App) Assistant() *Assistant { return a.assistant }
func (a *App) Alert() *AlertMsg      { return a.alert }

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.dashboard.Init(), a.assistant.Init(), a.spin.Tick)
}

func (a *App) focused() interface {
	Update(tea.Msg) tea.Cmd
	Capturing() bool
} {
	if a.focus == assistantPane {
		return a.assistant
	}
	return a.dashboard
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width
		return a, a.dashboard.Update(msg)

	case AlertMsg:
		a.alert = &msg
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}

	return a, tea.Batch(a.dashboard.Update(msg), a.assistant.Update(msg))
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.ForceQuit) {
		return tea.Quit
	}
	// The alert is modal: nothing else sees input until it is dismissed.
	if a.alert != nil {
		if key.Matches(msg, keys.Dismiss) {
			a.alert = nil
		}
		return nil
	}

	p := a.focused()
	if !p.Capturing() {
		switch {
		case key.Matches(msg, keys.Quit):
			return tea.Quit
		case key.Matches(msg, keys.Theme):
			if a.theme != nil {
				a.theme.Toggle()
			}
			return nil
		case key.Matches(msg, keys.SwitchPane):
			if a.focus == dashboardPane {
				a.focus = assistantPane
			} else {
				a.focus = dashboardPane
			}
			return nil
		}
	}
	return p.Update(msg)
}

func (a *App) helpView() string {
	switch {
	case a.alert != nil:
		return a.help.ShortHelpView([]key.Binding{keys.Dismiss})
	case a.focus == dashboardPane && a.dashboard.Capturing():
		return a.help.ShortHelpView(formHelp)
	case a.focus == assistantPane && a.assistant.Capturing():
		return a.help.ShortHelpView(goalsHelp)
	case a.focus == assistantPane:
		return a.help.ShortHelpView(assistantHelp)
	default:
		return a.help.ShortHelpView(dashboardHelp)
	}
}

func (a *App) View() string {
	if a.alert != nil {
		box := alertStyle.Render(fmt.Sprintf("%s\n\n%s\n\n%s",
			headingStyle.Render(a.alert.Title), a.alert.Message, dimStyle.Render("press enter to dismiss")))
		if a.width > 0 && a.height > 0 {
			return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, box)
		}
		return box
	}

	mode := "light"
	if a.theme != nil {
		mode = string(a.theme.Get())
	}
	header := titleStyle.Render("HabitDash") + "  " + dimStyle.Render(mode)

	spin := a.spin.View()
	var body string
	if a.width >= sideBySideWidth {
		left := a.width * 3 / 5
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(left).Render(a.dashboard.View(left, spin)),
			a.assistant.View(a.width-left, spin),
		)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left,
			a.dashboard.View(a.width, spin),
			"",
			a.assistant.View(a.width, spin),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", a.helpView())
}
