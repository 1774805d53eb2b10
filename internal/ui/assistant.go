package ui

import (
	"context"
	"strings"

	"github.com/brk3/habitdash/internal/logger"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
)

const briefingPlaceholder = "Ready to conquer the day?"

// Assistant runs the briefing, plan and goals flows. Its lifecycle is
// independent of the dashboard refresh cycle.
type Assistant struct {
	client Client

	briefing        string
	loadingBriefing bool

	plan       string
	hasPlan    bool
	generating bool

	goalsOpen   bool
	savingGoals bool
	goals       textinput.Model
}

func NewAssistant(client Client) *Assistant {
	ti := textinput.New()
	ti.Placeholder = "What are you working towards?"
	ti.Prompt = "Goals: "
	ti.CharLimit = 280
	ti.Cursor.SetMode(cursor.CursorStatic)
	return &Assistant{client: client, goals: ti}
}

func (a *Assistant) Init() tea.Cmd {
	return a.fetchBriefing()
}

func (a *Assistant) Briefing() string     { return a.briefing }
func (a *Assistant) LoadingBriefing() bool { return a.loadingBriefing }
func (a *Assistant) Plan() (string, bool)  { return a.plan, a.hasPlan }
func (a *Assistant) Generating() bool      { return a.generating }
func (a *Assistant) GoalsOpen() bool       { return a.goalsOpen }
func (a *Assistant) GoalsDraft() string    { return a.goals.Value() }
func (a *Assistant) Capturing() bool       { return a.goalsOpen }

// BriefingText is what the briefing panel shows.
func (a *Assistant) BriefingText() string {
	if a.briefing == "" {
		return briefingPlaceholder
	}
	return a.briefing
}

func (a *Assistant) fetchBriefing() tea.Cmd {
	a.loadingBriefing = true
	client := a.client
	return func() tea.Msg {
		text, err := client.GetBriefing(context.Background())
		return briefingMsg{text: text, err: err}
	}
}

// GeneratePlan requests a plan. It does nothing while one is already being
// generated.
func (a *Assistant) GeneratePlan() tea.Cmd {
	if a.generating {
		return nil
	}
	a.generating = true
	client := a.client
	return func() tea.Msg {
		text, err := client.GetDayPlan(context.Background())
		return planMsg{text: text, err: err}
	}
}

func (a *Assistant) ClearPlan() {
	a.plan = ""
	a.hasPlan = false
}

func (a *Assistant) OpenGoals() {
	a.goalsOpen = true
	a.goals.Focus()
}

func (a *Assistant) submitGoals() tea.Cmd {
	if a.savingGoals {
		return nil
	}
	text := strings.TrimSpace(a.goals.Value())
	if text == "" {
		return nil
	}
	a.savingGoals = true
	client := a.client
	return func() tea.Msg {
		return goalsSavedMsg{err: client.UpdateGoals(context.Background(), text)}
	}
}

func (a *Assistant) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case briefingMsg:
		a.loadingBriefing = false
		if msg.err != nil {
			logger.Warn("Failed to fetch briefing", "error", msg.err)
			return nil
		}
		a.briefing = msg.text
		return nil

	case planMsg:
		a.generating = false
		if msg.err != nil {
			logger.Warn("Failed to generate plan", "error", msg.err)
			a.ClearPlan()
			return nil
		}
		a.plan = msg.text
		a.hasPlan = true
		return nil

	case goalsSavedMsg:
		a.savingGoals = false
		if msg.err != nil {
			logger.Warn("Failed to update goals", "error", msg.err)
			return alert("Could not update goals", msg.err)
		}
		logger.Info("Goals updated")
		a.goalsOpen = false
		a.goals.Reset()
		a.goals.Blur()
		return a.fetchBriefing()

	case tea.KeyMsg:
		if a.goalsOpen {
			return a.updateGoals(msg)
		}
		switch {
		case key.Matches(msg, keys.Plan):
			return a.GeneratePlan()
		case key.Matches(msg, keys.ClearPlan):
			a.ClearPlan()
		case key.Matches(msg, keys.Goals):
			a.OpenGoals()
		case key.Matches(msg, keys.Refresh):
			return a.fetchBriefing()
		}
	}
	return nil
}

func (a *Assistant) updateGoals(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Cancel):
		a.goalsOpen = false
		a.goals.Blur()
		return nil
	case key.Matches(msg, keys.Submit):
		return a.submitGoals()
	}
	var cmd tea.Cmd
	a.goals, cmd = a.goals.Update(msg)
	return cmd
}

func (a *Assistant) View(width int, spin string) string {
	wrap := max(width-4, 20)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Daily briefing"))
	if a.loadingBriefing {
		b.WriteString(" " + spin)
	}
	b.WriteString("\n")
	b.WriteString(wordwrap.String(a.BriefingText(), wrap))
	b.WriteString("\n\n")

	if a.goalsOpen {
		b.WriteString(a.goals.View())
		if a.savingGoals {
			b.WriteString(" " + spin)
		}
		b.WriteString("\n\n")
	}

	b.WriteString(titleStyle.Render("Plan"))
	b.WriteString("\n")
	switch {
	case a.generating:
		b.WriteString(spin + " generating your plan")
	case a.hasPlan:
		b.WriteString(wordwrap.String(a.plan, wrap))
	default:
		b.WriteString(dimStyle.Render("Press p to plan your day."))
	}
	return paneStyle.Render(b.String())
}
