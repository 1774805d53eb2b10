package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brk3/habitdash/internal/logger"
	"github.com/brk3/habitdash/pkg/habit"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// createForm is the draft of a new habit.
type createForm struct {
	open       bool
	submitting bool
	title      textinput.Model
	frequency  habit.Frequency
}

func newCreateForm() createForm {
	ti := textinput.New()
	ti.Placeholder = "e.g. Read 20 pages"
	ti.Prompt = "Title: "
	ti.CharLimit = 80
	ti.Cursor.SetMode(cursor.CursorStatic)
	return createForm{title: ti, frequency: habit.Daily}
}

func (f *createForm) reset() {
	f.open = false
	f.submitting = false
	f.title.Reset()
	f.title.Blur()
	f.frequency = habit.Daily
}

// Dashboard owns the habit list and the summary. Cards receive habit
// snapshots from it and report back only through messages.
type Dashboard struct {
	client Client
	now    func() time.Time

	habits  []habit.Habit
	summary *habit.DashboardSummary
	cards   []*HabitCard

	selected int
	form     createForm
	width    int
}

func NewDashboard(client Client, now func() time.Time) *Dashboard {
	if now == nil {
		now = time.Now
	}
	return &Dashboard{client: client, now: now, form: newCreateForm()}
}

func (d *Dashboard) Init() tea.Cmd {
	return d.Refresh()
}

// Refresh fetches the habit list and the summary as two independent
// commands; either may fail without holding back the other.
func (d *Dashboard) Refresh() tea.Cmd {
	client := d.client
	return tea.Batch(
		func() tea.Msg {
			habits, err := client.ListHabits(context.Background())
			return habitsLoadedMsg{habits: habits, err: err}
		},
		func() tea.Msg {
			summary, err := client.GetDashboardSummary(context.Background())
			return summaryLoadedMsg{summary: summary, err: err}
		},
	)
}

func (d *Dashboard) Habits() []habit.Habit            { return d.habits }
func (d *Dashboard) Summary() *habit.DashboardSummary { return d.summary }
func (d *Dashboard) Cards() []*HabitCard              { return d.cards }
func (d *Dashboard) FormOpen() bool                   { return d.form.open }
func (d *Dashboard) Draft() (string, habit.Frequency) { return d.form.title.Value(), d.form.frequency }

// Capturing reports whether key presses are text input.
func (d *Dashboard) Capturing() bool { return d.form.open }

func (d *Dashboard) SelectedCard() *HabitCard {
	if d.selected < 0 || d.selected >= len(d.cards) {
		return nil
	}
	return d.cards[d.selected]
}

func (d *Dashboard) cardFor(token uuid.UUID) *HabitCard {
	for _, c := range d.cards {
		if c.Token() == token {
			return c
		}
	}
	return nil
}

func (d *Dashboard) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		return nil

	case habitsLoadedMsg:
		if msg.err != nil {
			logger.Warn("Failed to fetch habits", "error", msg.err)
			return nil
		}
		d.habits = msg.habits
		return d.reconcile()

	case summaryLoadedMsg:
		if msg.err != nil {
			logger.Warn("Failed to fetch dashboard summary", "error", msg.err)
			return nil
		}
		d.summary = msg.summary
		return nil

	case HabitLoggedMsg:
		return d.Refresh()

	case habitCreatedMsg:
		d.form.submitting = false
		if msg.err != nil {
			logger.Warn("Failed to create habit", "error", msg.err)
			return alert("Could not create habit", msg.err)
		}
		logger.Info("Habit created", "habit_id", msg.habit.ID, "title", msg.habit.Title)
		d.form.reset()
		return d.Refresh()

	case cardMsg:
		c := d.cardFor(msg.cardToken())
		if c == nil {
			logger.Debug("Dropping message for unmounted card")
			return nil
		}
		return c.Update(msg)

	case tea.KeyMsg:
		if d.form.open {
			return d.updateForm(msg)
		}
		return d.handleKey(msg)
	}
	return nil
}

// reconcile matches cards to the current habit list by ID. Known habits get
// the new snapshot, new habits mount a card and vanished ones unmount.
func (d *Dashboard) reconcile() tea.Cmd {
	existing := make(map[int64]*HabitCard, len(d.cards))
	for _, c := range d.cards {
		existing[c.Habit().ID] = c
	}

	var cmds []tea.Cmd
	cards := make([]*HabitCard, 0, len(d.habits))
	for _, h := range d.habits {
		if c, ok := existing[h.ID]; ok {
			c.SetHabit(h)
			cards = append(cards, c)
			delete(existing, h.ID)
			continue
		}
		c := NewHabitCard(d.client, h, d.now)
		cmds = append(cmds, c.Mount())
		cards = append(cards, c)
	}
	for _, c := range existing {
		c.Unmount()
	}

	d.cards = cards
	d.selected = min(d.selected, max(len(cards)-1, 0))
	return tea.Batch(cmds...)
}

func (d *Dashboard) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Up):
		if d.selected > 0 {
			d.selected--
		}
	case key.Matches(msg, keys.Down):
		if d.selected < len(d.cards)-1 {
			d.selected++
		}
	case key.Matches(msg, keys.New):
		d.form.open = true
		d.form.title.Focus()
	case key.Matches(msg, keys.Refresh):
		return d.Refresh()
	case key.Matches(msg, keys.Log):
		if c := d.SelectedCard(); c != nil {
			return c.Log()
		}
	case key.Matches(msg, keys.ToggleView):
		if c := d.SelectedCard(); c != nil {
			c.ToggleView()
		}
	case key.Matches(msg, keys.PrevMonth):
		if c := d.SelectedCard(); c != nil {
			c.PrevMonth()
		}
	case key.Matches(msg, keys.NextMonth):
		if c := d.SelectedCard(); c != nil {
			c.NextMonth()
		}
	}
	return nil
}

func (d *Dashboard) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Cancel):
		d.form.open = false
		d.form.title.Blur()
		return nil
	case key.Matches(msg, keys.Frequency):
		if d.form.frequency == habit.Daily {
			d.form.frequency = habit.Weekly
		} else {
			d.form.frequency = habit.Daily
		}
		return nil
	case key.Matches(msg, keys.Submit):
		return d.submit()
	}

	var cmd tea.Cmd
	d.form.title, cmd = d.form.title.Update(msg)
	return cmd
}

func (d *Dashboard) submit() tea.Cmd {
	if d.form.submitting {
		return nil
	}
	title := strings.TrimSpace(d.form.title.Value())
	if title == "" {
		return nil
	}
	d.form.submitting = true
	client, frequency := d.client, d.form.frequency
	return func() tea.Msg {
		h, err := client.CreateHabit(context.Background(), title, frequency)
		return habitCreatedMsg{habit: h, err: err}
	}
}

func (d *Dashboard) summaryLine() string {
	if d.summary == nil {
		return dimStyle.Render("Summary unavailable")
	}
	s := d.summary
	line := fmt.Sprintf("%d habits · avg %s · %d active streaks",
		s.TotalHabits, probabilityText(s.AvgSuccessProbability), s.ActiveStreaks)
	if len(s.AtRisk) == 0 {
		return line
	}
	names := make([]string, 0, len(s.AtRisk))
	for _, h := range s.AtRisk {
		names = append(names, h.Title)
	}
	return line + "\n" + dimStyle.Render("At risk: "+strings.Join(names, ", "))
}

func (d *Dashboard) View(width int, spin string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Habits"))
	b.WriteString("\n")
	b.WriteString(d.summaryLine())
	b.WriteString("\n\n")

	if d.form.open {
		b.WriteString(d.form.title.View())
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Frequency: " + string(d.form.frequency)))
		if d.form.submitting {
			b.WriteString(" " + spin)
		}
		b.WriteString("\n\n")
	}

	if len(d.cards) == 0 {
		b.WriteString(dimStyle.Render("No habits yet. Press n to create one."))
		b.WriteString("\n")
	}
	for i, c := range d.cards {
		b.WriteString(c.View(i == d.selected, width-2, spin))
		b.WriteString("\n")
	}
	return paneStyle.Render(strings.TrimRight(b.String(), "\n"))
}
