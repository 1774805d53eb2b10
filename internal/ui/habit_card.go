package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brk3/habitdash/internal/calendar"
	"github.com/brk3/habitdash/internal/logger"
	"github.com/brk3/habitdash/pkg/habit"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/muesli/reflow/wordwrap"
)

type cardPhase int

const (
	phaseLoadingInsight cardPhase = iota
	phaseReady
	phaseLogging
)

type viewMode int

const (
	weekView viewMode = iota
	monthView
)

// HabitCard is the per-habit controller. It owns the insight lifecycle and
// the log-then-refresh sequence for one habit. The habit snapshot itself
// belongs to the dashboard and is only replaced through SetHabit.
type HabitCard struct {
	client Client
	now    func() time.Time

	habit   habit.Habit
	insight *habit.Insight
	phase   cardPhase
	mode    viewMode
	nav     *calendar.Navigator

	// token identifies the current mount; alive is cleared on unmount so late
	// results are dropped.
	token uuid.UUID
	alive bool
}

func NewHabitCard(client Client, h habit.Habit, now func() time.Time) *HabitCard {
	return &HabitCard{
		client: client,
		now:    now,
		habit:  h,
		nav:    calendar.NewNavigator(now()),
	}
}

// Mount starts a new lifetime and issues the initial insight fetch.
func (c *HabitCard) Mount() tea.Cmd {
	c.token = uuid.New()
	c.alive = true
	c.phase = phaseLoadingInsight
	return c.fetchInsight()
}

// Unmount ends the lifetime. Anything still in flight is discarded on arrival.
func (c *HabitCard) Unmount() {
	c.alive = false
}

func (c *HabitCard) Mounted() bool           { return c.alive }
func (c *HabitCard) Token() uuid.UUID        { return c.token }
func (c *HabitCard) Habit() habit.Habit      { return c.habit }
func (c *HabitCard) Insight() *habit.Insight { return c.insight }

// SetHabit replaces the snapshot after a dashboard refresh. Insight and view
// mode are kept.
func (c *HabitCard) SetHabit(h habit.Habit) {
	c.habit = h
}

func (c *HabitCard) DisplayProbability() float64 {
	return habit.DisplayProbability(c.habit, c.insight)
}

func (c *HabitCard) Bucket() habit.Bucket {
	return habit.BucketFor(c.DisplayProbability())
}

func (c *HabitCard) Loading() bool { return c.phase == phaseLoadingInsight }
func (c *HabitCard) Logging() bool { return c.phase == phaseLogging }

func (c *HabitCard) fetchInsight() tea.Cmd {
	client, token, id := c.client, c.token, c.habit.ID
	return func() tea.Msg {
		in, err := client.GetInsight(context.Background(), id)
		return insightLoadedMsg{token: token, habitID: id, insight: in, err: err}
	}
}

// Log records a completion for today. It is ignored unless the card is
// Ready, so repeated presses while a log is in flight send nothing.
func (c *HabitCard) Log() tea.Cmd {
	if !c.alive || c.phase != phaseReady {
		return nil
	}
	c.phase = phaseLogging
	client, token, id := c.client, c.token, c.habit.ID
	return func() tea.Msg {
		_, err := client.LogCompletion(context.Background(), id, nil)
		return logDoneMsg{token: token, habitID: id, err: err}
	}
}

func (c *HabitCard) ToggleView() {
	if c.mode == weekView {
		c.mode = monthView
	} else {
		c.mode = weekView
	}
}

func (c *HabitCard) PrevMonth() {
	if c.mode == monthView {
		c.nav.Prev()
	}
}

func (c *HabitCard) NextMonth() {
	if c.mode == monthView {
		c.nav.Next()
	}
}

// Update applies a message addressed to this card.
func (c *HabitCard) Update(msg tea.Msg) tea.Cmd {
	cm, ok := msg.(cardMsg)
	if !ok || !c.alive || cm.cardToken() != c.token {
		return nil
	}

	switch msg := msg.(type) {
	case insightLoadedMsg:
		if c.phase == phaseLoadingInsight {
			c.phase = phaseReady
		}
		if msg.err != nil {
			logger.Warn("Failed to fetch insight", "habit_id", msg.habitID, "error", msg.err)
			return nil
		}
		c.insight = msg.insight
		return nil

	case logDoneMsg:
		if msg.err != nil {
			c.phase = phaseReady
			logger.Warn("Failed to log habit", "habit_id", msg.habitID, "error", msg.err)
			return alert("Could not log "+c.habit.Title, msg.err)
		}
		logger.Info("Habit logged", "habit_id", msg.habitID)
		c.phase = phaseLoadingInsight
		return tea.Batch(c.fetchInsight(), emit(HabitLoggedMsg{HabitID: msg.habitID}))
	}
	return nil
}

func percent(p float64) string {
	return fmt.Sprintf("%.0f%%", p*100)
}

func (c *HabitCard) View(selected bool, width int, spin string) string {
	p := c.DisplayProbability()
	accent := paletteFor(c.Bucket()).Accent

	var b strings.Builder
	title := headingStyle.Render(c.habit.Title)
	fmt.Fprintf(&b, "%s  %s %s\n", title, probabilityText(p), probabilityBadge(p))
	fmt.Fprintf(&b, "%s\n", dimStyle.Render(fmt.Sprintf("%s · streak %d", c.habit.Frequency, c.habit.CurrentStreak)))

	switch c.phase {
	case phaseLoadingInsight:
		fmt.Fprintf(&b, "%s loading insight\n", spin)
	case phaseLogging:
		fmt.Fprintf(&b, "%s logging\n", spin)
	}

	if c.insight != nil {
		line := fmt.Sprintf("%s risk: %s", c.insight.RiskLevel, c.insight.Recommendation)
		b.WriteString(dimStyle.Render(wordwrap.String(line, max(width-4, 20))))
		b.WriteString("\n")
	}

	completions := c.insight.Completions()
	if c.mode == weekView {
		b.WriteString(renderWeek(calendar.WeekWindow(c.now(), completions, string(accent))))
	} else {
		b.WriteString(renderMonth(c.nav.Grid(completions, string(accent))))
	}

	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}

func renderWeek(w calendar.Window) string {
	done := lipgloss.NewStyle().Foreground(lipgloss.Color(w.Accent))
	today := lipgloss.NewStyle().Underline(true)

	labels := make([]string, 0, len(w.Days))
	marks := make([]string, 0, len(w.Days))
	for _, d := range w.Days {
		label := d.Label
		if d.IsToday {
			label = today.Render(label)
		}
		labels = append(labels, label)

		mark := dimStyle.Render(" ○ ")
		if d.Completed {
			mark = done.Render(" ● ")
		}
		marks = append(marks, mark)
	}
	return strings.Join(labels, " ") + "\n" + strings.Join(marks, " ") + "\n"
}

func renderMonth(g calendar.Grid) string {
	done := lipgloss.NewStyle().Foreground(lipgloss.Color(g.Accent)).Bold(true)

	var b strings.Builder
	b.WriteString(headingStyle.Render(g.Month.Format("January 2006")))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Mo Tu We Th Fr Sa Su"))
	b.WriteString("\n")
	for week := range g.Weeks() {
		cells := make([]string, 0, len(week))
		for _, d := range week {
			cell := fmt.Sprintf("%2d", d.Date.Day())
			switch {
			case d.Completed:
				cell = done.Render(cell)
			case !d.InMonth:
				cell = dimStyle.Render(cell)
			}
			cells = append(cells, cell)
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteString("\n")
	}
	return b.String()
}
