package ui

import (
	"context"
	"errors"

	"github.com/brk3/habitdash/internal/apiclient"
	"github.com/brk3/habitdash/pkg/habit"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Client is the remote access surface the controllers depend on.
// *apiclient.Client satisfies it.
type Client interface {
	ListHabits(ctx context.Context) ([]habit.Habit, error)
	CreateHabit(ctx context.Context, title string, frequency habit.Frequency) (*habit.Habit, error)
	LogCompletion(ctx context.Context, id int64, opts *habit.LogRequest) (*habit.HabitLog, error)
	GetInsight(ctx context.Context, id int64) (*habit.Insight, error)
	GetDashboardSummary(ctx context.Context) (*habit.DashboardSummary, error)
	GetBriefing(ctx context.Context) (string, error)
	GetDayPlan(ctx context.Context) (string, error)
	UpdateGoals(ctx context.Context, goals string) error
}

var _ Client = (*apiclient.Client)(nil)

// HabitLoggedMsg tells the dashboard a card recorded a completion.
type HabitLoggedMsg struct {
	HabitID int64
}

// AlertMsg asks the app to show a blocking alert until dismissed.
type AlertMsg struct {
	Title   string
	Message string
}

type habitsLoadedMsg struct {
	habits []habit.Habit
	err    error
}

type summaryLoadedMsg struct {
	summary *habit.DashboardSummary
	err     error
}

type habitCreatedMsg struct {
	habit *habit.Habit
	err   error
}

// cardMsg is implemented by every message addressed to one mounted card.
type cardMsg interface {
	cardToken() uuid.UUID
}

type insightLoadedMsg struct {
	token   uuid.UUID
	habitID int64
	insight *habit.Insight
	err     error
}

func (m insightLoadedMsg) cardToken() uuid.UUID { return m.token }

type logDoneMsg struct {
	token   uuid.UUID
	habitID int64
	err     error
}

func (m logDoneMsg) cardToken() uuid.UUID { return m.token }

type briefingMsg struct {
	text string
	err  error
}

type planMsg struct {
	text string
	err  error
}

type goalsSavedMsg struct {
	err error
}

// errorText is the message a user sees for a failed write.
func errorText(err error) string {
	var se *apiclient.ServiceError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}

func alert(title string, err error) tea.Cmd {
	msg := AlertMsg{Title: title, Message: errorText(err)}
	return func() tea.Msg { return msg }
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
