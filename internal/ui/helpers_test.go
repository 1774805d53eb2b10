package ui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/brk3/habitdash/internal/apiclient"
	"github.com/brk3/habitdash/pkg/habit"
	tea "github.com/charmbracelet/bubbletea"
)

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func typeText(update func(tea.Msg) tea.Cmd, s string) {
	for _, r := range s {
		update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// drain runs cmd and every command that follows from feeding its messages
// back into update, returning the messages update did not consume.
func drain(t *testing.T, update func(tea.Msg) tea.Cmd, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	var leftovers []tea.Msg
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			t.Fatal("command chain did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case AlertMsg, HabitLoggedMsg:
			leftovers = append(leftovers, msg)
			if next := update(msg); next != nil {
				queue = append(queue, next)
			}
		default:
			queue = append(queue, update(msg))
		}
	}
	return leftovers
}

func alerts(msgs []tea.Msg) []AlertMsg {
	var out []AlertMsg
	for _, m := range msgs {
		if a, ok := m.(AlertMsg); ok {
			out = append(out, a)
		}
	}
	return out
}

var errDown = errors.New("connection refused")

// fakeClient answers from fields and counts calls.
type fakeClient struct {
	mu sync.Mutex

	habits     []habit.Habit
	habitsErr  error
	summary    *habit.DashboardSummary
	summaryErr error
	insights   map[int64]*habit.Insight
	insightErr error
	logErr     error
	createErr  error
	briefing   string
	briefErr   error
	plan       string
	planErr    error
	goalsErr   error

	calls map[string]int
	goals string
}

func newFakeClient() *fakeClient {
	return &fakeClient{insights: map[int64]*habit.Insight{}, calls: map[string]int{}}
}

func (f *fakeClient) count(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
}

func (f *fakeClient) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeClient) ListHabits(context.Context) ([]habit.Habit, error) {
	f.count("list")
	return f.habits, f.habitsErr
}

func (f *fakeClient) CreateHabit(_ context.Context, title string, freq habit.Frequency) (*habit.Habit, error) {
	f.count("create")
	if f.createErr != nil {
		return nil, f.createErr
	}
	h := habit.Habit{ID: int64(len(f.habits) + 1), Title: title, Frequency: freq, SuccessProbability: 0.5}
	f.habits = append(f.habits, h)
	return &h, nil
}

func (f *fakeClient) LogCompletion(context.Context, int64, *habit.LogRequest) (*habit.HabitLog, error) {
	f.count("log")
	if f.logErr != nil {
		return nil, f.logErr
	}
	return &habit.HabitLog{}, nil
}

func (f *fakeClient) GetInsight(_ context.Context, id int64) (*habit.Insight, error) {
	f.count("insight")
	if f.insightErr != nil {
		return nil, f.insightErr
	}
	return f.insights[id], nil
}

func (f *fakeClient) GetDashboardSummary(context.Context) (*habit.DashboardSummary, error) {
	f.count("summary")
	return f.summary, f.summaryErr
}

func (f *fakeClient) GetBriefing(context.Context) (string, error) {
	f.count("briefing")
	return f.briefing, f.briefErr
}

func (f *fakeClient) GetDayPlan(context.Context) (string, error) {
	f.count("plan")
	return f.plan, f.planErr
}

func (f *fakeClient) UpdateGoals(_ context.Context, goals string) error {
	f.count("goals")
	if f.goalsErr == nil {
		f.goals = goals
	}
	return f.goalsErr
}

var fixedNow = time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func serviceError(msg string) error {
	return &apiclient.ServiceError{Op: "test", StatusCode: 409, Message: msg}
}
