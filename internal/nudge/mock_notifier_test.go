package nudge

import (
	"context"

	"github.com/brk3/habitdash/pkg/habit"
)

type mockNotifier struct {
	called bool
	habits []habit.HabitHealth
	err    error
}

func (m *mockNotifier) SendNudge(_ context.Context, habits []habit.HabitHealth) error {
	m.called = true
	m.habits = habits
	return m.err
}
