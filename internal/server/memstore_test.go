package server

import (
	"slices"
	"sync"
	"time"

	"github.com/brk3/habitdash/internal/storage"
	"github.com/brk3/habitdash/pkg/habit"
)

type memStore struct {
	mu     sync.RWMutex
	habits []habit.Habit
	logs   []habit.HabitLog
	goals  string
}

func newMemStore() *memStore {
	return &memStore{}
}

func (m *memStore) CreateHabit(h habit.Habit) (habit.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h.ID = int64(len(m.habits) + 1)
	m.habits = append(m.habits, h)
	return h, nil
}

func (m *memStore) GetHabit(id int64) (habit.Habit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, h := range m.habits {
		if h.ID == id {
			return h, nil
		}
	}
	return habit.Habit{}, storage.ErrNotFound
}

func (m *memStore) ListHabits() ([]habit.Habit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]habit.Habit{}, m.habits...), nil
}

func (m *memStore) UpdateHabit(h habit.Habit) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.habits {
		if m.habits[i].ID == h.ID {
			m.habits[i] = h
			return nil
		}
	}
	return storage.ErrNotFound
}

func (m *memStore) PutLog(l habit.HabitLog) (habit.HabitLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l.ID = int64(len(m.logs) + 1)
	m.logs = append(m.logs, l)
	return l, nil
}

func (m *memStore) PutDailyLog(l habit.HabitLog) (habit.HabitLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	day := utcDay(l.CompletedAt.Time)
	for _, existing := range m.logs {
		if existing.HabitID == l.HabitID && utcDay(existing.CompletedAt.Time) == day {
			return habit.HabitLog{}, storage.ErrAlreadyLogged
		}
	}
	l.ID = int64(len(m.logs) + 1)
	m.logs = append(m.logs, l)
	return l, nil
}

func (m *memStore) ListLogs(habitID int64) ([]habit.HabitLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []habit.HabitLog
	for _, l := range m.logs {
		if l.HabitID == habitID {
			out = append(out, l)
		}
	}
	slices.SortFunc(out, func(a, b habit.HabitLog) int { return a.CompletedAt.Compare(b.CompletedAt.Time) })
	return out, nil
}

func (m *memStore) ListLogsSince(since time.Time) ([]habit.HabitLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []habit.HabitLog
	for _, l := range m.logs {
		if !l.CompletedAt.Before(since) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memStore) GetGoals() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.goals, nil
}

func (m *memStore) SetGoals(goals string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goals = goals
	return nil
}

func (m *memStore) Close() error {
	return nil
}

var _ storage.Store = (*memStore)(nil)
