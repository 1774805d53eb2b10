package storage

import (
	"errors"
	"time"

	"github.com/brk3/habitdash/pkg/habit"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrAlreadyLogged means the habit already has a log on that UTC day.
	ErrAlreadyLogged = errors.New("already logged today")
)

// Store is the persistence contract of the reference habit service.
type Store interface {
	CreateHabit(h habit.Habit) (habit.Habit, error)
	GetHabit(id int64) (habit.Habit, error)
	ListHabits() ([]habit.Habit, error)
	UpdateHabit(h habit.Habit) error

	PutLog(l habit.HabitLog) (habit.HabitLog, error)
	// PutDailyLog stores l unless its habit already has a log on the same UTC
	// day, in which case it returns ErrAlreadyLogged. Check and write are atomic.
	PutDailyLog(l habit.HabitLog) (habit.HabitLog, error)
	ListLogs(habitID int64) ([]habit.HabitLog, error)
	ListLogsSince(since time.Time) ([]habit.HabitLog, error)

	GetGoals() (string, error)
	SetGoals(goals string) error

	Close() error
}
