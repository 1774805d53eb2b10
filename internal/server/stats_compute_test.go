package server

import (
	"testing"

	"github.com/brk3/habitdash/pkg/habit"
)

func logsOn(days ...int) []habit.HabitLog {
	logs := make([]habit.HabitLog, 0, len(days))
	for _, d := range days {
		logs = append(logs, habit.HabitLog{CompletedAt: habit.NewTimestamp(fixedNow.AddDate(0, 0, -d))})
	}
	return logs
}

func TestComputeStreaks(t *testing.T) {
	tests := []struct {
		name             string
		logs             []habit.HabitLog
		current, longest int
	}{
		{"no logs", nil, 0, 0},
		{"today only", logsOn(0), 1, 1},
		{"yesterday keeps streak alive", logsOn(1, 2), 2, 2},
		{"gap breaks current", logsOn(3, 4, 5), 0, 3},
		{"current shorter than longest", logsOn(0, 1, 5, 6, 7, 8), 2, 4},
		{"same day counted once", append(logsOn(0, 1), logsOn(0)...), 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, longest := computeStreaks(tt.logs, fixedNow)
			if current != tt.current || longest != tt.longest {
				t.Errorf("expected %d/%d, got %d/%d", tt.current, tt.longest, current, longest)
			}
		})
	}
}
