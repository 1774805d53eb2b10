package server

import (
	"slices"
	"time"

	"github.com/brk3/habitdash/pkg/habit"
)

const daySec int64 = 24 * 60 * 60

func utcDay(t time.Time) int64 {
	return t.UTC().Truncate(24*time.Hour).Unix() / daySec
}

// computeStreaks derives the current and longest run of consecutive UTC days
// with a completion. A run is current when it ends today or yesterday.
func computeStreaks(logs []habit.HabitLog, now time.Time) (current, longest int) {
	// collect unique days from logs
	uniq := make(map[int64]struct{}, len(logs))
	for i := range logs {
		uniq[utcDay(logs[i].CompletedAt.Time)] = struct{}{}
	}

	if len(uniq) == 0 {
		return 0, 0
	}

	// convert to slice, sort and reverse
	days := make([]int64, 0, len(uniq))
	for d := range uniq {
		days = append(days, d)
	}
	slices.Sort(days)
	slices.Reverse(days)

	today := utcDay(now)

	streakOngoing := days[0] == today || days[0] == today-1
	longest = 1
	run := 1
	if streakOngoing {
		current = 1
	}

	for i := 0; i < len(days)-1; i++ {
		if days[i]-days[i+1] == 1 {
			run++
			longest = max(longest, run)
			if streakOngoing {
				current++
			}
		} else {
			run = 1
			streakOngoing = false
		}
	}

	return current, longest
}
