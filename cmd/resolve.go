package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/brk3/habitdash/pkg/habit"
	"github.com/sahilm/fuzzy"
)

// resolveHabit finds the habit a command argument refers to. The argument may
// be a numeric id, an exact title (any case) or a fuzzy fragment of a title.
func resolveHabit(ctx context.Context, arg string) (habit.Habit, error) {
	habits, err := client.ListHabits(ctx)
	if err != nil {
		return habit.Habit{}, err
	}
	return matchHabit(habits, arg)
}

func matchHabit(habits []habit.Habit, arg string) (habit.Habit, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		for _, h := range habits {
			if h.ID == id {
				return h, nil
			}
		}
	}

	titles := make([]string, len(habits))
	for i, h := range habits {
		if strings.EqualFold(h.Title, arg) {
			return h, nil
		}
		titles[i] = h.Title
	}

	matches := fuzzy.Find(arg, titles)
	if len(matches) == 0 {
		return habit.Habit{}, fmt.Errorf("no habit matches %q", arg)
	}
	if len(matches) > 1 && matches[0].Score == matches[1].Score {
		return habit.Habit{}, fmt.Errorf("%q is ambiguous: %s, %s", arg, matches[0].Str, matches[1].Str)
	}
	return habits[matches[0].Index], nil
}
