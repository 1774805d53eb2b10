package cmd

import (
	"fmt"

	"github.com/brk3/habitdash/pkg/habit"
	"github.com/fatih/color"
)

var (
	bold    = color.New(color.Bold).SprintFunc()
	faint   = color.New(color.Faint).SprintFunc()
	bullets = map[habit.Bucket]*color.Color{
		habit.Positive:   color.New(color.FgGreen),
		habit.Cautionary: color.New(color.FgYellow),
		habit.Negative:   color.New(color.FgRed),
	}
)

func percent(p float64) string {
	return fmt.Sprintf("%.0f%%", p*100)
}

// probability renders p in its bucket's colour.
func probability(p float64) string {
	return bullets[habit.BucketFor(p)].Sprint(percent(p))
}

func accent(p float64) *color.Color {
	return bullets[habit.BucketFor(p)]
}
