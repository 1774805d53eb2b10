// Package nudge warns the user about habits that are likely to be missed.
package nudge

import (
	"context"
	"fmt"

	"github.com/brk3/habitdash/internal/logger"
	"github.com/brk3/habitdash/pkg/habit"
)

type Notifier interface {
	SendNudge(ctx context.Context, habits []habit.HabitHealth) error
}

// AtRiskHabits returns the summary's at-risk habits whose success probability
// is at or below threshold, lowest first.
func AtRiskHabits(ctx context.Context, q Querier, threshold float64) ([]habit.HabitHealth, error) {
	summary, err := q.GetDashboardSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch dashboard summary: %w", err)
	}
	var out []habit.HabitHealth
	for _, h := range summary.AtRisk {
		if h.SuccessProbability <= threshold {
			out = append(out, h)
		}
	}
	return out, nil
}

// Run sends a single nudge covering every qualifying habit and reports how
// many were included. Nothing is sent when no habit qualifies.
func Run(ctx context.Context, q Querier, n Notifier, threshold float64) (int, error) {
	habits, err := AtRiskHabits(ctx, q, threshold)
	if err != nil {
		return 0, err
	}
	if len(habits) == 0 {
		logger.Info("No habits at risk, skipping nudge", "threshold", threshold)
		return 0, nil
	}
	if err := n.SendNudge(ctx, habits); err != nil {
		return 0, fmt.Errorf("send nudge: %w", err)
	}
	logger.Info("Nudge sent", "habits", len(habits))
	return len(habits), nil
}
