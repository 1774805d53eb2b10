package nudge

import (
	"context"

	"github.com/brk3/habitdash/pkg/habit"
)

// Querier is the slice of the habit service the nudge needs.
type Querier interface {
	GetDashboardSummary(ctx context.Context) (*habit.DashboardSummary, error)
}
