package nudge

import (
	"context"

	"github.com/brk3/habitdash/pkg/habit"
)

type mockClient struct {
	summary *habit.DashboardSummary
	err     error
}

func (f *mockClient) GetDashboardSummary(ctx context.Context) (*habit.DashboardSummary, error) {
	return f.summary, f.err
}
