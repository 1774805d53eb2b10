package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/brk3/habitdash/internal/logger"
	"github.com/brk3/habitdash/pkg/habit"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show dashboard totals and the habits most at risk",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := client.GetDashboardSummary(cmd.Context())
		if err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), s)
		return nil
	},
}

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show the habit list and dashboard summary together",
	Long: `The "overview" command fetches the habit list and the dashboard summary at the
same time. Either half is shown even if the other fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		o := fetchOverview(cmd.Context())
		if o.habitsErr != nil && o.summaryErr != nil {
			return fmt.Errorf("service unavailable: %w", o.habitsErr)
		}

		w := cmd.OutOrStdout()
		if o.summaryErr == nil {
			printSummary(w, o.summary)
			fmt.Fprintln(w)
		}
		if o.habitsErr == nil {
			printHabits(w, o.habits)
		}
		return nil
	},
}

type overview struct {
	habits     []habit.Habit
	habitsErr  error
	summary    *habit.DashboardSummary
	summaryErr error
}

// fetchOverview runs both reads concurrently. Each records its own failure so
// one does not cancel the other.
func fetchOverview(ctx context.Context) overview {
	var (
		o overview
		g errgroup.Group
	)
	g.Go(func() error {
		o.habits, o.habitsErr = client.ListHabits(ctx)
		if o.habitsErr != nil {
			logger.Warn("Failed to list habits", "error", o.habitsErr)
		}
		return nil
	})
	g.Go(func() error {
		o.summary, o.summaryErr = client.GetDashboardSummary(ctx)
		if o.summaryErr != nil {
			logger.Warn("Failed to fetch dashboard summary", "error", o.summaryErr)
		}
		return nil
	})
	_ = g.Wait()
	return o
}

func printSummary(w io.Writer, s *habit.DashboardSummary) {
	fmt.Fprintf(w, "%d habits, %d active streaks, average success %s\n",
		s.TotalHabits, s.ActiveStreaks, probability(s.AvgSuccessProbability))
	if len(s.AtRisk) == 0 {
		fmt.Fprintln(w, "Nothing at risk today.")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 60
	tbl.AddRow(bold("At risk"), bold("Success"), bold("Risk"), bold("Advice"))
	for _, h := range s.AtRisk {
		tbl.AddRow(h.Title, probability(h.SuccessProbability), h.RiskLevel, h.Recommendation)
	}
	fmt.Fprintln(w, tbl)
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(overviewCmd)
}
