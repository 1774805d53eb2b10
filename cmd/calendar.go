package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/brk3/habitdash/internal/calendar"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	calendarMonth string
	calendarWeek  bool
)

var calendarCmd = &cobra.Command{
	Use:   "calendar <habit>",
	Short: "Show a habit's completions as a month or week calendar",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := time.Now()
		if calendarMonth != "" {
			m, err := time.ParseInLocation("2006-01", calendarMonth, time.Local)
			if err != nil {
				return fmt.Errorf("month must look like 2025-03: %w", err)
			}
			ref = m
		}

		h, err := resolveHabit(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		in, err := client.GetInsight(cmd.Context(), h.ID)
		if err != nil {
			return err
		}

		mark := accent(in.SuccessProbability)
		fmt.Fprintln(cmd.OutOrStdout(), bold(h.Title))
		if calendarWeek {
			printWeek(cmd.OutOrStdout(), calendar.WeekWindow(time.Now(), in.Completions(), ""), mark)
			return nil
		}
		printMonth(cmd.OutOrStdout(), calendar.MonthGrid(ref, in.Completions(), ""), mark)
		return nil
	},
}

func printMonth(w io.Writer, g calendar.Grid, mark *color.Color) {
	fmt.Fprintln(w, g.Month.Format("January 2006"))
	fmt.Fprintln(w, faint("Mo Tu We Th Fr Sa Su"))
	for week := range g.Weeks() {
		cells := make([]string, len(week))
		for i, d := range week {
			switch {
			case !d.InMonth:
				cells[i] = "  "
			case d.Completed:
				cells[i] = mark.Sprintf("%2d", d.Date.Day())
			default:
				cells[i] = faint(fmt.Sprintf("%2d", d.Date.Day()))
			}
		}
		fmt.Fprintln(w, strings.Join(cells, " "))
	}
}

func printWeek(w io.Writer, win calendar.Window, mark *color.Color) {
	for _, d := range win.Days {
		box := "[ ]"
		if d.Completed {
			box = mark.Sprint("[x]")
		}
		label := fmt.Sprintf("%s %-6s", d.Label, d.FullDate)
		if d.IsToday {
			label = bold(label)
		}
		fmt.Fprintf(w, "%s %s\n", label, box)
	}
	fmt.Fprintf(w, "%d/7 this week\n", win.CompletedCount())
}

func init() {
	calendarCmd.Flags().StringVarP(&calendarMonth, "month", "m", "", "month to show, as YYYY-MM (default current)")
	calendarCmd.Flags().BoolVarP(&calendarWeek, "week", "w", false, "show the current week instead of a month")
	rootCmd.AddCommand(calendarCmd)
}
