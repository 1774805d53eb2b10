package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/brk3/habitdash/pkg/habit"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var insightCmd = &cobra.Command{
	Use:   "insight <habit>",
	Short: "Show the success prediction and risk factors for a habit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := resolveHabit(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		in, err := client.GetInsight(cmd.Context(), h.ID)
		if err != nil {
			return err
		}
		printInsight(cmd.OutOrStdout(), h, in)
		return nil
	},
}

func printInsight(w io.Writer, h habit.Habit, in *habit.Insight) {
	fmt.Fprintf(w, "%s\n", bold(h.Title))
	fmt.Fprintf(w, "Success probability: %s\n", probability(in.SuccessProbability))
	fmt.Fprintf(w, "Risk: %s (%.2f)\n", in.RiskLevel, in.RiskScore)
	fmt.Fprintf(w, "Streak: %d (best %d)\n", h.CurrentStreak, h.LongestStreak)

	if len(in.Factors) > 0 {
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.Wrap = true
		tbl.MaxColWidth = 60
		tbl.AddRow(bold("Factor"), bold("Impact"), bold("Note"))
		for _, f := range in.Factors {
			tbl.AddRow(f.Factor, fmt.Sprintf("%+.2f", f.Impact), f.Note)
		}
		fmt.Fprintln(w, tbl)
	}
	if in.Recommendation != "" {
		fmt.Fprintf(w, "%s %s\n", faint("Tip:"), in.Recommendation)
	}
	fmt.Fprintln(w, faint("model "+in.ModelVersion))
}

func init() {
	rootCmd.AddCommand(insightCmd)
}
