package cmd

import (
	"fmt"
	"io"

	"github.com/brk3/habitdash/pkg/habit"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits",
	Long:  `The "list" command lets you list your tracked habits with their streaks and success probability.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		habits, err := client.ListHabits(cmd.Context())
		if err != nil {
			return err
		}
		printHabits(cmd.OutOrStdout(), habits)
		return nil
	},
}

func printHabits(w io.Writer, habits []habit.Habit) {
	if len(habits) == 0 {
		fmt.Fprintln(w, "No habits yet. Create one with \"habitdash create <title>\".")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("ID"), bold("Title"), bold("Frequency"), bold("Streak"), bold("Best"), bold("Success"))
	for _, h := range habits {
		tbl.AddRow(h.ID, h.Title, h.Frequency, h.CurrentStreak, h.LongestStreak, probability(h.SuccessProbability))
	}
	fmt.Fprintln(w, tbl)
}

func init() {
	rootCmd.AddCommand(listCmd)
}
