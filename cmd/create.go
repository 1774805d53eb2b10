package cmd

import (
	"fmt"
	"strings"

	"github.com/brk3/habitdash/pkg/habit"
	"github.com/spf13/cobra"
)

var (
	createFrequency   string
	createDifficulty  int
	createDescription string
)

var createCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a habit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.TrimSpace(strings.Join(args, " "))
		if title == "" {
			return fmt.Errorf("title must not be empty")
		}
		freq := habit.Frequency(createFrequency)
		if freq != habit.Daily && freq != habit.Weekly {
			return fmt.Errorf("frequency must be %q or %q", habit.Daily, habit.Weekly)
		}

		h, err := client.CreateHabitWith(cmd.Context(), habit.CreateHabitRequest{
			Title:       title,
			Frequency:   freq,
			Description: createDescription,
			Difficulty:  createDifficulty,
		})
		if err != nil {
			return err
		}
		cmd.Printf("Created habit %d: %s (%s)\n", h.ID, h.Title, h.Frequency)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&createFrequency, "frequency", "f", string(habit.Daily), "daily or weekly")
	createCmd.Flags().IntVarP(&createDifficulty, "difficulty", "d", 0, "difficulty from 1 to 5 (service default when unset)")
	createCmd.Flags().StringVar(&createDescription, "description", "", "optional description")
	rootCmd.AddCommand(createCmd)
}
