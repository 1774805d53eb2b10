package cmd

import (
	"fmt"
	"strings"

	"github.com/brk3/habitdash/internal/logger"
	"github.com/brk3/habitdash/pkg/habit"
	"github.com/spf13/cobra"
)

var (
	logMood       int
	logDifficulty int
)

var logCmd = &cobra.Command{
	Use:   "log <habit>",
	Short: "Record a completion for a habit",
	Long: `The "log" command records that you completed a habit today. The habit may be
given by id, by title or by a fragment of its title.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := resolveHabit(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		opts := &habit.LogRequest{}
		if cmd.Flags().Changed("mood") {
			if logMood < 1 || logMood > 10 {
				return fmt.Errorf("mood must be between 1 and 10")
			}
			opts.MoodScore = &logMood
		}
		if cmd.Flags().Changed("difficulty") {
			if logDifficulty < 1 || logDifficulty > 5 {
				return fmt.Errorf("difficulty must be between 1 and 5")
			}
			opts.DifficultyRating = &logDifficulty
		}

		entry, err := client.LogCompletion(cmd.Context(), h.ID, opts)
		if err != nil {
			return err
		}
		cmd.Printf("Logged %s at %s\n", h.Title, entry.CompletedAt.Local().Format("15:04"))

		// The streak and probability move with the log; show the fresh values.
		in, err := client.GetInsight(cmd.Context(), h.ID)
		if err != nil {
			logger.Warn("Failed to refresh insight after log", "habit_id", h.ID, "error", err)
			return nil
		}
		cmd.Printf("Success probability now %s\n", probability(in.SuccessProbability))
		return nil
	},
}

func init() {
	logCmd.Flags().IntVar(&logMood, "mood", 0, "how you felt, 1 to 10")
	logCmd.Flags().IntVar(&logDifficulty, "difficulty", 0, "how hard it was, 1 to 5")
	rootCmd.AddCommand(logCmd)
}
