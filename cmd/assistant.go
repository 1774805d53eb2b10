package cmd

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

const wrapWidth = 80

var briefingCmd = &cobra.Command{
	Use:   "briefing",
	Short: "Ask the assistant for today's briefing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := client.GetBriefing(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), wordwrap.String(text, wrapWidth))
		return nil
	},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Ask the assistant to plan your day around your habits",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := client.GetDayPlan(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), wordwrap.String(text, wrapWidth))
		return nil
	},
}

var goalsCmd = &cobra.Command{
	Use:   "goals <text>",
	Short: "Tell the assistant what you are working towards",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		goals := strings.TrimSpace(strings.Join(args, " "))
		if goals == "" {
			return fmt.Errorf("goals must not be empty")
		}
		if err := client.UpdateGoals(cmd.Context(), goals); err != nil {
			return err
		}
		cmd.Println("Goals saved.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(briefingCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(goalsCmd)
}
