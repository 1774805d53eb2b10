package cmd

import (
	"fmt"

	"github.com/brk3/habitdash/internal/nudge"
	"github.com/brk3/habitdash/internal/nudge/resend"

	"github.com/spf13/cobra"
)

var (
	nudgeThreshold float64
	nudgeDesktop   bool
)

var nudgeCmd = &cobra.Command{
	Use:   "nudge",
	Short: "Send a reminder for habits that are likely to slip today",
	Long: `The "nudge" command checks the dashboard summary and sends one reminder listing
every at-risk habit at or below the threshold. It emails through Resend when
HABITDASH_RESEND_API_KEY and HABITDASH_NOTIFY_EMAIL are set, or shows a desktop
notification with --desktop.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("threshold") {
			nudgeThreshold = cfg.Nudge.Threshold
		}
		if nudgeThreshold < 0 || nudgeThreshold > 1 {
			return fmt.Errorf("threshold must be between 0 and 1")
		}
		if nudgeDesktop {
			return nil
		}
		if cfg.Nudge.ResendAPIKey == "" {
			return fmt.Errorf("HABITDASH_RESEND_API_KEY is not set (use --desktop for a local notification)")
		}
		if cfg.Nudge.Email == "" {
			return fmt.Errorf("HABITDASH_NOTIFY_EMAIL is not set")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := sendNudge(cmd)
		if err != nil {
			return err
		}
		if n == 0 {
			cmd.Println("No habits at risk.")
			return nil
		}
		cmd.Printf("Nudged about %d habit(s).\n", n)
		return nil
	},
}

func sendNudge(cmd *cobra.Command) (int, error) {
	var notifier nudge.Notifier
	if nudgeDesktop {
		notifier = nudge.NewDesktopNotifier()
	} else {
		notifier = &resend.ResendNotifier{
			ApiKey: cfg.Nudge.ResendAPIKey,
			Email:  cfg.Nudge.Email,
			From:   cfg.Nudge.From,
		}
	}
	return nudge.Run(cmd.Context(), client, notifier, nudgeThreshold)
}

func init() {
	nudgeCmd.Flags().Float64Var(&nudgeThreshold, "threshold", 0.5, "nudge for habits at or below this success probability")
	nudgeCmd.Flags().BoolVar(&nudgeDesktop, "desktop", false, "show a desktop notification instead of sending email")
	rootCmd.AddCommand(nudgeCmd)
}
