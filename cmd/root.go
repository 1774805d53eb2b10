package cmd

import (
	"net/http"
	"os"

	"github.com/brk3/habitdash/internal/apiclient"
	"github.com/brk3/habitdash/internal/config"
	"github.com/brk3/habitdash/internal/logger"

	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	client *apiclient.Client
)

var rootCmd = &cobra.Command{
	Use:   "habitdash",
	Short: "Track habits and see how likely you are to keep them",
	Long: `
	HabitDash is a client for a habit tracking service. It lists and logs habits,
	shows completion calendars and success predictions, and asks the service's
	assistant for a daily briefing or plan. Run "habitdash dash" for the full-screen
	dashboard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and builds the shared service client. Logs go to
// stderr so command output stays clean for pipes.
func setup() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	logger.InitWriter(os.Stderr, logger.ParseLevel(cfg.LogLevel))

	client = apiclient.New(cfg.APIBaseURL)
	if cfg.RequestTimeout > 0 {
		client.HTTP = &http.Client{Timeout: cfg.RequestTimeout}
	}
	return nil
}
