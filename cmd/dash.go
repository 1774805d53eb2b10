package cmd

import (
	"fmt"
	"os"

	"github.com/brk3/habitdash/internal/logger"
	"github.com/brk3/habitdash/internal/theme"
	"github.com/brk3/habitdash/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var dashCmd = &cobra.Command{
	Use:     "dash",
	Aliases: []string{"ui"},
	Short:   "Open the full-screen habit dashboard",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The dashboard owns the terminal, so diagnostics go to the log file.
		if err := logger.InitFile(logger.ParseLevel(cfg.LogLevel), cfg.LogFile); err != nil {
			return fmt.Errorf("open log file: %w", err)
		}

		store, err := openState()
		if err != nil {
			return err
		}
		defer store.Close()

		th := theme.Load(store, theme.TerminalPreference(os.Stdout), ui.ApplyRenderMode)
		logger.Info("Starting dashboard", "api", cfg.APIBaseURL, "theme", th.Get())

		p := tea.NewProgram(ui.NewApp(client, th), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("dashboard: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashCmd)
}
