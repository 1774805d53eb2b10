package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/brk3/habitdash/internal/storage/bolt"
	"github.com/brk3/habitdash/internal/theme"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|toggle]",
	Short:     "Show or change the dashboard theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(theme.Light), string(theme.Dark), "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openState()
		if err != nil {
			return err
		}
		defer store.Close()

		th := theme.Load(store, theme.TerminalPreference(os.Stdout), nil)
		if len(args) == 1 {
			switch args[0] {
			case "toggle":
				th.Toggle()
			default:
				t, err := theme.Parse(args[0])
				if err != nil {
					return err
				}
				th.Set(t)
			}
		}
		cmd.Println(th.Get())
		return nil
	},
}

// openState opens the client's local preference file, creating its directory
// on first use.
func openState() (*bolt.Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.StatePath), 0o755); err != nil {
		return nil, err
	}
	store, err := bolt.Open(cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("open state %s: %w", cfg.StatePath, err)
	}
	return store, nil
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
