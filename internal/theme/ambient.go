package theme

import (
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/muesli/termenv"
)

// EnvVar lets the host force a preference, much like a desktop-wide dark mode
// setting. It is consulted before the terminal is probed.
const EnvVar = "HABITDASH_THEME"

// TerminalPreference reads the host preference from EnvVar or, when out is a
// terminal, from the terminal's background colour. It reports no preference
// for pipes and files.
func TerminalPreference(out *os.File) Ambient {
	return func() (Theme, bool) {
		if v := os.Getenv(EnvVar); v != "" {
			if t, err := Parse(v); err == nil {
				return t, true
			}
		}
		if out == nil || !term.IsTerminal(out.Fd()) {
			return "", false
		}
		if termenv.NewOutput(out).HasDarkBackground() {
			return Dark, true
		}
		return Light, true
	}
}
