package ui

import (
	"github.com/brk3/habitdash/internal/theme"
	"github.com/brk3/habitdash/pkg/habit"
	"github.com/charmbracelet/lipgloss"
)

// ApplyRenderMode is the theme apply hook: it flips lipgloss's background
// flag so every adaptive colour below follows the theme.
func ApplyRenderMode(t theme.Theme) {
	lipgloss.SetHasDarkBackground(t == theme.Dark)
}

// bucketPalette holds the three colours one bucket drives. Text, badge tint
// and chart accent must always come from the same entry.
type bucketPalette struct {
	Text   lipgloss.AdaptiveColor
	Tint   lipgloss.AdaptiveColor
	Accent lipgloss.Color
}

var palettes = map[habit.Bucket]bucketPalette{
	habit.Positive: {
		Text:   lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34d399"},
		Tint:   lipgloss.AdaptiveColor{Light: "#d1fae5", Dark: "#064e3b"},
		Accent: lipgloss.Color("#10b981"),
	},
	habit.Cautionary: {
		Text:   lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#fbbf24"},
		Tint:   lipgloss.AdaptiveColor{Light: "#fef3c7", Dark: "#78350f"},
		Accent: lipgloss.Color("#f59e0b"),
	},
	habit.Negative: {
		Text:   lipgloss.AdaptiveColor{Light: "#be123c", Dark: "#fb7185"},
		Tint:   lipgloss.AdaptiveColor{Light: "#ffe4e6", Dark: "#881337"},
		Accent: lipgloss.Color("#f43f5e"),
	},
}

func paletteFor(b habit.Bucket) bucketPalette {
	return palettes[b]
}

var (
	subtle = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	border = lipgloss.AdaptiveColor{Light: "#d1d5db", Dark: "#374151"}
	focus  = lipgloss.AdaptiveColor{Light: "#4f46e5", Dark: "#818cf8"}

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(focus)
	headingStyle = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(subtle)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1)
	selectedCardStyle = cardStyle.BorderForeground(focus)

	paneStyle = lipgloss.NewStyle().Padding(0, 1)

	alertStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#be123c", Dark: "#fb7185"}).
			Padding(1, 3)
)

func probabilityText(p float64) string {
	b := habit.BucketFor(p)
	return lipgloss.NewStyle().Bold(true).Foreground(paletteFor(b).Text).Render(percent(p))
}

func probabilityBadge(p float64) string {
	pal := paletteFor(habit.BucketFor(p))
	return lipgloss.NewStyle().
		Foreground(pal.Text).
		Background(pal.Tint).
		Padding(0, 1).
		Render(habit.BucketFor(p).String())
}
