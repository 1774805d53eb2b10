package nudge

import (
	"context"
	"fmt"
	"strings"

	"github.com/brk3/habitdash/pkg/habit"
	"github.com/gen2brain/beeep"
)

// DesktopNotifier raises a native desktop notification.
type DesktopNotifier struct {
	notify func(title, message string) error
}

func NewDesktopNotifier() *DesktopNotifier {
	return &DesktopNotifier{notify: func(title, message string) error {
		return beeep.Notify(title, message, "")
	}}
}

func (d *DesktopNotifier) SendNudge(_ context.Context, habits []habit.HabitHealth) error {
	return d.notify(desktopTitle(habits), desktopMessage(habits))
}

func desktopTitle(habits []habit.HabitHealth) string {
	if len(habits) == 1 {
		return "1 habit at risk today"
	}
	return fmt.Sprintf("%d habits at risk today", len(habits))
}

func desktopMessage(habits []habit.HabitHealth) string {
	lines := make([]string, 0, len(habits))
	for _, h := range habits {
		lines = append(lines, fmt.Sprintf("%s (%.0f%%)", h.Title, h.SuccessProbability*100))
	}
	return strings.Join(lines, "\n")
}
