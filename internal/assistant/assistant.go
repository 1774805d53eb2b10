// Package assistant produces the coaching texts served by the assistant
// endpoints: a short daily briefing and a time-blocked day plan.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/brk3/habitdash/internal/logger"
	"github.com/brk3/habitdash/pkg/habit"
)

const (
	WelcomeBriefing = "Welcome to HabitDash! Create your first habit to get started."
	NoHabitsPlan    = "Add some habits first!"

	DefaultBriefingGoals = "Be productive and consistent."
	DefaultPlanGoals     = "Productivity and Health"

	defaultBriefingName = "Champion"
	defaultPlanName     = "User"
)

type BriefingInput struct {
	UserName       string
	Goals          string
	Habits         string
	RecentActivity string
}

type PlanInput struct {
	UserName string
	Goals    string
	Habits   string
}

// Generator turns habit context into prose.
type Generator interface {
	Briefing(ctx context.Context, in BriefingInput) (string, error)
	Plan(ctx context.Context, in PlanInput) (string, error)
}

// NewBriefingInput summarises the habit list and recent completions. Empty
// goals fall back to a generic default.
func NewBriefingInput(habits []habit.Habit, recentCompletions int, goals string) BriefingInput {
	lines := make([]string, 0, len(habits))
	for _, h := range habits {
		lines = append(lines, fmt.Sprintf("- %s (%s, Streak: %d)", h.Title, h.Frequency, h.CurrentStreak))
	}
	if goals == "" {
		goals = DefaultBriefingGoals
	}
	return BriefingInput{
		UserName:       defaultBriefingName,
		Goals:          goals,
		Habits:         strings.Join(lines, "\n"),
		RecentActivity: fmt.Sprintf("Total completions in last 3 days: %d", recentCompletions),
	}
}

func NewPlanInput(habits []habit.Habit, goals string) PlanInput {
	lines := make([]string, 0, len(habits))
	for _, h := range habits {
		lines = append(lines, fmt.Sprintf("- %s (%s, Difficulty: %d/5)", h.Title, h.Frequency, h.Difficulty))
	}
	if goals == "" {
		goals = DefaultPlanGoals
	}
	return PlanInput{
		UserName: defaultPlanName,
		Goals:    goals,
		Habits:   strings.Join(lines, "\n"),
	}
}

// Fallback asks Primary first and answers from Secondary when it fails.
type Fallback struct {
	Primary   Generator
	Secondary Generator
}

func (f Fallback) Briefing(ctx context.Context, in BriefingInput) (string, error) {
	text, err := f.Primary.Briefing(ctx, in)
	if err == nil {
		return text, nil
	}
	logger.Warn("Primary briefing generator failed, using fallback", "error", err)
	return f.Secondary.Briefing(ctx, in)
}

func (f Fallback) Plan(ctx context.Context, in PlanInput) (string, error) {
	text, err := f.Primary.Plan(ctx, in)
	if err == nil {
		return text, nil
	}
	logger.Warn("Primary plan generator failed, using fallback", "error", err)
	return f.Secondary.Plan(ctx, in)
}
