// Package intelligence scores habits with simple heuristics: the chance of a
// completion tomorrow and the risk of missing it.
package intelligence

import (
	"fmt"
	"time"

	"github.com/brk3/habitdash/pkg/habit"
)

const ModelVersion = "heuristic-v1"

const (
	highRiskAdvice   = "Book a micro-version for tomorrow and add an accountability ping."
	mediumRiskAdvice = "Schedule earlier in the day and reduce scope by 20%."
	lowRiskAdvice    = "Maintain the current cadence; protect time on calendar."
)

type Risk struct {
	Score          float64
	Level          habit.RiskLevel
	Factors        []habit.RiskFactor
	Recommendation string
}

// wholeDays counts complete days between from and to, never negative.
func wholeDays(from, to time.Time) int {
	d := to.Sub(from)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}

// SuccessProbability estimates the chance the habit is completed tomorrow
// from streak momentum, consistency since creation and difficulty.
func SuccessProbability(h habit.Habit, logs []habit.HabitLog, now time.Time) float64 {
	streakBonus := min(float64(h.CurrentStreak)*0.05, 0.3)

	days := wholeDays(h.CreatedAt.Time, now) + 1
	consistency := float64(len(logs)) / float64(days)
	consistencyFactor := clamp((consistency-0.5)*0.4, -0.1, 0.2)

	difficultyPenalty := float64(h.Difficulty-1) * 0.05

	return clamp(0.5+streakBonus+consistencyFactor-difficultyPenalty, 0.1, 0.95)
}

// AssessRisk scores next-day failure risk. Positive factor impacts raise the
// risk, negative ones lower it.
func AssessRisk(h habit.Habit, logs []habit.HabitLog, now time.Time) Risk {
	daysSinceCreation := wholeDays(h.CreatedAt.Time, now) + 1

	daysSinceLast := daysSinceCreation
	if len(logs) > 0 {
		last := logs[0].CompletedAt.Time
		for _, l := range logs[1:] {
			if l.CompletedAt.After(last) {
				last = l.CompletedAt.Time
			}
		}
		daysSinceLast = wholeDays(last, now)
	}

	consistency := float64(len(logs)) / float64(daysSinceCreation)

	factors := []habit.RiskFactor{
		{
			Factor: "difficulty",
			Impact: float64(h.Difficulty-1) * 0.06,
			Note:   fmt.Sprintf("difficulty %d/5", h.Difficulty),
		},
		{
			Factor: "inactivity",
			Impact: min(float64(daysSinceLast)*0.08, 0.32),
			Note:   fmt.Sprintf("%d days since last completion", daysSinceLast),
		},
		{
			Factor: "consistency",
			Impact: -min(consistency*0.25, 0.3),
			Note:   fmt.Sprintf("%d logs / %d days", len(logs), daysSinceCreation),
		},
		{
			Factor: "streak",
			Impact: -min(float64(h.CurrentStreak)*0.05, 0.35),
			Note:   fmt.Sprintf("streak %d", h.CurrentStreak),
		},
	}

	score := 0.45
	for _, f := range factors {
		score += f.Impact
	}
	score = clamp(score, 0.05, 0.95)

	r := Risk{Score: score, Factors: factors}
	switch {
	case score >= 0.7:
		r.Level, r.Recommendation = habit.RiskHigh, highRiskAdvice
	case score >= 0.5:
		r.Level, r.Recommendation = habit.RiskMedium, mediumRiskAdvice
	default:
		r.Level, r.Recommendation = habit.RiskLow, lowRiskAdvice
	}
	return r
}

// Insight combines both scores into the wire shape served per habit.
func Insight(h habit.Habit, logs []habit.HabitLog, now time.Time) habit.Insight {
	risk := AssessRisk(h, logs, now)
	history := make([]habit.Timestamp, 0, len(logs))
	for _, l := range logs {
		history = append(history, l.CompletedAt)
	}
	return habit.Insight{
		HabitID:            h.ID,
		SuccessProbability: SuccessProbability(h, logs, now),
		RiskScore:          risk.Score,
		RiskLevel:          risk.Level,
		Factors:            risk.Factors,
		Recommendation:     risk.Recommendation,
		ModelVersion:       ModelVersion,
		AsOf:               habit.NewTimestamp(now),
		History:            history,
	}
}
