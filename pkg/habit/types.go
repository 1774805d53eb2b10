package habit

import "time"

type Frequency string

const (
	Daily  Frequency = "daily"
	Weekly Frequency = "weekly"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

type Habit struct {
	ID                 int64     `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description,omitempty"`
	Frequency          Frequency `json:"frequency"`
	Difficulty         int       `json:"difficulty"`
	CurrentStreak      int       `json:"current_streak"`
	LongestStreak      int       `json:"longest_streak"`
	SuccessProbability float64   `json:"success_probability"`
	CreatedAt          Timestamp `json:"created_at"`
}

type CreateHabitRequest struct {
	Title       string    `json:"title"`
	Frequency   Frequency `json:"frequency"`
	Description string    `json:"description,omitempty"`
	Difficulty  int       `json:"difficulty,omitempty"`
}

// LogRequest is the body of a completion log. HabitID is always set by the
// client from the path parameter.
type LogRequest struct {
	HabitID          int64 `json:"habit_id"`
	MoodScore        *int  `json:"mood_score,omitempty"`
	DifficultyRating *int  `json:"difficulty_rating,omitempty"`
}

type HabitLog struct {
	ID               int64     `json:"id"`
	HabitID          int64     `json:"habit_id"`
	CompletedAt      Timestamp `json:"completed_at"`
	MoodScore        *int      `json:"mood_score,omitempty"`
	DifficultyRating *int      `json:"difficulty_rating,omitempty"`
}

type RiskFactor struct {
	Factor string  `json:"factor"`
	Impact float64 `json:"impact"`
	Note   string  `json:"note,omitempty"`
}

type Insight struct {
	HabitID            int64        `json:"habit_id"`
	SuccessProbability float64      `json:"success_probability"`
	RiskScore          float64      `json:"risk_score"`
	RiskLevel          RiskLevel    `json:"risk_level"`
	Factors            []RiskFactor `json:"factors"`
	Recommendation     string       `json:"recommendation"`
	ModelVersion       string       `json:"model_version"`
	AsOf               Timestamp    `json:"as_of"`
	History            []Timestamp  `json:"history"`
}

// Completions returns the insight history as plain times, the shape the
// calendar builders consume.
func (in *Insight) Completions() []time.Time {
	if in == nil {
		return nil
	}
	out := make([]time.Time, 0, len(in.History))
	for _, ts := range in.History {
		out = append(out, ts.Time)
	}
	return out
}

type HabitHealth struct {
	ID                 int64     `json:"id"`
	Title              string    `json:"title"`
	SuccessProbability float64   `json:"success_probability"`
	RiskLevel          RiskLevel `json:"risk_level"`
	Recommendation     string    `json:"recommendation"`
}

type DashboardSummary struct {
	TotalHabits           int           `json:"total_habits"`
	AvgSuccessProbability float64       `json:"avg_success_probability"`
	ActiveStreaks         int           `json:"active_streaks"`
	AtRisk                []HabitHealth `json:"at_risk"`
}

type BriefingResponse struct {
	Briefing string `json:"briefing"`
}

type PlanResponse struct {
	Plan string `json:"plan"`
}

type GoalsRequest struct {
	Goals string `json:"goals"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
