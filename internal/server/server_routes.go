package server

import (
	"cmp"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/brk3/habitdash/internal/intelligence"
	"github.com/brk3/habitdash/internal/logger"
	"github.com/brk3/habitdash/internal/storage"
	"github.com/brk3/habitdash/pkg/habit"
	"github.com/brk3/habitdash/pkg/versioninfo"
	"github.com/go-chi/chi/v5"
)

const maxAtRisk = 5

func (s *Server) getVersionInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, versioninfo.Current())
}

func (s *Server) listHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := s.store.ListHabits()
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list habits", "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	activeHabits.Set(float64(len(habits)))
	logger.DebugContext(r.Context(), "Listed habits", "count", len(habits))
	writeJSON(w, http.StatusOK, habits)
}

func (s *Server) createHabit(w http.ResponseWriter, r *http.Request) {
	var req habit.CreateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(r.Context(), "Invalid JSON in create habit request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	h, err := newHabit(req)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.CreatedAt = habit.NewTimestamp(s.now())

	h, err = s.store.CreateHabit(h)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to store habit", "title", h.Title, "error", err)
		writeError(w, http.StatusInternalServerError, "database write failed")
		return
	}
	logger.InfoContext(r.Context(), "Habit created", "habit_id", h.ID, "title", h.Title)
	writeJSON(w, http.StatusOK, h)
}

func newHabit(req habit.CreateHabitRequest) (habit.Habit, error) {
	h := habit.Habit{
		Title:              strings.TrimSpace(req.Title),
		Description:        req.Description,
		Frequency:          cmp.Or(req.Frequency, habit.Daily),
		Difficulty:         cmp.Or(req.Difficulty, 1),
		SuccessProbability: 0.5,
	}
	switch {
	case h.Title == "":
		return h, errors.New("title is required")
	case h.Frequency != habit.Daily && h.Frequency != habit.Weekly:
		return h, errors.New("frequency must be daily or weekly")
	case h.Difficulty < 1 || h.Difficulty > 5:
		return h, errors.New("difficulty must be between 1 and 5")
	}
	return h, nil
}

// lookupHabit resolves the {habit_id} path parameter, writing the error
// response itself when it fails.
func (s *Server) lookupHabit(w http.ResponseWriter, r *http.Request) (habit.Habit, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "habit_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid habit id")
		return habit.Habit{}, false
	}
	h, err := s.store.GetHabit(id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Habit not found")
		return h, false
	}
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to load habit", "habit_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return h, false
	}
	return h, true
}

func (s *Server) logHabit(w http.ResponseWriter, r *http.Request) {
	h, ok := s.lookupHabit(w, r)
	if !ok {
		return
	}

	var req habit.LogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	now := s.now()
	entry, err := s.store.PutDailyLog(habit.HabitLog{
		HabitID:          h.ID,
		CompletedAt:      habit.NewTimestamp(now),
		MoodScore:        req.MoodScore,
		DifficultyRating: req.DifficultyRating,
	})
	if errors.Is(err, storage.ErrAlreadyLogged) {
		completionsTotal.WithLabelValues("duplicate").Inc()
		writeError(w, http.StatusConflict, "already logged today")
		return
	}
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to store log", "habit_id", h.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "database write failed")
		return
	}

	logs, err := s.store.ListLogs(h.ID)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list logs", "habit_id", h.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}

	current, longest := computeStreaks(logs, now)
	h.CurrentStreak = current
	h.LongestStreak = max(h.LongestStreak, longest)
	h.SuccessProbability = intelligence.SuccessProbability(h, logs, now)
	if err := s.store.UpdateHabit(h); err != nil {
		logger.ErrorContext(r.Context(), "Failed to update habit after log", "habit_id", h.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "database write failed")
		return
	}

	completionsTotal.WithLabelValues("logged").Inc()
	logger.InfoContext(r.Context(), "Habit logged", "habit_id", h.ID, "streak", h.CurrentStreak)
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) habitInsights(w http.ResponseWriter, r *http.Request) {
	h, ok := s.lookupHabit(w, r)
	if !ok {
		return
	}
	logs, err := s.store.ListLogs(h.ID)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list logs", "habit_id", h.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}

	insight := intelligence.Insight(h, logs, s.now())

	h.SuccessProbability = insight.SuccessProbability
	if err := s.store.UpdateHabit(h); err != nil {
		logger.WarnContext(r.Context(), "Failed to persist probability", "habit_id", h.ID, "error", err)
	}
	writeJSON(w, http.StatusOK, insight)
}

func (s *Server) dashboardSummary(w http.ResponseWriter, r *http.Request) {
	habits, err := s.store.ListHabits()
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list habits", "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}

	now := s.now()
	summary := habit.DashboardSummary{
		TotalHabits: len(habits),
		AtRisk:      []habit.HabitHealth{},
	}
	var total float64
	for _, h := range habits {
		logs, err := s.store.ListLogs(h.ID)
		if err != nil {
			logger.ErrorContext(r.Context(), "Failed to list logs", "habit_id", h.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "storage error")
			return
		}
		p := intelligence.SuccessProbability(h, logs, now)
		risk := intelligence.AssessRisk(h, logs, now)
		total += p
		if h.CurrentStreak > 0 {
			summary.ActiveStreaks++
		}
		if risk.Level != habit.RiskLow {
			summary.AtRisk = append(summary.AtRisk, habit.HabitHealth{
				ID:                 h.ID,
				Title:              h.Title,
				SuccessProbability: p,
				RiskLevel:          risk.Level,
				Recommendation:     risk.Recommendation,
			})
		}
	}
	if len(habits) > 0 {
		summary.AvgSuccessProbability = total / float64(len(habits))
	}
	slices.SortStableFunc(summary.AtRisk, func(a, b habit.HabitHealth) int {
		return cmp.Compare(a.SuccessProbability, b.SuccessProbability)
	})
	if len(summary.AtRisk) > maxAtRisk {
		summary.AtRisk = summary.AtRisk[:maxAtRisk]
	}
	activeHabits.Set(float64(len(habits)))

	writeJSON(w, http.StatusOK, summary)
}
