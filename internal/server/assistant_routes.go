package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/brk3/habitdash/internal/assistant"
	"github.com/brk3/habitdash/internal/logger"
	"github.com/brk3/habitdash/pkg/habit"
)

const recentWindow = 3 * 24 * time.Hour

func (s *Server) dailyBriefing(w http.ResponseWriter, r *http.Request) {
	habits, err := s.store.ListHabits()
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list habits", "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	if len(habits) == 0 {
		writeJSON(w, http.StatusOK, habit.BriefingResponse{Briefing: assistant.WelcomeBriefing})
		return
	}

	recent, err := s.store.ListLogsSince(s.now().Add(-recentWindow))
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list recent logs", "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	goals, err := s.store.GetGoals()
	if err != nil {
		logger.WarnContext(r.Context(), "Failed to read goals, using default", "error", err)
	}

	text, err := s.generator.Briefing(r.Context(), assistant.NewBriefingInput(habits, len(recent), goals))
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to generate briefing", "error", err)
		writeError(w, http.StatusBadGateway, "briefing unavailable")
		return
	}
	assistantRequestsTotal.WithLabelValues("briefing").Inc()
	writeJSON(w, http.StatusOK, habit.BriefingResponse{Briefing: text})
}

func (s *Server) dayPlan(w http.ResponseWriter, r *http.Request) {
	habits, err := s.store.ListHabits()
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list habits", "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	if len(habits) == 0 {
		writeJSON(w, http.StatusOK, habit.PlanResponse{Plan: assistant.NoHabitsPlan})
		return
	}

	goals, err := s.store.GetGoals()
	if err != nil {
		logger.WarnContext(r.Context(), "Failed to read goals, using default", "error", err)
	}

	text, err := s.generator.Plan(r.Context(), assistant.NewPlanInput(habits, goals))
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to generate plan", "error", err)
		writeError(w, http.StatusBadGateway, "plan unavailable")
		return
	}
	assistantRequestsTotal.WithLabelValues("plan").Inc()
	writeJSON(w, http.StatusOK, habit.PlanResponse{Plan: text})
}

// onboarding stores the user's goals. They arrive as a JSON body or, for
// older clients, as the "goals" query parameter.
func (s *Server) onboarding(w http.ResponseWriter, r *http.Request) {
	goals := r.URL.Query().Get("goals")
	if goals == "" {
		var req habit.GoalsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		goals = req.Goals
	}
	goals = strings.TrimSpace(goals)
	if goals == "" {
		writeError(w, http.StatusUnprocessableEntity, "goals are required")
		return
	}

	if err := s.store.SetGoals(goals); err != nil {
		logger.ErrorContext(r.Context(), "Failed to store goals", "error", err)
		writeError(w, http.StatusInternalServerError, "database write failed")
		return
	}
	logger.InfoContext(r.Context(), "Goals updated")
	writeJSON(w, http.StatusOK, habit.MessageResponse{Message: "Goals updated successfully"})
}
