// Package server is the reference habit service: habit CRUD, completion
// logging, heuristic insights and the assistant endpoints over JSON/HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/brk3/habitdash/internal/assistant"
	"github.com/brk3/habitdash/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const APIPrefix = "/api/v1"

type Server struct {
	store     storage.Store
	generator assistant.Generator
	now       func() time.Time
}

func New(store storage.Store, generator assistant.Generator) *Server {
	if generator == nil {
		generator = assistant.Template{}
	}
	return &Server{
		store:     store,
		generator: generator,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(metricsMiddleware)

	r.Handle("/metrics", promhttp.Handler())

	r.Route(APIPrefix, func(r chi.Router) {
		r.Get("/version", s.getVersionInfo)
		r.Route("/habits", func(r chi.Router) {
			r.Get("/", s.listHabits)
			r.Post("/", s.createHabit)
			r.Get("/dashboard/summary", s.dashboardSummary)
			r.Post("/{habit_id}/log", s.logHabit)
			r.Get("/{habit_id}/insights", s.habitInsights)
		})
		r.Route("/assistant", func(r chi.Router) {
			r.Get("/daily-briefing", s.dailyBriefing)
			r.Get("/plan", s.dayPlan)
			r.Post("/onboarding", s.onboarding)
		})
	})
	return r
}
