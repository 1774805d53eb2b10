package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/brk3/habitdash/internal/assistant"
	"github.com/brk3/habitdash/internal/logger"
	"github.com/brk3/habitdash/internal/storage"
	"github.com/brk3/habitdash/internal/storage/bolt"
	"github.com/brk3/habitdash/pkg/habit"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestServer(st storage.Store) (*Server, http.Handler) {
	s := New(st, nil)
	s.now = func() time.Time { return fixedNow }
	return s, s.Router()
}

func mockRequest(h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, APIPrefix+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("unmarshal %q: %v", rr.Body.String(), err)
	}
	return v
}

func TestListHabits_Empty(t *testing.T) {
	_, h := newTestServer(newMemStore())
	rr := mockRequest(h, http.MethodGet, "/habits/", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != "[]" {
		t.Fatalf("expected empty JSON array, got %s", got)
	}
}

func TestCreateHabit_Defaults(t *testing.T) {
	_, h := newTestServer(newMemStore())

	rr := mockRequest(h, http.MethodPost, "/habits/", habit.CreateHabitRequest{Title: "Read"})
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200: %s", rr.Code, rr.Body.String())
	}
	created := decode[habit.Habit](t, rr)
	if created.ID != 1 || created.Title != "Read" {
		t.Errorf("unexpected habit %+v", created)
	}
	if created.Frequency != habit.Daily || created.Difficulty != 1 {
		t.Errorf("expected daily difficulty 1, got %s %d", created.Frequency, created.Difficulty)
	}
	if created.CurrentStreak != 0 || created.SuccessProbability != 0.5 {
		t.Errorf("expected fresh streak and 0.5 probability, got %d %v", created.CurrentStreak, created.SuccessProbability)
	}
	if !created.CreatedAt.Equal(fixedNow) {
		t.Errorf("expected created_at %v, got %v", fixedNow, created.CreatedAt)
	}
}

func TestCreateHabit_Validation(t *testing.T) {
	_, h := newTestServer(newMemStore())

	tests := []struct {
		name   string
		req    habit.CreateHabitRequest
		detail string
	}{
		{"empty title", habit.CreateHabitRequest{Title: "   "}, "title is required"},
		{"bad frequency", habit.CreateHabitRequest{Title: "x", Frequency: "hourly"}, "frequency must be daily or weekly"},
		{"bad difficulty", habit.CreateHabitRequest{Title: "x", Difficulty: 9}, "difficulty must be between 1 and 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := mockRequest(h, http.MethodPost, "/habits/", tt.req)
			if rr.Code != http.StatusUnprocessableEntity {
				t.Fatalf("got %d want 422", rr.Code)
			}
			if got := decode[ErrorResponse](t, rr).Detail; got != tt.detail {
				t.Errorf("expected detail %q, got %q", tt.detail, got)
			}
		})
	}
}

func TestLogHabit(t *testing.T) {
	st := newMemStore()
	_, h := newTestServer(st)
	created, _ := st.CreateHabit(habit.Habit{Title: "Read", Difficulty: 1, CreatedAt: habit.NewTimestamp(fixedNow.AddDate(0, 0, -1))})
	_, _ = st.PutLog(habit.HabitLog{HabitID: created.ID, CompletedAt: habit.NewTimestamp(fixedNow.AddDate(0, 0, -1))})

	mood := 4
	rr := mockRequest(h, http.MethodPost, "/habits/1/log", habit.LogRequest{HabitID: 1, MoodScore: &mood})
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200: %s", rr.Code, rr.Body.String())
	}
	entry := decode[habit.HabitLog](t, rr)
	if entry.HabitID != 1 || entry.MoodScore == nil || *entry.MoodScore != 4 {
		t.Errorf("unexpected log %+v", entry)
	}

	updated, _ := st.GetHabit(1)
	if updated.CurrentStreak != 2 || updated.LongestStreak != 2 {
		t.Errorf("expected streak 2/2 after consecutive days, got %d/%d", updated.CurrentStreak, updated.LongestStreak)
	}
	if updated.SuccessProbability <= 0.5 {
		t.Errorf("expected probability to rise, got %v", updated.SuccessProbability)
	}
}

func TestLogHabit_AlreadyLoggedToday(t *testing.T) {
	st := newMemStore()
	_, h := newTestServer(st)
	_, _ = st.CreateHabit(habit.Habit{Title: "Read", Difficulty: 1, CurrentStreak: 1, CreatedAt: habit.NewTimestamp(fixedNow)})

	if rr := mockRequest(h, http.MethodPost, "/habits/1/log", nil); rr.Code != http.StatusOK {
		t.Fatalf("first log: got %d want 200", rr.Code)
	}
	before, _ := st.GetHabit(1)

	rr := mockRequest(h, http.MethodPost, "/habits/1/log", nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("second log: got %d want 409", rr.Code)
	}
	if got := decode[ErrorResponse](t, rr).Detail; got != "already logged today" {
		t.Errorf("unexpected detail %q", got)
	}
	after, _ := st.GetHabit(1)
	if after != before {
		t.Errorf("habit changed by rejected log: %+v -> %+v", before, after)
	}
}

func TestLogHabit_ConcurrentSameDay(t *testing.T) {
	st, err := bolt.Open(filepath.Join(t.TempDir(), "habits.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()
	_, h := newTestServer(st)
	_, _ = st.CreateHabit(habit.Habit{Title: "Read", Difficulty: 1, CreatedAt: habit.NewTimestamp(fixedNow)})

	const requests = 8
	codes := make([]int, requests)
	var wg sync.WaitGroup
	for i := range requests {
		wg.Add(1)
		go func() {
			defer wg.Done()
			codes[i] = mockRequest(h, http.MethodPost, "/habits/1/log", nil).Code
		}()
	}
	wg.Wait()

	counts := map[int]int{}
	for _, c := range codes {
		counts[c]++
	}
	if counts[http.StatusOK] != 1 || counts[http.StatusConflict] != requests-1 {
		t.Errorf("expected one 200 and %d 409s, got %v", requests-1, counts)
	}
	logs, _ := st.ListLogs(1)
	if len(logs) != 1 {
		t.Errorf("expected one stored log, got %d", len(logs))
	}
}

func TestLogHabit_NotFound(t *testing.T) {
	_, h := newTestServer(newMemStore())

	rr := mockRequest(h, http.MethodPost, "/habits/7/log", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("got %d want 404", rr.Code)
	}
	rr = mockRequest(h, http.MethodPost, "/habits/seven/log", nil)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got %d want 422", rr.Code)
	}
}

func TestHabitInsights(t *testing.T) {
	st := newMemStore()
	_, h := newTestServer(st)
	_, _ = st.CreateHabit(habit.Habit{Title: "Read", Difficulty: 1, SuccessProbability: 0.5, CreatedAt: habit.NewTimestamp(fixedNow.AddDate(0, 0, -2))})
	for i := range 3 {
		_, _ = st.PutLog(habit.HabitLog{HabitID: 1, CompletedAt: habit.NewTimestamp(fixedNow.AddDate(0, 0, -i))})
	}

	rr := mockRequest(h, http.MethodGet, "/habits/1/insights", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	in := decode[habit.Insight](t, rr)
	if len(in.History) != 3 {
		t.Errorf("expected 3 history entries, got %d", len(in.History))
	}
	if in.ModelVersion != "heuristic-v1" {
		t.Errorf("unexpected model version %q", in.ModelVersion)
	}

	stored, _ := st.GetHabit(1)
	if stored.SuccessProbability != in.SuccessProbability {
		t.Errorf("probability not persisted: stored %v, served %v", stored.SuccessProbability, in.SuccessProbability)
	}
}

func TestDashboardSummary(t *testing.T) {
	st := newMemStore()
	_, h := newTestServer(st)

	created := habit.NewTimestamp(fixedNow.AddDate(0, 0, -10))
	// Idle and hard: high risk.
	_, _ = st.CreateHabit(habit.Habit{Title: "Run", Difficulty: 5, CreatedAt: created})
	// Steady: low risk.
	_, _ = st.CreateHabit(habit.Habit{Title: "Read", Difficulty: 1, CurrentStreak: 7, CreatedAt: created})
	for i := range 7 {
		_, _ = st.PutLog(habit.HabitLog{HabitID: 2, CompletedAt: habit.NewTimestamp(fixedNow.AddDate(0, 0, -i))})
	}
	// Idle and moderate: also at risk, but more likely to succeed than Run.
	_, _ = st.CreateHabit(habit.Habit{Title: "Stretch", Difficulty: 2, CreatedAt: created})

	rr := mockRequest(h, http.MethodGet, "/habits/dashboard/summary", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	summary := decode[habit.DashboardSummary](t, rr)
	if summary.TotalHabits != 3 || summary.ActiveStreaks != 1 {
		t.Errorf("expected 3 habits and 1 active streak, got %+v", summary)
	}
	if len(summary.AtRisk) != 2 {
		t.Fatalf("expected 2 at-risk habits, got %+v", summary.AtRisk)
	}
	if summary.AtRisk[0].Title != "Run" || summary.AtRisk[1].Title != "Stretch" {
		t.Errorf("at-risk not sorted by probability: %+v", summary.AtRisk)
	}
	if summary.AtRisk[0].SuccessProbability > summary.AtRisk[1].SuccessProbability {
		t.Errorf("at-risk not ascending: %+v", summary.AtRisk)
	}
}

func TestDashboardSummary_CapsAtRisk(t *testing.T) {
	st := newMemStore()
	_, h := newTestServer(st)
	for range 8 {
		_, _ = st.CreateHabit(habit.Habit{Title: "Idle", Difficulty: 3, CreatedAt: habit.NewTimestamp(fixedNow.AddDate(0, 0, -5))})
	}

	summary := decode[habit.DashboardSummary](t, mockRequest(h, http.MethodGet, "/habits/dashboard/summary", nil))
	if len(summary.AtRisk) != maxAtRisk {
		t.Errorf("expected %d at-risk habits, got %d", maxAtRisk, len(summary.AtRisk))
	}
}

func TestAssistant_NoHabits(t *testing.T) {
	_, h := newTestServer(newMemStore())

	b := decode[habit.BriefingResponse](t, mockRequest(h, http.MethodGet, "/assistant/daily-briefing", nil))
	if b.Briefing != assistant.WelcomeBriefing {
		t.Errorf("unexpected briefing %q", b.Briefing)
	}
	p := decode[habit.PlanResponse](t, mockRequest(h, http.MethodGet, "/assistant/plan", nil))
	if p.Plan != assistant.NoHabitsPlan {
		t.Errorf("unexpected plan %q", p.Plan)
	}
}

type recordingGenerator struct {
	briefing assistant.BriefingInput
	plan     assistant.PlanInput
}

func (g *recordingGenerator) Briefing(_ context.Context, in assistant.BriefingInput) (string, error) {
	g.briefing = in
	return "go get it", nil
}

func (g *recordingGenerator) Plan(_ context.Context, in assistant.PlanInput) (string, error) {
	g.plan = in
	return "- **07:00 AM**: Read", nil
}

func TestAssistant_UsesGoals(t *testing.T) {
	st := newMemStore()
	gen := &recordingGenerator{}
	s := New(st, gen)
	s.now = func() time.Time { return fixedNow }
	h := s.Router()

	_, _ = st.CreateHabit(habit.Habit{Title: "Read", Frequency: habit.Daily, Difficulty: 2})
	_, _ = st.PutLog(habit.HabitLog{HabitID: 1, CompletedAt: habit.NewTimestamp(fixedNow.AddDate(0, 0, -1))})
	_, _ = st.PutLog(habit.HabitLog{HabitID: 1, CompletedAt: habit.NewTimestamp(fixedNow.AddDate(0, 0, -5))})

	rr := mockRequest(h, http.MethodPost, "/assistant/onboarding", habit.GoalsRequest{Goals: "Write a book"})
	if rr.Code != http.StatusOK {
		t.Fatalf("onboarding: got %d want 200", rr.Code)
	}
	if msg := decode[habit.MessageResponse](t, rr).Message; msg != "Goals updated successfully" {
		t.Errorf("unexpected message %q", msg)
	}

	b := decode[habit.BriefingResponse](t, mockRequest(h, http.MethodGet, "/assistant/daily-briefing", nil))
	if b.Briefing != "go get it" {
		t.Errorf("unexpected briefing %q", b.Briefing)
	}
	if gen.briefing.Goals != "Write a book" {
		t.Errorf("briefing ignored stored goals: %+v", gen.briefing)
	}
	if gen.briefing.RecentActivity != "Total completions in last 3 days: 1" {
		t.Errorf("unexpected recent activity %q", gen.briefing.RecentActivity)
	}

	mockRequest(h, http.MethodGet, "/assistant/plan", nil)
	if gen.plan.Habits != "- Read (daily, Difficulty: 2/5)" {
		t.Errorf("unexpected plan context %q", gen.plan.Habits)
	}
}

func TestOnboarding_QueryParameter(t *testing.T) {
	st := newMemStore()
	_, h := newTestServer(st)

	rr := mockRequest(h, http.MethodPost, "/assistant/onboarding?goals=Sleep+more", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	if goals, _ := st.GetGoals(); goals != "Sleep more" {
		t.Errorf("expected stored goals, got %q", goals)
	}

	rr = mockRequest(h, http.MethodPost, "/assistant/onboarding", habit.GoalsRequest{})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("empty goals: got %d want 422", rr.Code)
	}
}

func TestVersionAndMetrics(t *testing.T) {
	_, h := newTestServer(newMemStore())

	if rr := mockRequest(h, http.MethodGet, "/version", nil); rr.Code != http.StatusOK {
		t.Errorf("version: got %d want 200", rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics: got %d want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "habitdash_http_requests_total") {
		t.Error("metrics output missing request counter")
	}
}

func TestMetrics_UnmatchedPathsShareOneLabel(t *testing.T) {
	_, h := newTestServer(newMemStore())

	for _, path := range []string{"/no-such-route/1", "/no-such-route/2"} {
		if rr := mockRequest(h, http.MethodGet, path, nil); rr.Code != http.StatusNotFound {
			t.Fatalf("%s: got %d want 404", path, rr.Code)
		}
	}

	top := httptest.NewRecorder()
	h.ServeHTTP(top, httptest.NewRequest(http.MethodGet, "/no-such-route/3", nil))
	if top.Code != http.StatusNotFound {
		t.Fatalf("top level: got %d want 404", top.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	out := rr.Body.String()
	if !strings.Contains(out, `endpoint="unmatched"`) {
		t.Errorf("expected unmatched endpoint label in metrics output")
	}
	if strings.Contains(out, "no-such-route") || strings.Contains(out, `endpoint="/api/v1/*"`) {
		t.Errorf("raw request path leaked into metric labels")
	}
}

func TestRequestLog_CarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWriter(&buf, slog.LevelInfo)
	t.Cleanup(func() { logger.InitWriter(io.Discard, slog.LevelInfo) })

	_, h := newTestServer(newMemStore())
	if rr := mockRequest(h, http.MethodPost, "/habits/", map[string]any{"title": "Read"}); rr.Code != http.StatusOK {
		t.Fatalf("create: got %d want 200: %s", rr.Code, rr.Body.String())
	}

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if strings.Contains(line, "Habit created") || strings.Contains(line, "Handled request") {
			if !strings.Contains(line, "request_id=") || strings.Contains(line, "request_id= ") {
				t.Errorf("log line missing request id: %q", line)
			}
		}
	}
	if !strings.Contains(buf.String(), "Habit created") {
		t.Fatalf("handler log line not written: %q", buf.String())
	}
}
