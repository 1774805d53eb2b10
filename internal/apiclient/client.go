package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/brk3/habitdash/pkg/habit"
	"github.com/brk3/habitdash/pkg/versioninfo"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(base string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(base, "/"),
		HTTP:    http.DefaultClient,
	}
}

func (c *Client) ListHabits(ctx context.Context) ([]habit.Habit, error) {
	var out []habit.Habit
	if err := c.do(ctx, "list habits", http.MethodGet, "/habits/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateHabit(ctx context.Context, title string, frequency habit.Frequency) (*habit.Habit, error) {
	return c.CreateHabitWith(ctx, habit.CreateHabitRequest{Title: title, Frequency: frequency})
}

func (c *Client) CreateHabitWith(ctx context.Context, req habit.CreateHabitRequest) (*habit.Habit, error) {
	var out habit.Habit
	if err := c.do(ctx, "create habit", http.MethodPost, "/habits/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LogCompletion records a completion for the habit. opts may be nil; the
// habit id is always filled in from id.
func (c *Client) LogCompletion(ctx context.Context, id int64, opts *habit.LogRequest) (*habit.HabitLog, error) {
	body := habit.LogRequest{}
	if opts != nil {
		body = *opts
	}
	body.HabitID = id

	var out habit.HabitLog
	if err := c.do(ctx, "log habit", http.MethodPost, fmt.Sprintf("/habits/%d/log", id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetInsight(ctx context.Context, id int64) (*habit.Insight, error) {
	var out habit.Insight
	if err := c.do(ctx, "habit insight", http.MethodGet, fmt.Sprintf("/habits/%d/insights", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetDashboardSummary(ctx context.Context) (*habit.DashboardSummary, error) {
	var out habit.DashboardSummary
	if err := c.do(ctx, "dashboard summary", http.MethodGet, "/habits/dashboard/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetBriefing(ctx context.Context) (string, error) {
	var out habit.BriefingResponse
	if err := c.do(ctx, "daily briefing", http.MethodGet, "/assistant/daily-briefing", nil, &out); err != nil {
		return "", err
	}
	return out.Briefing, nil
}

func (c *Client) GetDayPlan(ctx context.Context) (string, error) {
	var out habit.PlanResponse
	if err := c.do(ctx, "day plan", http.MethodGet, "/assistant/plan", nil, &out); err != nil {
		return "", err
	}
	return out.Plan, nil
}

func (c *Client) UpdateGoals(ctx context.Context, goals string) error {
	var out habit.MessageResponse
	return c.do(ctx, "update goals", http.MethodPost, "/assistant/onboarding", habit.GoalsRequest{Goals: goals}, &out)
}

func (c *Client) GetVersion(ctx context.Context) (*versioninfo.VersionInfo, error) {
	var out versioninfo.VersionInfo
	if err := c.do(ctx, "server version", http.MethodGet, "/version", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return newServiceError(op, res.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
