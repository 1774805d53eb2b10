package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const briefingPrompt = `You are a highly motivating and concise habit coaching AI named HabitDash.
User: %s
User Goals: %s

Current Habits Context:
%s

Recent Activity (Last 3 days):
%s

Task:
1. Summarize yesterday's progress in 1 short sentence.
2. Give a specific, punchy focus for today based on their weakest or most critical habit.
3. End with a very short motivational quote or phrase.

Keep the tone energetic, professional, yet warm. Total output should be under 100 words.`

const planPrompt = `Act as an expert Day Planner.
User: %s
Goals: %s
Habits to schedule:
%s

Task:
Create a realistic, structured daily schedule (morning to evening) that incorporates these habits and works towards the goals.

Format:
Return a simple Markdown list of time blocks.
Example:
- **07:00 AM**: Morning Routine (Habit 1)
- **09:00 AM**: Deep Work Block

Keep it concise and practical.`

var errEmptyResponse = errors.New("model returned no text")

// Gemini generates texts with a Gemini model.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Briefing(ctx context.Context, in BriefingInput) (string, error) {
	return g.generate(ctx, fmt.Sprintf(briefingPrompt, in.UserName, in.Goals, in.Habits, in.RecentActivity))
}

func (g *Gemini) Plan(ctx context.Context, in PlanInput) (string, error) {
	return g.generate(ctx, fmt.Sprintf(planPrompt, in.UserName, in.Goals, in.Habits))
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", g.model, err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errEmptyResponse
	}
	return text, nil
}
