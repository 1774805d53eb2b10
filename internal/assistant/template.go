package assistant

import (
	"bytes"
	"context"
	"strings"
	"text/template"
)

var briefingTmpl = template.Must(template.New("briefing").Parse(
	`Good morning, {{.UserName}}. {{.RecentActivity}}.
Today's focus: {{.Focus}}
Goal: {{.Goals}}
Small steps, every day.`))

var planTmpl = template.Must(template.New("plan").Parse(
	`{{range .Blocks}}- **{{.Time}}**: {{.Label}}
{{end}}`))

var planSlots = []string{"07:00 AM", "09:00 AM", "12:30 PM", "03:00 PM", "06:00 PM", "08:30 PM"}

// Template renders fixed-form texts without any remote model. It never fails
// on well-formed input.
type Template struct{}

func (Template) Briefing(_ context.Context, in BriefingInput) (string, error) {
	focus := "keep every streak alive."
	if first := firstHabit(in.Habits); first != "" {
		focus = "start with " + first + "."
	}

	var buf bytes.Buffer
	err := briefingTmpl.Execute(&buf, struct {
		BriefingInput
		Focus string
	}{in, focus})
	return buf.String(), err
}

func (Template) Plan(_ context.Context, in PlanInput) (string, error) {
	type block struct{ Time, Label string }

	var blocks []block
	for i, line := range strings.Split(in.Habits, "\n") {
		name := strings.TrimPrefix(strings.TrimSpace(line), "- ")
		if name == "" {
			continue
		}
		if i >= len(planSlots) {
			break
		}
		blocks = append(blocks, block{Time: planSlots[i], Label: name})
	}
	blocks = append(blocks, block{Time: "09:30 PM", Label: "Review the day: " + in.Goals})

	var buf bytes.Buffer
	err := planTmpl.Execute(&buf, struct{ Blocks []block }{blocks})
	return strings.TrimRight(buf.String(), "\n"), err
}

// firstHabit extracts the title of the first "- title (details)" line.
func firstHabit(habits string) string {
	line, _, _ := strings.Cut(habits, "\n")
	line = strings.TrimPrefix(strings.TrimSpace(line), "- ")
	if i := strings.LastIndex(line, " ("); i > 0 {
		line = line[:i]
	}
	return line
}
