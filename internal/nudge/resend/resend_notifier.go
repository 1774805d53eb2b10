package resend

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/brk3/habitdash/pkg/habit"
	"github.com/resend/resend-go/v2"
)

type ResendNotifier struct {
	ApiKey string
	Email  string
	From   string
}

const htmlTemplate = `
<p>These habits are likely to slip today:</p>
<ul>
{{range .}}
  <li><strong>{{.Title}}</strong> ({{percent .SuccessProbability}} chance, {{.RiskLevel}} risk): {{.Recommendation}}</li>
{{end}}
</ul>
`

var emailTmpl = template.Must(template.New("email").Funcs(template.FuncMap{
	"percent": func(p float64) string { return fmt.Sprintf("%.0f%%", p*100) },
}).Parse(htmlTemplate))

func subject(habits []habit.HabitHealth) string {
	if len(habits) == 1 {
		return habits[0].Title + " is at risk today"
	}
	return fmt.Sprintf("%d habits are at risk today", len(habits))
}

func renderEmail(habits []habit.HabitHealth) (string, error) {
	var buf bytes.Buffer
	if err := emailTmpl.Execute(&buf, habits); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *ResendNotifier) SendNudge(ctx context.Context, habits []habit.HabitHealth) error {
	html, err := renderEmail(habits)
	if err != nil {
		return err
	}

	from := r.From
	if from == "" {
		from = "onboarding@resend.dev"
	}

	client := resend.NewClient(r.ApiKey)
	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{r.Email},
		Subject: subject(habits),
		Html:    html,
	}

	_, err = client.Emails.SendWithContext(ctx, params)
	return err
}
