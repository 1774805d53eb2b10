package calendar

import "time"

type WeekDay struct {
	Date      time.Time
	Label     string // "Mon"
	FullDate  string // "Jan 2"
	Completed bool
	IsToday   bool
}

type Window struct {
	Days   [7]WeekDay
	Accent string
}

// WeekWindow returns Monday through Sunday of the week containing now.
func WeekWindow(now time.Time, completions []time.Time, accent string) Window {
	done := newDateSet(now.Location(), completions)
	monday := mondayOnOrBefore(now)

	w := Window{Accent: accent}
	for i := range w.Days {
		date := dayOf(monday, i)
		w.Days[i] = WeekDay{
			Date:      date,
			Label:     date.Format("Mon"),
			FullDate:  date.Format("Jan 2"),
			Completed: done.contains(date),
			IsToday:   sameDay(date, now),
		}
	}
	return w
}

// CompletedCount is the number of completed days in the window.
func (w Window) CompletedCount() int {
	n := 0
	for _, d := range w.Days {
		if d.Completed {
			n++
		}
	}
	return n
}
