package calendar

import (
	"iter"
	"time"
)

// Day is one grid cell. Date is noon on that day in the reference location.
type Day struct {
	Date      time.Time
	InMonth   bool
	Completed bool
}

type Week [7]Day

// Grid is a month padded out to whole Monday-Sunday weeks.
type Grid struct {
	Month  time.Time // noon on the 1st, in the reference location
	Start  time.Time // Monday on or before Month
	End    time.Time // Sunday on or after the last day of Month
	Accent string

	done dateSet
}

// MonthGrid lays out the month containing ref. A day is completed when any
// completion falls on the same calendar day in ref's location.
func MonthGrid(ref time.Time, completions []time.Time, accent string) Grid {
	first := firstOfMonth(ref)
	last := time.Date(first.Year(), first.Month()+1, 0, 12, 0, 0, 0, first.Location())
	return Grid{
		Month:  first,
		Start:  mondayOnOrBefore(first),
		End:    sundayOnOrAfter(last),
		Accent: accent,
		done:   newDateSet(ref.Location(), completions),
	}
}

// NumWeeks is the number of rows Weeks will yield.
func (g Grid) NumWeeks() int {
	n := 0
	for d := g.Start; !d.After(g.End); d = dayOf(d, 7) {
		n++
	}
	return n
}

// Weeks yields the grid one row at a time. Rows are built on demand.
func (g Grid) Weeks() iter.Seq[Week] {
	return func(yield func(Week) bool) {
		for monday := g.Start; !monday.After(g.End); monday = dayOf(monday, 7) {
			var w Week
			for i := range w {
				date := dayOf(monday, i)
				w[i] = Day{
					Date:      date,
					InMonth:   date.Year() == g.Month.Year() && date.Month() == g.Month.Month(),
					Completed: g.done.contains(date),
				}
			}
			if !yield(w) {
				return
			}
		}
	}
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 12, 0, 0, 0, t.Location())
}

// Navigator holds the month a calendar view is showing. Moving between months
// is its only state; grids are rebuilt from scratch each time.
type Navigator struct {
	month time.Time
}

func NewNavigator(ref time.Time) *Navigator {
	return &Navigator{month: firstOfMonth(ref)}
}

func (n *Navigator) Month() time.Time {
	return n.month
}

func (n *Navigator) Next() {
	n.month = n.month.AddDate(0, 1, 0)
}

func (n *Navigator) Prev() {
	n.month = n.month.AddDate(0, -1, 0)
}

func (n *Navigator) Grid(completions []time.Time, accent string) Grid {
	return MonthGrid(n.month, completions, accent)
}
