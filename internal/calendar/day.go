// Package calendar builds the month grid and current-week window shown for a
// habit from its completion timestamps. Everything here is a pure function of
// its inputs; callers supply "now" and the reference month.
package calendar

import "time"

// civilDate is a calendar day with the time of day and zone stripped.
type civilDate struct {
	year  int
	month time.Month
	day   int
}

func civil(t time.Time, loc *time.Location) civilDate {
	y, m, d := t.In(loc).Date()
	return civilDate{y, m, d}
}

// dateSet answers same-calendar-day membership in a fixed location.
type dateSet struct {
	loc  *time.Location
	days map[civilDate]struct{}
}

func newDateSet(loc *time.Location, dates []time.Time) dateSet {
	s := dateSet{loc: loc, days: make(map[civilDate]struct{}, len(dates))}
	for _, d := range dates {
		s.days[civil(d, loc)] = struct{}{}
	}
	return s
}

func (s dateSet) contains(t time.Time) bool {
	_, ok := s.days[civil(t, s.loc)]
	return ok
}

// dayOf returns noon on the calendar day n days after t's, in t's location.
// Noon exists on every calendar day; midnight does not in zones that start
// daylight saving at 00:00.
func dayOf(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 12, 0, 0, 0, t.Location())
}

// mondayOnOrBefore returns the Monday starting t's week.
func mondayOnOrBefore(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return dayOf(t, -offset)
}

// sundayOnOrAfter returns the Sunday ending t's week.
func sundayOnOrAfter(t time.Time) time.Time {
	offset := (7 - int(t.Weekday())) % 7
	return dayOf(t, offset)
}

func sameDay(a, b time.Time) bool {
	return civil(a, a.Location()) == civil(b, a.Location())
}
