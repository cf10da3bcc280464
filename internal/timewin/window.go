// Package timewin computes the date windows that scope every grouping
// report: month-to-date for the dashboard and a three-month lookback for the
// spending reports.
//
// MonthToDate is half-open [start, end) with end at midnight after the
// reference day, so the whole reference day is included. ThreeMonth is
// closed [start, end] with start at the first day of the reference month
// minus 90 days. All three-month reports share that one rule.
package timewin

import "time"

// Clock supplies the current moment. Reports default to Now() when no
// reference date is given, so tests inject a fixed clock.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same moment. Test helper.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// Window is a date range. When Exclusive is set the upper bound is excluded.
type Window struct {
	Start     time.Time
	End       time.Time
	Exclusive bool
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if t.Before(w.Start) {
		return false
	}
	if w.Exclusive {
		return t.Before(w.End)
	}
	return !t.After(w.End)
}

// MonthToDate returns the window from the first day of ref's month at 00:00
// up to, but not including, midnight after ref's day. The whole reference day
// is inside the window regardless of its time component.
func MonthToDate(ref time.Time) Window {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	end := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location()).AddDate(0, 0, 1)
	return Window{Start: start, End: end, Exclusive: true}
}

// ThreeMonth returns the closed window ending at ref whose start is the first
// day of ref's month shifted back 90 days.
func ThreeMonth(ref time.Time) Window {
	start := ref.AddDate(0, 0, -(ref.Day() - 1)).AddDate(0, 0, -90)
	return Window{Start: start, End: ref}
}
