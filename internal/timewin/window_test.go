package timewin

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, time.UTC)
}

func TestMonthToDate(t *testing.T) {
	w := MonthToDate(date(2020, time.March, 20, 0, 0, 0))

	if want := date(2020, time.March, 1, 0, 0, 0); !w.Start.Equal(want) {
		t.Errorf("start = %v, want %v", w.Start, want)
	}
	if want := date(2020, time.March, 21, 0, 0, 0); !w.End.Equal(want) {
		t.Errorf("end = %v, want %v", w.End, want)
	}

	cases := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"first of month", date(2020, time.March, 1, 0, 0, 0), true},
		{"late on reference day", date(2020, time.March, 20, 23, 59, 59), true},
		{"midnight after reference day", date(2020, time.March, 21, 0, 0, 0), false},
		{"previous month", date(2020, time.February, 29, 12, 0, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.Contains(tc.t); got != tc.want {
				t.Errorf("Contains(%v) = %v, want %v", tc.t, got, tc.want)
			}
		})
	}
}

func TestThreeMonth(t *testing.T) {
	// 2024-06-15 minus 14 days is June 1st; minus 90 more is March 3rd.
	ref := date(2024, time.June, 15, 0, 0, 0)
	w := ThreeMonth(ref)

	if want := date(2024, time.March, 3, 0, 0, 0); !w.Start.Equal(want) {
		t.Errorf("start = %v, want %v", w.Start, want)
	}
	if !w.End.Equal(ref) {
		t.Errorf("end = %v, want %v", w.End, ref)
	}
	if !w.Contains(ref) {
		t.Error("closed window must include its end")
	}
	if w.Contains(ref.Add(time.Second)) {
		t.Error("moment after end must be outside")
	}
	if !w.Contains(w.Start) {
		t.Error("closed window must include its start")
	}
	if w.Contains(w.Start.Add(-time.Second)) {
		t.Error("moment before start must be outside")
	}
}

func TestFixedClock(t *testing.T) {
	moment := date(2023, time.June, 20, 7, 0, 0)
	c := FixedClock{T: moment}
	if !c.Now().Equal(moment) {
		t.Errorf("Now() = %v, want %v", c.Now(), moment)
	}
}
