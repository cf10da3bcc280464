package core

import "time"

// Ledger and report date layouts. The operation timestamp layout is fixed by
// the ledger export format; reports use the shorter forms.
const (
	OperationDateLayout = "02.01.2006 15:04:05"
	DayDateLayout       = "02.01.2006"
	RefDateLayout       = "2006.01.02"
	YearMonthLayout     = "2006.01"
)

// ParseOperationDate parses a full ledger timestamp (DD.MM.YYYY HH:MM:SS).
func ParseOperationDate(s string) (time.Time, error) {
	t, err := time.Parse(OperationDateLayout, s)
	if err != nil {
		return time.Time{}, &ParseError{Field: "operation date", Value: s, Err: err}
	}
	return t, nil
}

// ParseDayDate parses a day-granularity date (DD.MM.YYYY).
func ParseDayDate(s string) (time.Time, error) {
	t, err := time.Parse(DayDateLayout, s)
	if err != nil {
		return time.Time{}, &ParseError{Field: "date", Value: s, Err: err}
	}
	return t, nil
}

// ParseRefDate parses a report reference date (YYYY.MM.DD).
func ParseRefDate(s string) (time.Time, error) {
	t, err := time.Parse(RefDateLayout, s)
	if err != nil {
		return time.Time{}, &ParseError{Field: "reference date", Value: s, Err: err}
	}
	return t, nil
}

// ParseYearMonth parses a YYYY.MM period and returns its year and month.
func ParseYearMonth(s string) (int, time.Month, error) {
	t, err := time.Parse(YearMonthLayout, s)
	if err != nil {
		return 0, 0, &ParseError{Field: "year-month", Value: s, Err: err}
	}
	return t.Year(), t.Month(), nil
}
