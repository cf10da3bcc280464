// Package report implements the transaction analytics core: grouping and
// reducing an in-memory ledger into per-category, per-weekday, per-day-type
// and per-card summaries, plus the top-N ranking. Every function is a
// read-only projection over the record slice it receives.
package report

import (
	"math"
	"sort"
	"time"

	"kopilka/internal/core"
	"kopilka/internal/timewin"
)

// MonthlySpend is one month bucket of a category report. PeriodEnd is the
// last day of the bucket's calendar month, rendered DD.MM.YYYY.
type MonthlySpend struct {
	PeriodEnd string  `json:"period_end"`
	Total     float64 `json:"total"`
}

// WeekdayNames lists the output keys of SpendingByWeekday in ISO order,
// Monday first.
var WeekdayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Day-type keys of SpendingByWorkday.
const (
	DayTypeWorkday = "Workday"
	DayTypeWeekend = "Weekend"
)

// FilterByWindow returns the records whose timestamp falls inside w, in
// original order.
func FilterByWindow(txs []core.Transaction, w timewin.Window) []core.Transaction {
	var out []core.Transaction
	for _, tx := range txs {
		if w.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}

// SpendingByCategory sums signed amounts for one category over the three
// months before ref, bucketed by calendar month. Empty months are omitted;
// buckets come back in chronological order.
func SpendingByCategory(txs []core.Transaction, category string, ref time.Time) []MonthlySpend {
	w := timewin.ThreeMonth(ref)

	type bucket struct {
		end   time.Time
		total float64
	}
	buckets := map[int]*bucket{}
	for _, tx := range txs {
		if tx.Category != category || !w.Contains(tx.Date) {
			continue
		}
		key := tx.Date.Year()*100 + int(tx.Date.Month())
		b, ok := buckets[key]
		if !ok {
			b = &bucket{end: monthEnd(tx.Date)}
			buckets[key] = b
		}
		b.total += tx.Amount
	}

	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]MonthlySpend, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		out = append(out, MonthlySpend{
			PeriodEnd: b.end.Format(core.DayDateLayout),
			Total:     b.total,
		})
	}
	return out
}

// SpendingByWeekday returns the arithmetic mean of signed amounts per weekday
// over the three months before ref. All seven weekday keys are always
// present; weekdays with no records average to 0.
func SpendingByWeekday(txs []core.Transaction, ref time.Time) map[string]float64 {
	w := timewin.ThreeMonth(ref)

	sums := make([]float64, 7)
	counts := make([]int, 7)
	for _, tx := range txs {
		if !w.Contains(tx.Date) {
			continue
		}
		d := isoWeekday(tx.Date)
		sums[d] += tx.Amount
		counts[d]++
	}

	out := make(map[string]float64, 7)
	for i, name := range WeekdayNames {
		if counts[i] == 0 {
			out[name] = 0.0
			continue
		}
		out[name] = sums[i] / float64(counts[i])
	}
	return out
}

// SpendingByWorkday returns the mean signed amount for workdays and weekend
// days over the three months before ref. Both keys are always present.
func SpendingByWorkday(txs []core.Transaction, ref time.Time) map[string]float64 {
	w := timewin.ThreeMonth(ref)

	sums := map[string]float64{}
	counts := map[string]int{}
	for _, tx := range txs {
		if !w.Contains(tx.Date) {
			continue
		}
		kind := DayTypeWorkday
		if d := isoWeekday(tx.Date); d == 5 || d == 6 {
			kind = DayTypeWeekend
		}
		sums[kind] += tx.Amount
		counts[kind]++
	}

	out := map[string]float64{DayTypeWorkday: 0.0, DayTypeWeekend: 0.0}
	for kind, n := range counts {
		out[kind] = sums[kind] / float64(n)
	}
	return out
}

// CashbackByCategory totals cashback per category for spends in the given
// calendar month. Stored cashback values win when present and non-negative,
// otherwise 1% of the spend magnitude. The map is empty when nothing matches.
func CashbackByCategory(txs []core.Transaction, year int, month time.Month) map[string]float64 {
	out := map[string]float64{}
	for _, tx := range txs {
		if tx.Date.Year() != year || tx.Date.Month() != month {
			continue
		}
		if tx.Amount >= 0 {
			continue
		}
		out[tx.Category] += tx.CashbackEarned()
	}
	return out
}

// CardSummaries aggregates spend and cashback per card in first-seen card
// order. Records without a real card identifier are skipped; transfer and
// cash categories earn no cashback. Totals are rounded to two decimals.
func CardSummaries(txs []core.Transaction) []core.CardSummary {
	type totals struct {
		spent    float64
		cashback float64
	}
	byCard := map[string]*totals{}
	var order []string

	for _, tx := range txs {
		if !tx.HasCard() {
			continue
		}
		t, ok := byCard[tx.Card]
		if !ok {
			t = &totals{}
			byCard[tx.Card] = t
			order = append(order, tx.Card)
		}
		if tx.Amount < 0 {
			t.spent += -tx.Amount
			if !core.ExcludedFromCashback(tx.Category) {
				t.cashback += tx.CashbackEarned()
			}
		}
	}

	out := make([]core.CardSummary, 0, len(order))
	for _, card := range order {
		t := byCard[card]
		out = append(out, core.CardSummary{
			LastDigits: card,
			TotalSpent: core.Round2(t.spent),
			Cashback:   core.Round2(t.cashback),
		})
	}
	return out
}

// Valid investment roundup units.
var roundupUnits = map[int]bool{10: true, 50: true, 100: true}

// InvestmentRoundup rounds every spend in the given YYYY.MM period up to the
// next multiple of unit and totals the remainders, truncated to a whole
// number. Transfer and cash categories do not participate.
func InvestmentRoundup(txs []core.Transaction, yearMonth string, unit int) (int64, error) {
	if !roundupUnits[unit] {
		return 0, &core.ValidationError{Param: "rounding unit", Reason: "must be 10, 50 or 100"}
	}
	year, month, err := core.ParseYearMonth(yearMonth)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, tx := range txs {
		if tx.Date.Year() != year || tx.Date.Month() != month {
			continue
		}
		if tx.Amount >= 0 || core.ExcludedFromCashback(tx.Category) {
			continue
		}
		spend := -tx.Amount
		target := math.Ceil(spend/float64(unit)) * float64(unit)
		total += target - spend
	}
	return int64(total), nil
}

// isoWeekday maps time.Weekday to the ISO ordinal, 0=Monday .. 6=Sunday.
func isoWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func monthEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).
		AddDate(0, 1, -1)
}
