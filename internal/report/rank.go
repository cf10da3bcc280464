package report

import (
	"sort"

	"kopilka/internal/core"
)

// DefaultTopN is the dashboard's ranking depth.
const DefaultTopN = 5

// RankedTransaction is one row of the top-N report.
type RankedTransaction struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// TopByAmount returns the n largest transactions by absolute amount. Ties
// keep their original relative order. n <= 0 means DefaultTopN.
func TopByAmount(txs []core.Transaction, n int) []RankedTransaction {
	if n <= 0 {
		n = DefaultTopN
	}

	sorted := make([]core.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return abs(sorted[i].Amount) > abs(sorted[j].Amount)
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	out := make([]RankedTransaction, 0, n)
	for _, tx := range sorted[:n] {
		out = append(out, RankedTransaction{
			Date:        tx.Date.Format(core.DayDateLayout),
			Amount:      tx.Amount,
			Category:    tx.Category,
			Description: tx.Description,
		})
	}
	return out
}

// TransactionRows renders transactions in their original order using the
// ranked row shape. Search reports share their output format with the top-N
// report.
func TransactionRows(txs []core.Transaction) []RankedTransaction {
	out := make([]RankedTransaction, 0, len(txs))
	for _, tx := range txs {
		out = append(out, RankedTransaction{
			Date:        tx.Date.Format(core.DayDateLayout),
			Amount:      tx.Amount,
			Category:    tx.Category,
			Description: tx.Description,
		})
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
