package core

import (
	"math"
	"strings"
	"time"
)

const (
	// CategoryTransfers and CategoryCash never earn cashback and are
	// excluded from investment roundups.
	CategoryTransfers = "Transfers"
	CategoryCash      = "Cash"

	// CardMissing is the literal sentinel some ledger exports use for
	// rows without an associated card, alongside the empty string.
	CardMissing = "nan"
)

type (
	// Transaction is one ledger row. Records are loaded once per run and
	// never mutated; every report is a read-only projection over them.
	Transaction struct {
		Date        time.Time
		Amount      float64 // negative = spend, positive = income/refund
		Category    string
		Description string
		Card        string
		// Cashback is the stored cashback value when the ledger carries
		// one. nil means "compute the 1% default"; a negative stored
		// value is treated the same as nil.
		Cashback *float64
	}

	// CardSummary aggregates spend and cashback for one card.
	CardSummary struct {
		LastDigits string  `json:"last_digits"`
		TotalSpent float64 `json:"total_spent"`
		Cashback   float64 `json:"cashback"`
	}
)

// HasCard reports whether the transaction is attached to a real card.
func (t Transaction) HasCard() bool {
	card := strings.ToLower(strings.TrimSpace(t.Card))
	return card != "" && card != CardMissing
}

// CashbackEarned returns the cashback for a spend: the stored value when
// present and non-negative, otherwise 1% of the spend magnitude rounded to
// five decimals. Callers that exclude transfer/cash categories do so
// themselves; the card summary rule and the cashback-by-category rule differ
// on that point.
func (t Transaction) CashbackEarned() float64 {
	if t.Amount >= 0 {
		return 0
	}
	if t.Cashback != nil && *t.Cashback >= 0 {
		return *t.Cashback
	}
	return Round5(t.Amount * -0.01)
}

// ExcludedFromCashback reports whether a category never earns card cashback.
func ExcludedFromCashback(category string) bool {
	return category == CategoryTransfers || category == CategoryCash
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round5 rounds to five decimal places, half away from zero.
func Round5(v float64) float64 {
	return math.Round(v*100000) / 100000
}
