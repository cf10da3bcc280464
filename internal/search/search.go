// Package search provides predicate filters over the ledger: free-text
// lookup and the two classification patterns used to spot phone top-ups and
// person-to-person transfers.
package search

import (
	"regexp"
	"strings"

	"kopilka/internal/core"
)

var (
	// A plus sign followed by a short country-code-like digit run.
	mobileNumberRe = regexp.MustCompile(`\+\d{1,4}`)

	// A capitalized word followed by a capitalized initial and a period,
	// e.g. "Ivan P." — Unicode classes so Cyrillic ledgers match too.
	personNameRe = regexp.MustCompile(`\p{Lu}\p{Ll}+ \p{Lu}\.`)
)

// ByText returns transactions whose category or description contains query,
// case-insensitively. The empty query matches everything. Original order is
// preserved.
func ByText(txs []core.Transaction, query string) []core.Transaction {
	if query == "" {
		out := make([]core.Transaction, len(txs))
		copy(out, txs)
		return out
	}
	q := strings.ToLower(query)
	var out []core.Transaction
	for _, tx := range txs {
		if strings.Contains(strings.ToLower(tx.Category), q) ||
			strings.Contains(strings.ToLower(tx.Description), q) {
			out = append(out, tx)
		}
	}
	return out
}

// MobileNumberMentions returns transactions whose description mentions a
// phone number prefix.
func MobileNumberMentions(txs []core.Transaction) []core.Transaction {
	var out []core.Transaction
	for _, tx := range txs {
		if mobileNumberRe.MatchString(tx.Description) {
			out = append(out, tx)
		}
	}
	return out
}

// PersonTransfers returns transfers addressed to a person, recognized by the
// name-plus-initial notation in the description.
func PersonTransfers(txs []core.Transaction) []core.Transaction {
	var out []core.Transaction
	for _, tx := range txs {
		if tx.Category == core.CategoryTransfers && personNameRe.MatchString(tx.Description) {
			out = append(out, tx)
		}
	}
	return out
}
