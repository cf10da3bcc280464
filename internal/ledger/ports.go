// Package ledger defines the ports for loading the transaction ledger from
// its external sources. A source materializes the whole record sequence once
// per run; the analytics core never mutates it.
package ledger

import (
	"context"

	"kopilka/internal/core"
)

// Source loads the full ordered transaction sequence.
//
// A row with an unparseable date or amount fails the whole load: ledger rows
// are assumed internally consistent, and dropping rows silently would skew
// every downstream report.
type Source interface {
	Load(ctx context.Context) ([]core.Transaction, error)
}
