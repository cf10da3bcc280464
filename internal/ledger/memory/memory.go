// Package memory provides an in-memory ledger source for tests and
// composition.
package memory

import (
	"context"
	"sync"

	"kopilka/internal/core"
)

type Source struct {
	mu  sync.Mutex
	txs []core.Transaction
}

func New(txs []core.Transaction) *Source {
	copied := make([]core.Transaction, len(txs))
	copy(copied, txs)
	return &Source{txs: copied}
}

// Load returns a copy of the stored records so callers cannot alias the
// source's backing slice.
func (s *Source) Load(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.txs))
	copy(out, s.txs)
	return out, nil
}
