package backend

import (
	"context"

	"kopilka/internal/config"
	"kopilka/internal/ledger"
)

// CleanupFunc releases a backend's resources.
type CleanupFunc func() error

// Result contains the ledger source and an optional cleanup function.
type Result struct {
	Source  ledger.Source
	Cleanup CleanupFunc
}

// Factory creates ledger sources based on configuration.
type Factory interface {
	CreateSource(ctx context.Context, cfg *config.Config) (*Result, error)
}

// Type identifies a ledger backend.
type Type string

const (
	CSVBackend    Type = "csv"
	SQLiteBackend Type = "sqlite"
	SheetsBackend Type = "sheets"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case CSVBackend, SQLiteBackend, SheetsBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
