// Package backend selects the ledger source named by configuration.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"kopilka/internal/config"
	ledgercsv "kopilka/internal/ledger/csv"
	gsheet "kopilka/internal/ledger/google"
	"kopilka/internal/ledger/memory"
	"kopilka/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateSource implements Factory.CreateSource
func (f *DefaultFactory) CreateSource(ctx context.Context, cfg *config.Config) (*Result, error) {
	t := Type(cfg.LedgerBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid ledger backend: %s", cfg.LedgerBackend)
	}

	switch t {
	case CSVBackend:
		f.logger.Info("Initialized CSV ledger source", "path", cfg.LedgerCSVPath)
		return &Result{Source: ledgercsv.New(cfg.LedgerCSVPath)}, nil

	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite repository: %w", err)
		}
		f.logger.Info("Initialized SQLite ledger source", "db_path", cfg.SQLiteDBPath)
		return &Result{Source: repo, Cleanup: repo.Close}, nil

	case SheetsBackend:
		cli, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("initialize Google Sheets source: %w", err)
		}
		f.logger.Info("Initialized Google Sheets ledger source",
			"spreadsheet_id", cfg.GoogleSpreadsheetID)
		return &Result{Source: cli}, nil

	case MemoryBackend:
		f.logger.Info("Initialized empty in-memory ledger source")
		return &Result{Source: memory.New(nil)}, nil

	default:
		return nil, fmt.Errorf("unsupported ledger backend: %s", t)
	}
}
