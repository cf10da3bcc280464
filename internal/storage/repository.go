// Package storage persists an imported ledger in SQLite so repeated analysis
// runs skip re-parsing the export. The repository only ever bulk-imports and
// reads back whole ledgers; rows are never updated in place.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"kopilka/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ImportTransactions replaces the stored ledger with the given records in a
// single transaction. Record order is preserved by the autoincrement id.
func (r *SQLiteRepository) ImportTransactions(ctx context.Context, txs []core.Transaction) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear previous ledger: %w", err)
	}

	stmt, err := dbTx.PrepareContext(ctx, `
		INSERT INTO transactions (operation_date, amount, category, description, card_number, cashback)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, tx := range txs {
		var cashback sql.NullFloat64
		if tx.Cashback != nil {
			cashback = sql.NullFloat64{Float64: *tx.Cashback, Valid: true}
		}
		_, err := stmt.ExecContext(ctx,
			tx.Date.Format(core.OperationDateLayout),
			tx.Amount, tx.Category, tx.Description, tx.Card, cashback)
		if err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}

	slog.InfoContext(ctx, "Ledger imported to SQLite", "records", len(txs))
	return nil
}

// Load implements ledger.Source, returning records in import order.
func (r *SQLiteRepository) Load(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT operation_date, amount, category, description, card_number, cashback
		FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var (
			dateStr  string
			tx       core.Transaction
			cashback sql.NullFloat64
		)
		if err := rows.Scan(&dateStr, &tx.Amount, &tx.Category, &tx.Description, &tx.Card, &cashback); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Date, err = core.ParseOperationDate(dateStr)
		if err != nil {
			return nil, err
		}
		if cashback.Valid {
			v := cashback.Float64
			tx.Cashback = &v
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}
