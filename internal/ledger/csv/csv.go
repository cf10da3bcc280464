// Package csv loads the ledger from a CSV export with the columns
// OperationDate, Amount, Category, Description, CardNumber, Cashback.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"kopilka/internal/core"
)

// Column headers of the ledger export.
const (
	colOperationDate = "OperationDate"
	colAmount        = "Amount"
	colCategory      = "Category"
	colDescription   = "Description"
	colCardNumber    = "CardNumber"
	colCashback      = "Cashback"
)

// Source reads a ledger CSV file.
type Source struct {
	path string
}

// New creates a source for the given file path.
func New(path string) *Source {
	return &Source{path: path}
}

// Load reads and parses the whole file. Any malformed row fails the load.
func (s *Source) Load(ctx context.Context) ([]core.Transaction, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	txs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("ledger %s: %w", s.path, err)
	}
	slog.InfoContext(ctx, "Ledger loaded", "path", s.path, "records", len(txs))
	return txs, nil
}

// Parse decodes ledger rows from r. The first row must be the header.
func Parse(r io.Reader) ([]core.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := map[string]int{}
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colOperationDate, colAmount} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	var txs []core.Transaction
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		tx, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func parseRow(row []string, cols map[string]int) (core.Transaction, error) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	date, err := core.ParseOperationDate(get(colOperationDate))
	if err != nil {
		return core.Transaction{}, err
	}

	amountStr := get(colAmount)
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		return core.Transaction{}, &core.ParseError{Field: "amount", Value: amountStr, Err: err}
	}

	tx := core.Transaction{
		Date:        date,
		Amount:      amount,
		Category:    get(colCategory),
		Description: get(colDescription),
		Card:        get(colCardNumber),
	}

	if cb := get(colCashback); cb != "" {
		v, err := strconv.ParseFloat(cb, 64)
		if err != nil {
			return core.Transaction{}, &core.ParseError{Field: "cashback", Value: cb, Err: err}
		}
		tx.Cashback = &v
	}
	return tx, nil
}
