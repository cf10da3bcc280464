// Package google loads the ledger from a Google Sheets spreadsheet carrying
// the same six columns as the CSV export. Authentication uses a service
// account, resolved from the environment the same way as the other Google
// integrations in this project.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"kopilka/internal/core"
	"kopilka/internal/ledger"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Source struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ ledger.Source = (*Source)(nil)

// NewFromEnv creates a Sheets ledger source.
// Required: GOOGLE_SPREADSHEET_ID.
// Optional: GOOGLE_SHEET_NAME (default "Operations"), and service account
// credentials via GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE
// or GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Source, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Operations"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Source{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// newSheetsService initializes a Sheets service from Service Account
// credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// Load reads the whole ledger sheet. The first row must be the header; any
// malformed row fails the load.
func (s *Source) Load(ctx context.Context) ([]core.Transaction, error) {
	if s.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A:F", s.sheetName)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}

	txs, err := parseRows(resp.Values)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", s.sheetName, err)
	}
	slog.InfoContext(ctx, "Ledger loaded from Google Sheets",
		"spreadsheet_id", s.spreadsheetID, "sheet", s.sheetName, "records", len(txs))
	return txs, nil
}

// parseRows converts a values matrix (as returned by the Sheets API) into
// transactions. Expected header: OperationDate, Amount, Category,
// Description, CardNumber, Cashback.
func parseRows(values [][]any) ([]core.Transaction, error) {
	if len(values) == 0 {
		return nil, nil
	}

	headers := toStrings(values[0])
	colDate := indexOf(headers, "OperationDate")
	colAmount := indexOf(headers, "Amount")
	if colDate == -1 || colAmount == -1 {
		return nil, fmt.Errorf("unexpected ledger header: got %v", headers)
	}
	colCategory := indexOf(headers, "Category")
	colDescription := indexOf(headers, "Description")
	colCard := indexOf(headers, "CardNumber")
	colCashback := indexOf(headers, "Cashback")

	var txs []core.Transaction
	for i := 1; i < len(values); i++ {
		row := toStrings(values[i])
		if len(row) == 0 {
			continue
		}

		date, err := core.ParseOperationDate(safeGet(row, colDate))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		amountStr := safeGet(row, colAmount)
		amount, err := strconv.ParseFloat(amountStr, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1,
				&core.ParseError{Field: "amount", Value: amountStr, Err: err})
		}

		tx := core.Transaction{
			Date:        date,
			Amount:      amount,
			Category:    safeGet(row, colCategory),
			Description: safeGet(row, colDescription),
			Card:        safeGet(row, colCard),
		}
		if cb := safeGet(row, colCashback); cb != "" {
			v, err := strconv.ParseFloat(cb, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1,
					&core.ParseError{Field: "cashback", Value: cb, Err: err})
			}
			tx.Cashback = &v
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func toStrings(row []any) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func indexOf(headers []string, name string) int {
	for i, h := range headers {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}

func safeGet(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
