package main

import (
	"context"
	"flag"
	"os"

	"kopilka/internal/cli"
	ledgercsv "kopilka/internal/ledger/csv"
	"kopilka/internal/log"
	"kopilka/internal/storage"
)

func main() {
	csvFlag := flag.String("csv", "", "CSV file to import (default: LEDGER_CSV_PATH)")
	dbFlag := flag.String("db", "", "SQLite database path (default: SQLITE_DB_PATH)")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentStorage)
	cfg := cli.LoadAndValidateConfig(logger)

	csvPath := cfg.LedgerCSVPath
	if *csvFlag != "" {
		csvPath = *csvFlag
	}
	dbPath := cfg.SQLiteDBPath
	if *dbFlag != "" {
		dbPath = *dbFlag
	}

	ctx := context.Background()

	txs, err := ledgercsv.New(csvPath).Load(ctx)
	if err != nil {
		logger.Error("Failed to load CSV ledger", log.FieldError, err, log.FieldPath, csvPath)
		os.Exit(1)
	}
	logger.Info("CSV ledger loaded", log.FieldRecords, len(txs), log.FieldPath, csvPath)

	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		logger.Error("Failed to open database", log.FieldError, err, log.FieldPath, dbPath)
		os.Exit(1)
	}
	defer repo.Close()

	if err := repo.ImportTransactions(ctx, txs); err != nil {
		logger.Error("Import failed", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Import complete", log.FieldRecords, len(txs), log.FieldPath, dbPath)
}
