// Package config loads all runtime settings from the environment once at
// startup. The resulting value is passed down explicitly; nothing reads
// environment variables after Load returns.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Ledger source selection
	LedgerBackend string // csv | sqlite | sheets | memory
	LedgerCSVPath string
	SQLiteDBPath  string

	// Google Sheets ledger
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// Quote lookups
	CurrencyAPIKey string
	StocksAPIKey   string
	BaseCurrency   string
	UserCurrencies []string
	UserStocks     []string
	RateCacheSize  int
	RateCacheTTL   time.Duration
	RatesParallel  bool

	// Report publishing (optional)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

func Load() *Config {
	return &Config{
		LedgerBackend: getEnv("LEDGER_BACKEND", "csv"),
		LedgerCSVPath: getEnv("LEDGER_CSV_PATH", "./data/operations.csv"),
		SQLiteDBPath:  getEnv("SQLITE_DB_PATH", "./data/kopilka.db"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", ""),

		CurrencyAPIKey: getEnv("API_KEY_CURRENCY", ""),
		StocksAPIKey:   getEnv("API_KEY_STOCKS", ""),
		BaseCurrency:   getEnv("BASE_CURRENCY", "RUB"),
		UserCurrencies: getEnvList("USER_CURRENCIES", []string{"USD", "EUR"}),
		UserStocks:     getEnvList("USER_STOCKS", []string{"AAPL", "AMZN", "GOOGL", "MSFT", "TSLA"}),
		RateCacheSize:  getEnvInt("RATE_CACHE_SIZE", 64),
		RateCacheTTL:   getEnvDuration("RATE_CACHE_TTL", 15*time.Minute),
		RatesParallel:  getEnvBool("RATES_PARALLEL", false),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "kopilka"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "reports"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validBackends := []string{"csv", "sqlite", "sheets", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.LedgerBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid ledger backend '%s': must be one of %v", c.LedgerBackend, validBackends))
	}

	if c.LedgerBackend == "csv" && c.LedgerCSVPath == "" {
		errors = append(errors, "ledger CSV path cannot be empty when using csv backend")
	}

	if c.LedgerBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.LedgerBackend == "sheets" && c.GoogleSpreadsheetID == "" {
		errors = append(errors, "Google Spreadsheet ID is required when using sheets backend")
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(c.UserCurrencies) == 0 {
		errors = append(errors, "user currency list cannot be empty")
	}
	for _, cur := range c.UserCurrencies {
		if len(cur) != 3 {
			errors = append(errors, fmt.Sprintf("invalid currency code '%s': must be 3 letters", cur))
		}
	}

	if c.RateCacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid rate cache size %d: must be at least 1", c.RateCacheSize))
	}
	if c.RateCacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid rate cache TTL %v: must be at least 1 second", c.RateCacheTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
