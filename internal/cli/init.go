// Package cli provides common initialization shared by the kopilka binaries.
package cli

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"kopilka/internal/backend"
	"kopilka/internal/config"
	"kopilka/internal/log"
)

// SetupLogger initializes structured logging and sets it as the default.
func SetupLogger(component string) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Component = component
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitLedgerSource creates the configured ledger source or exits the process.
// The returned cleanup function is never nil.
func InitLedgerSource(ctx context.Context, logger *log.Logger, cfg *config.Config) (*backend.Result, func()) {
	result, err := backend.NewFactory(logger.Logger).CreateSource(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize ledger source",
			log.FieldError, err, log.FieldBackend, cfg.LedgerBackend)
		os.Exit(1)
	}
	cleanup := func() {
		if result.Cleanup == nil {
			return
		}
		if err := result.Cleanup(); err != nil {
			logger.Warn("Ledger source cleanup failed", log.FieldError, err)
		}
	}
	return result, cleanup
}
