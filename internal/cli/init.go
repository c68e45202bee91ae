// Package cli provides common initialization utilities shared by
// cmd/duka and cmd/duka-worker.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"duka/internal/backend"
	"duka/internal/config"
	applog "duka/internal/log"
	"duka/internal/store"
)

// SetupLogger initializes structured logging with default settings and sets
// it as the process default.
func SetupLogger(component string) *applog.Logger {
	cfg := applog.DefaultConfig()
	cfg.Component = component
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitStore creates the configured record store.
// Returns the store and its cleanup, or exits the process on failure.
func InitStore(logger *applog.Logger, cfg *config.Config) (store.RecordStore, func() error) {
	st, cleanup, err := backend.Create(backend.Config{
		Type:         backend.Type(cfg.DataBackend),
		SQLiteDBPath: cfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("Failed to initialize store", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	logger.Info("Store initialized", "backend", cfg.DataBackend)
	return st, cleanup
}
