// Package cli provides common CLI initialization utilities.
// This package consolidates repeated initialization patterns across
// cmd/cashflowin, cmd/cashflowin-worker, and cmd/cashflowin-useradd.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"cashflowin/internal/config"
	applog "cashflowin/internal/log"
	"cashflowin/internal/storage"
)

// SetupLogger initializes structured logging with default settings.
// Returns the configured logger and sets it as the default logger.
func SetupLogger() *applog.Logger {
	logger := applog.New(applog.DefaultConfig())
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

// InitSQLite runs migrations and opens a SQLite repository.
// Returns the repository or exits the process on failure.
func InitSQLite(logger *applog.Logger, dbPath string) *storage.SQLiteRepository {
	if err := storage.RunMigrations(dbPath); err != nil {
		logger.Error("Failed to run migrations", "error", err, "path", dbPath)
		os.Exit(1)
	}
	sqliteRepo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return sqliteRepo
}
