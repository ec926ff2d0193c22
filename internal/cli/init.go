// Package cli provides common CLI initialization utilities shared by the
// ledger commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/joho/godotenv"

	"expenses/internal/backend"
	"expenses/internal/config"
	"expenses/internal/log"
	"expenses/internal/services"
)

// LoadEnvFile loads the .env file for local development.
// A missing file is fine; a malformed one is reported.
func LoadEnvFile(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// LoadAndValidateConfig loads configuration from path (or the defaults) and
// validates it.
func LoadAndValidateConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogger builds the application logger from cfg, writing to out, and
// sets it as the default slog logger.
func SetupLogger(cfg *config.Config, out io.Writer) *log.Logger {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.DefaultConfig().Level
	}

	logger := log.New(log.Config{
		Level:     level,
		Format:    cfg.LogFormat,
		Component: log.ComponentCLI,
		Output:    out,
	})
	log.SetDefault(logger)
	return logger
}

// InitLedger opens the configured store and wraps it in a LedgerService.
// The returned cleanup releases the store and is never nil.
func InitLedger(ctx context.Context, cfg *config.Config, logger *log.Logger) (*services.LedgerService, backend.CleanupFunc, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, nil, err
	}

	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		logger.With(log.FieldBackend, cfg.Backend).ErrorContext(ctx, "Failed to initialize backend",
			log.NewFields().WithOperation(log.OpStartup).WithError(err).ToSlice()...)
		return nil, nil, err
	}

	svc, err := services.NewLedgerService(ctx, res.Store, logger, services.LedgerServiceConfig{
		CacheSize: cfg.CacheSize,
		CacheTTL:  cfg.CacheTTL,
	})
	if err != nil {
		res.Close()
		return nil, nil, err
	}

	return svc, res.Close, nil
}
