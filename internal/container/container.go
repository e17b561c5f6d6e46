// Package container wires the application dependencies: logger, storage
// backend, repository, book and report generator.
package container

import (
	"context"
	"fmt"
	"path/filepath"

	"fjacquet/finance-ledger/internal/book"
	"fjacquet/finance-ledger/internal/config"
	"fjacquet/finance-ledger/internal/logging"
	"fjacquet/finance-ledger/internal/report"
	"fjacquet/finance-ledger/internal/store"
)

// Container holds all application dependencies. Fields are private and
// only reachable through getters, so nothing is swapped after creation.
type Container struct {
	logger  logging.Logger
	config  *config.Config
	repo    *store.Repository
	book    *book.Book
	reports *report.Generator
}

// NewContainer creates the logger from cfg and wires everything else
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(ctx, cfg, config.NewLogger(cfg))
}

// NewContainerWithLogger wires the dependencies around an existing logger
func NewContainerWithLogger(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	provider, err := NewProvider(cfg, logger)
	if err != nil {
		return nil, err
	}

	repo := store.NewRepository(provider, logger)
	b, err := book.Open(ctx, repo, logger)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}

	logger.Info("Container initialized successfully",
		logging.F(logging.FieldBackend, cfg.Data.Backend),
		logging.F("transactions", len(b.Transactions())),
		logging.F("budgets", len(b.Budgets())))

	return &Container{
		logger:  logger,
		config:  cfg,
		repo:    repo,
		book:    b,
		reports: report.NewGenerator(logger, cfg.Delimiter()),
	}, nil
}

// NewProvider opens the storage backend selected by cfg.Data.Backend
func NewProvider(cfg *config.Config, logger logging.Logger) (store.Provider, error) {
	if cfg.Data.Backend == config.BackendMemory {
		logger.Debug("Using in-memory store; nothing will be persisted")
		return store.NewMemoryProvider(), nil
	}

	dir, err := cfg.DataDirectory()
	if err != nil {
		return nil, err
	}

	switch cfg.Data.Backend {
	case config.BackendSQLite:
		return store.NewSQLiteProvider(filepath.Join(dir, store.DefaultSQLiteFile), logger)
	case config.BackendFile, "":
		return store.NewFileProvider(dir, cfg.Data.BackupEnabled, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Data.Backend)
	}
}

// GetLogger returns the container's logger instance
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetBook returns the live book
func (c *Container) GetBook() *book.Book {
	return c.book
}

// GetReportGenerator returns the generator configured with the CSV delimiter
func (c *Container) GetReportGenerator() *report.Generator {
	return c.reports
}

// Close releases the storage backend
func (c *Container) Close() error {
	if err := c.repo.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	c.logger.Debug("Container closed")
	return nil
}
