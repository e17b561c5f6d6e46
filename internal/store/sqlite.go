package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fjacquet/finance-ledger/internal/logging"
	"fjacquet/finance-ledger/internal/models"

	_ "modernc.org/sqlite"
)

// DefaultSQLiteFile is the database file name inside the data directory
const DefaultSQLiteFile = "ledger.db"

// SQLiteProvider keeps blobs in the kv table of a SQLite database
type SQLiteProvider struct {
	db     *sql.DB
	path   string
	logger logging.Logger
}

// NewSQLiteProvider opens (creating if needed) the database at dbPath and
// applies pending migrations.
func NewSQLiteProvider(dbPath string, logger logging.Logger) (*SQLiteProvider, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), models.PermissionDirectory); err != nil {
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

	logger.Debug("Opened SQLite store", logging.F(logging.FieldPath, dbPath))
	return &SQLiteProvider{db: db, path: dbPath, logger: logger}, nil
}

// Path returns the database file
func (p *SQLiteProvider) Path() string {
	return p.path
}

func (p *SQLiteProvider) Load(ctx context.Context, key string) ([]byte, error) {
	var blob []byte
	err := p.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return blob, nil
}

func (p *SQLiteProvider) Save(ctx context.Context, key string, blob []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, blob, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	p.logger.Debug("Saved blob", logging.F(logging.FieldKey, key), logging.F(logging.FieldBackend, "sqlite"))
	return nil
}

func (p *SQLiteProvider) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}
