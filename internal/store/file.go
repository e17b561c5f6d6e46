package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"fjacquet/finance-ledger/internal/logging"
	"fjacquet/finance-ledger/internal/models"
	"fjacquet/finance-ledger/internal/validation"
)

const (
	blobExt   = ".json"
	backupExt = ".bak"
)

// FileProvider keeps one <key>.json file per key in a directory
type FileProvider struct {
	dir    string
	backup bool
	logger logging.Logger
}

// NewFileProvider creates dir if needed. With backup set, every Save first
// copies the previous file to <key>.json.bak.
func NewFileProvider(dir string, backup bool, logger logging.Logger) (*FileProvider, error) {
	if dir == "" {
		return nil, fmt.Errorf("data directory must not be empty")
	}
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return nil, fmt.Errorf("error creating data directory: %w", err)
	}
	return &FileProvider{dir: dir, backup: backup, logger: logger}, nil
}

// Dir returns the data directory
func (p *FileProvider) Dir() string {
	return p.dir
}

// Path returns the file holding key
func (p *FileProvider) Path(key string) string {
	return filepath.Join(p.dir, key+blobExt)
}

func (p *FileProvider) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateKey(key); err != nil {
		return nil, err
	}

	path := p.Path(key)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	if err := validation.IsValidFilePermissions(info.Mode().Perm()); err != nil {
		p.logger.WithError(err).Warn("Ledger data is readable by other users",
			logging.F(logging.FieldPath, path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	p.logger.Debug("Loaded blob",
		logging.F(logging.FieldKey, key),
		logging.F(logging.FieldPath, path))
	return data, nil
}

// Save writes blob to a temp file in the same directory and renames it over
// the previous file, so readers never observe a partial write.
func (p *FileProvider) Save(ctx context.Context, key string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}

	target := p.Path(key)
	if p.backup {
		if err := p.backupFile(target); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(p.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once the rename succeeded
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(blob); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("error writing %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("error syncing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, models.PermissionDataFile); err != nil {
		return fmt.Errorf("error setting permissions on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("error replacing %s: %w", target, err)
	}

	p.logger.Debug("Saved blob",
		logging.F(logging.FieldKey, key),
		logging.F(logging.FieldPath, target))
	return nil
}

func (p *FileProvider) backupFile(target string) error {
	data, err := os.ReadFile(target)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error reading %s for backup: %w", target, err)
	}
	if err := os.WriteFile(target+backupExt, data, models.PermissionDataFile); err != nil {
		return fmt.Errorf("error writing backup of %s: %w", target, err)
	}
	return nil
}

// Close is a no-op; files are closed after every call
func (p *FileProvider) Close() error {
	return nil
}
