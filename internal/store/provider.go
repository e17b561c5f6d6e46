// Package store persists the book as named JSON blobs behind a small
// key/blob Provider contract with file, SQLite and in-memory backends.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Provider.Load for keys that were never saved
var ErrNotFound = errors.New("key not found")

// Provider stores opaque blobs under string keys.
//
// Implementations must return ErrNotFound (possibly wrapped) from Load for
// absent keys and must replace the whole blob on Save.
type Provider interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte) error
	Close() error
}

// validateKey rejects keys that cannot be used as file names
func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("store key must not be empty")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("invalid store key %q", key)
	}
	return nil
}
