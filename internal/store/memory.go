package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryProvider keeps blobs in a map. Nothing survives the process.
type MemoryProvider struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryProvider returns an empty MemoryProvider
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{blobs: make(map[string][]byte)}
}

func (p *MemoryProvider) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()

	blob, ok := p.blobs[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

func (p *MemoryProvider) Save(ctx context.Context, key string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}
	stored := make([]byte, len(blob))
	copy(stored, blob)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.blobs[key] = stored
	return nil
}

func (p *MemoryProvider) Close() error {
	return nil
}
