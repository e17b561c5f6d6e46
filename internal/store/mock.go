package store

import (
	"context"
	"sync"
)

// MockProvider is an in-memory Provider whose calls can be made to fail.
type MockProvider struct {
	*MemoryProvider

	// Error flags for testing error conditions
	LoadError  error
	SaveError  error
	CloseError error

	mu        sync.Mutex
	SaveCalls map[string]int
	Closed    bool
}

// NewMockProvider returns an empty MockProvider
func NewMockProvider() *MockProvider {
	return &MockProvider{MemoryProvider: NewMemoryProvider(), SaveCalls: map[string]int{}}
}

func (m *MockProvider) Load(ctx context.Context, key string) ([]byte, error) {
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	return m.MemoryProvider.Load(ctx, key)
}

func (m *MockProvider) Save(ctx context.Context, key string, blob []byte) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.mu.Lock()
	m.SaveCalls[key]++
	m.mu.Unlock()
	return m.MemoryProvider.Save(ctx, key, blob)
}

func (m *MockProvider) Close() error {
	m.Closed = true
	return m.CloseError
}
