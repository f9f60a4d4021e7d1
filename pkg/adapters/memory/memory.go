// Package memory provides an in-process core.Backend.
// It is the substitutable fake used by tests and by the "memory" adapter.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/dashstate/pkg/core"
)

// Backend keeps every value in a map guarded by a RWMutex.
type Backend struct {
	mu       sync.RWMutex
	data     map[string][]byte
	readOnly bool
}

// Option configures a memory Backend.
type Option func(*Backend)

// WithReadOnly makes Set and Remove fail with core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return func(b *Backend) {
		b.readOnly = enabled
	}
}

// WithSeed pre-populates the backend with raw values.
func WithSeed(seed map[string][]byte) Option {
	return func(b *Backend) {
		for k, v := range seed {
			b.data[k] = clone(v)
		}
	}
}

// New creates an empty memory backend.
func New(opts ...Option) *Backend {
	b := &Backend{data: make(map[string][]byte)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Backend) Initialize(ctx context.Context) error { return nil }

func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.data[key]
	if !ok {
		return nil, core.ErrNotFound
	}
	return clone(v), nil
}

func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	if b.readOnly {
		return core.ErrReadOnly
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.data[key] = clone(value)
	return nil
}

func (b *Backend) Remove(ctx context.Context, key string) error {
	if b.readOnly {
		return core.ErrReadOnly
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.data, key)
	return nil
}

func (b *Backend) Keys(ctx context.Context) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := make([]string, 0, len(b.data))
	for k := range b.data {
		keys = append(keys, k)
	}
	return keys, nil
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "memory"
}

func clone(v []byte) []byte {
	out := make([]byte, len(v))
	copy(out, v)
	return out
}

var _ core.Backend = (*Backend)(nil)
