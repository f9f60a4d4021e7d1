package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
)

// Store is the fail-soft keyed store every component reads and writes through.
//
// It wraps a Backend with JSON encoding and turns every storage failure into a
// log record: Get reports absence, Set/Remove report false, nothing is returned
// as an error. Successful writes are published to Watch subscribers.
type Store struct {
	backend Backend
	logger  *slog.Logger
	broker  *broker

	external bool
	bridgeMu sync.Mutex
	bridged  bool
	ctx      context.Context
	cancel   context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

// StoreOption configures a Store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	logger      *slog.Logger
	eventBuffer int
	external    bool
}

// WithLogger sets the logger used to report persistence failures.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(o *storeOptions) {
		o.logger = logger
	}
}

// WithEventBuffer sets the per-subscriber event buffer. Zero means default (100).
func WithEventBuffer(size int) StoreOption {
	return func(o *storeOptions) {
		o.eventBuffer = size
	}
}

// WithExternalEvents forwards changes observed by a Watchable backend
// (writes from other processes) to Watch subscribers.
func WithExternalEvents(enabled bool) StoreOption {
	return func(o *storeOptions) {
		o.external = enabled
	}
}

// NewStore creates a Store on top of the given backend.
func NewStore(backend Backend, opts ...StoreOption) *Store {
	o := &storeOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Store{
		backend:  backend,
		logger:   o.logger,
		broker:   newBroker(o.eventBuffer, o.logger),
		external: o.external,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Backend returns the underlying storage backend.
func (s *Store) Backend() Backend {
	return s.backend
}

// Logger returns the store logger, so components share one sink.
func (s *Store) Logger() *slog.Logger {
	return s.logger
}

// Get decodes the value stored under key into dst.
// It returns false when the key is absent, unreadable or corrupt; corruption
// is logged and dst must be treated as undefined.
func (s *Store) Get(ctx context.Context, key string, dst any) bool {
	data, ok := s.GetRaw(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.logger.Warn("discarding corrupt value", "key", key, "error", err)
		return false
	}
	return true
}

// GetRaw returns the stored bytes for key without decoding them.
func (s *Store) GetRaw(ctx context.Context, key string) ([]byte, bool) {
	if err := s.check(key); err != nil {
		s.logger.Error("failed to read key", "key", key, "error", err)
		return nil, false
	}

	data, err := s.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Error("failed to read key", "key", key, "error", err)
		}
		return nil, false
	}
	return data, true
}

// Set encodes v as JSON and writes it under key.
// On failure the previously stored value is left untouched and false is returned.
func (s *Store) Set(ctx context.Context, key string, v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to encode value", "key", key, "error", err)
		return false
	}
	return s.SetRaw(ctx, key, data)
}

// SetRaw writes pre-encoded bytes under key.
func (s *Store) SetRaw(ctx context.Context, key string, data []byte) bool {
	if err := s.check(key); err != nil {
		s.logger.Error("failed to write key", "key", key, "error", err)
		return false
	}
	if err := s.backend.Set(ctx, key, data); err != nil {
		s.logger.Error("failed to write key", "key", key, "error", err)
		return false
	}
	s.broker.publish(newEvent(EventSet, key))
	return true
}

// Remove deletes key. It is idempotent.
func (s *Store) Remove(ctx context.Context, key string) bool {
	if err := s.check(key); err != nil {
		s.logger.Error("failed to remove key", "key", key, "error", err)
		return false
	}
	if err := s.backend.Remove(ctx, key); err != nil {
		s.logger.Error("failed to remove key", "key", key, "error", err)
		return false
	}
	s.broker.publish(newEvent(EventRemove, key))
	return true
}

// Keys lists the stored keys in lexical order. Failures yield an empty list.
func (s *Store) Keys(ctx context.Context) []string {
	keys, err := s.backend.Keys(ctx)
	if err != nil {
		s.logger.Error("failed to list keys", "error", err)
		return nil
	}
	sort.Strings(keys)
	return keys
}

// Watch returns a channel of events for keys matching pattern (doublestar syntax).
// The channel is closed when ctx is done or the store is closed.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}

	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}

	if s.external {
		if err := s.ensureBridge(); err != nil {
			return nil, fmt.Errorf("failed to watch backend: %w", err)
		}
	}

	return s.broker.subscribe(ctx, pattern)
}

// ensureBridge starts the backend bridge once it succeeds. A failed start is
// retried by the next Watch.
func (s *Store) ensureBridge() error {
	w, ok := s.backend.(Watchable)
	if !ok {
		return nil
	}

	s.bridgeMu.Lock()
	defer s.bridgeMu.Unlock()
	if s.bridged {
		return nil
	}
	if err := s.startBridge(w); err != nil {
		return err
	}
	s.bridged = true
	return nil
}

// startBridge forwards backend-observed events into the broker until Close.
func (s *Store) startBridge(w Watchable) error {
	upstream, err := w.Watch(s.ctx, "*")
	if err != nil {
		return err
	}

	lifecycle.Go(s.ctx, func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-upstream:
				if !ok {
					return nil
				}
				s.broker.publish(e)
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("event bridge failed", "error", err)
	}))
	return nil
}

// Close stops event delivery and closes the backend if it holds resources.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.broker.close()

	if c, ok := s.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *Store) check(key string) error {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return ErrClosed
	}
	return ValidateKey(key)
}
