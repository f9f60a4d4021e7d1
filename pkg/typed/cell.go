// Package typed provides type-safe views over the keyed store.
package typed

import (
	"context"
	"sync"

	"github.com/aretw0/dashstate/pkg/core"
)

// Cell is an in-memory value kept synchronized with one store key.
//
// Reads come from memory. Every write updates memory first and then writes
// through to the store before returning, so a subsequent Get and a store read
// both reflect it. A failed write is logged by the store and leaves memory
// ahead of storage until the next successful write.
//
// Cells sharing a key do not observe each other's writes unless Follow is used.
type Cell[T any] struct {
	store   *core.Store
	key     string
	initial T

	mu    sync.RWMutex
	value T
}

// NewCell reads key once and falls back to initial when it is absent or corrupt.
func NewCell[T any](ctx context.Context, store *core.Store, key string, initial T) *Cell[T] {
	c := &Cell[T]{
		store:   store,
		key:     key,
		initial: initial,
	}
	c.value = c.load(ctx)
	return c
}

// Key returns the store key backing the cell.
func (c *Cell[T]) Key() string {
	return c.key
}

// Get returns the current in-memory value.
func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set replaces the value and writes it through to the store.
func (c *Cell[T]) Set(ctx context.Context, v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commit(ctx, v)
}

// Update computes the next value from the current one and writes it through.
// fn must be pure; it runs under the cell lock so concurrent updates never
// observe a stale value.
func (c *Cell[T]) Update(ctx context.Context, fn func(prev T) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := fn(c.value)
	c.commit(ctx, next)
	return next
}

// Clear resets the cell to its initial value and removes the key from the store.
func (c *Cell[T]) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = c.initial
	c.store.Remove(ctx, c.key)
}

// Reload re-reads the key, discarding the in-memory value.
func (c *Cell[T]) Reload(ctx context.Context) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = c.load(ctx)
	return c.value
}

// Follow reloads the cell whenever its key changes in the store, including
// writes made through other cells on the same key. onChange, if not nil, is
// called with the reloaded value. Follow returns once the subscription is
// established; it stops when ctx is done.
//
// onChange runs on the follower goroutine, so a slow callback delays the next
// reload. Changes that arrive meanwhile are coalesced: the next call receives
// the latest stored value, not every intermediate one.
func (c *Cell[T]) Follow(ctx context.Context, onChange func(T)) error {
	events, err := c.store.Watch(ctx, c.key)
	if err != nil {
		return err
	}

	go func() {
		for range events {
			core.Drain(events)
			v := c.Reload(ctx)
			if onChange != nil {
				onChange(v)
			}
		}
	}()
	return nil
}

func (c *Cell[T]) commit(ctx context.Context, v T) {
	c.value = v
	c.store.Set(ctx, c.key, v)
}

func (c *Cell[T]) load(ctx context.Context) T {
	var v T
	if c.store.Get(ctx, c.key, &v) {
		return v
	}
	return c.initial
}
