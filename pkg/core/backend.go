package core

import "context"

// Backend defines the raw contract for durable key-value storage.
// Implementations must make Set atomic per key: a reader of the same key
// observes either the previous value or the new one, never a partial write.
type Backend interface {
	// Get returns the stored bytes for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Keys lists every stored key.
	Keys(ctx context.Context) ([]string, error)

	// Initialize ensures the underlying storage is ready (directories, schema, buckets).
	Initialize(ctx context.Context) error
}

// Watchable is implemented by backends that can observe changes made
// outside of this process (e.g. another CLI invocation writing the same directory).
type Watchable interface {
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
