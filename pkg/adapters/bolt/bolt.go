// Package bolt stores keys in a single bucket of a Bolt database (bbolt).
package bolt

import (
	"context"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/aretw0/dashstate/pkg/core"
)

var bucketName = []byte("dashstate")

// Backend implements core.Backend on a Bolt database file.
// Bolt holds an exclusive file lock, so only one process can open it.
type Backend struct {
	DB       *bolt.DB
	readOnly bool
}

// Option configures a Bolt Backend.
type Option func(*options)

type options struct {
	readOnly bool
	timeout  time.Duration
}

// WithReadOnly opens the database read-only; Set and Remove fail with
// core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithTimeout bounds the wait for the file lock.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// Open opens or creates the database at path.
func Open(path string, opts ...Option) (*Backend, error) {
	o := &options{timeout: time.Second}
	for _, opt := range opts {
		opt(o)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: o.timeout, ReadOnly: o.readOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}
	return &Backend{DB: db, readOnly: o.readOnly}, nil
}

// Initialize creates the bucket. It is idempotent.
func (b *Backend) Initialize(ctx context.Context) error {
	if b.readOnly {
		return nil
	}
	return b.DB.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
}

func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.DB.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket == nil {
			return core.ErrNotFound
		}
		v := bucket.Get([]byte(key))
		if v == nil {
			return core.ErrNotFound
		}
		// v is only valid inside the transaction
		value = make([]byte, len(v))
		copy(value, v)
		return nil
	})
	return value, err
}

func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	if b.readOnly {
		return core.ErrReadOnly
	}
	return b.DB.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(key), value)
	})
}

func (b *Backend) Remove(ctx context.Context, key string) error {
	if b.readOnly {
		return core.ErrReadOnly
	}
	return b.DB.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(key))
	})
}

func (b *Backend) Keys(ctx context.Context) ([]string, error) {
	keys := []string{}
	err := b.DB.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

// Close the database and release the file lock.
func (b *Backend) Close() error {
	return b.DB.Close()
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "bolt"
}

var _ core.Backend = (*Backend)(nil)
