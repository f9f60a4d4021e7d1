package bolt_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dashstate/pkg/adapters/adaptertest"
	"github.com/aretw0/dashstate/pkg/adapters/bolt"
	"github.com/aretw0/dashstate/pkg/core"
)

func open(t *testing.T, path string) *bolt.Backend {
	t.Helper()
	b, err := bolt.Open(path)
	require.NoError(t, err)
	require.NoError(t, b.Initialize(context.Background()))
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestBackend_Contract(t *testing.T) {
	adaptertest.Run(t, func(t *testing.T) core.Backend {
		return open(t, filepath.Join(t.TempDir(), "state.bolt"))
	})
}

func TestBackend_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.bolt")

	first, err := bolt.Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Initialize(ctx))
	require.NoError(t, first.Set(ctx, "todos_override_1", []byte(`{"5":true}`)))
	require.NoError(t, first.Close())

	second := open(t, path)
	got, err := second.Get(ctx, "todos_override_1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"5":true}`, string(got))
}

func TestBackend_LockTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.bolt")
	open(t, path)

	_, err := bolt.Open(path, bolt.WithTimeout(50*time.Millisecond))
	assert.Error(t, err, "a second handle cannot take the file lock")
}

func TestBackend_ConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	b := open(t, filepath.Join(t.TempDir(), "state.bolt"))

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func(i int) {
			done <- b.Set(ctx, fmt.Sprintf("todos_override_%d", i), []byte(`{"1":true}`))
		}(i)
	}
	for i := 0; i < 8; i++ {
		require.NoError(t, <-done)
	}

	keys, err := b.Keys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 8)

	got, err := b.Get(ctx, "todos_override_3")
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":true}`, string(got))
}
