package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dashstate/pkg/adapters/adaptertest"
	"github.com/aretw0/dashstate/pkg/adapters/sqlite"
	"github.com/aretw0/dashstate/pkg/core"
)

func open(t *testing.T, path string, opts ...sqlite.Option) *sqlite.Backend {
	t.Helper()
	b, err := sqlite.Open(path, opts...)
	require.NoError(t, err)
	require.NoError(t, b.Initialize(context.Background()))
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestBackend_Contract(t *testing.T) {
	adaptertest.Run(t, func(t *testing.T) core.Backend {
		return open(t, filepath.Join(t.TempDir(), "state.db"))
	})
}

func TestBackend_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	first, err := sqlite.Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Initialize(ctx))
	require.NoError(t, first.Set(ctx, "notes_v1", []byte(`[]`)))
	require.NoError(t, first.Close())

	second := open(t, path)
	got, err := second.Get(ctx, "notes_v1")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestBackend_InitializeIdempotent(t *testing.T) {
	b := open(t, filepath.Join(t.TempDir(), "state.db"))
	assert.NoError(t, b.Initialize(context.Background()))
}

func TestBackend_ReadOnly(t *testing.T) {
	ctx := context.Background()
	b := open(t, filepath.Join(t.TempDir(), "state.db"), sqlite.WithReadOnly(true))

	assert.ErrorIs(t, b.Set(ctx, "k", []byte("1")), core.ErrReadOnly)
	assert.ErrorIs(t, b.Remove(ctx, "k"), core.ErrReadOnly)
}
