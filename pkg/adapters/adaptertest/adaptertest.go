// Package adaptertest holds the behavioural contract every core.Backend must satisfy.
package adaptertest

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dashstate/pkg/core"
)

// Factory returns a fresh, initialized backend for a single subtest.
type Factory func(t *testing.T) core.Backend

// Run executes the backend contract against backends produced by newBackend.
func Run(t *testing.T, newBackend Factory) {
	t.Helper()
	ctx := context.Background()

	t.Run("Get Missing Key", func(t *testing.T) {
		b := newBackend(t)
		_, err := b.Get(ctx, "missing")
		require.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("Set Then Get", func(t *testing.T) {
		b := newBackend(t)
		require.NoError(t, b.Set(ctx, "notes_v1", []byte(`[{"id":"a"}]`)))

		got, err := b.Get(ctx, "notes_v1")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"a"}]`, string(got))
	})

	t.Run("Set Overwrites", func(t *testing.T) {
		b := newBackend(t)
		require.NoError(t, b.Set(ctx, "myapp_auth", []byte("true")))
		require.NoError(t, b.Set(ctx, "myapp_auth", []byte("false")))

		got, err := b.Get(ctx, "myapp_auth")
		require.NoError(t, err)
		assert.Equal(t, "false", string(got))
	})

	t.Run("Remove Is Idempotent", func(t *testing.T) {
		b := newBackend(t)
		require.NoError(t, b.Set(ctx, "myapp_user", []byte(`{}`)))
		require.NoError(t, b.Remove(ctx, "myapp_user"))
		require.NoError(t, b.Remove(ctx, "myapp_user"))

		_, err := b.Get(ctx, "myapp_user")
		require.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("Keys", func(t *testing.T) {
		b := newBackend(t)
		require.NoError(t, b.Set(ctx, "todos_override_1", []byte(`{}`)))
		require.NoError(t, b.Set(ctx, "todos_override_2", []byte(`{}`)))
		require.NoError(t, b.Set(ctx, "notes_v1", []byte(`[]`)))
		require.NoError(t, b.Remove(ctx, "todos_override_2"))

		keys, err := b.Keys(ctx)
		require.NoError(t, err)
		sort.Strings(keys)
		assert.Equal(t, []string{"notes_v1", "todos_override_1"}, keys)
	})

	t.Run("Values Are Copied", func(t *testing.T) {
		b := newBackend(t)
		value := []byte(`"abc"`)
		require.NoError(t, b.Set(ctx, "k", value))
		value[1] = 'z'

		got, err := b.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, `"abc"`, string(got))
	})
}
