package platform_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dashstate/internal/platform"
	"github.com/aretw0/dashstate/pkg/adapters/bolt"
	"github.com/aretw0/dashstate/pkg/adapters/fs"
	"github.com/aretw0/dashstate/pkg/adapters/memory"
	"github.com/aretw0/dashstate/pkg/adapters/sqlite"
	"github.com/aretw0/dashstate/pkg/core"
)

func closeIfCloser(t *testing.T, b core.Backend) {
	t.Helper()
	if c, ok := b.(interface{ Close() error }); ok {
		t.Cleanup(func() { _ = c.Close() })
	}
}

func TestInit_Adapters(t *testing.T) {
	tests := []struct {
		adapter string
		uri     func(dir string) string
		check   func(t *testing.T, b core.Backend)
	}{
		{"fs", func(dir string) string { return filepath.Join(dir, ".dashstate") }, func(t *testing.T, b core.Backend) {
			assert.IsType(t, &fs.Backend{}, b)
		}},
		{"sqlite", func(dir string) string { return filepath.Join(dir, "db", "state.db") }, func(t *testing.T, b core.Backend) {
			assert.IsType(t, &sqlite.Backend{}, b)
		}},
		{"bolt", func(dir string) string { return filepath.Join(dir, "state.bolt") }, func(t *testing.T, b core.Backend) {
			assert.IsType(t, &bolt.Backend{}, b)
		}},
		{"memory", func(string) string { return "" }, func(t *testing.T, b core.Backend) {
			assert.IsType(t, &memory.Backend{}, b)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.adapter, func(t *testing.T) {
			ctx := context.Background()
			b, err := platform.Init(tt.uri(t.TempDir()), platform.WithAdapter(tt.adapter))
			require.NoError(t, err)
			closeIfCloser(t, b)
			tt.check(t, b)

			require.NoError(t, b.Set(ctx, "notes_v1", []byte(`[]`)))
			got, err := b.Get(ctx, "notes_v1")
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(got))
		})
	}
}

func TestInit_UnknownAdapter(t *testing.T) {
	_, err := platform.Init(t.TempDir(), platform.WithAdapter("s3"))
	assert.ErrorContains(t, err, "unknown adapter: s3")
}

func TestInit_MustExist(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	_, err := platform.Init(missing, platform.WithMustExist(true))
	assert.Error(t, err)

	_, err = platform.Init(filepath.Join(missing, "state.db"), platform.WithAdapter("sqlite"), platform.WithMustExist(true))
	assert.ErrorContains(t, err, "does not exist")
}

func TestInit_InjectedBackend(t *testing.T) {
	injected := memory.New()
	b, err := platform.Init("ignored", platform.WithAdapter("unknown"), platform.WithBackend(injected))
	require.NoError(t, err)
	assert.Same(t, injected, b)
}

func TestInit_ReadOnlyDoesNotCreate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")

	_, err := platform.Init(dir, platform.WithReadOnly(true))
	assert.Error(t, err)
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}
