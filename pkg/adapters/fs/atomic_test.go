package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("Creates New File", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "notes_v1.json")

		require.NoError(t, writeFileAtomic(filename, []byte(`[]`), 0600))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(got))
	})

	t.Run("Overwrites Existing File", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "myapp_auth.json")
		require.NoError(t, os.WriteFile(filename, []byte("false"), 0600))

		require.NoError(t, writeFileAtomic(filename, []byte("true"), 0600))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, "true", string(got))
	})

	t.Run("Leaves No Temp Files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, writeFileAtomic(filepath.Join(dir, "k.json"), []byte("1"), 0600))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "k.json", entries[0].Name())
	})

	t.Run("Fails if Directory Missing", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "missing_folder", "k.json")
		assert.Error(t, writeFileAtomic(filename, []byte("fail"), 0600))
	})
}

func TestKeyFromFile(t *testing.T) {
	tests := []struct {
		name string
		key  string
		ok   bool
	}{
		{"notes_v1.json", "notes_v1", true},
		{"todos_override_3.json", "todos_override_3", true},
		{"a.b.json", "a.b", true},
		{TempFilePrefix + "123", "", false},
		{".hidden.json", "", false},
		{"readme.md", "", false},
		{"with space.json", "", false},
	}
	for _, tt := range tests {
		key, ok := keyFromFile(tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
		assert.Equal(t, tt.key, key, tt.name)
	}
}
