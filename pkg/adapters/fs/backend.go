// Package fs stores each key as a <key>.json file in a directory.
//
// Writes go through a temp file and a rename, so a crash never leaves a
// half-written value behind. The optional watcher reports changes made to
// the directory by other processes.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/dashstate/pkg/core"
)

const fileExt = ".json"

// Config holds the configuration for the filesystem backend.
type Config struct {
	Path      string
	MustExist bool
	ReadOnly  bool
	Logger    *slog.Logger
	// FileMode is applied to value files. Zero means 0600.
	FileMode os.FileMode
}

// Backend implements core.Backend and core.Watchable on a directory.
type Backend struct {
	Path   string
	config Config
	logger *slog.Logger

	mu       sync.RWMutex
	watchers int
	recent   map[string]time.Time
}

// New creates a filesystem backend rooted at config.Path.
func New(config Config) *Backend {
	if config.FileMode == 0 {
		config.FileMode = 0600
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Backend{
		Path:   config.Path,
		config: config,
		logger: logger,
		recent: make(map[string]time.Time),
	}
}

// Initialize creates the directory, or checks it exists when MustExist is set.
func (b *Backend) Initialize(ctx context.Context) error {
	if b.config.MustExist || b.config.ReadOnly {
		info, err := os.Stat(b.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("state path does not exist: %s", b.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat state path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("state path is not a directory: %s", b.Path)
		}
		return nil
	}

	if err := os.MkdirAll(b.Path, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	return nil
}

func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(b.file(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	if b.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	b.markSelfWrite(key)
	if err := writeFileAtomic(b.file(key), value, b.config.FileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (b *Backend) Remove(ctx context.Context, key string) error {
	if b.config.ReadOnly {
		return core.ErrReadOnly
	}

	b.markSelfWrite(key)
	err := os.Remove(b.file(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (b *Backend) Keys(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(b.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to list state directory: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if key, ok := keyFromFile(e.Name()); ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (b *Backend) file(key string) string {
	return filepath.Join(b.Path, key+fileExt)
}

// keyFromFile maps a directory entry back to its key. Temp files, hidden
// files and files without the value extension are not keys.
func keyFromFile(name string) (string, bool) {
	if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, fileExt) {
		return "", false
	}
	key := strings.TrimSuffix(name, fileExt)
	if core.ValidateKey(key) != nil {
		return "", false
	}
	return key, true
}

var (
	_ core.Backend   = (*Backend)(nil)
	_ core.Watchable = (*Backend)(nil)
)
