package platform

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/dashstate/pkg/adapters/bolt"
	"github.com/aretw0/dashstate/pkg/adapters/fs"
	"github.com/aretw0/dashstate/pkg/adapters/memory"
	"github.com/aretw0/dashstate/pkg/adapters/sqlite"
	"github.com/aretw0/dashstate/pkg/core"
)

// Adapters lists the adapter names accepted by WithAdapter.
var Adapters = []string{"fs", "sqlite", "bolt", "memory"}

// Init opens and initializes the storage backend selected by the options.
// The 'uri' argument is adapter-specific: a directory for fs, a database
// file for sqlite and bolt, ignored for memory.
func Init(uri string, opts ...Option) (core.Backend, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return initBackend(uri, o)
}

func initBackend(uri string, o *options) (core.Backend, error) {
	if o.backend != nil {
		if err := o.backend.Initialize(context.Background()); err != nil {
			return nil, err
		}
		return o.backend, nil
	}

	var (
		backend core.Backend
		err     error
	)

	switch o.adapter {
	case "memory":
		backend = memory.New(memory.WithReadOnly(o.readOnly))
	case "fs":
		backend = fs.New(fs.Config{
			Path:      resolvePath(uri, o),
			MustExist: o.mustExist,
			ReadOnly:  o.readOnly,
			Logger:    o.logger,
		})
	case "sqlite":
		var path string
		if path, err = prepareFile(uri, o); err != nil {
			return nil, err
		}
		backend, err = sqlite.Open(path, sqlite.WithReadOnly(o.readOnly))
	case "bolt":
		var path string
		if path, err = prepareFile(uri, o); err != nil {
			return nil, err
		}
		backend, err = bolt.Open(path, bolt.WithReadOnly(o.readOnly))
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
	if err != nil {
		return nil, err
	}

	if err := backend.Initialize(context.Background()); err != nil {
		closeBackend(backend)
		return nil, err
	}
	return backend, nil
}

// resolvePath applies the dev sandbox rules to uri.
func resolvePath(uri string, o *options) string {
	// read-only is inherently safe
	bypassSafety := o.readOnly || !o.devSafety
	useTemp := o.forceTemp || (IsDevRun() && !bypassSafety)
	resolved := ResolvePath(uri, useTemp)

	if o.logger != nil && IsDevRun() {
		switch {
		case o.readOnly:
			o.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolved)
		case bypassSafety:
			o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolved)
		default:
			o.logger.Debug("running in SAFE mode (dev sandbox enabled)", "path", resolved)
		}
	}
	return resolved
}

// prepareFile resolves a database file path and creates its directory.
func prepareFile(uri string, o *options) (string, error) {
	if uri == "" {
		return "", fmt.Errorf("%s adapter requires a database path", o.adapter)
	}
	path := resolvePath(uri, o)

	if o.mustExist || o.readOnly {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("database does not exist: %s", path)
		}
		return path, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create database directory: %w", err)
	}
	return path, nil
}

func closeBackend(b core.Backend) {
	if c, ok := b.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			slog.Default().Debug("failed to close backend", "error", err)
		}
	}
}
