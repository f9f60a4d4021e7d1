package typed

import (
	"context"

	"github.com/aretw0/dashstate/pkg/core"
)

// Load reads a single typed value without binding a cell to it.
func Load[T any](ctx context.Context, store *core.Store, key string, fallback T) T {
	var v T
	if store.Get(ctx, key, &v) {
		return v
	}
	return fallback
}
