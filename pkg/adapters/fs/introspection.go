package fs

import (
	"github.com/aretw0/introspection"
)

// BackendState exposes internal state for observability.
type BackendState struct {
	Path          string `json:"path"`
	ReadOnly      bool   `json:"read_only"`
	MustExist     bool   `json:"must_exist"`
	Watchers      int    `json:"watchers"`
	PendingWrites int    `json:"pending_self_writes"`
}

// State implements introspection.Introspectable.
func (b *Backend) State() any {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return BackendState{
		Path:          b.Path,
		ReadOnly:      b.config.ReadOnly,
		MustExist:     b.config.MustExist,
		Watchers:      b.watchers,
		PendingWrites: len(b.recent),
	}
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*Backend)(nil)
var _ introspection.Component = (*Backend)(nil)
