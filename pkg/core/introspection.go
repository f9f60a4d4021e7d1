package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	EventBufferSize int    `json:"event_buffer_size"`
	Subscribers     int    `json:"subscribers"`
	BackendType     string `json:"backend_type"`
	ExternalEvents  bool   `json:"external_events"`
	Closed          bool   `json:"closed"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()

	backendType := "unknown"
	if s.backend != nil {
		backendType = "backend"
		if comp, ok := s.backend.(introspection.Component); ok {
			backendType = comp.ComponentType()
		}
	}

	return StoreState{
		EventBufferSize: s.broker.buffer,
		Subscribers:     s.broker.len(),
		BackendType:     backendType,
		ExternalEvents:  s.external,
		Closed:          closed,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
