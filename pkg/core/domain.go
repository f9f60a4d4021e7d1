// Package core holds the storage contracts shared by every dashstate component.
package core

import (
	"fmt"
	"time"
)

// EventType represents the kind of change observed on a key.
type EventType string

const (
	EventSet    EventType = "SET"
	EventRemove EventType = "REMOVE"
)

// Event represents a change to a single key of the store.
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer (and lifecycle.Event).
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Key)
}

func newEvent(t EventType, key string) Event {
	return Event{Type: t, Key: key, Timestamp: time.Now().Unix()}
}
