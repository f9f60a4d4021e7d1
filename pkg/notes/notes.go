// Package notes manages the persisted, prioritized note collection.
//
// The collection lives under a single store key as a newest-first JSON array.
// Every operation is best effort: invalid input and unknown ids are silent
// no-ops, and storage failures are logged by the store while the in-memory
// collection still changes.
package notes

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/dashstate/pkg/core"
	"github.com/aretw0/dashstate/pkg/typed"
)

// Key is the store key of the note collection.
const Key = "notes_v1"

// Note is a short text filed under a priority.
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Priority  Priority  `json:"priority"`
	CreatedAt time.Time `json:"createdAt"`
}

// Manager owns the note collection and the pending input buffer.
type Manager struct {
	cell  *typed.Cell[[]Note]
	clock func() time.Time
	newID func() string

	mu            sync.Mutex
	draft         string
	draftPriority Priority
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the time source used for CreatedAt.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// WithIDGenerator sets the generator used for note ids.
func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) {
		if gen != nil {
			m.newID = gen
		}
	}
}

// NewManager loads the collection from store.
func NewManager(ctx context.Context, store *core.Store, opts ...Option) *Manager {
	m := &Manager{
		clock:         time.Now,
		newID:         uuid.NewString,
		draftPriority: Normal,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.cell = typed.NewCell(ctx, store, Key, []Note{})
	return m
}

// Notes returns a copy of the collection, newest first.
func (m *Manager) Notes() []Note {
	current := m.cell.Get()
	out := make([]Note, len(current))
	copy(out, current)
	return out
}

// Get returns the note with id.
func (m *Manager) Get(id string) (Note, bool) {
	for _, n := range m.cell.Get() {
		if n.ID == id {
			return n, true
		}
	}
	return Note{}, false
}

// Add files text under p as the newest note. Blank text and invalid
// priorities are rejected without touching the collection.
func (m *Manager) Add(ctx context.Context, text string, p Priority) (Note, bool) {
	text = strings.TrimSpace(text)
	if text == "" || !p.Valid() {
		return Note{}, false
	}

	n := Note{
		ID:        m.newID(),
		Text:      text,
		Priority:  p,
		CreatedAt: m.clock().UTC(),
	}
	m.cell.Update(ctx, func(prev []Note) []Note {
		next := make([]Note, 0, len(prev)+1)
		next = append(next, n)
		return append(next, prev...)
	})
	return n, true
}

// SetDraft replaces the input buffer.
func (m *Manager) SetDraft(text string, p Priority) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = text
	if p.Valid() {
		m.draftPriority = p
	}
}

// Draft returns the input buffer.
func (m *Manager) Draft() (string, Priority) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft, m.draftPriority
}

// Submit adds the input buffer as a note and clears its text on success.
// The selected priority is kept for the next note.
func (m *Manager) Submit(ctx context.Context) (Note, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.Add(ctx, m.draft, m.draftPriority)
	if ok {
		m.draft = ""
	}
	return n, ok
}

// Remove drops the note with id. It reports whether the note existed.
func (m *Manager) Remove(ctx context.Context, id string) bool {
	found := false
	m.cell.Update(ctx, func(prev []Note) []Note {
		next := make([]Note, 0, len(prev))
		for _, n := range prev {
			if n.ID == id {
				found = true
				continue
			}
			next = append(next, n)
		}
		if !found {
			return prev
		}
		return next
	})
	return found
}

// ChangePriority refiles the note with id under p, keeping its other fields.
// It reports whether the note existed.
func (m *Manager) ChangePriority(ctx context.Context, id string, p Priority) bool {
	if !p.Valid() {
		return false
	}

	found := false
	m.cell.Update(ctx, func(prev []Note) []Note {
		next := make([]Note, len(prev))
		for i, n := range prev {
			if n.ID == id {
				found = true
				n.Priority = p
			}
			next[i] = n
		}
		if !found {
			return prev
		}
		return next
	})
	return found
}

// Groups returns the collection partitioned by priority.
func (m *Manager) Groups() Groups {
	return GroupByPriority(m.cell.Get())
}

// Follow reloads the collection when it is written elsewhere.
func (m *Manager) Follow(ctx context.Context, onChange func([]Note)) error {
	return m.cell.Follow(ctx, onChange)
}
