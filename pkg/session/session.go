// Package session persists the dashboard sign-in state.
//
// The authenticated flag is the only source of truth for authorization. A
// missing user on an authenticated session means the display name is
// unknown, never that the user is signed out.
package session

import (
	"context"
	"sync"

	"github.com/aretw0/dashstate/pkg/core"
)

// State is the persisted session record.
type State struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user,omitempty"`
}

// normalize drops a user left behind on a signed-out session.
func (s State) normalize() State {
	if !s.Authenticated {
		s.User = nil
	}
	return s
}

// Session holds the sign-in state and keeps it in the store.
type Session struct {
	store   *core.Store
	persist persister
	check   Credentials

	mu    sync.RWMutex
	state State
}

// Option configures a Session.
type Option func(*options)

type options struct {
	layout      Layout
	credentials Credentials
}

// WithLayout selects the storage layout.
func WithLayout(l Layout) Option {
	return func(o *options) {
		o.layout = l
	}
}

// WithCredentials replaces the default allow-list.
func WithCredentials(c Credentials) Option {
	return func(o *options) {
		if c != nil {
			o.credentials = c
		}
	}
}

// New loads the session from store.
func New(ctx context.Context, store *core.Store, opts ...Option) *Session {
	o := &options{credentials: CheckCredentials}
	for _, opt := range opts {
		opt(o)
	}

	var p persister = compositePersister{store: store}
	if o.layout == LegacyLayout {
		p = legacyPersister{store: store}
	}

	s := &Session{store: store, persist: p, check: o.credentials}
	s.state = p.load(ctx).normalize()
	return s
}

// Login signs in when the credentials match. On failure nothing changes.
func (s *Session) Login(ctx context.Context, username, password string) bool {
	profile, ok := s.check(username, password)
	if !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{Authenticated: true, User: &profile}
	s.persist.save(ctx, s.state)
	return true
}

// Logout signs out and removes the stored user.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
	s.persist.save(ctx, s.state)
}

// IsAuthenticated reports whether a user is signed in.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Authenticated
}

// User returns the signed-in profile, if known.
func (s *Session) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return User{}, false
	}
	return *s.state.User, true
}

// State returns a copy of the session record.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

// Reload re-reads the session from the store.
func (s *Session) Reload(ctx context.Context) State {
	st := s.persist.load(ctx).normalize()
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	return s.State()
}

// Follow reloads the session whenever its keys change in the store.
//
// onChange runs on the follower goroutine. In the legacy layout a Login or
// Logout writes two keys; events queued while onChange runs are coalesced, so
// it sees the latest state rather than each slot write.
func (s *Session) Follow(ctx context.Context, onChange func(State)) error {
	events, err := s.store.Watch(ctx, s.persist.pattern())
	if err != nil {
		return err
	}

	go func() {
		for range events {
			core.Drain(events)
			st := s.Reload(ctx)
			if onChange != nil {
				onChange(st)
			}
		}
	}()
	return nil
}
