package session

import (
	"context"

	"github.com/aretw0/dashstate/pkg/core"
	"github.com/aretw0/dashstate/pkg/typed"
)

const (
	// Key holds the composite session record.
	Key = "myapp_session"
	// LegacyAuthKey holds the literal true/false flag of the two-key layout.
	LegacyAuthKey = "myapp_auth"
	// LegacyUserKey holds the user profile of the two-key layout.
	LegacyUserKey = "myapp_user"
)

// Layout selects how the session is persisted.
type Layout int

const (
	// CompositeLayout writes the flag and the user as one record.
	CompositeLayout Layout = iota
	// LegacyLayout writes the flag and the user under two independent keys.
	// A crash between the two writes can leave them inconsistent; the flag
	// is authoritative.
	LegacyLayout
)

func (l Layout) String() string {
	if l == LegacyLayout {
		return "legacy"
	}
	return "composite"
}

type persister interface {
	load(ctx context.Context) State
	save(ctx context.Context, st State)
	pattern() string
}

type compositePersister struct {
	store *core.Store
}

func (p compositePersister) load(ctx context.Context) State {
	return typed.Load(ctx, p.store, Key, State{})
}

func (p compositePersister) save(ctx context.Context, st State) {
	p.store.Set(ctx, Key, st)
}

func (p compositePersister) pattern() string {
	return Key
}

var (
	rawTrue  = []byte("true")
	rawFalse = []byte("false")
)

type legacyPersister struct {
	store *core.Store
}

// load reads both slots independently. Anything but the literal true is
// treated as signed out.
func (p legacyPersister) load(ctx context.Context) State {
	raw, _ := p.store.GetRaw(ctx, LegacyAuthKey)
	st := State{Authenticated: string(raw) == string(rawTrue)}

	var u User
	if p.store.Get(ctx, LegacyUserKey, &u) {
		st.User = &u
	}
	return st
}

func (p legacyPersister) save(ctx context.Context, st State) {
	flag := rawFalse
	if st.Authenticated {
		flag = rawTrue
	}
	p.store.SetRaw(ctx, LegacyAuthKey, flag)

	if st.User != nil {
		p.store.Set(ctx, LegacyUserKey, st.User)
	} else {
		p.store.Remove(ctx, LegacyUserKey)
	}
}

func (p legacyPersister) pattern() string {
	return "{" + LegacyAuthKey + "," + LegacyUserKey + "}"
}
