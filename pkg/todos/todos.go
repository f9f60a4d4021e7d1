// Package todos overlays locally persisted completion state on remote todos.
//
// Remote todos are read-only. Toggling one records the new completion value in
// a per-user override map stored under todos_override_<userId>; the remote
// value is used for every todo without an entry.
package todos

import (
	"context"
	"fmt"

	"github.com/aretw0/dashstate/pkg/core"
	"github.com/aretw0/dashstate/pkg/override"
	"github.com/aretw0/dashstate/pkg/remote"
	"github.com/aretw0/dashstate/pkg/typed"
)

// ID identifies a remote todo.
type ID int

// Overrides maps todo ids to their locally chosen completion value.
type Overrides = override.Map[ID, bool]

// Item is a remote todo with its effective completion value.
type Item = override.Item[remote.Todo, bool]

// KeyFor returns the store key holding the overrides of userID.
func KeyFor(userID int) string {
	return fmt.Sprintf("todos_override_%d", userID)
}

// Effective returns the completion value a view should display for t.
func Effective(t remote.Todo, m Overrides) bool {
	return override.Value(m, ID(t.ID), t.Completed)
}

// Merge pairs every todo with its effective completion value, in order.
func Merge(list []remote.Todo, m Overrides) []Item {
	return override.Merge(list, m, todoID, completed)
}

// CompletedCount counts effectively completed todos.
func CompletedCount(list []remote.Todo, m Overrides) int {
	n := 0
	for _, t := range list {
		if Effective(t, m) {
			n++
		}
	}
	return n
}

func todoID(t remote.Todo) ID      { return ID(t.ID) }
func completed(t remote.Todo) bool { return t.Completed }

// Board is the override cell of one user.
type Board struct {
	userID int
	cell   *typed.Cell[Overrides]
}

// NewBoard loads the overrides of userID.
func NewBoard(ctx context.Context, store *core.Store, userID int) *Board {
	return &Board{
		userID: userID,
		cell:   typed.NewCell(ctx, store, KeyFor(userID), Overrides{}),
	}
}

// UserID returns the user the board belongs to.
func (b *Board) UserID() int {
	return b.userID
}

// Overrides returns the current override map. Callers must not modify it.
func (b *Board) Overrides() Overrides {
	return b.cell.Get()
}

// Completed returns the effective completion value of t.
func (b *Board) Completed(t remote.Todo) bool {
	return Effective(t, b.cell.Get())
}

// Toggle flips the effective completion value of t and persists it.
// The flip is computed against the latest overrides, so quick successive
// toggles are never lost. It returns the new value.
func (b *Board) Toggle(ctx context.Context, t remote.Todo) bool {
	var next bool
	b.cell.Update(ctx, func(prev Overrides) Overrides {
		next = !Effective(t, prev)
		return prev.With(ID(t.ID), next)
	})
	return next
}

// Merge pairs every todo with its effective completion value.
func (b *Board) Merge(list []remote.Todo) []Item {
	return Merge(list, b.cell.Get())
}

// CompletedCount counts effectively completed todos. It is recomputed on
// every call from the full merged set.
func (b *Board) CompletedCount(list []remote.Todo) int {
	return CompletedCount(list, b.cell.Get())
}

// Follow reloads the board when its key is written elsewhere.
func (b *Board) Follow(ctx context.Context, onChange func(Overrides)) error {
	return b.cell.Follow(ctx, onChange)
}
