package notes_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/aretw0/dashstate/pkg/adapters/memory"
	"github.com/aretw0/dashstate/pkg/core"
	"github.com/aretw0/dashstate/pkg/notes"
)

var fixedTime = time.Date(2025, 3, 14, 9, 26, 0, 0, time.UTC)

func newManager(t testing.TB, store *core.Store) *notes.Manager {
	t.Helper()
	seq := 0
	return notes.NewManager(context.Background(), store,
		notes.WithClock(func() time.Time { return fixedTime }),
		notes.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("note-%d", seq)
		}),
	)
}

func newStore(t testing.TB) *core.Store {
	t.Helper()
	store := core.NewStore(memory.New())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func texts(list []notes.Note) []string {
	out := make([]string, 0, len(list))
	for _, n := range list {
		out = append(out, n.Text)
	}
	return out
}

func TestManager_Scenario(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, newStore(t))

	m.Add(ctx, "Buy milk", notes.Normal)
	m.Add(ctx, "Call bank", notes.Important)

	g := m.Groups()
	assert.Equal(t, []string{"Call bank"}, texts(g.Important))
	assert.Equal(t, []string{"Buy milk"}, texts(g.Normal))
	assert.Empty(t, g.Delayed)
	assert.NotNil(t, g.Delayed)
}

func TestManager_Add(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	m := newManager(t, store)

	n, ok := m.Add(ctx, "  Call bank  ", notes.Important)
	require.True(t, ok)
	assert.Equal(t, notes.Note{ID: "note-1", Text: "Call bank", Priority: notes.Important, CreatedAt: fixedTime}, n)

	raw, ok := store.GetRaw(ctx, notes.Key)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"note-1","text":"Call bank","priority":"important","createdAt":"2025-03-14T09:26:00Z"}]`, string(raw))

	reopened := newManager(t, store)
	assert.Equal(t, []notes.Note{n}, reopened.Notes())
}

func TestManager_AddRejects(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	m := newManager(t, store)
	m.Add(ctx, "keep", notes.Delayed)
	before := m.Notes()

	_, ok := m.Add(ctx, "   ", notes.Normal)
	assert.False(t, ok)
	_, ok = m.Add(ctx, "valid text", notes.Priority(9))
	assert.False(t, ok)

	assert.Equal(t, before, m.Notes())
}

func TestManager_NewestFirst(t *testing.T) {
	ctx := context.Background()

	rapid.Check(t, func(t *rapid.T) {
		m := notes.NewManager(ctx, core.NewStore(memory.New()))
		for _, text := range rapid.SliceOf(rapid.StringMatching(`[a-z]{1,8}`)).Draw(t, "seed") {
			m.Add(ctx, text, notes.Normal)
		}

		t1 := rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "t1")
		t2 := rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "t2")
		m.Add(ctx, t1, notes.Important)
		m.Add(ctx, t2, notes.Delayed)

		if got := m.Notes()[0].Text; got != t2 {
			t.Fatalf("expected newest %q first, got %q", t2, got)
		}
	})
}

func TestManager_AddRemoveInverse(t *testing.T) {
	ctx := context.Background()

	rapid.Check(t, func(t *rapid.T) {
		m := notes.NewManager(ctx, core.NewStore(memory.New()))
		for i, text := range rapid.SliceOf(rapid.StringMatching(`[a-z ]{0,8}`)).Draw(t, "seed") {
			m.Add(ctx, text, notes.Priorities()[i%3])
		}
		before := m.Notes()

		p := notes.Priorities()[rapid.IntRange(0, 2).Draw(t, "p")]
		n, ok := m.Add(ctx, rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "text"), p)
		if !ok {
			t.Fatalf("add rejected a non-blank note")
		}
		if !m.Remove(ctx, n.ID) {
			t.Fatalf("remove did not find %s", n.ID)
		}

		after := m.Notes()
		if len(after) != len(before) {
			t.Fatalf("expected %d notes, got %d", len(before), len(after))
		}
		for i := range before {
			if before[i] != after[i] {
				t.Fatalf("note %d changed: %+v != %+v", i, before[i], after[i])
			}
		}
	})
}

func TestGroupByPriority_Partition(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 30).Draw(t, "n")
		list := make([]notes.Note, 0, n)
		for i := 0; i < n; i++ {
			list = append(list, notes.Note{
				ID:       fmt.Sprintf("id-%d", i),
				Priority: notes.Priorities()[rapid.IntRange(0, 2).Draw(t, "p")],
			})
		}

		g := notes.GroupByPriority(list)
		if g.Len() != len(list) {
			t.Fatalf("expected %d grouped notes, got %d", len(list), g.Len())
		}

		seen := map[string]bool{}
		for _, p := range notes.Priorities() {
			last := -1
			for _, note := range g.Bucket(p) {
				if note.Priority != p {
					t.Fatalf("%s filed under %s", note.ID, p)
				}
				if seen[note.ID] {
					t.Fatalf("%s appears in two buckets", note.ID)
				}
				seen[note.ID] = true

				var idx int
				fmt.Sscanf(note.ID, "id-%d", &idx)
				if idx < last {
					t.Fatalf("bucket %s is out of order", p)
				}
				last = idx
			}
		}
	})
}

func TestManager_Remove(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, newStore(t))
	m.Add(ctx, "a", notes.Normal)

	assert.False(t, m.Remove(ctx, "missing"))
	assert.Len(t, m.Notes(), 1)

	assert.True(t, m.Remove(ctx, "note-1"))
	assert.Empty(t, m.Notes())
}

func TestManager_ChangePriority(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, newStore(t))
	original, _ := m.Add(ctx, "Call bank", notes.Normal)
	m.Add(ctx, "Buy milk", notes.Normal)

	assert.True(t, m.ChangePriority(ctx, original.ID, notes.Delayed))

	got, ok := m.Get(original.ID)
	require.True(t, ok)
	assert.Equal(t, notes.Delayed, got.Priority)
	assert.Equal(t, original.Text, got.Text)
	assert.Equal(t, original.CreatedAt, got.CreatedAt)
	assert.Equal(t, []string{"Buy milk", "Call bank"}, texts(m.Notes()), "position is kept")

	assert.False(t, m.ChangePriority(ctx, "missing", notes.Important))
	assert.False(t, m.ChangePriority(ctx, original.ID, notes.Priority(0)))
}

func TestManager_Submit(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, newStore(t))

	m.SetDraft("   ", notes.Important)
	_, ok := m.Submit(ctx)
	assert.False(t, ok)
	text, _ := m.Draft()
	assert.Equal(t, "   ", text, "rejected input is kept")

	m.SetDraft("Call bank", notes.Important)
	n, ok := m.Submit(ctx)
	require.True(t, ok)
	assert.Equal(t, notes.Important, n.Priority)

	text, p := m.Draft()
	assert.Empty(t, text)
	assert.Equal(t, notes.Important, p)
}

func TestManager_CorruptCollection(t *testing.T) {
	ctx := context.Background()
	store := core.NewStore(memory.New(memory.WithSeed(map[string][]byte{
		notes.Key: []byte(`[{"id":"1","text":"x","priority":"urgent"}]`),
	})))
	defer store.Close()

	m := notes.NewManager(ctx, store)
	assert.Empty(t, m.Notes())
	assert.NotNil(t, m.Notes())
}

func TestManager_NotesReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, newStore(t))
	m.Add(ctx, "a", notes.Normal)

	list := m.Notes()
	list[0].Text = "mutated"

	assert.Equal(t, "a", m.Notes()[0].Text)
}
