package platform_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dashstate/internal/platform"
	"github.com/aretw0/dashstate/pkg/core"
	"github.com/aretw0/dashstate/pkg/notes"
	"github.com/aretw0/dashstate/pkg/remote"
	"github.com/aretw0/dashstate/pkg/session"
)

func openApp(t *testing.T, dir string, opts ...platform.Option) *platform.App {
	t.Helper()
	seq := 0
	base := []platform.Option{
		platform.WithClock(func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }),
		platform.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("n%d", seq)
		}),
	}
	app, err := platform.New(dir, append(base, opts...)...)
	require.NoError(t, err)
	return app
}

func TestApp_StatePersistsAcrossRestarts(t *testing.T) {
	for _, adapter := range []string{"fs", "sqlite", "bolt"} {
		t.Run(adapter, func(t *testing.T) {
			ctx := context.Background()
			uri := filepath.Join(t.TempDir(), "state")
			todo := remote.Todo{UserID: 1, ID: 5, Completed: false}

			app := openApp(t, uri, platform.WithAdapter(adapter))
			require.True(t, app.Session.Login(ctx, "admin", "password"))
			app.Notes.Add(ctx, "Buy milk", notes.Normal)
			app.Notes.Add(ctx, "Call bank", notes.Important)
			app.Todos(ctx, 1).Toggle(ctx, todo)
			require.NoError(t, app.Close())

			reopened := openApp(t, uri, platform.WithAdapter(adapter))
			defer reopened.Close()

			assert.True(t, reopened.Session.IsAuthenticated())
			u, _ := reopened.Session.User()
			assert.Equal(t, "Administrator", u.Name)

			g := reopened.Notes.Groups()
			require.Len(t, g.Important, 1)
			assert.Equal(t, "Call bank", g.Important[0].Text)
			require.Len(t, g.Normal, 1)
			assert.Equal(t, "Buy milk", g.Normal[0].Text)
			assert.Empty(t, g.Delayed)

			assert.True(t, reopened.Todos(ctx, 1).Completed(todo))
		})
	}
}

func TestApp_LegacySession(t *testing.T) {
	ctx := context.Background()
	app := openApp(t, "", platform.WithAdapter("memory"), platform.WithLegacySession(true))
	defer app.Close()

	app.Session.Login(ctx, "Hassan", "1234")

	raw, ok := app.Store.GetRaw(ctx, session.LegacyAuthKey)
	require.True(t, ok)
	assert.Equal(t, "true", string(raw))
}

func TestApp_TodosBoardIsShared(t *testing.T) {
	ctx := context.Background()
	app := openApp(t, "", platform.WithAdapter("memory"))
	defer app.Close()

	assert.Same(t, app.Todos(ctx, 3), app.Todos(ctx, 3))
	assert.NotSame(t, app.Todos(ctx, 3), app.Todos(ctx, 4))
}

func TestApp_RemoteWiring(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"username":"Bret"}]`))
	}))
	defer srv.Close()

	app := openApp(t, "", platform.WithAdapter("memory"), platform.WithRemote(srv.URL, 0))
	defer app.Close()

	users, err := app.Remote.FetchUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bret", users[0].Username)
}

func TestOpenStore_AppliesStoreOptions(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	store, err := platform.OpenStore("",
		platform.WithAdapter("memory"),
		platform.WithLogger(logger),
		platform.WithEventBuffer(8),
	)
	require.NoError(t, err)
	defer store.Close()

	assert.False(t, store.Set(context.Background(), "../escape", 1))
	assert.Contains(t, logs.String(), "failed to write key")

	state, ok := store.State().(core.StoreState)
	require.True(t, ok)
	assert.Equal(t, 8, state.EventBufferSize)
	assert.Same(t, logger, store.Logger())
}
