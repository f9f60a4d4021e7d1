package platform

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/dashstate/pkg/core"
	"github.com/aretw0/dashstate/pkg/notes"
	"github.com/aretw0/dashstate/pkg/remote"
	"github.com/aretw0/dashstate/pkg/session"
	"github.com/aretw0/dashstate/pkg/todos"
)

// App wires the store and every state component on top of it.
// It is constructed once per process and passed by reference.
type App struct {
	Store   *core.Store
	Session *session.Session
	Notes   *notes.Manager
	Remote  *remote.Client
	Weather *remote.WeatherClient
	Logger  *slog.Logger

	mu     sync.Mutex
	boards map[int]*todos.Board
}

// app, err := platform.New("./.dashstate", platform.WithAdapter("fs"))
// The URI argument is adapter-specific (see Init).
func New(uri string, opts ...Option) (*App, error) {
	o := resolve(opts)
	store, err := openStore(uri, o)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()

	layout := session.CompositeLayout
	if o.legacySession {
		layout = session.LegacyLayout
	}

	app := &App{
		Store:   store,
		Session: session.New(ctx, store, session.WithLayout(layout)),
		Notes:   notes.NewManager(ctx, store, notes.WithClock(o.clock), notes.WithIDGenerator(o.newID)),
		Remote:  remote.NewClient(remoteOptions(o, o.remoteURL)...),
		Weather: remote.NewWeatherClient(o.weatherKey, remoteOptions(o, o.weatherURL)...),
		Logger:  o.logger,
		boards:  make(map[int]*todos.Board),
	}
	return app, nil
}

// OpenStore opens a bare Store with the same logger, event buffer and
// watcher settings New would use.
func OpenStore(uri string, opts ...Option) (*core.Store, error) {
	return openStore(uri, resolve(opts))
}

func resolve(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

func openStore(uri string, o *options) (*core.Store, error) {
	backend, err := initBackend(uri, o)
	if err != nil {
		return nil, err
	}
	return core.NewStore(backend,
		core.WithLogger(o.logger),
		core.WithEventBuffer(o.eventBuffer),
		core.WithExternalEvents(o.watch),
	), nil
}

func remoteOptions(o *options, baseURL string) []remote.Option {
	opts := []remote.Option{remote.WithLogger(o.logger), remote.WithBaseURL(baseURL)}
	if o.remoteRPS > 0 {
		opts = append(opts, remote.WithRate(o.remoteRPS, int(o.remoteRPS)))
	}
	if o.httpClient != nil {
		opts = append(opts, remote.WithHTTPClient(o.httpClient))
	}
	return opts
}

// Todos returns the override board of userID, loading it on first use.
func (a *App) Todos(ctx context.Context, userID int) *todos.Board {
	a.mu.Lock()
	defer a.mu.Unlock()

	if b, ok := a.boards[userID]; ok {
		return b
	}
	b := todos.NewBoard(ctx, a.Store, userID)
	a.boards[userID] = b
	return b
}

// Close releases the store and its backend.
func (a *App) Close() error {
	return a.Store.Close()
}
