package platform

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/dashstate/pkg/core"
)

// options holds the internal configuration of a dashstate App.
type options struct {
	backend     core.Backend
	logger      *slog.Logger
	adapter     string
	readOnly    bool
	mustExist   bool
	forceTemp   bool
	devSafety   bool
	eventBuffer int
	watch       bool

	legacySession bool
	clock         func() time.Time
	newID         func() string

	remoteURL  string
	remoteRPS  float64
	weatherURL string
	weatherKey string
	httpClient *http.Client
}

// Option defines a functional option for configuring an App.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		adapter:   "fs",
		devSafety: true,
	}
}

// WithAdapter selects the storage adapter by name: fs, sqlite, bolt or memory.
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithBackend injects a custom storage backend. The adapter name and the
// URI are ignored when set.
func WithBackend(b core.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Writes fail and are logged; in-memory state still changes.
// 2. The state directory is not created.
// 3. The dev sandbox is bypassed (uses the real path).
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithMustExist requires the state path to exist already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or
// `go test`. By default (true) the state path is re-rooted into a temporary
// directory.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithEventBuffer sets the per-subscriber event buffer. Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithWatcher forwards changes made by other processes to Watch subscribers,
// when the adapter supports it (fs).
func WithWatcher(enabled bool) Option {
	return func(o *options) {
		o.watch = enabled
	}
}

// WithLegacySession stores the session under the two-key layout
// (myapp_auth, myapp_user) instead of the composite record.
func WithLegacySession(enabled bool) Option {
	return func(o *options) {
		o.legacySession = enabled
	}
}

// WithClock sets the time source for note timestamps.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithIDGenerator sets the note id generator.
func WithIDGenerator(gen func() string) Option {
	return func(o *options) {
		o.newID = gen
	}
}

// WithRemote configures the records API. rps <= 0 keeps the default pacing.
func WithRemote(baseURL string, rps float64) Option {
	return func(o *options) {
		o.remoteURL = baseURL
		o.remoteRPS = rps
	}
}

// WithWeather configures the weather API.
func WithWeather(baseURL, apiKey string) Option {
	return func(o *options) {
		o.weatherURL = baseURL
		o.weatherKey = apiKey
	}
}

// WithHTTPClient sets the HTTP client used by the remote clients.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}
