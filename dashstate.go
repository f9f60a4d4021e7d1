package dashstate

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/dashstate/internal/platform"
	"github.com/aretw0/dashstate/pkg/core"
	"github.com/aretw0/dashstate/pkg/typed"
)

// --- Types ---

// App is the composition root: the store and every state component.
type App = platform.App

// Config is the on-disk configuration (dashstate.yaml).
type Config = platform.Config

// Cell is a public alias for the reactive persisted cell.
type Cell[T any] = typed.Cell[T]

// --- Configuration ---

// Option defines a functional option for configuring an App.
type Option = platform.Option

// WithAdapter selects the storage adapter by name: fs, sqlite, bolt or memory.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithBackend injects a custom storage backend.
func WithBackend(b core.Backend) Option {
	return platform.WithBackend(b)
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithReadOnly enables read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithMustExist requires the state path to exist already.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the `go run` sandbox.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithEventBuffer sets the per-subscriber event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatcher forwards changes made by other processes to Watch subscribers.
func WithWatcher(enabled bool) Option {
	return platform.WithWatcher(enabled)
}

// WithLegacySession stores the session under the two-key layout.
func WithLegacySession(enabled bool) Option {
	return platform.WithLegacySession(enabled)
}

// WithClock sets the time source for note timestamps.
func WithClock(clock func() time.Time) Option {
	return platform.WithClock(clock)
}

// WithIDGenerator sets the note id generator.
func WithIDGenerator(gen func() string) Option {
	return platform.WithIDGenerator(gen)
}

// WithRemote configures the records API.
func WithRemote(baseURL string, rps float64) Option {
	return platform.WithRemote(baseURL, rps)
}

// WithWeather configures the weather API.
func WithWeather(baseURL, apiKey string) Option {
	return platform.WithWeather(baseURL, apiKey)
}

// WithHTTPClient sets the HTTP client used by the remote clients.
func WithHTTPClient(c *http.Client) Option {
	return platform.WithHTTPClient(c)
}

// --- Factory ---

// New opens the state at path and wires every component.
func New(path string, opts ...Option) (*App, error) {
	return platform.New(path, opts...)
}

// Init opens and initializes a storage backend explicitly.
func Init(path string, opts ...Option) (core.Backend, error) {
	return platform.Init(path, opts...)
}

// OpenStore simplifies creating a bare Store from a path.
// Logger, event buffer and watcher options apply to the store.
func OpenStore(path string, opts ...Option) (*core.Store, error) {
	return platform.OpenStore(path, opts...)
}

// LoadConfig reads dashstate.yaml at path.
func LoadConfig(path string) (Config, error) {
	return platform.LoadConfig(path)
}

// --- Safety & Utils ---

// ResolvePath determines the actual state path based on safety rules.
func ResolvePath(userPath string, forceTemp bool) string {
	return platform.ResolvePath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindRoot looks upwards for a .dashstate directory or a dashstate.yaml file.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
