package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/dashstate/pkg/core"
)

const (
	// selfWriteWindow hides notifications caused by this process's own writes.
	selfWriteWindow = 500 * time.Millisecond
	// coalesceWindow merges the burst of notifications a single external
	// write usually produces (create, write, chmod).
	coalesceWindow = 50 * time.Millisecond
)

// Watch reports changes made to the directory by other processes for keys
// matching pattern. Writes made through this backend are not reported; the
// store already publishes those. The channel is closed when ctx is done.
func (b *Backend) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(b.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", b.Path, err)
	}

	out := make(chan core.Event, 16)
	b.setWatching(1)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		defer b.setWatching(-1)
		defer watcher.Close()
		return b.watchLoop(ctx, watcher, pattern, out)
	}, lifecycle.WithErrorHandler(func(err error) {
		b.logger.Error("fs watcher failed", "path", b.Path, "error", err)
	}))

	return out, nil
}

func (b *Backend) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, pattern string, out chan<- core.Event) error {
	last := make(map[string]time.Time)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}

			e, ok := b.translate(ev)
			if !ok {
				continue
			}
			if matched, _ := doublestar.Match(pattern, e.Key); !matched {
				continue
			}
			if b.isSelfWrite(e.Key) {
				b.logger.Debug("ignoring own write", "key", e.Key)
				continue
			}

			id := string(e.Type) + " " + e.Key
			now := time.Now()
			if t, seen := last[id]; seen && now.Sub(t) < coalesceWindow {
				continue
			}
			last[id] = now

			select {
			case out <- e:
			case <-ctx.Done():
				return nil
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			b.logger.Error("fsnotify error", "error", err)
		}
	}
}

// translate maps a filesystem notification to a key event.
func (b *Backend) translate(ev fsnotify.Event) (core.Event, bool) {
	key, ok := keyFromFile(filepath.Base(ev.Name))
	if !ok {
		return core.Event{}, false
	}

	var t core.EventType
	switch {
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		t = core.EventSet
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		t = core.EventRemove
	default:
		return core.Event{}, false
	}
	return core.Event{Type: t, Key: key, Timestamp: time.Now().Unix()}, true
}

func (b *Backend) markSelfWrite(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.watchers == 0 {
		return
	}
	now := time.Now()
	b.recent[key] = now
	for k, t := range b.recent {
		if now.Sub(t) > selfWriteWindow {
			delete(b.recent, k)
		}
	}
}

func (b *Backend) isSelfWrite(key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	t, ok := b.recent[key]
	return ok && time.Since(t) < selfWriteWindow
}

func (b *Backend) setWatching(delta int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.watchers += delta
	if b.watchers == 0 {
		clear(b.recent)
	}
}
