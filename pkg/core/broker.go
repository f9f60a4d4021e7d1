package core

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

const defaultEventBuffer = 100

type subscriber struct {
	pattern string
	ch      chan Event
}

// broker fans store events out to subscribers whose pattern matches the key.
// Publishing never blocks: a subscriber with a full buffer misses the event.
type broker struct {
	mu     sync.Mutex
	subs   map[*subscriber]struct{}
	buffer int
	logger *slog.Logger
	closed bool
	done   chan struct{}
}

func newBroker(buffer int, logger *slog.Logger) *broker {
	if buffer <= 0 {
		buffer = defaultEventBuffer
	}
	return &broker{
		subs:   make(map[*subscriber]struct{}),
		buffer: buffer,
		logger: logger,
		done:   make(chan struct{}),
	}
}

func (b *broker) subscribe(ctx context.Context, pattern string) (<-chan Event, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}

	sub := &subscriber{pattern: pattern, ch: make(chan Event, b.buffer)}
	b.subs[sub] = struct{}{}

	go func() {
		select {
		case <-ctx.Done():
			b.unsubscribe(sub)
		case <-b.done:
		}
	}()

	return sub.ch, nil
}

func (b *broker) unsubscribe(sub *subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[sub]; !ok {
		return
	}
	delete(b.subs, sub)
	close(sub.ch)
}

func (b *broker) publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for sub := range b.subs {
		ok, err := doublestar.Match(sub.pattern, e.Key)
		if err != nil || !ok {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			b.logger.Debug("subscriber buffer full, dropping event", "key", e.Key, "pattern", sub.pattern)
		}
	}
}

func (b *broker) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *broker) close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	close(b.done)
	for sub := range b.subs {
		delete(b.subs, sub)
		close(sub.ch)
	}
}

// Drain discards the events already queued on ch without blocking.
// Followers call it before reloading so a burst of changes costs one reload.
func Drain(ch <-chan Event) {
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
