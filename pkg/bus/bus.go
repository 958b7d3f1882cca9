// Package bus is an in-process publish/subscribe helper for core.Action values.
//
// A Bus is created explicitly and handed to every component that publishes or listens;
// there is no package-level instance.
//
// Delivery contract:
//
//   - Callbacks run synchronously on the dispatching goroutine, in registration order.
//   - Dispatch delivers to the subscribers registered when it was called. A callback that
//     subscribes during a dispatch adds a listener for later actions only.
//   - The first callback returning an error stops the dispatch; later subscribers do not
//     see that action and the error is returned to the caller. Panics are not recovered.
//   - There is no unsubscribe.
package bus

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/lineage/pkg/core"
)

// Callback receives every action dispatched after its registration.
type Callback func(action core.Action) error

// Dispatcher is the publishing side of a Bus.
type Dispatcher interface {
	Dispatch(action core.Action) error
}

// Bus fans actions out to its subscribers.
type Bus struct {
	mu          sync.RWMutex
	subscribers []Callback
	dispatched  uint64
	failed      uint64
	logger      *slog.Logger
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger sets the logger for the bus.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bus) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New creates an empty Bus.
func New(opts ...Option) *Bus {
	b := &Bus{logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers cb for every subsequent dispatch.
func (b *Bus) Subscribe(cb Callback) {
	if cb == nil {
		return
	}
	b.mu.Lock()
	b.subscribers = append(b.subscribers, cb)
	n := len(b.subscribers)
	b.mu.Unlock()

	b.logger.Debug("subscriber registered", "position", n)
}

// Dispatch delivers action to the current subscribers.
func (b *Bus) Dispatch(action core.Action) error {
	b.mu.Lock()
	b.dispatched++
	// Snapshot: callbacks may subscribe while we iterate.
	subs := b.subscribers[:len(b.subscribers):len(b.subscribers)]
	b.mu.Unlock()

	b.logger.Debug("dispatching action", "type", action.Type, "subscribers", len(subs))

	for i, cb := range subs {
		if err := cb(action); err != nil {
			b.mu.Lock()
			b.failed++
			b.mu.Unlock()
			return fmt.Errorf("subscriber %d failed on %s action: %w", i+1, action.Type, err)
		}
	}
	return nil
}

// Len returns the number of registered subscribers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

var _ Dispatcher = (*Bus)(nil)
