// Package lifecycle bridges lineage event streams to aretw0/lifecycle sources.
package lifecycle

import (
	"context"
	"sync"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/lineage/pkg/bus"
	"github.com/aretw0/lineage/pkg/core"
)

type channelSource[T lifecycle.Event] struct {
	events  <-chan T
	out     chan lifecycle.Event
	stopped chan struct{}
	once    sync.Once
}

// NewSource creates a lifecycle.Source re-emitting every value of events.
// Both core.Event and core.Action satisfy lifecycle.Event through their String method.
func NewSource[T lifecycle.Event](events <-chan T) lifecycle.Source {
	return &channelSource[T]{
		events:  events,
		out:     make(chan lifecycle.Event),
		stopped: make(chan struct{}),
	}
}

// FromBus subscribes to b and exposes its actions as a lifecycle.Source.
// The subscription exists as soon as FromBus returns, so no action dispatched
// afterwards is missed. Once buffer actions are queued, Dispatch blocks until
// the source is consumed. After the source stops, actions are dropped.
func FromBus(b *bus.Bus, buffer int) lifecycle.Source {
	actions := make(chan core.Action, buffer)
	src := &channelSource[core.Action]{
		events:  actions,
		out:     make(chan lifecycle.Event),
		stopped: make(chan struct{}),
	}
	b.Subscribe(func(a core.Action) error {
		select {
		case actions <- a:
		case <-src.stopped:
		}
		return nil
	})
	return src
}

func (s *channelSource[T]) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *channelSource[T]) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer s.once.Do(func() { close(s.stopped) })
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
