// Package dispatcher publishes synthetic debug actions on a fixed schedule.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/lineage/pkg/bus"
	"github.com/aretw0/lineage/pkg/core"
)

// Defaults used when no option overrides them.
const (
	DefaultInterval = 500 * time.Millisecond
	DefaultCount    = 5
	DefaultMax      = 10.0
)

// ErrAlreadyStarted is returned by Run when the dispatcher already ran.
var ErrAlreadyStarted = errors.New("dispatcher already started")

// Periodic dispatches one debug action immediately and then one per interval,
// stopping for good after count dispatches.
type Periodic struct {
	target   bus.Dispatcher
	interval time.Duration
	count    int
	max      float64
	random   func() float64
	logger   *slog.Logger

	started atomic.Bool
	fired   atomic.Int64
	done    chan struct{}
	once    sync.Once
}

// Option configures a Periodic dispatcher.
type Option func(*Periodic)

// WithInterval sets the delay between dispatches.
func WithInterval(d time.Duration) Option {
	return func(p *Periodic) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithCount sets the total number of dispatches, the immediate one included.
func WithCount(n int) Option {
	return func(p *Periodic) {
		if n >= 0 {
			p.count = n
		}
	}
}

// WithMax sets the exclusive upper bound of the random payload value.
func WithMax(limit float64) Option {
	return func(p *Periodic) {
		if limit > 0 {
			p.max = limit
		}
	}
}

// WithRandom replaces the source of random values in [0, 1).
func WithRandom(fn func() float64) Option {
	return func(p *Periodic) {
		if fn != nil {
			p.random = fn
		}
	}
}

// WithLogger sets the logger for the dispatcher.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Periodic) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a dispatcher publishing to target.
func New(target bus.Dispatcher, opts ...Option) *Periodic {
	p := &Periodic{
		target:   target,
		interval: DefaultInterval,
		count:    DefaultCount,
		max:      DefaultMax,
		random:   rand.Float64,
		logger:   slog.Default(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run blocks until every dispatch happened, ctx is done or a dispatch fails.
func (p *Periodic) Run(ctx context.Context) error {
	if !p.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	defer p.once.Do(func() { close(p.done) })

	if p.count == 0 {
		return nil
	}
	if err := p.fire(); err != nil {
		return err
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for int(p.fired.Load()) < p.count {
		select {
		case <-ctx.Done():
			p.logger.Debug("dispatcher cancelled", "fired", p.fired.Load())
			return ctx.Err()
		case <-ticker.C:
			if err := p.fire(); err != nil {
				return err
			}
		}
	}

	p.logger.Debug("dispatcher finished", "fired", p.fired.Load())
	return nil
}

func (p *Periodic) fire() error {
	action := core.Action{
		Type:    core.ActionDebug,
		Payload: Payload(p.random() * p.max),
	}
	n := p.fired.Add(1)
	if err := p.target.Dispatch(action); err != nil {
		p.logger.Error("dispatch failed", "n", n, "error", err)
		return fmt.Errorf("dispatch %d: %w", n, err)
	}
	return nil
}

// Fired returns how many actions were dispatched so far.
func (p *Periodic) Fired() int {
	return int(p.fired.Load())
}

// Done is closed when Run returns.
func (p *Periodic) Done() <-chan struct{} {
	return p.done
}

// Payload formats a random value the way the demo logs it.
func Payload(v float64) string {
	return fmt.Sprintf("Random data: %.3f", v)
}
