// Package demo drives the three showcase tasks: the sorted family tree,
// the periodic bus traffic and the index finder.
package demo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/a-h/templ"
	"github.com/aretw0/lifecycle"

	"github.com/aretw0/lineage/pkg/arrays"
	"github.com/aretw0/lineage/pkg/bus"
	"github.com/aretw0/lineage/pkg/core"
	"github.com/aretw0/lineage/pkg/dispatcher"
	"github.com/aretw0/lineage/pkg/family"
	"github.com/aretw0/lineage/pkg/page"
)

const (
	DefaultSubscribers = 2
	DefaultThreshold   = 0.0
)

// ErrNotStarted is returned by Wait before Init started the dispatcher.
var ErrNotStarted = errors.New("demo not initialized")

// View is a snapshot of the demo state.
type View struct {
	Markup  string
	Indexes []int
	Outputs [][]string
	Fired   int
}

// Demo owns the state shown on the page.
type Demo struct {
	svc    *core.Service
	bus    *bus.Bus
	logger *slog.Logger

	subscribers    int
	threshold      float64
	title          string
	dispatcherOpts []dispatcher.Option
	rendererOpts   []family.Option

	mu         sync.RWMutex
	markup     string
	indexes    []int
	outputs    [][]string
	dispatcher *dispatcher.Periodic
	finished   chan struct{}
	runErr     error
}

// Option configures a Demo.
type Option func(*Demo)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Demo) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithSubscribers sets how many listeners task 2 registers.
func WithSubscribers(n int) Option {
	return func(d *Demo) {
		if n > 0 {
			d.subscribers = n
		}
	}
}

// WithThreshold sets the predicate used by task 3 (value > threshold).
func WithThreshold(v float64) Option {
	return func(d *Demo) {
		d.threshold = v
	}
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(d *Demo) {
		d.title = title
	}
}

// WithDispatcherOptions forwards options to the periodic dispatcher.
func WithDispatcherOptions(opts ...dispatcher.Option) Option {
	return func(d *Demo) {
		d.dispatcherOpts = append(d.dispatcherOpts, opts...)
	}
}

// WithRendererOptions forwards options to the family renderer.
func WithRendererOptions(opts ...family.Option) Option {
	return func(d *Demo) {
		d.rendererOpts = append(d.rendererOpts, opts...)
	}
}

// New creates a Demo reading fixtures from svc and publishing on b.
func New(svc *core.Service, b *bus.Bus, opts ...Option) *Demo {
	d := &Demo{
		svc:         svc,
		bus:         b,
		logger:      slog.Default(),
		subscribers: DefaultSubscribers,
		threshold:   DefaultThreshold,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Init runs the three tasks in order. Task 2 only starts the dispatcher: every
// dispatch, the immediate first one included, happens on a background
// goroutine and may land after task 3. Use Wait to block until it is done.
func (d *Demo) Init(ctx context.Context) error {
	if err := d.Refresh(ctx); err != nil {
		return err
	}
	if err := d.startEvents(ctx); err != nil {
		return err
	}
	d.findIndexes()
	return nil
}

// Refresh reloads the fixtures and re-renders the family tree.
func (d *Demo) Refresh(ctx context.Context) error {
	people, err := d.svc.People(ctx)
	if err != nil {
		return fmt.Errorf("load people: %w", err)
	}
	dir, err := d.svc.Countries(ctx)
	if err != nil {
		return fmt.Errorf("load countries: %w", err)
	}

	opts := append([]family.Option{family.WithLogger(d.logger)}, d.rendererOpts...)
	markup := family.NewRenderer(dir, opts...).SortAndRender(people)

	d.mu.Lock()
	d.markup = markup
	d.mu.Unlock()

	d.logger.Debug("family tree rendered", "people", len(people), "countries", len(dir))
	return nil
}

func (d *Demo) startEvents(ctx context.Context) error {
	d.mu.Lock()
	if d.dispatcher != nil {
		d.mu.Unlock()
		return dispatcher.ErrAlreadyStarted
	}
	d.outputs = make([][]string, d.subscribers)
	opts := append([]dispatcher.Option{dispatcher.WithLogger(d.logger)}, d.dispatcherOpts...)
	p := dispatcher.New(d.bus, opts...)
	finished := make(chan struct{})
	d.dispatcher = p
	d.finished = finished
	d.mu.Unlock()

	for i := range d.subscribers {
		d.bus.Subscribe(func(a core.Action) error {
			d.mu.Lock()
			d.outputs[i] = append(d.outputs[i], a.String())
			d.mu.Unlock()
			return nil
		})
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(finished)
		err := p.Run(ctx)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		d.mu.Lock()
		d.runErr = err
		d.mu.Unlock()
		return err
	}, lifecycle.WithErrorHandler(func(err error) {
		d.logger.Error("dispatcher stopped", "error", err)
	}))
	return nil
}

func (d *Demo) findIndexes() {
	found := arrays.FindIndexes(arrays.SampleData, arrays.GreaterThan(d.threshold))
	d.mu.Lock()
	d.indexes = found
	d.mu.Unlock()
}

// Wait blocks until the dispatcher finished or ctx is done. It returns the
// dispatcher error, if any.
func (d *Demo) Wait(ctx context.Context) error {
	d.mu.RLock()
	finished := d.finished
	d.mu.RUnlock()
	if finished == nil {
		return ErrNotStarted
	}

	select {
	case <-finished:
	case <-ctx.Done():
		return ctx.Err()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.runErr
}

// View returns a copy of the current state.
func (d *Demo) View() View {
	d.mu.RLock()
	defer d.mu.RUnlock()

	v := View{
		Markup:  d.markup,
		Indexes: append([]int(nil), d.indexes...),
		Outputs: make([][]string, len(d.outputs)),
	}
	for i, out := range d.outputs {
		v.Outputs[i] = append([]string(nil), out...)
	}
	if d.dispatcher != nil {
		v.Fired = d.dispatcher.Fired()
	}
	return v
}

// Page renders the current state as an HTML document.
func (d *Demo) Page() templ.Component {
	v := d.View()
	return page.Render(page.View{
		Title:   d.title,
		Markup:  v.Markup,
		Indexes: v.Indexes,
		Outputs: v.Outputs,
	})
}

// Service returns the fixture service the demo reads from.
func (d *Demo) Service() *core.Service {
	return d.svc
}
