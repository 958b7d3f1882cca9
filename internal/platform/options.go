package platform

import (
	"io/fs"
	"log/slog"
	"time"

	"github.com/aretw0/lineage/pkg/bus"
	"github.com/aretw0/lineage/pkg/core"
	"github.com/aretw0/lineage/pkg/demo"
	"github.com/aretw0/lineage/pkg/dispatcher"
	"github.com/aretw0/lineage/pkg/family"
)

// options holds the internal configuration for a lineage service and demo.
type options struct {
	source  core.FixtureSource
	fsys    fs.FS
	bus     *bus.Bus
	logger  *slog.Logger
	adapter string
	config  map[string]interface{}

	renderer   []family.Option
	dispatcher []dispatcher.Option
	demo       []demo.Option
}

// Option defines a functional option for configuring lineage.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: "fs",
		config:  make(map[string]interface{}),
	}
}

func buildOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository injects a fixture source (e.g. a mock).
// If provided, the adapter selected by WithAdapter is skipped.
func WithRepository(src core.FixtureSource) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithAdapter selects the fixture adapter by name: "fs" (default) or "embedded".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithFS reads fixtures from fsys instead of a directory. Watching is unavailable.
func WithFS(fsys fs.FS) Option {
	return func(o *options) {
		o.fsys = fsys
	}
}

// WithBus shares an existing bus with the demo, e.g. to observe its traffic.
func WithBus(b *bus.Bus) Option {
	return func(o *options) {
		o.bus = b
	}
}

// WithMustExist fails initialization when the fixture directory is missing
// instead of creating it.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithStrict rejects unknown fields in fixture files.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.config["strict"] = strict
	}
}

// WithPatterns overrides the fixture discovery globs. Empty values keep the defaults.
func WithPatterns(people, countries string) Option {
	return func(o *options) {
		o.config["people_pattern"] = people
		o.config["countries_pattern"] = countries
	}
}

// WithEventBuffer sets the size of the watch event buffer.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures
// (e.g. permission denied) which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithDefaultCountry sets the country used for people without a resolvable country id.
func WithDefaultCountry(id int, name string) Option {
	return func(o *options) {
		o.renderer = append(o.renderer, family.WithDefaultCountry(id, name))
	}
}

// WithPalette sets the list style per nesting depth.
func WithPalette(styles ...string) Option {
	return func(o *options) {
		o.renderer = append(o.renderer, family.WithPalette(styles...))
	}
}

// WithFallbackStyle sets the list style used beyond the palette.
func WithFallbackStyle(style string) Option {
	return func(o *options) {
		o.renderer = append(o.renderer, family.WithFallbackStyle(style))
	}
}

// WithInterval sets the delay between synthetic dispatches.
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		o.dispatcher = append(o.dispatcher, dispatcher.WithInterval(d))
	}
}

// WithCount sets how many synthetic actions are dispatched.
func WithCount(n int) Option {
	return func(o *options) {
		o.dispatcher = append(o.dispatcher, dispatcher.WithCount(n))
	}
}

// WithMax sets the upper bound of the random payload value.
func WithMax(limit float64) Option {
	return func(o *options) {
		o.dispatcher = append(o.dispatcher, dispatcher.WithMax(limit))
	}
}

// WithRandom replaces the random source of the dispatcher.
func WithRandom(fn func() float64) Option {
	return func(o *options) {
		o.dispatcher = append(o.dispatcher, dispatcher.WithRandom(fn))
	}
}

// WithSubscribers sets how many listeners the demo registers.
func WithSubscribers(n int) Option {
	return func(o *options) {
		o.demo = append(o.demo, demo.WithSubscribers(n))
	}
}

// WithThreshold sets the index finder threshold (value > threshold).
func WithThreshold(v float64) Option {
	return func(o *options) {
		o.demo = append(o.demo, demo.WithThreshold(v))
	}
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(o *options) {
		o.demo = append(o.demo, demo.WithTitle(title))
	}
}
