package lineage

import (
	"io/fs"
	"iter"
	"log/slog"
	"time"

	"github.com/aretw0/lineage/internal/platform"
	"github.com/aretw0/lineage/pkg/arrays"
	"github.com/aretw0/lineage/pkg/bus"
	"github.com/aretw0/lineage/pkg/core"
	"github.com/aretw0/lineage/pkg/demo"
	"github.com/aretw0/lineage/pkg/family"
)

// --- Types ---

// Person is a public alias for the family tree record.
type Person = core.Person

// Action is a public alias for a bus message.
type Action = core.Action

// Settings is a public alias for the lineage.yaml settings.
type Settings = platform.Settings

// --- Configuration ---

// Option defines a functional option for configuring lineage.
type Option = platform.Option

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom fixture source.
func WithRepository(src core.FixtureSource) Option {
	return platform.WithRepository(src)
}

// WithAdapter selects the fixture adapter by name ("fs" or "embedded").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithFS reads fixtures from an fs.FS.
func WithFS(fsys fs.FS) Option {
	return platform.WithFS(fsys)
}

// WithBus shares an existing bus with the demo.
func WithBus(b *bus.Bus) Option {
	return platform.WithBus(b)
}

// WithMustExist ensures the fixture directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithStrict rejects unknown fields in fixture files.
func WithStrict(strict bool) Option {
	return platform.WithStrict(strict)
}

// WithPatterns overrides the fixture discovery globs.
func WithPatterns(people, countries string) Option {
	return platform.WithPatterns(people, countries)
}

// WithEventBuffer allows specifying the size of the watch event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithDefaultCountry sets the fallback country.
func WithDefaultCountry(id int, name string) Option {
	return platform.WithDefaultCountry(id, name)
}

// WithPalette sets the list style per nesting depth.
func WithPalette(styles ...string) Option {
	return platform.WithPalette(styles...)
}

// WithFallbackStyle sets the list style used beyond the palette.
func WithFallbackStyle(style string) Option {
	return platform.WithFallbackStyle(style)
}

// WithInterval sets the delay between synthetic dispatches.
func WithInterval(d time.Duration) Option {
	return platform.WithInterval(d)
}

// WithCount sets how many synthetic actions are dispatched.
func WithCount(n int) Option {
	return platform.WithCount(n)
}

// WithMax sets the upper bound of the random payload value.
func WithMax(limit float64) Option {
	return platform.WithMax(limit)
}

// WithRandom replaces the random source of the dispatcher.
func WithRandom(fn func() float64) Option {
	return platform.WithRandom(fn)
}

// WithSubscribers sets how many listeners the demo registers.
func WithSubscribers(n int) Option {
	return platform.WithSubscribers(n)
}

// WithThreshold sets the index finder threshold.
func WithThreshold(v float64) Option {
	return platform.WithThreshold(v)
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return platform.WithTitle(title)
}

// --- Factory ---

// New creates a new fixture Service.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init initializes a fixture source explicitly.
func Init(path string, opts ...Option) (core.FixtureSource, error) {
	return platform.Init(path, opts...)
}

// NewDemo creates the demo controller.
func NewDemo(path string, opts ...Option) (*demo.Demo, error) {
	return platform.NewDemo(path, opts...)
}

// NewBus creates an event bus.
func NewBus(logger *slog.Logger) *bus.Bus {
	return bus.New(bus.WithLogger(logger))
}

// NewRenderer creates a family renderer.
func NewRenderer(dir core.Directory, opts ...Option) *family.Renderer {
	return platform.NewRenderer(dir, opts...)
}

// --- Utils ---

// SortFamily returns a deep copy of people sorted by birthday at every level.
func SortFamily(people []Person) []Person {
	return family.Sort(people)
}

// FindIndexes returns every index of values for which pred holds.
func FindIndexes[T any](values []T, pred func(item T, index int) bool) []int {
	return arrays.FindIndexes(values, pred)
}

// Indexes lazily yields every index of values for which pred holds.
func Indexes[T any](values []T, pred func(item T, index int) bool) iter.Seq[int] {
	return arrays.Indexes(values, pred)
}

// FindRoot looks upwards for a lineage.yaml file or a .lineage directory.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// LoadSettings reads lineage.yaml from dir.
func LoadSettings(dir string) (*Settings, error) {
	return platform.LoadSettings(dir)
}
