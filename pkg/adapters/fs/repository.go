package fs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	iofs "io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"

	"github.com/aretw0/lineage/pkg/core"
)

// Default discovery patterns, relative to the fixture root.
const (
	DefaultPeoplePattern    = "**/people.{yaml,yml,json}"
	DefaultCountriesPattern = "**/countries.{yaml,yml,json}"
)

// Repository implements core.FixtureSource over a directory or an fs.FS.
type Repository struct {
	Path     string
	fsys     iofs.FS
	config   Config
	decoders map[string]Decoder
	validate *validator.Validate

	mu            sync.RWMutex
	watcherActive bool
	loads         int
	lastLoad      *time.Time
}

// Config holds the configuration for the fixture repository.
type Config struct {
	Path             string  // Fixture directory. Required for Watch.
	FS               iofs.FS // Used when Path is empty (e.g. embedded fixtures).
	MustExist        bool
	Strict           bool // Reject unknown fields in fixture files.
	PeoplePattern    string
	CountriesPattern string
	Logger           *slog.Logger
	ErrorHandler     func(error) // Receives runtime watcher failures.
}

// NewRepository creates a new fixture repository.
func NewRepository(config Config) *Repository {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.PeoplePattern == "" {
		config.PeoplePattern = DefaultPeoplePattern
	}
	if config.CountriesPattern == "" {
		config.CountriesPattern = DefaultCountriesPattern
	}

	fsys := config.FS
	if config.Path != "" {
		fsys = os.DirFS(config.Path)
	}

	return &Repository{
		Path:     config.Path,
		fsys:     fsys,
		config:   config,
		decoders: DefaultDecoders(config.Strict),
		validate: newValidator(),
	}
}

// Initialize checks that the fixture root is usable.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.Path == "" {
		if r.fsys == nil {
			return fmt.Errorf("fixture repository has neither a path nor a filesystem")
		}
		return nil
	}

	info, err := os.Stat(r.Path)
	if os.IsNotExist(err) {
		if r.config.MustExist {
			return fmt.Errorf("fixture path does not exist: %s", r.Path)
		}
		if err := os.MkdirAll(r.Path, 0755); err != nil {
			return fmt.Errorf("failed to create fixture directory: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat fixture path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("fixture path is not a directory: %s", r.Path)
	}
	return nil
}

// People decodes, validates and merges every people fixture, in path order.
func (r *Repository) People(ctx context.Context) ([]core.Person, error) {
	files, err := r.match(r.config.PeoplePattern)
	if err != nil {
		return nil, err
	}

	var people []core.Person
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var f peopleFile
		if err := r.decode(name, &f); err != nil {
			return nil, err
		}
		people = append(people, toPeople(f.People)...)
	}

	r.recordLoad()
	return people, nil
}

// Countries decodes, validates and merges every countries fixture, in path order.
func (r *Repository) Countries(ctx context.Context) ([]core.Country, error) {
	files, err := r.match(r.config.CountriesPattern)
	if err != nil {
		return nil, err
	}

	var countries []core.Country
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var f countriesFile
		if err := r.decode(name, &f); err != nil {
			return nil, err
		}
		countries = append(countries, toCountries(f.Countries)...)
	}

	r.recordLoad()
	return countries, nil
}

// Watch observes fixture files matching pattern. Only directory-backed repositories can watch.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if r.Path == "" {
		return nil, core.ErrWatchUnsupported
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}

	events := make(chan core.Event)
	w := newWatchWorker(r, pattern, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *Repository) match(pattern string) ([]string, error) {
	if r.fsys == nil {
		return nil, fmt.Errorf("fixture repository is not initialized")
	}

	matches, err := doublestar.Glob(r.fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to match %q: %w", pattern, err)
	}

	files := matches[:0]
	for _, m := range matches {
		if _, ok := r.decoders[path.Ext(m)]; ok {
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", core.ErrNoFixtures, pattern)
	}
	sort.Strings(files)

	r.config.Logger.Debug("fixtures matched", "pattern", pattern, "files", files)
	return files, nil
}

func (r *Repository) decode(name string, v any) error {
	f, err := r.fsys.Open(name)
	if err != nil {
		return fmt.Errorf("failed to open fixture %s: %w", name, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("failed to read fixture %s: %w", name, err)
	}
	ext := path.Ext(name)
	data, err = pruneChildren(ext, data)
	if err != nil {
		return fmt.Errorf("fixture %s: %w", name, err)
	}

	if err := r.decoders[ext].Decode(bytes.NewReader(data), v); err != nil {
		return fmt.Errorf("fixture %s: %w", name, err)
	}
	if err := r.validate.Struct(v); err != nil {
		return fmt.Errorf("fixture %s: %w: %v", name, core.ErrInvalidFixture, err)
	}
	return nil
}

// resolveID maps an absolute path reported by the watcher to a fixture ID.
func (r *Repository) resolveID(name string) (string, error) {
	rel, err := filepath.Rel(r.Path, name)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

func (r *Repository) recordLoad() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.loads++
	r.lastLoad = &now
}
