package fs

import (
	"sort"
	"time"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path             string     `json:"path,omitempty"`
	Embedded         bool       `json:"embedded"`
	Strict           bool       `json:"strict"`
	PeoplePattern    string     `json:"people_pattern"`
	CountriesPattern string     `json:"countries_pattern"`
	Formats          []string   `json:"formats"`
	WatcherActive    bool       `json:"watcher_active"`
	Loads            int        `json:"loads"`
	LastLoad         *time.Time `json:"last_load,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]string, 0, len(r.decoders))
	for ext := range r.decoders {
		formats = append(formats, ext)
	}
	sort.Strings(formats)

	return RepositoryState{
		Path:             r.Path,
		Embedded:         r.Path == "",
		Strict:           r.config.Strict,
		PeoplePattern:    r.config.PeoplePattern,
		CountriesPattern: r.config.CountriesPattern,
		Formats:          formats,
		WatcherActive:    r.watcherActive,
		Loads:            r.loads,
		LastLoad:         r.lastLoad,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "fixture-repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
