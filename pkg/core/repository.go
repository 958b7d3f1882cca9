package core

import "context"

// FixtureSource defines the contract for loading the demo data.
// Adhering to this interface keeps the core independent of where fixtures live
// (embedded files, a directory, a test double).
type FixtureSource interface {
	// People returns the top-level people with their descendants.
	People(ctx context.Context) ([]Person, error)

	// Countries returns the static country list.
	Countries(ctx context.Context) ([]Country, error)

	// Initialize ensures the underlying source is ready (e.g. the directory exists).
	Initialize(ctx context.Context) error
}

// Watchable is implemented by sources able to report fixture changes.
type Watchable interface {
	// Watch emits an Event for every change of a fixture matching pattern.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
