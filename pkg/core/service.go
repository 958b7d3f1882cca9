package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

const defaultEventBuffer = 100

// Service gives the demo access to its fixtures.
type Service struct {
	mu              sync.RWMutex
	source          FixtureSource
	logger          *slog.Logger
	eventBufferSize int
	watchers        int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger used by the service.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEventBuffer sets the size of the watch broker buffer. Zero keeps the default (100).
func WithEventBuffer(size int) ServiceOption {
	return func(s *Service) {
		if size > 0 {
			s.eventBufferSize = size
		}
	}
}

// NewService creates a new Service.
func NewService(source FixtureSource, opts ...ServiceOption) *Service {
	s := &Service{
		source:          source,
		logger:          slog.Default(),
		eventBufferSize: defaultEventBuffer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// People loads the people tree as stored in the fixtures (unsorted).
func (s *Service) People(ctx context.Context) ([]Person, error) {
	people, err := s.source.People(ctx)
	if err != nil {
		return nil, fmt.Errorf("load people: %w", err)
	}
	s.logger.Debug("people loaded", "count", len(people))
	return people, nil
}

// Countries loads the country list and indexes it by ID.
func (s *Service) Countries(ctx context.Context) (Directory, error) {
	countries, err := s.source.Countries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load countries: %w", err)
	}
	s.logger.Debug("countries loaded", "count", len(countries))
	return NewDirectory(countries), nil
}

// Watch observes fixture changes if the source supports it.
// Events are relayed through a buffered broker so a slow consumer never blocks the source.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.source.(Watchable)
	if !ok {
		return nil, ErrWatchUnsupported
	}

	upstream, err := w.Watch(ctx, pattern)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	size := s.eventBufferSize
	s.watchers++
	s.mu.Unlock()

	out := make(chan Event, size)
	go func() {
		defer close(out)
		defer func() {
			s.mu.Lock()
			s.watchers--
			s.mu.Unlock()
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-upstream:
				if !ok {
					return
				}
				select {
				case out <- e:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
