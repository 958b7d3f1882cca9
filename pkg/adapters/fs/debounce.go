package fs

import (
	"sync"
	"time"

	"github.com/aretw0/lineage/pkg/core"
)

// debouncer coalesces bursts of events for the same fixture into one delivery.
type debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timers  map[string]*time.Timer
	pending map[string]core.Event
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		timers:  make(map[string]*time.Timer),
		pending: make(map[string]core.Event),
	}
}

// add schedules fn for e, replacing any pending event for the same ID.
// A CREATE followed by writes is still reported as CREATE.
func (d *debouncer) add(e core.Event, fn func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if prev, ok := d.pending[e.ID]; ok && prev.Type == core.EventCreate && e.Type == core.EventModify {
		e.Type = core.EventCreate
	}
	d.pending[e.ID] = e

	if t, ok := d.timers[e.ID]; ok && t.Stop() {
		d.wg.Done()
	}

	d.wg.Add(1)
	var t *time.Timer
	t = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()

		d.mu.Lock()
		if d.timers[e.ID] != t {
			d.mu.Unlock()
			return
		}
		ev := d.pending[e.ID]
		delete(d.pending, e.ID)
		delete(d.timers, e.ID)
		d.mu.Unlock()

		fn(ev)
	})
	d.timers[e.ID] = t
}

// stopAndWait drops pending events and waits up to timeout for running deliveries.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for id, t := range d.timers {
		if t.Stop() {
			d.wg.Done()
		}
		delete(d.timers, id)
	}
	clear(d.pending)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
