package bus

import "github.com/aretw0/introspection"

// Stats exposes the bus counters for observability.
type Stats struct {
	Subscribers int    `json:"subscribers"`
	Dispatched  uint64 `json:"dispatched"`
	Failed      uint64 `json:"failed"`
}

// State implements introspection.Introspectable.
func (b *Bus) State() any {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return Stats{
		Subscribers: len(b.subscribers),
		Dispatched:  b.dispatched,
		Failed:      b.failed,
	}
}

// ComponentType implements introspection.Component.
func (b *Bus) ComponentType() string {
	return "bus"
}

var _ introspection.Introspectable = (*Bus)(nil)
var _ introspection.Component = (*Bus)(nil)
