package demo

import (
	"github.com/aretw0/introspection"
)

// State exposes the demo progress for observability.
type State struct {
	Subscribers int  `json:"subscribers"`
	Fired       int  `json:"fired"`
	Indexes     int  `json:"indexes"`
	MarkupBytes int  `json:"markup_bytes"`
	Running     bool `json:"running"`
}

// State implements introspection.Introspectable.
func (d *Demo) State() any {
	v := d.View()

	d.mu.RLock()
	finished := d.finished
	d.mu.RUnlock()

	running := false
	if finished != nil {
		select {
		case <-finished:
		default:
			running = true
		}
	}

	return State{
		Subscribers: d.subscribers,
		Fired:       v.Fired,
		Indexes:     len(v.Indexes),
		MarkupBytes: len(v.Markup),
		Running:     running,
	}
}

// ComponentType implements introspection.Component.
func (d *Demo) ComponentType() string {
	return "demo"
}

var _ introspection.Introspectable = (*Demo)(nil)
var _ introspection.Component = (*Demo)(nil)
