package platform

import (
	"github.com/aretw0/lineage/pkg/bus"
	"github.com/aretw0/lineage/pkg/core"
	"github.com/aretw0/lineage/pkg/demo"
	"github.com/aretw0/lineage/pkg/dispatcher"
	"github.com/aretw0/lineage/pkg/family"
)

// New creates a core.Service over the fixtures at uri.
//
//	svc, err := lineage.New("./fixtures", lineage.WithStrict(true))
func New(uri string, opts ...Option) (*core.Service, error) {
	src, err := Init(uri, opts...)
	if err != nil {
		return nil, err
	}

	o := buildOptions(opts)
	var svcOpts []core.ServiceOption
	if o.logger != nil {
		svcOpts = append(svcOpts, core.WithServiceLogger(o.logger))
	}
	if size, ok := o.config["event_buffer"].(int); ok {
		svcOpts = append(svcOpts, core.WithEventBuffer(size))
	}
	return core.NewService(src, svcOpts...), nil
}

// NewDemo creates the demo controller with its own service and, unless
// WithBus is given, its own bus.
func NewDemo(uri string, opts ...Option) (*demo.Demo, error) {
	svc, err := New(uri, opts...)
	if err != nil {
		return nil, err
	}

	o := buildOptions(opts)
	b := o.bus
	if b == nil {
		b = bus.New(bus.WithLogger(o.logger))
	}

	demoOpts := []demo.Option{
		demo.WithLogger(o.logger),
		demo.WithRendererOptions(o.renderer...),
		demo.WithDispatcherOptions(o.dispatcher...),
	}
	demoOpts = append(demoOpts, o.demo...)
	return demo.New(svc, b, demoOpts...), nil
}

// NewRenderer creates a family renderer for dir honoring the rendering options.
func NewRenderer(dir core.Directory, opts ...Option) *family.Renderer {
	o := buildOptions(opts)
	return family.NewRenderer(dir, append([]family.Option{family.WithLogger(o.logger)}, o.renderer...)...)
}

// NewDispatcher creates a periodic dispatcher on target honoring the event options.
func NewDispatcher(target bus.Dispatcher, opts ...Option) *dispatcher.Periodic {
	o := buildOptions(opts)
	return dispatcher.New(target, append([]dispatcher.Option{dispatcher.WithLogger(o.logger)}, o.dispatcher...)...)
}
