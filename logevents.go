// Package logevents logs the events, triggers and component lifecycle changes of an ecs.World.
//
// Every logged type has its own settings: whether it is logged, the level lines are written at
// and whether values are pretty printed. Settings can be changed while the application runs and
// are saved when the world exits, then restored when the type is registered again in the next
// run.
package logevents

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pkg.world.dev/world-engine/logevents/ecs"
	"pkg.world.dev/world-engine/logevents/snapshot"
	"pkg.world.dev/world-engine/logevents/statsd"
)

const jobQueueSize = 64

// Plugin owns the log settings of a world and logs the types registered with it.
type Plugin struct {
	world    *ecs.World
	settings *PluginSettings
	registry *Registry

	storage     snapshot.Storage
	storageName string
	panelAddr   string

	sink   Sink
	logger zerolog.Logger

	jobs chan job // Work handed to the logic thread
}

type job struct {
	fn   func() error
	done chan error
}

// New creates the plugin for world. Configuration is read from the environment, then overridden
// by opts. The previous run's settings are loaded right away; a missing or broken settings file
// only produces a warning.
func New(world *ecs.World, opts ...Option) (*Plugin, error) {
	if world == nil {
		return nil, eris.New("world cannot be nil")
	}
	if _, err := ecs.GetResource[PluginSettings](world); err == nil {
		return nil, eris.New("logevents plugin already added to this world")
	}

	cfg, err := loadPluginConfig()
	if err != nil {
		return nil, err
	}
	options := newDefaultOptions()
	cfg.applyToOptions(&options)
	for _, opt := range opts {
		opt(&options)
	}
	if err := options.validate(); err != nil {
		return nil, eris.Wrap(err, "invalid options")
	}

	base := log.Logger
	if options.Logger != nil {
		base = *options.Logger
	}
	logger := base.With().Str("module", "logevents").Logger()

	if options.StatsdAddress != "" {
		if err := statsd.Init(options.StatsdAddress, nil); err != nil {
			return nil, eris.Wrap(err, "failed to init statsd client")
		}
	}

	storage, storageName, err := options.newStorage()
	if err != nil {
		return nil, eris.Wrap(err, "failed to create settings storage")
	}

	sink := options.Sink
	if sink == nil {
		sink = NewZerologSink(base)
	}

	p := &Plugin{
		world:       world,
		registry:    newRegistry(world),
		storage:     storage,
		storageName: storageName,
		panelAddr:   options.PanelAddr,
		sink:        sink,
		logger:      logger,
		jobs:        make(chan job, jobQueueSize),
	}
	p.settings = loadPluginSettings(context.Background(), storage, storageName, options.ShowPanel, &logger)

	ecs.InsertResource(world, p.settings)
	ecs.InsertResource(world, p.registry)
	if err := ecs.RegisterSystem(world, "logevents.jobs", p.runJobs, ecs.WithHook(ecs.PreUpdate)); err != nil {
		return nil, err
	}
	world.OnExit(p.saveOnExit)

	return p, nil
}

// World returns the world the plugin logs.
func (p *Plugin) World() *ecs.World {
	return p.world
}

// Settings returns the plugin-wide settings.
func (p *Plugin) Settings() *PluginSettings {
	return p.settings
}

// Registry returns the logged types.
func (p *Plugin) Registry() *Registry {
	return p.registry
}

// PanelAddr returns the address the settings panel should listen on.
func (p *Plugin) PanelAddr() string {
	return p.panelAddr
}

// Do runs fn on the logic thread at the start of the next tick and returns its error. Use it to
// read or change settings from other goroutines.
func (p *Plugin) Do(ctx context.Context, fn func() error) error {
	j := job{fn: fn, done: make(chan error, 1)}
	select {
	case p.jobs <- j:
	case <-ctx.Done():
		return eris.Wrap(ctx.Err(), "failed to queue job")
	}

	select {
	case err := <-j.done:
		return err
	case <-ctx.Done():
		return eris.Wrap(ctx.Err(), "job did not finish")
	}
}

// runJobs runs the jobs queued with Do.
func (p *Plugin) runJobs(_ *ecs.World) error {
	for {
		select {
		case j := <-p.jobs:
			j.done <- j.fn()
		default:
			return nil
		}
	}
}
