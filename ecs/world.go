package ecs

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
)

// AppExit is sent when the application should stop. The tick it is sent in is the final one.
type AppExit struct{}

func (AppExit) Name() string { return "AppExit" }

// World represents the root ECS state.
type World struct {
	entities   entityManager    // Live entities and their component masks
	components componentManager // Component registration and storage
	resources  resourceManager  // Singletons keyed by Go type
	events     eventManager     // Polled events, cleared every tick
	observers  observerManager  // Immediate event observers

	// Systems.
	initDone    bool                          // Tracks if init systems have been executed
	initSystems []initSystem                  // Initialization systems, run once before the first tick
	scheduler   [numTickHooks]systemScheduler // Systems schedulers (PreUpdate, Update, PostUpdate, Last)

	// Exit.
	exitRequested bool          // Set by Exit or by sending AppExit
	exited        bool          // Exit hooks already ran
	exitHooks     []func(*World) // Run once after the final tick

	tick          uint64 // Number of completed ticks
	trackLocation bool   // Record the caller of SendEvent and triggers
}

// WorldOption configures a World.
type WorldOption func(*World)

// WithTrackLocation records where events are sent and triggered from.
func WithTrackLocation() WorldOption {
	return func(w *World) { w.trackLocation = true }
}

// NewWorld creates a new World instance.
func NewWorld(opts ...WorldOption) *World {
	world := &World{
		entities:    newEntityManager(),
		components:  newComponentManager(),
		resources:   newResourceManager(),
		events:      newEventManager(),
		observers:   newObserverManager(),
		initDone:    false,
		initSystems: make([]initSystem, 0),
		exitHooks:   make([]func(*World), 0),
	}

	for i := range world.scheduler {
		world.scheduler[i] = newSystemScheduler()
	}
	for _, opt := range opts {
		opt(world)
	}

	// Built-in types; these registrations cannot fail.
	_, _ = world.events.register(AppExit{}.Name())
	_, _ = registerComponent[DisplayName](&world.components)

	return world
}

// Tick runs the init systems on the first call, then every hook in order. Events sent during the
// tick are cleared when it ends. If exit was requested during the tick, the exit hooks run after
// the Last hook. A failing system aborts the tick and its error is returned; the exit hooks still
// run if exit was requested.
func (w *World) Tick() error {
	if w.exited {
		return eris.New("world has already exited")
	}

	defer w.clearBuffers()
	defer func() {
		if w.exitRequested {
			w.runExitHooks()
		}
	}()

	// Run init systems once before the first tick.
	if !w.initDone {
		for _, system := range w.initSystems {
			if err := system.fn(w); err != nil {
				return eris.Wrapf(err, "init system %s failed", system.name)
			}
		}
		w.initDone = true
	}

	for i := range w.scheduler {
		if err := w.scheduler[i].run(w); err != nil {
			return eris.Wrapf(err, "%s", SystemHook(i))
		}
	}
	w.tick++
	return nil
}

// Run ticks the world every interval until it exits. When ctx is canceled, exit is requested
// and one final tick runs so exit hooks still fire.
func (w *World) Run(ctx context.Context, interval time.Duration) error {
	var ticker *time.Ticker
	if interval > 0 {
		ticker = time.NewTicker(interval)
		defer ticker.Stop()
	}

	for !w.exited {
		if ticker != nil {
			select {
			case <-ctx.Done():
				w.Exit()
			case <-ticker.C:
			}
		} else if ctx.Err() != nil {
			w.Exit()
		}

		if err := w.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// Exit requests the application to stop at the end of the current tick by sending AppExit.
func (w *World) Exit() {
	if w.exitRequested {
		return
	}
	_ = w.sendEvent(AppExit{}, w.origin(2))
}

// ShouldExit reports whether exit was requested.
func (w *World) ShouldExit() bool {
	return w.exitRequested
}

// Exited reports whether the exit hooks already ran.
func (w *World) Exited() bool {
	return w.exited
}

// OnExit registers fn to run once, after the Last hook of the final tick.
func (w *World) OnExit(fn func(*World)) {
	w.exitHooks = append(w.exitHooks, fn)
}

// TickCount returns the number of completed ticks.
func (w *World) TickCount() uint64 {
	return w.tick
}

func (w *World) runExitHooks() {
	if w.exited {
		return
	}
	w.exited = true
	for _, hook := range w.exitHooks {
		hook(w)
	}
}

// clearBuffers clears the previous tick's buffers.
func (w *World) clearBuffers() {
	w.events.clear()
}
