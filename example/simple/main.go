// Command simple runs a small world whose events and component changes are logged by logevents.
// Set LOGEVENTS_SHOW_PANEL=true to edit the settings over HTTP while it runs.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"pkg.world.dev/world-engine/logevents"
	"pkg.world.dev/world-engine/logevents/ecs"
	"pkg.world.dev/world-engine/logevents/panel"
	"pkg.world.dev/world-engine/logevents/telemetry"
)

const (
	tickInterval = 500 * time.Millisecond
	maxTicks     = 40
)

type Damage struct {
	Target ecs.EntityID
	Amount int
}

func (Damage) Name() string { return "Damage" }

type Explode struct {
	Radius float64
}

func (Explode) Name() string { return "Explode" }

type Health struct {
	Value int
}

func (Health) Name() string { return "Health" }

func main() {
	tel, err := telemetry.New(telemetry.Options{ServiceName: "simple"})
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("failed to set up logging")
	}
	logger := tel.GetLogger("main")

	if err := run(tel, logger); err != nil {
		logger.Fatal().Msg(eris.ToString(err, true))
	}
}

func run(tel telemetry.Telemetry, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	world := ecs.NewWorld(ecs.WithTrackLocation())
	plugin, err := logevents.New(world, logevents.WithLogger(tel.GetLogger("logevents")))
	if err != nil {
		return err
	}

	if err := logevents.AddAndLogEvent[Damage](plugin); err != nil {
		return err
	}
	logevents.LogTriggered[Explode](plugin)
	logevents.LogComponentLifecycle[Health](plugin)

	if err := registerSystems(world); err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	panelCtx, stopPanel := context.WithCancel(ctx)
	defer stopPanel()

	eg.Go(func() error {
		defer stopPanel()
		return world.Run(ctx, tickInterval)
	})

	if plugin.Settings().ShowPanel {
		server, err := panel.New(panel.NewService(plugin, plugin.Do), plugin.PanelAddr(), tel.GetLogger("panel"))
		if err != nil {
			return err
		}
		eg.Go(func() error {
			return server.Serve(panelCtx)
		})
	}

	err = eg.Wait()
	logger.Info().Uint64("ticks", world.TickCount()).Msg("world stopped")
	return err
}

func registerSystems(world *ecs.World) error {
	var hero ecs.EntityID

	spawn := func(w *ecs.World) error {
		var err error
		if hero, err = ecs.Spawn(w); err != nil {
			return err
		}
		if err := ecs.Insert(w, hero, ecs.DisplayName{Value: "Hero"}); err != nil {
			return err
		}
		return ecs.Insert(w, hero, Health{Value: 100})
	}

	attack := func(w *ecs.World) error {
		if !ecs.Alive(w, hero) {
			return nil
		}
		return ecs.SendEvent(w, Damage{Target: hero, Amount: 7})
	}

	applyDamage := func(w *ecs.World) error {
		records, err := ecs.ReadEvents[Damage](w)
		if err != nil {
			return err
		}
		for _, r := range records {
			health, err := ecs.Get[Health](w, r.Event.Target)
			if err != nil {
				continue
			}
			health.Value -= r.Event.Amount
			if health.Value > 0 {
				if err := ecs.Insert(w, r.Event.Target, health); err != nil {
					return err
				}
				continue
			}
			ecs.TriggerTargets(w, Explode{Radius: 2.5}, r.Event.Target)
			if err := ecs.Despawn(w, r.Event.Target); err != nil {
				return err
			}
		}
		return nil
	}

	stopAfter := func(w *ecs.World) error {
		if w.TickCount() >= maxTicks {
			w.Exit()
		}
		return nil
	}

	if err := ecs.RegisterSystem(world, "spawn", spawn, ecs.WithHook(ecs.Init)); err != nil {
		return err
	}
	if err := ecs.RegisterSystem(world, "attack", attack, ecs.WithHook(ecs.PreUpdate)); err != nil {
		return err
	}
	if err := ecs.RegisterSystem(world, "damage", applyDamage); err != nil {
		return err
	}
	return ecs.RegisterSystem(world, "stop", stopAfter, ecs.WithHook(ecs.PostUpdate))
}
