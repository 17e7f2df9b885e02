package logevents

import (
	"pkg.world.dev/world-engine/logevents/ecs"
	"pkg.world.dev/world-engine/logevents/statsd"
)

// emit logs one value of a logged type if both the plugin and the type are enabled. Settings
// are read on every call, so edits apply to the very next line.
func (p *Plugin) emit(id LoggedTypeID, handle Handle, header string, origin *ecs.Origin, value any) {
	if !p.settings.GloballyEnabled {
		return
	}
	s, err := p.registry.Settings(handle)
	if err != nil {
		p.logger.Error().Err(err).Str("event", id).Msg("log settings are missing")
		return
	}
	if !s.Enabled {
		return
	}

	line, ok := formatLine(header, origin, value, s.Pretty)
	if !ok {
		statsd.DropLine(id)
		return
	}
	p.sink.Log(s.Level, line)
	statsd.EmitLine(s.Level.String())
}

// pollSystem logs every E sent during the tick, in send order.
func pollSystem[E ecs.Event](p *Plugin, id LoggedTypeID, handle Handle) ecs.System {
	return func(w *ecs.World) error {
		records, err := ecs.ReadEvents[E](w)
		if err != nil {
			return err
		}
		for _, record := range records {
			p.emit(id, handle, id, record.Origin, record.Event)
		}
		return nil
	}
}

// observeTriggered logs E whenever it is triggered, naming the target entity if there is one.
func observeTriggered[E ecs.Event](p *Plugin, id LoggedTypeID, handle Handle) {
	ecs.Observe(p.world, func(w *ecs.World, trigger ecs.Trigger[E]) {
		header := id
		if trigger.HasTarget {
			header = entityHeader(w, id, trigger.Target)
		}
		p.emit(id, handle, header, trigger.Origin, trigger.Event)
	})
}

// observeComponent logs the target's current C whenever E fires for it. Triggers without a
// target, or targets that no longer have C, are skipped.
func observeComponent[E ecs.Event, C ecs.Component](p *Plugin, id LoggedTypeID, handle Handle) {
	ecs.ObserveComponent[E, C](p.world, func(w *ecs.World, trigger ecs.Trigger[E]) {
		if !trigger.HasTarget || !p.settings.GloballyEnabled {
			return
		}
		component, err := ecs.Get[C](w, trigger.Target)
		if err != nil {
			return
		}
		p.emit(id, handle, entityHeader(w, id, trigger.Target), trigger.Origin, component)
	})
}

// globallyEnabled gates the polled logging systems.
func globallyEnabled(w *ecs.World) bool {
	ps, err := ecs.GetResource[PluginSettings](w)
	return err == nil && ps.GloballyEnabled
}
