package logevents

import (
	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/logevents/ecs"
	"pkg.world.dev/world-engine/logevents/settings"
)

// ErrIDCollision is returned when two different types would be logged under the same id, such as
// an event named "AddHealth" and the Add lifecycle of component Health.
var ErrIDCollision = eris.New("logged type id is already used by another type")

// noComponent is the component parameter of types that are not bound to a component.
type noComponent struct{}

func (noComponent) Name() string { return "" }

// loggedSettings is the world resource holding the settings of event E, or of E fired for
// component C. Each logged type gets its own resource type.
type loggedSettings[E ecs.Event, C ecs.Component] struct {
	settings settings.EventSettings
}

func (s *loggedSettings[E, C]) eventSettings() *settings.EventSettings {
	return &s.settings
}

// loggedTypeID returns the registry key of E bound to C.
func loggedTypeID[E ecs.Event, C ecs.Component]() LoggedTypeID {
	var (
		event E
		comp  C
	)
	return event.Name() + comp.Name()
}

// register adds the id of E bound to C to the registry, allocating its settings resource if the
// id is new. A warning is logged when the id is already logged as kind. An id already taken by a
// different event or component pair is refused with ErrIDCollision.
func register[E ecs.Event, C ecs.Component](p *Plugin, kind Kind) (LoggedTypeID, Handle, bool, error) {
	id := loggedTypeID[E, C]()
	if handle, ok := p.registry.Lookup(id); ok {
		resource, err := p.world.ResourceByID(handle)
		if err != nil {
			return id, handle, false, err
		}
		if _, same := resource.(*loggedSettings[E, C]); !same {
			p.logger.Warn().Str("event", id).Str("kind", kind.String()).
				Msg("logged type id is already used by another type")
			return id, handle, false, eris.Wrapf(ErrIDCollision, "%s", id)
		}
	}

	result, handle := p.registry.Register(id, kind, p.settings, func() Handle {
		return ecs.InsertResource(p.world, &loggedSettings[E, C]{settings: settings.Default()})
	})
	if result == AlreadyExists {
		p.logger.Warn().Str("event", id).Str("kind", kind.String()).Msg("event is already logged")
		return id, handle, false, nil
	}
	return id, handle, true, nil
}

// LogEvent logs every E sent through the world's event queue. E must already be registered
// with the world; see AddAndLogEvent.
func LogEvent[E ecs.Event](p *Plugin) error {
	if !ecs.IsEventRegistered[E](p.world) {
		var zero E
		return eris.Wrapf(ecs.ErrEventNotRegistered, "cannot log event %s", zero.Name())
	}

	id, handle, created, err := register[E, noComponent](p, KindPolled)
	if err != nil || !created {
		return err
	}
	return ecs.RegisterSystem(p.world, "logevents.log."+id, pollSystem[E](p, id, handle),
		ecs.WithHook(ecs.Last), ecs.WithRunIf(globallyEnabled))
}

// AddAndLogEvent registers E with the world and logs it.
func AddAndLogEvent[E ecs.Event](p *Plugin) error {
	if err := ecs.RegisterEvent[E](p.world); err != nil {
		return eris.Wrap(err, "failed to register event")
	}
	return LogEvent[E](p)
}

// LogTriggered logs E every time it is triggered. Triggers with a target name the entity.
func LogTriggered[E ecs.Event](p *Plugin) {
	id, handle, created, err := register[E, noComponent](p, KindTriggered)
	if err != nil || !created {
		return
	}
	observeTriggered[E](p, id, handle)
}

// LogTrigger logs the target's component C every time E fires for it. It works with the
// lifecycle events and with custom events triggered on entities.
func LogTrigger[E ecs.Event, C ecs.Component](p *Plugin) {
	id, handle, created, err := register[E, C](p, KindTriggered)
	if err != nil || !created {
		return
	}
	observeComponent[E, C](p, id, handle)
}

// LogComponentLifecycle logs C whenever it is added, inserted, replaced, removed, or despawned
// with its entity.
func LogComponentLifecycle[C ecs.Component](p *Plugin) {
	LogTrigger[ecs.OnAdd, C](p)
	LogTrigger[ecs.OnInsert, C](p)
	LogTrigger[ecs.OnReplace, C](p)
	LogTrigger[ecs.OnRemove, C](p)
	LogTrigger[ecs.OnDespawn, C](p)
}

// SettingsOf returns the live settings of the logged event E.
func SettingsOf[E ecs.Event](p *Plugin) (*settings.EventSettings, error) {
	return settingsOf[E, noComponent](p)
}

// TriggerSettingsOf returns the live settings of E fired for component C.
func TriggerSettingsOf[E ecs.Event, C ecs.Component](p *Plugin) (*settings.EventSettings, error) {
	return settingsOf[E, C](p)
}

func settingsOf[E ecs.Event, C ecs.Component](p *Plugin) (*settings.EventSettings, error) {
	id := loggedTypeID[E, C]()
	handle, ok := p.registry.Lookup(id)
	if !ok {
		return nil, eris.Wrapf(ErrNotLogged, "%s", id)
	}
	resource, err := p.world.ResourceByID(handle)
	if err != nil {
		return nil, err
	}
	logged, ok := resource.(*loggedSettings[E, C])
	if !ok {
		return nil, eris.Wrapf(ErrIDCollision, "%s", id)
	}
	return logged.eventSettings(), nil
}
