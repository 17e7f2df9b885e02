package ecs

import "pkg.world.dev/world-engine/logevents/internal/assert"

// Lifecycle events, fired by the world whenever a component changes on an entity. Observers of
// these events receive the entity as the trigger target and the component's name in
// Trigger.Component.
type (
	// OnAdd fires after a component is written to an entity that didn't have it.
	OnAdd struct{}
	// OnInsert fires after every component write, new or replacing.
	OnInsert struct{}
	// OnReplace fires before an existing component value is overwritten or removed.
	OnReplace struct{}
	// OnRemove fires before a component is removed from an entity, including on despawn.
	OnRemove struct{}
	// OnDespawn fires for every component of an entity that is being despawned, before removal.
	OnDespawn struct{}
)

func (OnAdd) Name() string     { return "Add" }
func (OnInsert) Name() string  { return "Insert" }
func (OnReplace) Name() string { return "Replace" }
func (OnRemove) Name() string  { return "Remove" }
func (OnDespawn) Name() string { return "Despawn" }

// Trigger is what an observer receives when an event fires.
type Trigger[E Event] struct {
	Event E
	// Target is the entity the event fired on. Only meaningful when HasTarget is set.
	Target    EntityID
	HasTarget bool
	// Component is the name of the component a lifecycle event fired for, empty otherwise.
	Component string
	Origin    *Origin // nil when location tracking is off
}

// rawTrigger is the type-erased trigger passed through the observer manager.
type rawTrigger struct {
	event     Event
	target    EntityID
	hasTarget bool
	component string
	origin    *Origin
}

type observer struct {
	component string // Only fire for this component; empty matches any
	fn        func(*World, rawTrigger)
}

// observerManager maps event names to their observers in registration order.
type observerManager struct {
	observers map[string][]observer
}

func newObserverManager() observerManager {
	return observerManager{observers: make(map[string][]observer)}
}

func (m *observerManager) add(event string, obs observer) {
	m.observers[event] = append(m.observers[event], obs)
}

// fire runs every matching observer synchronously. Observers added while firing only see later
// triggers.
func (m *observerManager) fire(w *World, raw rawTrigger) {
	observers := m.observers[raw.event.Name()]
	for _, obs := range observers {
		if obs.component != "" && raw.component != "" && obs.component != raw.component {
			continue
		}
		obs.fn(w, raw)
	}
}

func toTrigger[E Event](raw rawTrigger) Trigger[E] {
	event, ok := raw.event.(E)
	assert.That(ok, "trigger %s fired with the wrong type", raw.event.Name())
	return Trigger[E]{
		Event:     event,
		Target:    raw.target,
		HasTarget: raw.hasTarget,
		Component: raw.component,
		Origin:    raw.origin,
	}
}

// Observe registers fn to run every time E is triggered, with or without a target.
func Observe[E Event](w *World, fn func(*World, Trigger[E])) {
	var zero E
	w.observers.add(zero.Name(), observer{
		fn: func(w *World, raw rawTrigger) { fn(w, toTrigger[E](raw)) },
	})
}

// ObserveComponent registers fn to run every time E is triggered for component C. Lifecycle
// events for other components are ignored; triggers that carry no component always match.
func ObserveComponent[E Event, C Component](w *World, fn func(*World, Trigger[E])) {
	var (
		event E
		comp  C
	)
	w.observers.add(event.Name(), observer{
		component: comp.Name(),
		fn:        func(w *World, raw rawTrigger) { fn(w, toTrigger[E](raw)) },
	})
}

// TriggerEvent fires E without a target. Observers run before TriggerEvent returns.
func TriggerEvent[E Event](w *World, event E) {
	w.observers.fire(w, rawTrigger{event: event, origin: w.origin(2)})
}

// TriggerTargets fires E once for each target entity, in order.
func TriggerTargets[E Event](w *World, event E, targets ...EntityID) {
	origin := w.origin(2)
	for _, target := range targets {
		w.observers.fire(w, rawTrigger{event: event, target: target, hasTarget: true, origin: origin})
	}
}

// fireLifecycle fires a lifecycle event for one component of an entity.
func (w *World) fireLifecycle(event Event, eid EntityID, component string, origin *Origin) {
	w.observers.fire(w, rawTrigger{
		event:     event,
		target:    eid,
		hasTarget: true,
		component: component,
		origin:    origin,
	})
}
