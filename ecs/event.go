package ecs

import (
	"math"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/logevents/internal/assert"
)

// eventID is a unique identifier for a polled event type.
type eventID = uint32

// maxEventID is the maximum number of event types that can be registered.
const maxEventID = math.MaxUint32 - 1

// Event is an interface that all events must implement. The same type can be sent as a polled
// event and fired as a trigger.
type Event interface { //nolint:iface // We may add more methods in the future.
	// Name returns a unique string identifier for the event type.
	// This should be consistent across program executions.
	Name() string
}

// Origin is the source location an event was sent or triggered from. It is only recorded when
// the world is created with WithTrackLocation.
type Origin struct {
	File string
	Line int
}

func (o Origin) String() string {
	return o.File + ":" + strconv.Itoa(o.Line)
}

// EventRecord is a polled event together with the place it was sent from.
type EventRecord[E Event] struct {
	Event  E
	Origin *Origin // nil when location tracking is off
}

type pendingEvent struct {
	value  Event
	origin *Origin
}

// eventManager manages the registration and per-tick buffers of polled events.
type eventManager struct {
	nextID   eventID            // The next event ID
	registry map[string]eventID // Event name -> event ID
	events   [][]pendingEvent   // Event ID -> events sent this tick
}

// newEventManager creates a new eventManager.
func newEventManager() eventManager {
	return eventManager{
		nextID:   0,
		registry: make(map[string]eventID),
		events:   make([][]pendingEvent, 0),
	}
}

// register registers a new event type. If the event is already registered, the existing id is
// returned.
func (m *eventManager) register(name string) (eventID, error) {
	if name == "" {
		return 0, eris.New("event name cannot be empty")
	}

	if id, exists := m.registry[name]; exists {
		return id, nil
	}

	if m.nextID > maxEventID {
		return 0, eris.New("max number of events exceeded")
	}

	const initialEventBufferCapacity = 64
	m.registry[name] = m.nextID
	m.events = append(m.events, make([]pendingEvent, 0, initialEventBufferCapacity))
	m.nextID++
	assert.That(int(m.nextID) == len(m.events), "event id doesn't match number of events")

	return m.nextID - 1, nil
}

func (m *eventManager) isRegistered(name string) bool {
	_, exists := m.registry[name]
	return exists
}

// get returns the events of the given name sent this tick, in send order.
func (m *eventManager) get(name string) ([]pendingEvent, error) {
	id, exists := m.registry[name]
	if !exists {
		return nil, eris.Wrapf(ErrEventNotRegistered, "event %s", name)
	}
	return m.events[id], nil
}

// enqueue appends an event to its buffer.
func (m *eventManager) enqueue(event Event, origin *Origin) error {
	id, exists := m.registry[event.Name()]
	if !exists {
		return eris.Wrapf(ErrEventNotRegistered, "event %s", event.Name())
	}
	m.events[id] = append(m.events[id], pendingEvent{value: event, origin: origin})
	return nil
}

// clear clears the event buffers.
func (m *eventManager) clear() {
	for id := range m.events {
		clear(m.events[id])
		m.events[id] = m.events[id][:0]
		assert.That(len(m.events[id]) == 0, "events not cleared properly")
	}
}

// RegisterEvent registers a polled event type. Registering the same event twice is a no-op.
func RegisterEvent[E Event](w *World) error {
	var zero E
	_, err := w.events.register(zero.Name())
	return err
}

// IsEventRegistered reports whether the polled event type E was registered.
func IsEventRegistered[E Event](w *World) bool {
	var zero E
	return w.events.isRegistered(zero.Name())
}

// SendEvent queues an event that systems can read until the end of the current tick.
func SendEvent[E Event](w *World, event E) error {
	return w.sendEvent(event, w.origin(2))
}

// ReadEvents returns the events of type E sent during the current tick, in send order.
func ReadEvents[E Event](w *World) ([]EventRecord[E], error) {
	var zero E
	pending, err := w.events.get(zero.Name())
	if err != nil {
		return nil, err
	}

	records := make([]EventRecord[E], 0, len(pending))
	for _, p := range pending {
		event, ok := p.value.(E)
		assert.That(ok, "event %s stored with the wrong type", zero.Name())
		records = append(records, EventRecord[E]{Event: event, Origin: p.origin})
	}
	return records, nil
}

func (w *World) sendEvent(event Event, origin *Origin) error {
	if _, ok := event.(AppExit); ok {
		w.exitRequested = true
	}
	return w.events.enqueue(event, origin)
}

// origin returns the caller location skip frames above origin itself, or nil when location
// tracking is off.
func (w *World) origin(skip int) *Origin {
	if !w.trackLocation {
		return nil
	}
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return nil
	}
	return &Origin{File: filepath.Base(file), Line: line}
}
