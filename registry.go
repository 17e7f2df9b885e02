package logevents

import (
	"iter"
	"slices"
	"strings"

	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/logevents/ecs"
	"pkg.world.dev/world-engine/logevents/settings"
)

// LoggedTypeID identifies a logged type: the event's name, or for a trigger bound to a component
// the event name followed by the component name (e.g. "AddHealth").
type LoggedTypeID = string

// Handle is the world resource that holds a logged type's settings.
type Handle = ecs.ResourceID

// ErrNotLogged is returned when asking for the settings of a type that isn't logged.
var ErrNotLogged = eris.New("type is not logged")

// Kind is the way a type is logged. One type can be logged in several ways and then shares a
// single settings record.
type Kind uint8

const (
	KindPolled    Kind = 1 << iota // Read from the event queue every tick
	KindTriggered                  // Observed when triggered
)

func (k Kind) String() string {
	var parts []string
	if k&KindPolled != 0 {
		parts = append(parts, "polled")
	}
	if k&KindTriggered != 0 {
		parts = append(parts, "triggered")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// RegisterResult tells whether Register wired something new.
type RegisterResult uint8

const (
	Created RegisterResult = iota
	AlreadyExists
)

func (r RegisterResult) String() string {
	switch r {
	case Created:
		return "Created"
	case AlreadyExists:
		return "AlreadyExists"
	default:
		return "Unknown"
	}
}

// settingsHolder is implemented by every per-type settings resource.
type settingsHolder interface {
	eventSettings() *settings.EventSettings
}

type registryEntry struct {
	handle Handle
	kinds  Kind
}

// Registry maps logged type ids to the world resources holding their settings.
type Registry struct {
	world   *ecs.World
	entries map[LoggedTypeID]*registryEntry
	ids     []LoggedTypeID // sorted
}

func newRegistry(world *ecs.World) *Registry {
	return &Registry{
		world:   world,
		entries: make(map[LoggedTypeID]*registryEntry),
		ids:     make([]LoggedTypeID, 0),
	}
}

// Register records that id is logged as kind. The first time id is seen, alloc creates its
// settings resource with default settings, which are then overwritten by the value restoreFrom
// holds for id, if any. Registering an id under a kind it already has changes nothing and
// returns AlreadyExists. Registering it under another kind shares the existing settings.
func (r *Registry) Register(
	id LoggedTypeID, kind Kind, restoreFrom *PluginSettings, alloc func() Handle,
) (RegisterResult, Handle) {
	if entry, exists := r.entries[id]; exists {
		if entry.kinds&kind != 0 {
			return AlreadyExists, entry.handle
		}
		entry.kinds |= kind
		return Created, entry.handle
	}

	handle := alloc()
	entry := &registryEntry{handle: handle, kinds: kind}
	r.entries[id] = entry
	pos, _ := slices.BinarySearch(r.ids, id)
	r.ids = slices.Insert(r.ids, pos, id)

	if restoreFrom != nil {
		if restored, ok := restoreFrom.Restored(id); ok {
			if s, err := r.Settings(handle); err == nil {
				*s = restored
			}
		}
	}
	return Created, handle
}

// Lookup returns the handle of id's settings.
func (r *Registry) Lookup(id LoggedTypeID) (Handle, bool) {
	entry, exists := r.entries[id]
	if !exists {
		return 0, false
	}
	return entry.handle, true
}

// Kinds returns the ways id is logged.
func (r *Registry) Kinds(id LoggedTypeID) Kind {
	entry, exists := r.entries[id]
	if !exists {
		return 0
	}
	return entry.kinds
}

// All iterates over every logged type in id order.
func (r *Registry) All() iter.Seq2[LoggedTypeID, Handle] {
	return func(yield func(LoggedTypeID, Handle) bool) {
		for _, id := range r.ids {
			if !yield(id, r.entries[id].handle) {
				return
			}
		}
	}
}

// Len returns the number of logged types.
func (r *Registry) Len() int {
	return len(r.ids)
}

// Settings returns the live settings behind handle. Changes to the returned value take effect
// on the next logged line.
func (r *Registry) Settings(handle Handle) (*settings.EventSettings, error) {
	resource, err := r.world.ResourceByID(handle)
	if err != nil {
		return nil, err
	}
	holder, ok := resource.(settingsHolder)
	if !ok {
		return nil, eris.Errorf("resource %d of type %T does not hold log settings", handle, resource)
	}
	return holder.eventSettings(), nil
}

// SettingsByID returns the live settings of id.
func (r *Registry) SettingsByID(id LoggedTypeID) (*settings.EventSettings, error) {
	handle, ok := r.Lookup(id)
	if !ok {
		return nil, eris.Wrapf(ErrNotLogged, "%s", id)
	}
	return r.Settings(handle)
}
