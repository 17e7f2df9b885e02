package ecs

import (
	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/logevents/internal/assert"
)

// Component is the interface that all components must implement.
// Components are pure data containers that can be attached to entities.
type Component interface { //nolint:iface // We may add more methods in the future.
	// Name returns a unique string identifier for the component type.
	// This should be consistent across program executions.
	Name() string
}

// componentID is a unique identifier for a component type.
type componentID = uint32

// abstractStore is an internal interface for component storage operations that don't need the
// concrete component type.
type abstractStore interface {
	name() string
	has(EntityID) bool
	remove(EntityID)
}

var _ abstractStore = &componentStore[Component]{}

// componentStore holds the values of one component type keyed by entity.
type componentStore[T Component] struct {
	compName string
	values   map[EntityID]T
}

func newComponentStore[T Component]() *componentStore[T] {
	var zero T
	return &componentStore[T]{
		compName: zero.Name(),
		values:   make(map[EntityID]T),
	}
}

func (s *componentStore[T]) name() string {
	return s.compName
}

func (s *componentStore[T]) has(eid EntityID) bool {
	_, ok := s.values[eid]
	return ok
}

func (s *componentStore[T]) get(eid EntityID) (T, bool) {
	v, ok := s.values[eid]
	return v, ok
}

func (s *componentStore[T]) set(eid EntityID, component T) {
	s.values[eid] = component
}

func (s *componentStore[T]) remove(eid EntityID) {
	delete(s.values, eid)
}

// componentManager manages component type registration and lookup.
type componentManager struct {
	nextID  componentID            // The next available component ID
	catalog map[string]componentID // Component name -> component ID
	stores  []abstractStore        // Component ID -> storage
}

// newComponentManager creates a new component manager.
func newComponentManager() componentManager {
	return componentManager{
		nextID:  0,
		catalog: make(map[string]componentID),
		stores:  make([]abstractStore, 0),
	}
}

// register registers a component type and returns its ID. If the component is already
// registered, the existing ID is returned.
func registerComponent[T Component](cm *componentManager) (componentID, error) {
	var zero T
	name := zero.Name()
	if name == "" {
		return 0, eris.New("component name cannot be empty")
	}

	if cid, exists := cm.catalog[name]; exists {
		return cid, nil
	}

	cm.catalog[name] = cm.nextID
	cm.stores = append(cm.stores, newComponentStore[T]())
	cm.nextID++
	assert.That(int(cm.nextID) == len(cm.stores), "component id doesn't match number of components")

	return cm.nextID - 1, nil
}

// getID returns a component's ID given a name.
func (cm *componentManager) getID(name string) (componentID, error) {
	id, exists := cm.catalog[name]
	if !exists {
		return 0, eris.Wrapf(ErrComponentNotFound, "component %s", name)
	}
	return id, nil
}

// storeOf returns the typed store of T. T must already be registered.
func storeOf[T Component](cm *componentManager) (*componentStore[T], componentID, error) {
	var zero T
	cid, err := cm.getID(zero.Name())
	if err != nil {
		return nil, 0, err
	}
	store, ok := cm.stores[cid].(*componentStore[T])
	if !ok {
		return nil, 0, eris.Errorf("component name %s is used by another component type", zero.Name())
	}
	return store, cid, nil
}
