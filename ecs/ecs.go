package ecs

import "github.com/rotisserie/eris"

// RegisterComponent registers a component type with the world. Insert registers components on
// first use, so calling this up front is only needed to fail early on name conflicts.
func RegisterComponent[T Component](w *World) error {
	if _, err := registerComponent[T](&w.components); err != nil {
		return err
	}
	_, _, err := storeOf[T](&w.components)
	return err
}

// Spawn creates an entity without any components.
func Spawn(w *World) (EntityID, error) {
	return w.entities.new()
}

// Alive checks if an entity exists in the world.
func Alive(w *World, eid EntityID) bool {
	return w.entities.isAlive(eid)
}

// Insert sets a component on an entity. If the entity already has the component, OnReplace fires
// with the old value still stored, then the value is overwritten and OnInsert fires. Otherwise
// the value is written and OnAdd then OnInsert fire.
func Insert[T Component](w *World, eid EntityID, component T) error {
	if !w.entities.isAlive(eid) {
		return eris.Wrapf(ErrEntityNotFound, "entity %d", eid)
	}
	if _, err := registerComponent[T](&w.components); err != nil {
		return err
	}
	store, cid, err := storeOf[T](&w.components)
	if err != nil {
		return err
	}

	origin := w.origin(2)
	name := store.name()
	existed := store.has(eid)
	if existed {
		w.fireLifecycle(OnReplace{}, eid, name, origin)
	}

	// An observer may have despawned the entity.
	if !w.entities.isAlive(eid) {
		return eris.Wrapf(ErrEntityNotFound, "entity %d", eid)
	}
	store.set(eid, component)
	w.entities.mark(eid, cid)

	if !existed {
		w.fireLifecycle(OnAdd{}, eid, name, origin)
	}
	w.fireLifecycle(OnInsert{}, eid, name, origin)
	return nil
}

// Get gets a component from an entity.
// Returns an error if the entity doesn't exist or doesn't contain the component type.
func Get[T Component](w *World, eid EntityID) (T, error) {
	var zero T
	if !w.entities.isAlive(eid) {
		return zero, eris.Wrapf(ErrEntityNotFound, "entity %d", eid)
	}
	store, _, err := storeOf[T](&w.components)
	if err != nil {
		return zero, err
	}
	component, ok := store.get(eid)
	if !ok {
		return zero, eris.Wrapf(ErrComponentNotFound, "entity %d has no %s", eid, zero.Name())
	}
	return component, nil
}

// Has checks if an entity has a specific component type.
// Returns false if either the entity doesn't exist or doesn't have the component.
func Has[T Component](w *World, eid EntityID) bool {
	_, err := Get[T](w, eid)
	return err == nil
}

// Remove removes a component from an entity. OnReplace and OnRemove fire while the value
// is still stored. Returns an error if the entity or the component to remove doesn't exist.
func Remove[T Component](w *World, eid EntityID) error {
	if !w.entities.isAlive(eid) {
		return eris.Wrapf(ErrEntityNotFound, "entity %d", eid)
	}
	store, cid, err := storeOf[T](&w.components)
	if err != nil {
		return err
	}
	if !store.has(eid) {
		var zero T
		return eris.Wrapf(ErrComponentNotFound, "entity %d has no %s", eid, zero.Name())
	}

	origin := w.origin(2)
	w.fireLifecycle(OnReplace{}, eid, store.name(), origin)
	w.fireLifecycle(OnRemove{}, eid, store.name(), origin)

	store.remove(eid)
	if w.entities.isAlive(eid) {
		w.entities.unmark(eid, cid)
	}
	return nil
}

// Despawn deletes an entity and all its components. OnDespawn fires for each component in
// registration order, then OnReplace and OnRemove for each, all while the values are still stored.
func Despawn(w *World, eid EntityID) error {
	if !w.entities.isAlive(eid) {
		return eris.Wrapf(ErrEntityNotFound, "entity %d", eid)
	}

	origin := w.origin(2)
	cids := w.entities.components(eid)
	for _, cid := range cids {
		store := w.components.stores[cid]
		if !store.has(eid) {
			continue
		}
		w.fireLifecycle(OnDespawn{}, eid, store.name(), origin)
	}
	for _, cid := range cids {
		store := w.components.stores[cid]
		if !store.has(eid) {
			continue
		}
		w.fireLifecycle(OnReplace{}, eid, store.name(), origin)
		w.fireLifecycle(OnRemove{}, eid, store.name(), origin)
	}

	for _, cid := range cids {
		w.components.stores[cid].remove(eid)
	}
	if !w.entities.isAlive(eid) {
		return nil
	}
	return w.entities.remove(eid)
}
