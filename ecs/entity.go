package ecs

import (
	"math"
	"strconv"

	"github.com/kelindar/bitmap"
	"github.com/rotisserie/eris"
)

// EntityID is a unique identifier for an entity.
type EntityID uint32

// MaxEntityID is the maximum entity ID that can be created.
const MaxEntityID = math.MaxUint32 - 1

func (e EntityID) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

// entityManager allocates entity IDs and tracks which components each live entity holds.
type entityManager struct {
	nextID EntityID                   // The next ID to allocate if no free IDs are available
	free   []EntityID                 // A queue of free IDs
	masks  map[EntityID]bitmap.Bitmap // Entity ID -> set of component IDs
}

// newEntityManager creates a new entity manager.
func newEntityManager() entityManager {
	return entityManager{
		nextID: 0,
		free:   make([]EntityID, 0),
		masks:  make(map[EntityID]bitmap.Bitmap),
	}
}

// new returns a new entity ID without any components.
func (em *entityManager) new() (EntityID, error) {
	var id EntityID
	if len(em.free) > 0 {
		// Pop from the front of the free list (FIFO).
		id = em.free[0]
		em.free = em.free[1:]
	} else {
		id = em.nextID
		if id > MaxEntityID {
			return 0, eris.New("max number of entities exceeded")
		}
		em.nextID++
	}
	em.masks[id] = bitmap.Bitmap{}
	return id, nil
}

// remove marks an entity ID as available for reuse.
func (em *entityManager) remove(id EntityID) error {
	if !em.isAlive(id) {
		return eris.Wrapf(ErrEntityNotFound, "entity %d", id)
	}
	delete(em.masks, id)
	em.free = append(em.free, id)
	return nil
}

// isAlive checks if an entity ID is currently active.
func (em *entityManager) isAlive(id EntityID) bool {
	_, exists := em.masks[id]
	return exists
}

// mark records that the entity holds the component.
func (em *entityManager) mark(id EntityID, cid componentID) {
	mask := em.masks[id]
	mask.Set(cid)
	em.masks[id] = mask
}

// unmark records that the entity no longer holds the component.
func (em *entityManager) unmark(id EntityID, cid componentID) {
	mask := em.masks[id]
	mask.Remove(cid)
	em.masks[id] = mask
}

// components returns the entity's component IDs in ascending order.
func (em *entityManager) components(id EntityID) []componentID {
	mask := em.masks[id]
	cids := make([]componentID, 0, mask.Count())
	mask.Range(func(cid uint32) {
		cids = append(cids, cid)
	})
	return cids
}
