package ecs

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// ResourceID addresses a resource without knowing its Go type.
type ResourceID uint32

// resourceManager stores one value per Go type. Values are kept as pointers so callers mutate
// the stored resource in place.
type resourceManager struct {
	ids    map[reflect.Type]ResourceID
	values []any
}

func newResourceManager() resourceManager {
	return resourceManager{
		ids:    make(map[reflect.Type]ResourceID),
		values: make([]any, 0),
	}
}

func (m *resourceManager) insert(typ reflect.Type, value any) ResourceID {
	if id, exists := m.ids[typ]; exists {
		m.values[id] = value
		return id
	}
	id := ResourceID(len(m.values))
	m.ids[typ] = id
	m.values = append(m.values, value)
	return id
}

// InsertResource stores r as the world's resource of type R, replacing any previous value.
func InsertResource[R any](w *World, r *R) ResourceID {
	return w.resources.insert(reflect.TypeFor[R](), r)
}

// InitResource stores the result of init as the resource of type R unless one already exists.
// It returns the resource's id and whether init ran.
func InitResource[R any](w *World, init func() *R) (ResourceID, bool) {
	if id, exists := w.resources.ids[reflect.TypeFor[R]()]; exists {
		return id, false
	}
	return InsertResource(w, init()), true
}

// GetResource returns the resource of type R.
func GetResource[R any](w *World) (*R, error) {
	id, exists := w.resources.ids[reflect.TypeFor[R]()]
	if !exists {
		return nil, eris.Wrapf(ErrResourceNotFound, "resource %s", reflect.TypeFor[R]())
	}
	r, ok := w.resources.values[id].(*R)
	if !ok {
		return nil, eris.Errorf("resource %d has unexpected type %T", id, w.resources.values[id])
	}
	return r, nil
}

// ResourceByID returns the resource stored under id as a pointer to its concrete type.
func (w *World) ResourceByID(id ResourceID) (any, error) {
	if int(id) >= len(w.resources.values) {
		return nil, eris.Wrapf(ErrResourceNotFound, "resource id %d", id)
	}
	return w.resources.values[id], nil
}
