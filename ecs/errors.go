package ecs

import "github.com/rotisserie/eris"

var (
	// ErrEntityNotFound is returned when attempting to operate on a non-existent entity.
	ErrEntityNotFound = eris.New("entity does not exist")

	// ErrComponentNotFound is returned when an entity doesn't contain the requested component.
	ErrComponentNotFound = eris.New("component not found")

	// ErrResourceNotFound is returned when a resource was never inserted.
	ErrResourceNotFound = eris.New("resource not found")

	// ErrEventNotRegistered is returned when sending or reading an event that wasn't registered.
	ErrEventNotRegistered = eris.New("event not registered")
)
