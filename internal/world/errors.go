package world

import "errors"

// Domain errors for world construction and object management.
var (
	// ErrInvalidConfig indicates a missing step callback or non-positive dt.
	ErrInvalidConfig = errors.New("world: invalid config")

	// ErrDuplicateObjectID indicates an attempt to register an object whose
	// id is already present.
	ErrDuplicateObjectID = errors.New("world: duplicate object id")

	// ErrUnknownObject indicates an id or reference that does not resolve
	// to a live object.
	ErrUnknownObject = errors.New("world: unknown object")
)
