package scene

import "github.com/rotisserie/eris"

var (
	// ErrHierarchyCycle is returned when a reparent would make an entity its
	// own ancestor.
	ErrHierarchyCycle = eris.New("reparenting would create a cycle")

	// ErrSelfParent is returned when an entity is made its own parent.
	ErrSelfParent = eris.New("entity cannot be its own parent")

	// ErrNoHierarchy is returned when the entity has no Hierarchy component.
	ErrNoHierarchy = eris.New("entity has no hierarchy component")
)
