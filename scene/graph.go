package scene

import (
	"github.com/rotisserie/eris"

	"github.com/jjoderis/GraphicsEngine-sub000/ecs"
)

// NewObject creates an entity with an identity Transform attached under
// parent (ecs.NoEntity for a root).
func NewObject(reg *ecs.Registry, parent ecs.Entity) ecs.Entity {
	e := reg.AddEntity()
	ecs.AddComponent(reg, e, NewTransform())
	ecs.AddComponent(reg, e, NewHierarchy(parent))
	return e
}

// SetParent moves e under parent and notifies the registry. Pass ecs.NoEntity
// to detach. The graph is left untouched when an error is returned.
func SetParent(reg *ecs.Registry, e, parent ecs.Entity) error {
	if e == parent {
		return eris.Wrapf(ErrSelfParent, "entity %d", e)
	}
	h := ecs.GetComponent[Hierarchy](reg, e)
	if h == nil {
		return eris.Wrapf(ErrNoHierarchy, "entity %d", e)
	}
	if parent != ecs.NoEntity && wouldCycle(reg, e, parent) {
		return eris.Wrapf(ErrHierarchyCycle, "entity %d under %d", e, parent)
	}
	if h.Parent() == parent {
		return nil
	}
	h.Assign(parent)
	ecs.NotifyUpdated[Hierarchy](reg, e)
	return nil
}

// ClearParent detaches e from its parent.
func ClearParent(reg *ecs.Registry, e ecs.Entity) error {
	return SetParent(reg, e, ecs.NoEntity)
}

// wouldCycle walks up from parent and reports whether it reaches e. A chain
// longer than the number of Hierarchy components is treated as a cycle.
func wouldCycle(reg *ecs.Registry, e, parent ecs.Entity) bool {
	limit := ecs.TableOf[Hierarchy](reg).Len() + 1
	for p, steps := parent, 0; p != ecs.NoEntity; steps++ {
		if p == e || steps > limit {
			return true
		}
		h := ecs.GetComponent[Hierarchy](reg, p)
		if h == nil {
			return false
		}
		p = h.Parent()
	}
	return false
}

// SetLocal applies fn to e's Transform, recomputes the local matrix and
// notifies the registry. It reports false when e has no Transform.
func SetLocal(reg *ecs.Registry, e ecs.Entity, fn func(*Transform)) bool {
	tr := ecs.GetComponent[Transform](reg, e)
	if tr == nil {
		return false
	}
	fn(tr)
	tr.UpdateMatrix()
	ecs.NotifyUpdated[Transform](reg, e)
	return true
}

// Walk visits e and its descendants depth first, parents before children.
// Returning false from fn skips the subtree. fn must not change the
// hierarchy while walking.
func Walk(reg *ecs.Registry, e ecs.Entity, fn func(ecs.Entity) bool) {
	if !fn(e) {
		return
	}
	h := ecs.GetComponent[Hierarchy](reg, e)
	if h == nil {
		return
	}
	for _, c := range h.children {
		Walk(reg, c, fn)
	}
}
