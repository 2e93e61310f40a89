package scene

import (
	"github.com/jjoderis/GraphicsEngine-sub000/ecs"
)

// Hierarchy links an entity to its parent. The zero value is a root.
//
// The child list is maintained by the Tracker and mirrors the parent links
// of every tracked entity; it must not be edited by callers.
type Hierarchy struct {
	parent    ecs.Entity
	hasParent bool
	children  []ecs.Entity
}

// NewHierarchy returns a Hierarchy attached to parent. Pass ecs.NoEntity for
// a root.
func NewHierarchy(parent ecs.Entity) *Hierarchy {
	h := &Hierarchy{}
	h.Assign(parent)
	return h
}

// Parent returns the parent entity, or ecs.NoEntity for a root.
func (h *Hierarchy) Parent() ecs.Entity {
	if !h.hasParent {
		return ecs.NoEntity
	}
	return h.parent
}

// HasParent reports whether the entity is attached to a parent.
func (h *Hierarchy) HasParent() bool {
	return h.hasParent
}

// Children returns the child list. The returned slice MUST NOT be mutated by
// the caller.
func (h *Hierarchy) Children() []ecs.Entity {
	return h.children
}

// NumChildren returns the number of children.
func (h *Hierarchy) NumChildren() int {
	return len(h.children)
}

// Assign records parent without validating it or notifying anyone. The
// Tracker picks the change up on the next ecs.NotifyUpdated for the entity's
// Hierarchy. Prefer SetParent, which checks for cycles first.
func (h *Hierarchy) Assign(parent ecs.Entity) {
	h.parent = parent
	h.hasParent = parent != ecs.NoEntity
}

func (h *Hierarchy) addChild(child ecs.Entity) {
	for _, c := range h.children {
		if c == child {
			return
		}
	}
	h.children = append(h.children, child)
}

// removeChild drops child from the list, keeping sibling order.
func (h *Hierarchy) removeChild(child ecs.Entity) {
	for i, c := range h.children {
		if c == child {
			copy(h.children[i:], h.children[i+1:])
			h.children = h.children[:len(h.children)-1]
			return
		}
	}
}
