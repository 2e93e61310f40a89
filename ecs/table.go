package ecs

import "slices"

// Table stores the components of one type. An instance is heap-allocated once
// and may be owned by several entities at the same time; it is dropped when its
// last owner detaches. Instances are identified by pointer.
type Table[T any] struct {
	sparse     []int // entity -> dense index, -1 when absent
	components []*T
	owners     [][]Entity            // per instance, in insertion order
	updated    []*Event[Handler[T]] // per instance, created on first subscribe
	indexOf    map[*T]int
	removing   map[Entity]struct{} // removal events in flight

	added   Event[Handler[T]]
	removed Event[Handler[T]]
}

// NewTable creates an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{
		indexOf:  make(map[*T]int),
		removing: make(map[Entity]struct{}),
	}
}

func (t *Table[T]) index(e Entity) int {
	if int(e) >= len(t.sparse) {
		return -1
	}
	return t.sparse[e]
}

// Add associates c with e and returns c. Re-adding the instance e already
// points at does nothing. If e points at a different instance, that
// association is removed first, firing the removal event. The added event
// fires once e has become an owner of c.
func (t *Table[T]) Add(e Entity, c *T) *T {
	if c == nil || e == NoEntity {
		return nil
	}
	for idx := t.index(e); idx >= 0; idx = t.index(e) {
		if t.components[idx] == c {
			return c
		}
		if _, busy := t.removing[e]; busy {
			// the removal event for e is already being delivered
			t.detach(e, idx)
			continue
		}
		t.Remove(e)
	}

	idx, ok := t.indexOf[c]
	if !ok {
		idx = len(t.components)
		t.components = append(t.components, c)
		t.owners = append(t.owners, nil)
		t.updated = append(t.updated, nil)
		t.indexOf[c] = idx
	}
	t.owners[idx] = append(t.owners[idx], e)
	for int(e) >= len(t.sparse) {
		t.sparse = append(t.sparse, -1)
	}
	t.sparse[e] = idx

	t.added.Emit(func(fn Handler[T]) { fn(e, c) })
	return c
}

// Remove detaches e from its component. Removal subscribers run while the
// association is still in place. When the instance loses its last owner it is
// dropped together with its update subscribers. Absent entities are ignored,
// and so is a nested Remove of an entity whose removal is being delivered.
func (t *Table[T]) Remove(e Entity) {
	idx := t.index(e)
	if idx < 0 {
		return
	}
	if _, busy := t.removing[e]; busy {
		return
	}
	c := t.components[idx]
	t.removing[e] = struct{}{}
	func() {
		defer delete(t.removing, e)
		t.removed.Emit(func(fn Handler[T]) { fn(e, c) })
	}()

	// a subscriber may already have changed e's association
	idx = t.index(e)
	if idx < 0 || t.components[idx] != c {
		return
	}
	t.detach(e, idx)
}

// detach drops e from the owners of the instance at idx without notifying.
func (t *Table[T]) detach(e Entity, idx int) {
	t.sparse[e] = -1
	owners := t.owners[idx]
	if i := slices.Index(owners, e); i >= 0 {
		owners = slices.Delete(owners, i, i+1)
	}
	t.owners[idx] = owners
	if len(owners) == 0 {
		t.destroy(idx)
	}
}

// destroy drops the instance at idx, moving the last instance into its slot.
func (t *Table[T]) destroy(idx int) {
	delete(t.indexOf, t.components[idx])
	last := len(t.components) - 1
	if idx != last {
		moved := t.components[last]
		t.components[idx] = moved
		t.owners[idx] = t.owners[last]
		t.updated[idx] = t.updated[last]
		t.indexOf[moved] = idx
		for _, o := range t.owners[idx] {
			t.sparse[o] = idx
		}
	}
	t.components[last] = nil
	t.owners[last] = nil
	t.updated[last] = nil
	t.components = t.components[:last]
	t.owners = t.owners[:last]
	t.updated = t.updated[:last]
}

// Has reports whether e has a component in this table.
func (t *Table[T]) Has(e Entity) bool {
	return t.index(e) >= 0
}

// Get returns e's component, or nil.
func (t *Table[T]) Get(e Entity) *T {
	idx := t.index(e)
	if idx < 0 {
		return nil
	}
	return t.components[idx]
}

// Len returns the number of stored instances.
func (t *Table[T]) Len() int {
	return len(t.components)
}

// Components returns every stored instance. The result is index-aligned with
// Owners.
func (t *Table[T]) Components() []*T {
	return slices.Clone(t.components)
}

// Owners returns the owner list of every stored instance, index-aligned with
// Components.
func (t *Table[T]) Owners() [][]Entity {
	out := make([][]Entity, len(t.owners))
	for i, o := range t.owners {
		out[i] = slices.Clone(o)
	}
	return out
}

// OwnersOf returns the entities sharing c, in the order they were added, or
// nil if c is not stored.
func (t *Table[T]) OwnersOf(c *T) []Entity {
	idx, ok := t.indexOf[c]
	if !ok {
		return nil
	}
	return slices.Clone(t.owners[idx])
}

// OnAdded subscribes to additions of any entity.
func (t *Table[T]) OnAdded(fn Handler[T]) *Subscription {
	return t.added.Subscribe(fn)
}

// OnRemoved subscribes to removals of any entity.
func (t *Table[T]) OnRemoved(fn Handler[T]) *Subscription {
	return t.removed.Subscribe(fn)
}

// OnUpdated subscribes to updates of the instance e points at right now. The
// subscription follows the instance, not e: it fires for NotifyUpdated on any
// owner and ends when the instance is dropped. If e has no component the
// returned subscription is already closed.
func (t *Table[T]) OnUpdated(e Entity, fn Handler[T]) *Subscription {
	idx := t.index(e)
	if idx < 0 {
		return closedSubscription()
	}
	if t.updated[idx] == nil {
		t.updated[idx] = &Event[Handler[T]]{}
	}
	return t.updated[idx].Subscribe(fn)
}

// NotifyUpdated signals that e's component changed. Update subscribers of the
// instance are called with e as the triggering entity. There is no automatic
// change detection; mutating a component through any owner requires this call.
func (t *Table[T]) NotifyUpdated(e Entity) {
	idx := t.index(e)
	if idx < 0 {
		return
	}
	c := t.components[idx]
	if ev := t.updated[idx]; ev != nil {
		ev.Emit(func(fn Handler[T]) { fn(e, c) })
	}
}
