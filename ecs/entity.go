package ecs

import (
	"container/heap"
	"math"
)

// Entity is an opaque handle. It carries no state of its own; components are
// associated with it through tables.
type Entity uint32

// NoEntity is never handed out by an Allocator and marks an absent entity.
const NoEntity Entity = math.MaxUint32

// freeList is a min-heap of released ids so that the lowest one is reused first.
type freeList []Entity

func (f freeList) Len() int           { return len(f) }
func (f freeList) Less(i, j int) bool { return f[i] < f[j] }
func (f freeList) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }
func (f *freeList) Push(x any)        { *f = append(*f, x.(Entity)) }
func (f *freeList) Pop() any {
	old := *f
	n := len(old)
	e := old[n-1]
	*f = old[:n-1]
	return e
}

// Allocator issues and recycles entity ids.
type Allocator struct {
	next  Entity
	free  freeList
	freed []bool // indexed by id, true while the id sits in free
}

// Allocate returns the lowest released id if there is one, otherwise the next
// id that was never handed out, starting at 0.
func (a *Allocator) Allocate() Entity {
	if len(a.free) > 0 {
		e := heap.Pop(&a.free).(Entity)
		a.freed[e] = false
		return e
	}
	e := a.next
	a.next++
	a.freed = append(a.freed, false)
	return e
}

// Release returns e to the free pool. Releasing an id twice, or an id that was
// never allocated, does nothing.
func (a *Allocator) Release(e Entity) {
	if e >= a.next || a.freed[e] {
		return
	}
	a.freed[e] = true
	heap.Push(&a.free, e)
}

// Alive reports whether e is currently allocated.
func (a *Allocator) Alive(e Entity) bool {
	return e < a.next && !a.freed[e]
}

// Len returns the number of live entities.
func (a *Allocator) Len() int {
	return int(a.next) - len(a.free)
}
