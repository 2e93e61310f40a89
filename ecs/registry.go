package ecs

import (
	"reflect"
	"slices"
	"strings"

	"github.com/rs/zerolog"
)

// TypeID identifies a component type. It is derived from the static Go type,
// so it does not depend on the order in which types are first used.
type TypeID struct {
	t reflect.Type
}

// TypeOf returns the TypeID of T.
func TypeOf[T any]() TypeID {
	return TypeID{t: reflect.TypeFor[T]()}
}

// String returns the qualified type name.
func (id TypeID) String() string {
	if id.t == nil {
		return "<nil>"
	}
	return id.t.String()
}

// componentTable is the type-erased view of a store the registry needs for
// whole-entity operations.
type componentTable interface {
	Has(e Entity) bool
	Remove(e Entity)
	Len() int
}

// store pairs a table with the swap event the registry layers on top of it.
type store[T any] struct {
	*Table[T]
	swapped Event[SwapHandler[T]]
}

// Registry owns one table per component type plus the entity allocator. It
// is passed explicitly to every consumer; there is no default instance.
type Registry struct {
	entities Allocator
	tables   map[TypeID]componentTable
	logger   zerolog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		tables: make(map[TypeID]componentTable),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Logger returns the registry's logger so consumers can derive sub-loggers.
func (r *Registry) Logger() *zerolog.Logger {
	return &r.logger
}

// AddEntity allocates a new entity id.
func (r *Registry) AddEntity() Entity {
	return r.entities.Allocate()
}

// RemoveEntity releases e back to the allocator. Components are NOT stripped:
// until every table is purged of e (see PurgeEntity) a recycled id still
// carries the old associations.
func (r *Registry) RemoveEntity(e Entity) {
	r.entities.Release(e)
}

// PurgeEntity removes e from every table, firing the usual removal events,
// and then releases the id.
func (r *Registry) PurgeEntity(e Entity) {
	stripped := 0
	for _, id := range r.Types() {
		tbl := r.tables[id]
		if tbl.Has(e) {
			tbl.Remove(e)
			stripped++
		}
	}
	r.entities.Release(e)
	r.logger.Debug().
		Uint32("entity", uint32(e)).
		Int("components", stripped).
		Msg("entity purged")
}

// Alive reports whether e is currently allocated.
func (r *Registry) Alive(e Entity) bool {
	return r.entities.Alive(e)
}

// EntityCount returns the number of allocated entities.
func (r *Registry) EntityCount() int {
	return r.entities.Len()
}

// Types returns the component types that have a table, sorted by name.
func (r *Registry) Types() []TypeID {
	ids := make([]TypeID, 0, len(r.tables))
	for id := range r.tables {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b TypeID) int {
		return strings.Compare(a.String(), b.String())
	})
	return ids
}

func storeOf[T any](r *Registry) *store[T] {
	id := TypeOf[T]()
	if tbl, ok := r.tables[id]; ok {
		return tbl.(*store[T])
	}
	s := &store[T]{Table: NewTable[T]()}
	r.tables[id] = s
	r.logger.Debug().Str("component", id.String()).Msg("table created")
	return s
}

// TableOf returns the table for T, creating it on first use.
func TableOf[T any](r *Registry) *Table[T] {
	return storeOf[T](r).Table
}

// AddComponent associates c with e. When e already had a different instance
// of T, subscribers of OnComponentSwap are notified after the removal and
// addition events.
func AddComponent[T any](r *Registry, e Entity, c *T) *T {
	s := storeOf[T](r)
	old := s.Get(e)
	added := s.Add(e, c)
	if old != nil && added != nil && old != added && s.Get(e) == added {
		r.logger.Debug().
			Uint32("entity", uint32(e)).
			Str("component", TypeOf[T]().String()).
			Msg("component swapped")
		s.swapped.Emit(func(fn SwapHandler[T]) { fn(e, old, added) })
	}
	return added
}

// CreateComponent stores a heap copy of value on e and returns it.
func CreateComponent[T any](r *Registry, e Entity, value T) *T {
	c := new(T)
	*c = value
	return AddComponent(r, e, c)
}

// GetComponent returns e's T, or nil.
func GetComponent[T any](r *Registry, e Entity) *T {
	return storeOf[T](r).Get(e)
}

// HasComponent reports whether e has a T.
func HasComponent[T any](r *Registry, e Entity) bool {
	return storeOf[T](r).Has(e)
}

// RemoveComponent detaches e's T, if any.
func RemoveComponent[T any](r *Registry, e Entity) {
	storeOf[T](r).Remove(e)
}

// Components returns every stored T, index-aligned with Owners.
func Components[T any](r *Registry) []*T {
	return storeOf[T](r).Components()
}

// Owners returns the owners of every stored T, index-aligned with Components.
func Owners[T any](r *Registry) [][]Entity {
	return storeOf[T](r).Owners()
}

// OwnersOf returns the entities sharing c.
func OwnersOf[T any](r *Registry, c *T) []Entity {
	return storeOf[T](r).OwnersOf(c)
}

// NotifyUpdated signals that e's T changed.
func NotifyUpdated[T any](r *Registry, e Entity) {
	storeOf[T](r).NotifyUpdated(e)
}

// OnAdded subscribes to T being added to any entity.
func OnAdded[T any](r *Registry, fn Handler[T]) *Subscription {
	return storeOf[T](r).OnAdded(fn)
}

// OnRemoved subscribes to T being removed from any entity.
func OnRemoved[T any](r *Registry, fn Handler[T]) *Subscription {
	return storeOf[T](r).OnRemoved(fn)
}

// OnUpdated subscribes to updates of the T instance e currently points at.
func OnUpdated[T any](r *Registry, e Entity, fn Handler[T]) *Subscription {
	return storeOf[T](r).OnUpdated(e, fn)
}

// OnComponentSwap subscribes to AddComponent replacing one T instance with
// another on the same entity. Fresh additions do not trigger it.
func OnComponentSwap[T any](r *Registry, fn SwapHandler[T]) *Subscription {
	return storeOf[T](r).swapped.Subscribe(fn)
}
