package ecs

import (
	"slices"
	"weak"
)

// Subscription is the token returned by every Subscribe/On* call. The callback
// stays registered for as long as the caller holds on to the token: events keep
// only a weak reference, so a dropped token is skipped and purged once the
// garbage collector has reclaimed it. Close cancels immediately.
type Subscription struct {
	handler any
	closed  bool
}

// Close cancels the subscription. Safe to call more than once and on nil.
func (s *Subscription) Close() {
	if s == nil {
		return
	}
	s.closed = true
	s.handler = nil
}

// Active reports whether the callback will still be invoked.
func (s *Subscription) Active() bool {
	return s != nil && !s.closed
}

// closedSubscription returns a token that never fires.
func closedSubscription() *Subscription {
	return &Subscription{closed: true}
}

// Handler is the callback signature for component lifecycle events. The entity
// is the one that triggered the event.
type Handler[T any] func(e Entity, c *T)

// SwapHandler is called when an entity's component instance is replaced.
type SwapHandler[T any] func(e Entity, old, new *T)

// Event is a synchronous multicast signal whose subscribers have signature F.
// The zero value is ready to use.
type Event[F any] struct {
	subs []weak.Pointer[Subscription]
}

// Subscribe registers fn and returns the token that keeps it alive.
func (ev *Event[F]) Subscribe(fn F) *Subscription {
	s := &Subscription{handler: fn}
	ev.subs = append(ev.subs, weak.Make(s))
	return s
}

// Emit invokes every live subscriber in subscription order. The subscriber list
// is snapshotted first, so handlers may subscribe, close, or emit again; a
// subscriber added during Emit is not called for the emission in flight.
// Expired entries are compacted out afterwards.
func (ev *Event[F]) Emit(call func(F)) {
	if len(ev.subs) == 0 {
		return
	}
	snapshot := slices.Clone(ev.subs)
	for _, w := range snapshot {
		s := w.Value()
		if !s.Active() {
			continue
		}
		call(s.handler.(F))
	}
	ev.compact()
}

// Len returns the number of subscribers that are still live.
func (ev *Event[F]) Len() int {
	n := 0
	for _, w := range ev.subs {
		if w.Value().Active() {
			n++
		}
	}
	return n
}

func (ev *Event[F]) compact() {
	live := ev.subs[:0]
	for _, w := range ev.subs {
		if w.Value().Active() {
			live = append(live, w)
		}
	}
	clear(ev.subs[len(live):])
	ev.subs = live
}
