// Package bridge forwards registry lifecycle events into other ECS worlds.
//
// [DonburiBridge] publishes component additions, updates, removals and swaps
// into a [Donburi] world as [ComponentEventType] events, so Donburi systems can
// react to the authoring registry without subscribing to it directly:
//
//	b := bridge.NewDonburiBridge(world)
//	bridge.Forward[scene.Transform](b, reg)
//	...
//	bridge.ComponentEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package bridge

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/jjoderis/GraphicsEngine-sub000/ecs"
)

// Kind identifies the lifecycle step carried by a ComponentEvent.
type Kind uint8

const (
	KindAdded   Kind = iota // entity became an owner of an instance
	KindUpdated             // NotifyUpdated was called through entity
	KindRemoved             // entity is about to stop owning the instance
	KindSwapped             // AddComponent replaced entity's instance
)

func (k Kind) String() string {
	switch k {
	case KindAdded:
		return "added"
	case KindUpdated:
		return "updated"
	case KindRemoved:
		return "removed"
	case KindSwapped:
		return "swapped"
	default:
		return "unknown"
	}
}

// ComponentEvent is the Donburi event published for every forwarded step.
type ComponentEvent struct {
	Kind      Kind
	Entity    ecs.Entity
	Component ecs.TypeID
}

// ComponentEventType is the Donburi event type carrying ComponentEvent.
// Events are queued by Donburi; call ProcessEvents to deliver them.
var ComponentEventType = events.NewEventType[ComponentEvent]()

// DonburiBridge owns the registry subscriptions that feed a Donburi world.
// Forwarding stops when the bridge is closed or garbage collected.
type DonburiBridge struct {
	world   donburi.World
	subs    []*ecs.Subscription
	updates map[any]*ecs.Subscription // per forwarded instance
}

// NewDonburiBridge creates a bridge publishing into world.
func NewDonburiBridge(world donburi.World) *DonburiBridge {
	return &DonburiBridge{
		world:   world,
		updates: make(map[any]*ecs.Subscription),
	}
}

func (b *DonburiBridge) emit(kind Kind, e ecs.Entity, id ecs.TypeID) {
	ComponentEventType.Publish(b.world, ComponentEvent{Kind: kind, Entity: e, Component: id})
}

// Forward starts publishing lifecycle events of T from reg. Instances that
// already exist are not replayed.
func Forward[T any](b *DonburiBridge, reg *ecs.Registry) {
	id := ecs.TypeOf[T]()
	b.subs = append(b.subs,
		ecs.OnAdded(reg, func(e ecs.Entity, c *T) {
			b.emit(KindAdded, e, id)
			if _, ok := b.updates[c]; ok {
				return
			}
			b.updates[c] = ecs.OnUpdated(reg, e, func(e ecs.Entity, _ *T) {
				b.emit(KindUpdated, e, id)
			})
		}),
		ecs.OnRemoved(reg, func(e ecs.Entity, c *T) {
			b.emit(KindRemoved, e, id)
			// removal fires before detaching, so the last owner is still listed
			if len(ecs.OwnersOf(reg, c)) <= 1 {
				b.updates[c].Close()
				delete(b.updates, c)
			}
		}),
		ecs.OnComponentSwap(reg, func(e ecs.Entity, _, _ *T) {
			b.emit(KindSwapped, e, id)
		}),
	)
}

// Close stops all forwarding.
func (b *DonburiBridge) Close() {
	for _, s := range b.subs {
		s.Close()
	}
	for _, s := range b.updates {
		s.Close()
	}
	b.subs = nil
	clear(b.updates)
}
