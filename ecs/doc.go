// Package ecs associates typed components with opaque entity handles.
//
// Every component type has its own [Table]. A component instance lives in the
// table, not in the entity, so one instance can be shared by several entities
// (shared geometry, shared materials). The instance is dropped when the last
// owner lets go of it.
//
// Changes are observed through events instead of being baked into the
// components:
//
//	reg := ecs.NewRegistry()
//	e := reg.AddEntity()
//
//	sub := ecs.OnAdded(reg, func(e ecs.Entity, m *Material) {
//		// upload, index, ...
//	})
//	defer sub.Close()
//
//	m := ecs.CreateComponent(reg, e, Material{Color: red})
//	m.Color = blue
//	ecs.NotifyUpdated[Material](reg, e)
//
// A callback is kept for as long as the caller holds its [Subscription]; the
// registry only references it weakly. Dispatch is synchronous and reentrant:
// handlers may add and remove components, including on the table that is
// currently dispatching.
//
// Bridges to other ECS worlds live in [github.com/jjoderis/GraphicsEngine-sub000/ecs/bridge].
package ecs
