// Package scene adds a spatial hierarchy on top of the ecs registry.
//
// Two components describe an object: [Transform] holds the local pose and the
// derived world matrices, [Hierarchy] links it to a parent. A [Tracker]
// listens to registry events and keeps every world matrix equal to the
// parent's world matrix times the local matrix, cascading depth first when
// anything up the chain moves.
//
//	reg := ecs.NewRegistry()
//	tracker := scene.NewTracker(reg)
//
//	root := scene.NewObject(reg, ecs.NoEntity)
//	arm := scene.NewObject(reg, root)
//	scene.SetLocal(reg, root, func(t *scene.Transform) { t.Pos.X = 10 })
//	_ = ecs.GetComponent[scene.Transform](reg, arm).WorldPosition() // (10, 0, 0)
//
// Reparent with [SetParent]; it refuses cycles with [ErrHierarchyCycle].
// Writing Hierarchy fields directly and calling ecs.NotifyUpdated also works,
// but a cycle introduced that way panics.
//
// The Tracker subscribes weakly, like every registry listener. Keep it
// referenced for as long as the scene should stay consistent.
package scene
