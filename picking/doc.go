// Package picking finds the entity under a ray.
//
// Entities take part when they carry a [Pickable] marker, a [Geometry] and a
// scene.Transform whose world matrices are kept current by a scene.Tracker.
// The ray is moved into each entity's local space, tested against the
// geometry's bounding-volume tree, and the closest hit in world space wins.
package picking
