package picking

import (
	"cogentcore.org/core/math32"

	"github.com/jjoderis/GraphicsEngine-sub000/ecs"
	"github.com/jjoderis/GraphicsEngine-sub000/scene"
)

// Pickable marks an entity as a picking target. Disabled targets are skipped
// without removing the component.
type Pickable struct {
	Disabled bool
}

// Hit describes the closest intersection found by Pick.
type Hit struct {
	Entity ecs.Entity
	// Point is the world-space intersection point.
	Point math32.Vector3
	// Distance is measured in world space from the ray origin.
	Distance float32
	// Triangle is the index of the triangle hit within the entity's Geometry.
	Triangle int
}

// Pick casts a world-space ray against every Pickable entity that also has a
// scene.Transform and a Geometry and returns the closest hit. World matrices
// are read as maintained by a scene.Tracker, so they must be current.
func Pick(reg *ecs.Registry, ray Ray) (Hit, bool) {
	var (
		best  Hit
		found bool
	)
	owners := ecs.Owners[Pickable](reg)
	for i, p := range ecs.Components[Pickable](reg) {
		if p.Disabled {
			continue
		}
		for _, e := range owners[i] {
			hit, ok := pickEntity(reg, e, ray)
			if ok && (!found || hit.Distance < best.Distance) {
				best, found = hit, true
			}
		}
	}
	return best, found
}

func pickEntity(reg *ecs.Registry, e ecs.Entity, ray Ray) (Hit, bool) {
	tr := ecs.GetComponent[scene.Transform](reg, e)
	geo := ecs.GetComponent[Geometry](reg, e)
	if tr == nil || geo == nil {
		return Hit{}, false
	}
	local := ray.Transform(&tr.InverseWorld)
	t, tri, ok := geo.raycast(local)
	if !ok {
		return Hit{}, false
	}
	point := tr.LocalToWorld(local.At(t))
	return Hit{
		Entity:   e,
		Point:    point,
		Distance: point.Sub(ray.Origin).Length(),
		Triangle: tri,
	}, true
}
