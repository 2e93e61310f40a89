package scene

import (
	"cogentcore.org/core/math32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/jjoderis/GraphicsEngine-sub000/ecs"
)

// TweenGroup animates up to 3 Transform values of one entity simultaneously.
// Create one via TweenPosition, TweenScale or TweenRotation and call
// Update(dt) each frame. Every step rewrites the local matrix and notifies the
// registry, so the Tracker moves the whole subtree along. If the entity loses
// its Transform the group stops immediately.
//
// There is no global animation manager. Callers drive Update themselves.
type TweenGroup struct {
	tweens [3]*gween.Tween
	count  int
	values [3]float32
	apply  func(tr *Transform, v [3]float32)

	reg    *ecs.Registry
	target ecs.Entity
	Done   bool
}

// Update advances all tweens by dt seconds and writes the result to the
// target Transform.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if !ecs.HasComponent[Transform](g.reg, g.target) {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.values[i] = val
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	SetLocal(g.reg, g.target, func(tr *Transform) {
		g.apply(tr, g.values)
	})
}

func newTweenGroup(reg *ecs.Registry, e ecs.Entity) (*TweenGroup, *Transform) {
	g := &TweenGroup{reg: reg, target: e}
	tr := ecs.GetComponent[Transform](reg, e)
	if tr == nil {
		g.Done = true
	}
	return g, tr
}

// TweenPosition animates the entity's local position to the given target.
func TweenPosition(reg *ecs.Registry, e ecs.Entity, to math32.Vector3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g, tr := newTweenGroup(reg, e)
	if tr == nil {
		return g
	}
	g.count = 3
	g.tweens[0] = gween.New(tr.Pos.X, to.X, duration, fn)
	g.tweens[1] = gween.New(tr.Pos.Y, to.Y, duration, fn)
	g.tweens[2] = gween.New(tr.Pos.Z, to.Z, duration, fn)
	g.apply = func(tr *Transform, v [3]float32) {
		tr.Pos = math32.Vec3(v[0], v[1], v[2])
	}
	return g
}

// TweenScale animates the entity's local scale to the given target.
func TweenScale(reg *ecs.Registry, e ecs.Entity, to math32.Vector3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g, tr := newTweenGroup(reg, e)
	if tr == nil {
		return g
	}
	g.count = 3
	g.tweens[0] = gween.New(tr.Scale.X, to.X, duration, fn)
	g.tweens[1] = gween.New(tr.Scale.Y, to.Y, duration, fn)
	g.tweens[2] = gween.New(tr.Scale.Z, to.Z, duration, fn)
	g.apply = func(tr *Transform, v [3]float32) {
		tr.Scale = math32.Vec3(v[0], v[1], v[2])
	}
	return g
}

// TweenRotation rotates the entity by angle degrees around axis, on top of
// the rotation it has when the tween is created.
func TweenRotation(reg *ecs.Registry, e ecs.Entity, axis math32.Vector3, angle, duration float32, fn ease.TweenFunc) *TweenGroup {
	g, tr := newTweenGroup(reg, e)
	if tr == nil {
		return g
	}
	start := tr.Quat
	g.count = 1
	g.tweens[0] = gween.New(0, angle, duration, fn)
	g.apply = func(tr *Transform, v [3]float32) {
		tr.Quat = start.Mul(math32.NewQuatAxisAngle(axis, math32.DegToRad(v[0])))
	}
	return g
}
