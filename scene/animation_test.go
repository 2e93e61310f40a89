package scene

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/tanema/gween/ease"

	"github.com/jjoderis/GraphicsEngine-sub000/ecs"
)

func TestTweenPositionReachesTarget(t *testing.T) {
	reg, _ := newScene(t)
	root := NewObject(reg, ecs.NoEntity)
	moveTo(reg, root, 10, 20, 0)

	g := TweenPosition(reg, root, math32.Vec3(100, 200, 0), 1.0, ease.Linear)

	// exact halves avoid float32 accumulation drift
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	tr := transformOf(reg, root)
	assertNear(t, "X", tr.Pos.X, 100)
	assertNear(t, "Y", tr.Pos.Y, 200)
	assertMatrix(t, "local", tr.Matrix, translation(100, 200, 0))
}

func TestTweenMovesSubtree(t *testing.T) {
	reg, _ := newScene(t)
	root := NewObject(reg, ecs.NoEntity)
	child := NewObject(reg, root)
	moveTo(reg, child, 1, 0, 0)

	g := TweenPosition(reg, root, math32.Vec3(0, 10, 0), 1.0, ease.Linear)
	g.Update(0.5)
	assertWorldPos(t, reg, child, math32.Vec3(1, 5, 0))
	g.Update(0.5)
	assertWorldPos(t, reg, child, math32.Vec3(1, 10, 0))
}

func TestTweenScaleReachesTarget(t *testing.T) {
	reg, _ := newScene(t)
	e := NewObject(reg, ecs.NoEntity)

	g := TweenScale(reg, e, math32.Vec3(2, 3, 4), 0.5, ease.Linear)
	g.Update(0.25)
	g.Update(0.25)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	assertVec(t, "scale", transformOf(reg, e).Scale, math32.Vec3(2, 3, 4))
}

func TestTweenRotation(t *testing.T) {
	reg, _ := newScene(t)
	e := NewObject(reg, ecs.NoEntity)

	g := TweenRotation(reg, e, math32.Vec3(0, 0, 1), 90, 1.0, ease.Linear)
	g.Update(0.5)
	g.Update(0.5)

	tr := transformOf(reg, e)
	got := math32.Vec3(1, 0, 0).MulMatrix4AsVector4(&tr.WorldMatrix, 1)
	assertVec(t, "rotated x axis", got, math32.Vec3(0, 1, 0))
}

func TestTweenStopsWhenTransformRemoved(t *testing.T) {
	reg, _ := newScene(t)
	e := NewObject(reg, ecs.NoEntity)

	g := TweenPosition(reg, e, math32.Vec3(50, 0, 0), 1.0, ease.Linear)
	g.Update(0.25)
	ecs.RemoveComponent[Transform](reg, e)
	g.Update(0.25)

	if !g.Done {
		t.Error("expected Done after transform removal")
	}
}

func TestTweenWithoutTransformIsDone(t *testing.T) {
	reg, _ := newScene(t)
	e := reg.AddEntity()
	g := TweenScale(reg, e, math32.Vec3(2, 2, 2), 1.0, ease.Linear)
	if !g.Done {
		t.Fatal("expected Done for entity without transform")
	}
	g.Update(1)
}
