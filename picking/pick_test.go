package picking

import (
	"runtime"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/require"

	"github.com/jjoderis/GraphicsEngine-sub000/ecs"
	"github.com/jjoderis/GraphicsEngine-sub000/scene"
)

const tol = 1e-4

// quad returns a 2x2 square in the XY plane at height z.
func quad(t *testing.T, z float32) *Geometry {
	t.Helper()
	g, err := NewGeometry([]math32.Vector3{
		math32.Vec3(-1, -1, z),
		math32.Vec3(1, -1, z),
		math32.Vec3(1, 1, z),
		math32.Vec3(-1, 1, z),
	}, []uint32{0, 1, 2, 0, 2, 3})
	require.NoError(t, err)
	return g
}

// grid returns an n x n grid of unit cells split into two triangles each.
func grid(t *testing.T, n int) *Geometry {
	t.Helper()
	var pos []math32.Vector3
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			pos = append(pos, math32.Vec3(float32(x), float32(y), 0))
		}
	}
	var idx []uint32
	row := uint32(n + 1)
	for y := uint32(0); y < uint32(n); y++ {
		for x := uint32(0); x < uint32(n); x++ {
			i := y*row + x
			idx = append(idx, i, i+1, i+row+1, i, i+row+1, i+row)
		}
	}
	g, err := NewGeometry(pos, idx)
	require.NoError(t, err)
	return g
}

func newWorld(t *testing.T) *ecs.Registry {
	t.Helper()
	reg := ecs.NewRegistry()
	tracker := scene.NewTracker(reg)
	t.Cleanup(func() { runtime.KeepAlive(tracker) })
	return reg
}

func spawn(reg *ecs.Registry, parent ecs.Entity, geo *Geometry, z float32) ecs.Entity {
	e := scene.NewObject(reg, parent)
	ecs.AddComponent(reg, e, geo)
	ecs.CreateComponent(reg, e, Pickable{})
	scene.SetLocal(reg, e, func(tr *scene.Transform) { tr.Pos.Z = z })
	return e
}

var down = NewRay(math32.Vec3(0, 0, 10), math32.Vec3(0, 0, -1))

func TestNewGeometryValidatesIndices(t *testing.T) {
	_, err := NewGeometry([]math32.Vector3{{}, {}, {}}, []uint32{0, 1})
	require.True(t, eris.Is(err, ErrBadIndices), err)

	_, err = NewGeometry([]math32.Vector3{{}, {}, {}}, []uint32{0, 1, 3})
	require.True(t, eris.Is(err, ErrBadIndices), err)

	g, err := NewGeometry(nil, nil)
	require.NoError(t, err)
	_, _, ok := g.raycast(down)
	require.False(t, ok)
}

func TestGeometryBounds(t *testing.T) {
	g := grid(t, 8)
	require.Equal(t, 128, g.TriangleCount())
	b := g.Bounds()
	require.InDelta(t, 0, b.Min.X, tol)
	require.InDelta(t, 8, b.Max.Y, tol)
	require.Greater(t, len(g.nodes), 1, "grid should split into a tree")
}

func TestTreeFindsEveryTriangle(t *testing.T) {
	g := grid(t, 10)
	for i := 0; i < g.TriangleCount(); i++ {
		a, b, c := g.Triangle(i)
		centroid := a.Add(b).Add(c).MulScalar(1.0 / 3)
		r := NewRay(math32.Vec3(centroid.X, centroid.Y, 5), math32.Vec3(0, 0, -1))
		dist, tri, ok := g.raycast(r)
		require.True(t, ok, "triangle %d missed", i)
		require.Equal(t, i, tri)
		require.InDelta(t, 5, dist, tol)
	}
}

func TestRayTriangleEdgeCases(t *testing.T) {
	a, b, c := math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0)

	parallel := NewRay(math32.Vec3(0, 0, 1), math32.Vec3(1, 0, 0))
	_, ok := parallel.intersectTriangle(a, b, c)
	require.False(t, ok)

	behind := NewRay(math32.Vec3(0.2, 0.2, -1), math32.Vec3(0, 0, -1))
	_, ok = behind.intersectTriangle(a, b, c)
	require.False(t, ok)

	backface := NewRay(math32.Vec3(0.2, 0.2, -1), math32.Vec3(0, 0, 1))
	dist, ok := backface.intersectTriangle(a, b, c)
	require.True(t, ok)
	require.InDelta(t, 1, dist, tol)
}

func TestRayBox(t *testing.T) {
	box := math32.B3(-1, -1, -1, 1, 1, 1)
	entry, ok := down.intersectBox(box)
	require.True(t, ok)
	require.InDelta(t, 9, entry, tol)

	inside := NewRay(math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0))
	entry, ok = inside.intersectBox(box)
	require.True(t, ok)
	require.InDelta(t, 0, entry, tol)

	miss := NewRay(math32.Vec3(5, 0, 10), math32.Vec3(0, 0, -1))
	_, ok = miss.intersectBox(box)
	require.False(t, ok)
}

func TestPickClosest(t *testing.T) {
	reg := newWorld(t)
	geo := quad(t, 0)
	far := spawn(reg, ecs.NoEntity, geo, -5)
	near := spawn(reg, ecs.NoEntity, geo, 0)
	require.Equal(t, []ecs.Entity{far, near}, ecs.OwnersOf(reg, geo))

	hit, ok := Pick(reg, down)
	require.True(t, ok)
	require.Equal(t, near, hit.Entity)
	require.InDelta(t, 10, hit.Distance, tol)
	require.InDelta(t, 0, hit.Point.Z, tol)
}

func TestPickFollowsParent(t *testing.T) {
	reg := newWorld(t)
	parent := scene.NewObject(reg, ecs.NoEntity)
	child := spawn(reg, parent, quad(t, 0), 0)

	_, ok := Pick(reg, down)
	require.True(t, ok)

	scene.SetLocal(reg, parent, func(tr *scene.Transform) { tr.Pos.X = 20 })
	_, ok = Pick(reg, down)
	require.False(t, ok, "old location should be empty after the parent moved")

	moved := NewRay(math32.Vec3(20.5, 0.5, 10), math32.Vec3(0, 0, -1))
	hit, ok := Pick(reg, moved)
	require.True(t, ok)
	require.Equal(t, child, hit.Entity)
	require.InDelta(t, 20.5, hit.Point.X, tol)
}

func TestPickDistanceIsWorldSpace(t *testing.T) {
	reg := newWorld(t)
	e := spawn(reg, ecs.NoEntity, quad(t, 1), 0)
	scene.SetLocal(reg, e, func(tr *scene.Transform) { tr.Scale = math32.Vec3(2, 2, 2) })

	hit, ok := Pick(reg, down)
	require.True(t, ok)
	require.InDelta(t, 2, hit.Point.Z, tol)
	require.InDelta(t, 8, hit.Distance, tol)
}

func TestPickSkipsIncompleteAndDisabled(t *testing.T) {
	reg := newWorld(t)
	geo := quad(t, 0)

	noGeometry := scene.NewObject(reg, ecs.NoEntity)
	ecs.CreateComponent(reg, noGeometry, Pickable{})

	noTransform := reg.AddEntity()
	ecs.AddComponent(reg, noTransform, geo)
	ecs.CreateComponent(reg, noTransform, Pickable{})

	disabled := spawn(reg, ecs.NoEntity, geo, 0)
	ecs.GetComponent[Pickable](reg, disabled).Disabled = true

	_, ok := Pick(reg, down)
	require.False(t, ok)

	ecs.GetComponent[Pickable](reg, disabled).Disabled = false
	hit, ok := Pick(reg, down)
	require.True(t, ok)
	require.Equal(t, disabled, hit.Entity)
}

func TestPickFollowsEntityWithoutHierarchy(t *testing.T) {
	reg := newWorld(t)
	e := reg.AddEntity()
	ecs.AddComponent(reg, e, scene.NewTransform())
	ecs.AddComponent(reg, e, quad(t, 0))
	ecs.CreateComponent(reg, e, Pickable{})

	scene.SetLocal(reg, e, func(tr *scene.Transform) { tr.Pos.X = 20 })

	_, ok := Pick(reg, down)
	require.False(t, ok, "old position must not be hit")

	hit, ok := Pick(reg, NewRay(math32.Vec3(20, 0, 10), math32.Vec3(0, 0, -1)))
	require.True(t, ok)
	require.Equal(t, e, hit.Entity)
	require.InDelta(t, 20, hit.Point.X, tol)
}
