package picking

import (
	"slices"

	"cogentcore.org/core/math32"
	"github.com/rotisserie/eris"
)

// leafSize is the most triangles a tree leaf holds.
const leafSize = 4

// ErrBadIndices is returned by NewGeometry for index buffers that are not a
// whole number of in-range triangles.
var ErrBadIndices = eris.New("indices must describe whole triangles within positions")

// Geometry is a triangle mesh component. It is immutable once built and is
// meant to be shared by every entity drawing the same mesh.
type Geometry struct {
	Positions []math32.Vector3
	Indices   []uint32

	nodes []bvhNode
	// order holds triangle numbers, leaves reference contiguous runs of it.
	order []int
}

type bvhNode struct {
	box         math32.Box3
	left, right int // child node indices, 0 for leaves
	start, n    int // run of order covered by a leaf
}

func (n *bvhNode) leaf() bool { return n.left == 0 }

// NewGeometry builds the bounding-volume tree for the mesh.
func NewGeometry(positions []math32.Vector3, indices []uint32) (*Geometry, error) {
	if len(indices)%3 != 0 {
		return nil, eris.Wrapf(ErrBadIndices, "%d indices", len(indices))
	}
	for _, i := range indices {
		if int(i) >= len(positions) {
			return nil, eris.Wrapf(ErrBadIndices, "index %d with %d positions", i, len(positions))
		}
	}
	g := &Geometry{
		Positions: positions,
		Indices:   indices,
		order:     make([]int, len(indices)/3),
	}
	for i := range g.order {
		g.order[i] = i
	}
	if len(g.order) > 0 {
		g.build(0, len(g.order))
	}
	return g, nil
}

// TriangleCount returns the number of triangles.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// Bounds returns the local-space bounding box of the mesh.
func (g *Geometry) Bounds() math32.Box3 {
	if len(g.nodes) == 0 {
		return math32.B3Empty()
	}
	return g.nodes[0].box
}

// Triangle returns the vertices of triangle i.
func (g *Geometry) Triangle(i int) (a, b, c math32.Vector3) {
	return g.Positions[g.Indices[3*i]], g.Positions[g.Indices[3*i+1]], g.Positions[g.Indices[3*i+2]]
}

func (g *Geometry) triangleBox(i int) math32.Box3 {
	a, b, c := g.Triangle(i)
	box := math32.B3Empty()
	box.ExpandByPoint(a)
	box.ExpandByPoint(b)
	box.ExpandByPoint(c)
	return box
}

// build appends the node covering order[start:end] and returns its index.
// Runs are split at the median centroid along the longest axis.
func (g *Geometry) build(start, end int) int {
	box := math32.B3Empty()
	centroids := math32.B3Empty()
	for _, tri := range g.order[start:end] {
		tb := g.triangleBox(tri)
		box.ExpandByBox(tb)
		centroids.ExpandByPoint(tb.Center())
	}

	idx := len(g.nodes)
	g.nodes = append(g.nodes, bvhNode{box: box, start: start, n: end - start})
	if end-start <= leafSize {
		return idx
	}

	size := centroids.Size()
	axis := 0
	if size.Y > size.X {
		axis = 1
	}
	if size.Z > component(size, axis) {
		axis = 2
	}
	slices.SortFunc(g.order[start:end], func(a, b int) int {
		ca := component(g.triangleBox(a).Center(), axis)
		cb := component(g.triangleBox(b).Center(), axis)
		switch {
		case ca < cb:
			return -1
		case ca > cb:
			return 1
		default:
			return a - b
		}
	})

	mid := (start + end) / 2
	left := g.build(start, mid)
	right := g.build(mid, end)
	g.nodes[idx].left, g.nodes[idx].right = left, right
	g.nodes[idx].n = 0
	return idx
}

// raycast returns the closest triangle hit along r in local space.
func (g *Geometry) raycast(r Ray) (t float32, tri int, ok bool) {
	if len(g.nodes) == 0 {
		return 0, 0, false
	}
	best := math32.Infinity
	tri = -1
	stack := []int{0}
	for len(stack) > 0 {
		ni := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &g.nodes[ni]

		entry, hit := r.intersectBox(n.box)
		if !hit || entry > best {
			continue
		}
		if !n.leaf() {
			stack = append(stack, n.left, n.right)
			continue
		}
		for _, i := range g.order[n.start : n.start+n.n] {
			a, b, c := g.Triangle(i)
			if ht, ok := r.intersectTriangle(a, b, c); ok && ht < best {
				best, tri = ht, i
			}
		}
	}
	if tri < 0 {
		return 0, 0, false
	}
	return best, tri, true
}
