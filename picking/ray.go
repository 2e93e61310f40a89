package picking

import (
	"cogentcore.org/core/math32"
)

// Ray is a half line starting at Origin and running along Dir.
type Ray struct {
	Origin math32.Vector3
	Dir    math32.Vector3
}

// NewRay returns a ray with a normalized direction.
func NewRay(origin, dir math32.Vector3) Ray {
	return Ray{Origin: origin, Dir: dir.Normal()}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) math32.Vector3 {
	return r.Origin.Add(r.Dir.MulScalar(t))
}

// Transform maps the ray through m. Dir is not renormalized, so parameters
// along the result match parameters along r.
func (r Ray) Transform(m *math32.Matrix4) Ray {
	return Ray{
		Origin: r.Origin.MulMatrix4AsVector4(m, 1),
		Dir:    r.Dir.MulMatrix4AsVector4(m, 0),
	}
}

// intersectBox runs the slab test and returns the entry parameter. A ray
// starting inside the box enters at 0.
func (r Ray) intersectBox(b math32.Box3) (float32, bool) {
	tmin, tmax := float32(0), math32.Infinity
	for axis := 0; axis < 3; axis++ {
		o, d := component(r.Origin, axis), component(r.Dir, axis)
		lo, hi := component(b.Min, axis), component(b.Max, axis)
		if d == 0 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		inv := 1 / d
		t0, t1 := (lo-o)*inv, (hi-o)*inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tmin = math32.Max(tmin, t0)
		tmax = math32.Min(tmax, t1)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

// intersectTriangle is the Möller-Trumbore test. Both faces count as hits.
func (r Ray) intersectTriangle(a, b, c math32.Vector3) (float32, bool) {
	const eps = 1e-7
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if math32.Abs(det) < eps {
		return 0, false
	}
	inv := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

func component(v math32.Vector3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
