package scene

import (
	"cogentcore.org/core/math32"
)

// identityMatrix is the 4x4 identity.
var identityMatrix = *math32.Identity4()

// Transform is the spatial component of an object. Pos, Quat and Scale
// describe the local pose relative to the parent; Matrix is the local matrix
// derived from them by UpdateMatrix. WorldMatrix and InverseWorld are owned by
// the Tracker and are only valid for entities it tracks.
//
// A Transform instance must not be shared between entities: the derived world
// matrix is per entity.
type Transform struct {
	Pos   math32.Vector3
	Quat  math32.Quat
	Scale math32.Vector3

	// Matrix is the local matrix: Translate(Pos) * Rotate(Quat) * Scale(Scale).
	Matrix math32.Matrix4

	// WorldMatrix is parent.WorldMatrix * Matrix, or Matrix for roots.
	WorldMatrix math32.Matrix4

	// InverseWorld is the inverse of WorldMatrix, identity if singular.
	InverseWorld math32.Matrix4
}

// NewTransform returns an identity transform.
func NewTransform() *Transform {
	t := &Transform{}
	t.Reset()
	return t
}

// Reset sets the pose to identity and recomputes the local matrix.
func (t *Transform) Reset() {
	t.Pos = math32.Vec3(0, 0, 0)
	t.Quat = math32.Quat{W: 1}
	t.Scale = math32.Vec3(1, 1, 1)
	t.Matrix = identityMatrix
	t.WorldMatrix = identityMatrix
	t.InverseWorld = identityMatrix
}

// UpdateMatrix recomputes Matrix from Pos, Quat and Scale.
func (t *Transform) UpdateMatrix() {
	t.Matrix.SetTransform(t.Pos, t.Quat, t.Scale)
}

// SetPosition sets the local position and recomputes the local matrix.
func (t *Transform) SetPosition(x, y, z float32) {
	t.Pos = math32.Vec3(x, y, z)
	t.UpdateMatrix()
}

// SetScale sets the local scale and recomputes the local matrix.
func (t *Transform) SetScale(x, y, z float32) {
	t.Scale = math32.Vec3(x, y, z)
	t.UpdateMatrix()
}

// SetAxisRotation sets the local rotation from an axis and an angle in
// degrees and recomputes the local matrix.
func (t *Transform) SetAxisRotation(x, y, z, angle float32) {
	t.Quat = math32.NewQuatAxisAngle(math32.Vec3(x, y, z), math32.DegToRad(angle))
	t.UpdateMatrix()
}

// SetEulerRotation sets the local rotation from Euler angles in degrees and
// recomputes the local matrix.
func (t *Transform) SetEulerRotation(x, y, z float32) {
	t.Quat = math32.NewQuatEuler(math32.Vec3(x, y, z).MulScalar(math32.DegToRadFactor))
	t.UpdateMatrix()
}

// SetMatrix sets the local matrix directly. Pos, Quat and Scale are left as
// they are and will overwrite the matrix on the next UpdateMatrix.
func (t *Transform) SetMatrix(m math32.Matrix4) {
	t.Matrix = m
}

// WorldPosition returns the world-space origin of the object.
func (t *Transform) WorldPosition() math32.Vector3 {
	return math32.Vec3(t.WorldMatrix[12], t.WorldMatrix[13], t.WorldMatrix[14])
}

// LocalToWorld converts a local-space point to world space.
func (t *Transform) LocalToWorld(p math32.Vector3) math32.Vector3 {
	return p.MulMatrix4AsVector4(&t.WorldMatrix, 1)
}

// WorldToLocal converts a world-space point to this object's local space.
func (t *Transform) WorldToLocal(p math32.Vector3) math32.Vector3 {
	return p.MulMatrix4AsVector4(&t.InverseWorld, 1)
}

// setWorld stores the world matrix and its inverse.
func (t *Transform) setWorld(world math32.Matrix4) {
	t.WorldMatrix = world
	t.InverseWorld = invertMatrix(world)
}

// multiplyMatrix returns p * c.
func multiplyMatrix(p, c *math32.Matrix4) math32.Matrix4 {
	var out math32.Matrix4
	out.MulMatrices(p, c)
	return out
}

// invertMatrix returns the inverse of m, or the identity if m is singular.
func invertMatrix(m math32.Matrix4) math32.Matrix4 {
	inv, err := m.Inverse()
	if err != nil || inv == nil {
		return identityMatrix
	}
	return *inv
}

// worldFrom computes a child's world matrix from its parent's transform,
// which may be nil when the parent is missing or has no Transform.
func worldFrom(parent, child *Transform) math32.Matrix4 {
	if parent == nil {
		return child.Matrix
	}
	return multiplyMatrix(&parent.WorldMatrix, &child.Matrix)
}
