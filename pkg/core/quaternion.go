package core

import "math"

// Quaternion represents a rotation as a vector part and a scalar part.
type Quaternion struct {
	V Vec3
	W float64
}

// QuaternionIdentity returns the identity rotation
func QuaternionIdentity() Quaternion {
	return Quaternion{W: 1}
}

// QuaternionFromAxisAngle creates a quaternion rotating about axis by an
// angle in radians. The axis is normalized here.
func QuaternionFromAxisAngle(axis Vec3, radians float64) Quaternion {
	half := radians / 2
	return Quaternion{
		V: axis.Normalize().Multiply(math.Sin(half)),
		W: math.Cos(half),
	}
}

// Multiply composes two rotations. Quaternion multiplication is not
// commutative: q.Multiply(p) rotates by p first, then q.
func (q Quaternion) Multiply(p Quaternion) Quaternion {
	return Quaternion{
		V: q.V.Cross(p.V).Add(p.V.Multiply(q.W)).Add(q.V.Multiply(p.W)),
		W: q.W*p.W - q.V.Dot(p.V),
	}
}

// Normalize returns a unit quaternion
func (q Quaternion) Normalize() Quaternion {
	length := math.Sqrt(q.V.LengthSquared() + q.W*q.W)
	if length == 0 {
		return QuaternionIdentity()
	}
	return Quaternion{V: q.V.Multiply(1 / length), W: q.W / length}
}

// Rotate applies the rotation to a vector:
// v + 2w*(q_v × v) + 2*q_v × (q_v × v)
func (q Quaternion) Rotate(v Vec3) Vec3 {
	cross := q.V.Cross(v)
	return v.Add(cross.Multiply(2 * q.W)).Add(q.V.Multiply(2).Cross(cross))
}

// RotateQuaternion converts a unit quaternion to a rotation matrix.
func RotateQuaternion(q Quaternion) Matrix4x4 {
	x, y, z, w := q.V.X, q.V.Y, q.V.Z, q.W
	return Matrix4x4{
		{1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y), 0},
		{2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x), 0},
		{2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y), 0},
		{0, 0, 0, 1},
	}
}
