package core

import (
	"errors"
	"math"
)

// ErrSingularMatrix is returned when inverting a matrix whose determinant
// magnitude falls below the invertibility floor.
var ErrSingularMatrix = errors.New("matrix is not invertible")

// MinDeterminant is the smallest determinant magnitude considered invertible.
const MinDeterminant = 1e-12

// Matrix4x4 is a row-major 4x4 transform matrix using the column-vector
// convention: Multiply(A, B) applied to a point means "B first, then A".
// Matrices are value types; all composition produces new values.
type Matrix4x4 [4][4]float64

// Identity returns the 4x4 identity matrix
func Identity() Matrix4x4 {
	return Matrix4x4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Multiply returns the matrix product m * other
func (m Matrix4x4) Multiply(other Matrix4x4) Matrix4x4 {
	var result Matrix4x4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			result[i][j] = m[i][0]*other[0][j] +
				m[i][1]*other[1][j] +
				m[i][2]*other[2][j] +
				m[i][3]*other[3][j]
		}
	}
	return result
}

// Transpose returns the matrix with rows and columns swapped. This only
// permutes elements, so Transpose(Transpose(m)) == m exactly.
func (m Matrix4x4) Transpose() Matrix4x4 {
	var result Matrix4x4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			result[i][j] = m[j][i]
		}
	}
	return result
}

// Determinant computes the determinant by cofactor expansion along the
// first row.
func (m Matrix4x4) Determinant() float64 {
	var det float64
	sign := 1.0
	for j := 0; j < 4; j++ {
		det += sign * m[0][j] * m.minor(0, j).Determinant()
		sign = -sign
	}
	return det
}

// minor returns the 3x3 matrix obtained by deleting row i and column j
func (m Matrix4x4) minor(i, j int) Matrix3x3 {
	var sub Matrix3x3
	row := 0
	for r := 0; r < 4; r++ {
		if r == i {
			continue
		}
		col := 0
		for c := 0; c < 4; c++ {
			if c == j {
				continue
			}
			sub[row][col] = m[r][c]
			col++
		}
		row++
	}
	return sub
}

// IsInvertible reports whether the determinant magnitude is at least
// MinDeterminant.
func (m Matrix4x4) IsInvertible() bool {
	return math.Abs(m.Determinant()) >= MinDeterminant
}

// Inverse computes the matrix inverse via the adjugate. It returns
// ErrSingularMatrix when the determinant magnitude is below MinDeterminant.
func (m Matrix4x4) Inverse() (Matrix4x4, error) {
	det := m.Determinant()
	if math.Abs(det) < MinDeterminant {
		return Matrix4x4{}, ErrSingularMatrix
	}

	invDet := 1.0 / det
	var result Matrix4x4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sign := 1.0
			if (i+j)%2 == 1 {
				sign = -1.0
			}
			// Adjugate: transpose of the cofactor matrix.
			result[j][i] = sign * m.minor(i, j).Determinant() * invDet
		}
	}
	return result, nil
}

// TransformPoint applies the matrix to an affine point, including the
// perspective divide when the resulting w is not 1.
func (m Matrix4x4) TransformPoint(p Vec3) Vec3 {
	x := m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3]
	y := m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3]
	z := m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3]
	w := m[3][0]*p.X + m[3][1]*p.Y + m[3][2]*p.Z + m[3][3]
	if w == 1 || w == 0 {
		return Vec3{x, y, z}
	}
	return Vec3{x / w, y / w, z / w}
}

// TransformVector applies the linear part of the matrix to a direction,
// ignoring translation.
func (m Matrix4x4) TransformVector(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// TransformNormal applies the transpose of the matrix's linear part.
// Pass the inverse of the object-to-world matrix so the normal is
// transformed by the inverse-transpose, as normals require.
func (m Matrix4x4) TransformNormal(n Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*n.X + m[1][0]*n.Y + m[2][0]*n.Z,
		Y: m[0][1]*n.X + m[1][1]*n.Y + m[2][1]*n.Z,
		Z: m[0][2]*n.X + m[1][2]*n.Y + m[2][2]*n.Z,
	}
}

// TransformRay applies the matrix to a ray's origin and direction. The
// direction is not renormalized, so hit parameters found in the
// transformed space remain valid in the original space.
func (m Matrix4x4) TransformRay(r Ray) Ray {
	return Ray{
		Origin:    m.TransformPoint(r.Origin),
		Direction: m.TransformVector(r.Direction),
	}
}

// Translate returns a translation matrix
func Translate(x, y, z float64) Matrix4x4 {
	return Matrix4x4{
		{1, 0, 0, x},
		{0, 1, 0, y},
		{0, 0, 1, z},
		{0, 0, 0, 1},
	}
}

// Scale returns a scaling matrix
func Scale(x, y, z float64) Matrix4x4 {
	return Matrix4x4{
		{x, 0, 0, 0},
		{0, y, 0, 0},
		{0, 0, z, 0},
		{0, 0, 0, 1},
	}
}

// RotateX returns a rotation about the x axis by an angle in radians
func RotateX(radians float64) Matrix4x4 {
	s, c := math.Sin(radians), math.Cos(radians)
	return Matrix4x4{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateY returns a rotation about the y axis by an angle in radians
func RotateY(radians float64) Matrix4x4 {
	s, c := math.Sin(radians), math.Cos(radians)
	return Matrix4x4{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateZ returns a rotation about the z axis by an angle in radians
func RotateZ(radians float64) Matrix4x4 {
	s, c := math.Sin(radians), math.Cos(radians)
	return Matrix4x4{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Rotate returns a rotation about an arbitrary axis by an angle in
// radians, via Rodrigues' rotation formula. The axis is normalized here.
func Rotate(axis Vec3, radians float64) Matrix4x4 {
	a := axis.Normalize()
	s, c := math.Sin(radians), math.Cos(radians)
	t := 1 - c
	return Matrix4x4{
		{t*a.X*a.X + c, t*a.X*a.Y - s*a.Z, t*a.X*a.Z + s*a.Y, 0},
		{t*a.X*a.Y + s*a.Z, t*a.Y*a.Y + c, t*a.Y*a.Z - s*a.X, 0},
		{t*a.X*a.Z - s*a.Y, t*a.Y*a.Z + s*a.X, t*a.Z*a.Z + c, 0},
		{0, 0, 0, 1},
	}
}

// RotateDegrees is the degree-based convenience overload of Rotate.
func RotateDegrees(axis Vec3, degrees float64) Matrix4x4 {
	return Rotate(axis, Radians(degrees))
}

// LookAt builds a camera-to-world matrix for a camera at eye facing
// target. The camera's +z axis points at the target. The up vector must
// not be parallel to the view direction; that degenerate case is the
// caller's responsibility.
func LookAt(eye, target, up Vec3) Matrix4x4 {
	dir := target.Subtract(eye).Normalize()
	right := up.Normalize().Cross(dir).Normalize()
	newUp := dir.Cross(right)
	return Matrix4x4{
		{right.X, newUp.X, dir.X, eye.X},
		{right.Y, newUp.Y, dir.Y, eye.Y},
		{right.Z, newUp.Z, dir.Z, eye.Z},
		{0, 0, 0, 1},
	}
}

// Perspective returns a projective transform with the given vertical
// field of view in radians, mapping the view frustum between zNear and
// zFar into clip space.
func Perspective(fovRadians, aspect, zNear, zFar float64) Matrix4x4 {
	f := 1 / math.Tan(fovRadians/2)
	return Matrix4x4{
		{f / aspect, 0, 0, 0},
		{0, f, 0, 0},
		{0, 0, zFar / (zFar - zNear), -zFar * zNear / (zFar - zNear)},
		{0, 0, 1, 0},
	}
}

// ScreenSpace maps normalized device coordinates in [-1,1]² to raster
// coordinates with y growing downward.
func ScreenSpace(width, height int) Matrix4x4 {
	w, h := float64(width), float64(height)
	return Matrix4x4{
		{w / 2, 0, 0, w / 2},
		{0, -h / 2, 0, h / 2},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Matrix3x3 is a row-major 3x3 matrix, used for the linear part of affine
// transforms and colorspace conversion.
type Matrix3x3 [3][3]float64

// Identity3 returns the 3x3 identity matrix
func Identity3() Matrix3x3 {
	return Matrix3x3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// Determinant computes the 3x3 determinant
func (m Matrix3x3) Determinant() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Transpose returns the matrix with rows and columns swapped
func (m Matrix3x3) Transpose() Matrix3x3 {
	var result Matrix3x3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			result[i][j] = m[j][i]
		}
	}
	return result
}

// Multiply returns the matrix product m * other
func (m Matrix3x3) Multiply(other Matrix3x3) Matrix3x3 {
	var result Matrix3x3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			result[i][j] = m[i][0]*other[0][j] + m[i][1]*other[1][j] + m[i][2]*other[2][j]
		}
	}
	return result
}

// TransformVector applies the matrix to a vector
func (m Matrix3x3) TransformVector(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Inverse computes the 3x3 inverse via the adjugate. It returns
// ErrSingularMatrix when the determinant magnitude is below MinDeterminant.
func (m Matrix3x3) Inverse() (Matrix3x3, error) {
	det := m.Determinant()
	if math.Abs(det) < MinDeterminant {
		return Matrix3x3{}, ErrSingularMatrix
	}
	invDet := 1.0 / det
	return Matrix3x3{
		{
			(m[1][1]*m[2][2] - m[1][2]*m[2][1]) * invDet,
			(m[0][2]*m[2][1] - m[0][1]*m[2][2]) * invDet,
			(m[0][1]*m[1][2] - m[0][2]*m[1][1]) * invDet,
		},
		{
			(m[1][2]*m[2][0] - m[1][0]*m[2][2]) * invDet,
			(m[0][0]*m[2][2] - m[0][2]*m[2][0]) * invDet,
			(m[0][2]*m[1][0] - m[0][0]*m[1][2]) * invDet,
		},
		{
			(m[1][0]*m[2][1] - m[1][1]*m[2][0]) * invDet,
			(m[0][1]*m[2][0] - m[0][0]*m[2][1]) * invDet,
			(m[0][0]*m[1][1] - m[0][1]*m[1][0]) * invDet,
		},
	}, nil
}
