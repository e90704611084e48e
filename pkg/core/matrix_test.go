package core

import (
	"errors"
	"math"
	"testing"
)

func matricesAlmostEqual(a, b Matrix4x4, tol float64) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(a[i][j]-b[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

func TestMatrix_TranslateComposeIdentity(t *testing.T) {
	m := Translate(1, 2, 3).Multiply(Translate(-1, -2, -3))
	if !matricesAlmostEqual(m, Identity(), 1e-12) {
		t.Errorf("translate/untranslate product is not identity: %v", m)
	}
}

func TestMatrix_InverseRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix4x4
	}{
		{name: "identity", m: Identity()},
		{name: "translation", m: Translate(4, -2, 7)},
		{name: "scale", m: Scale(2, 3, 0.5)},
		{name: "rotation", m: Rotate(NewVec3(1, 1, 1), 1.1)},
		{name: "composite", m: Translate(1, 2, 3).Multiply(RotateY(0.7)).Multiply(Scale(2, 2, 2))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := tt.m.Inverse()
			if err != nil {
				t.Fatalf("Inverse() error: %v", err)
			}
			if !matricesAlmostEqual(tt.m.Multiply(inv), Identity(), 1e-5) {
				t.Errorf("M * inverse(M) is not identity: %v", tt.m.Multiply(inv))
			}
		})
	}
}

func TestMatrix_SingularInverseFails(t *testing.T) {
	singular := Scale(1, 1, 0)
	if singular.IsInvertible() {
		t.Error("zero-scale matrix reported invertible")
	}
	_, err := singular.Inverse()
	if !errors.Is(err, ErrSingularMatrix) {
		t.Errorf("Inverse() error = %v, want ErrSingularMatrix", err)
	}
}

func TestMatrix_TransposeIdempotence(t *testing.T) {
	m := Translate(1, 2, 3).Multiply(RotateX(0.3))
	if m.Transpose().Transpose() != m {
		t.Error("transpose(transpose(M)) != M")
	}
}

func TestMatrix_TransformPoint(t *testing.T) {
	tests := []struct {
		name  string
		m     Matrix4x4
		point Vec3
		want  Vec3
	}{
		{name: "translate point", m: Translate(1, 2, 3), point: NewVec3(0, 0, 0), want: NewVec3(1, 2, 3)},
		{name: "scale point", m: Scale(2, 3, 4), point: NewVec3(1, 1, 1), want: NewVec3(2, 3, 4)},
		{name: "rotate z quarter turn", m: RotateZ(math.Pi / 2), point: NewVec3(1, 0, 0), want: NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.point)
			if got.Subtract(tt.want).Length() > 1e-9 {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestMatrix_TransformVectorIgnoresTranslation(t *testing.T) {
	v := Translate(10, 10, 10).TransformVector(NewVec3(0, 0, 1))
	if v.Subtract(NewVec3(0, 0, 1)).Length() > 1e-12 {
		t.Errorf("translation affected a vector: %v", v)
	}
}

func TestMatrix_TransformNormal(t *testing.T) {
	// A normal on a surface scaled non-uniformly must be transformed by
	// the inverse-transpose to stay perpendicular.
	m := Scale(2, 1, 1)
	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("Inverse() error: %v", err)
	}

	// Surface y=x has tangent (1,1,0) and normal (1,-1,0) before scaling.
	tangent := m.TransformVector(NewVec3(1, 1, 0))
	normal := inv.TransformNormal(NewVec3(1, -1, 0))

	if math.Abs(tangent.Dot(normal)) > 1e-9 {
		t.Errorf("transformed normal not perpendicular to transformed tangent: dot = %v", tangent.Dot(normal))
	}
}

func TestMatrix_RodriguesMatchesAxisRotations(t *testing.T) {
	tests := []struct {
		name string
		axis Vec3
		ref  func(float64) Matrix4x4
	}{
		{name: "x axis", axis: NewVec3(1, 0, 0), ref: RotateX},
		{name: "y axis", axis: NewVec3(0, 1, 0), ref: RotateY},
		{name: "z axis", axis: NewVec3(0, 0, 1), ref: RotateZ},
	}

	const angle = 0.83
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !matricesAlmostEqual(Rotate(tt.axis, angle), tt.ref(angle), 1e-12) {
				t.Errorf("Rotate about %v disagrees with the dedicated axis rotation", tt.axis)
			}
		})
	}
}

func TestMatrix_RotateQuaternionMatchesRodrigues(t *testing.T) {
	axis := NewVec3(1, 2, -1)
	const angle = 0.6
	q := QuaternionFromAxisAngle(axis, angle)
	if !matricesAlmostEqual(RotateQuaternion(q), Rotate(axis, angle), 1e-9) {
		t.Error("quaternion rotation matrix disagrees with Rodrigues rotation")
	}
}

func TestMatrix_LookAtBasis(t *testing.T) {
	eye := NewVec3(0, 0, 5)
	target := NewVec3(0, 0, 0)
	m := LookAt(eye, target, NewVec3(0, 1, 0))

	// Camera-space +z should map to the view direction.
	forward := m.TransformVector(NewVec3(0, 0, 1))
	want := target.Subtract(eye).Normalize()
	if forward.Subtract(want).Length() > 1e-9 {
		t.Errorf("forward = %v, want %v", forward, want)
	}

	// The camera origin should map to the eye point.
	origin := m.TransformPoint(NewVec3(0, 0, 0))
	if origin.Subtract(eye).Length() > 1e-9 {
		t.Errorf("origin = %v, want %v", origin, eye)
	}
}

func TestMatrix_ScreenSpaceCorners(t *testing.T) {
	m := ScreenSpace(640, 480)

	topLeft := m.TransformPoint(NewVec3(-1, 1, 0))
	if topLeft.Subtract(NewVec3(0, 0, 0)).Length() > 1e-9 {
		t.Errorf("NDC (-1,1) maps to %v, want raster origin", topLeft)
	}

	bottomRight := m.TransformPoint(NewVec3(1, -1, 0))
	if bottomRight.Subtract(NewVec3(640, 480, 0)).Length() > 1e-9 {
		t.Errorf("NDC (1,-1) maps to %v, want (640,480)", bottomRight)
	}
}

func TestMatrix_PerspectiveDepthRange(t *testing.T) {
	m := Perspective(Radians(60), 1, 1, 100)

	near := m.TransformPoint(NewVec3(0, 0, 1))
	if math.Abs(near.Z) > 1e-9 {
		t.Errorf("near plane maps to z=%v, want 0", near.Z)
	}

	far := m.TransformPoint(NewVec3(0, 0, 100))
	if math.Abs(far.Z-1) > 1e-9 {
		t.Errorf("far plane maps to z=%v, want 1", far.Z)
	}
}

func TestMatrix3x3_InverseRoundTrip(t *testing.T) {
	m := Matrix3x3{
		{2, 0, 1},
		{1, 3, 0},
		{0, 1, 4},
	}
	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("Inverse() error: %v", err)
	}
	product := m.Multiply(inv)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(product[i][j]-want) > 1e-9 {
				t.Fatalf("M * inverse(M) = %v, not identity", product)
			}
		}
	}
}
