package math

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
)

const standardTol = float32(1.0e-5)

func assertMat4Tol(t *testing.T, expected, actual Mat4, tol float32) {
	t.Helper()
	assert.InDeltaSlice(t, expected.Data[:], actual.Data[:], float64(tol))
}

func assertVec3Tol(t *testing.T, expected, actual Vec3, tol float32) {
	t.Helper()
	assert.True(t, expected.Compare(actual, tol), "expected %v, got %v", expected, actual)
}

func allFinite(m Mat4) bool {
	for _, f := range m.Data {
		if math32.IsNaN(f) || math32.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func toMgl(m Mat4) mgl32.Mat4 {
	return mgl32.Mat4(m.Data)
}

// randomAffine builds an invertible affine matrix from a rotation, a positive
// scale and a translation.
func randomAffine(r *rand.Rand) Mat4 {
	euler := NewVec3(r.Float32()*360-180, r.Float32()*360-180, r.Float32()*360-180)
	scale := NewVec3(0.5+r.Float32()*1.5, 0.5+r.Float32()*1.5, 0.5+r.Float32()*1.5)
	translation := NewVec3(r.Float32()*20-10, r.Float32()*20-10, r.Float32()*20-10)

	m := NewMat4Translation(translation)
	m.MultiplyBy(NewMat4RotationForEulerDegrees(EulerOrder(r.Intn(6)), euler))
	m.ScaleBy(scale)
	return m
}

func TestMat4Constructors(t *testing.T) {
	identity := NewMat4Identity()
	assert.Equal(t, [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}, identity.Data)
	assert.True(t, identity.IsAffine())

	byRows := NewMat4ByRows(
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	)
	byColumns := NewMat4ByColumns(
		1, 5, 9, 13,
		2, 6, 10, 14,
		3, 7, 11, 15,
		4, 8, 12, 16,
	)
	assert.Equal(t, byColumns, byRows)
	assert.Equal(t, float32(4), byRows.TX())
	assert.Equal(t, float32(5), byRows.XY())

	translation := NewMat4Translation(NewVec3(1, 2, 3))
	assert.Equal(t, NewVec3(1, 2, 3), translation.TransformPoint(NewVec3Zero()))
	assert.Equal(t, NewVec3(1, 2, 3), translation.Translation())
	assert.Equal(t, NewVec3(1, 0, 0), translation.TransformDirection(NewVec3(1, 0, 0)))

	scale := NewMat4Scale(NewVec3(2, 3, 4))
	assert.Equal(t, NewVec3(2, 3, 4), scale.TransformPoint(NewVec3One()))
}

func TestMat4MulMatchesReference(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		a := randomAffine(r)
		b := randomAffine(r)
		expected := toMgl(a).Mul4(toMgl(b))
		assertMat4Tol(t, Mat4{Data: expected}, a.Mul(b), 1e-2)
	}

	// translation then rotation: the right hand matrix is applied first
	m := NewMat4Translation(NewVec3(1, 1, 0)).Mul(NewMat4RotationAboutZDegrees(90)).Mul(NewMat4Scale(NewVec3(2, 2, 2)))
	assertVec3Tol(t, NewVec3(1, 3, 0), m.TransformPoint(NewVec3(1, 0, 0)), standardTol)
}

func TestMat4InPlaceOperations(t *testing.T) {
	base := NewMat4RotationAboutYDegrees(30)

	m := base
	m.TranslateBy(NewVec3(4, 5, 6))
	assertMat4Tol(t, base.Mul(NewMat4Translation(NewVec3(4, 5, 6))), m, standardTol)

	m = base
	m.ScaleBy(NewVec3(2, 2, 2))
	assertMat4Tol(t, base.Mul(NewMat4Scale(NewVec3(2, 2, 2))), m, standardTol)

	other := NewMat4Translation(NewVec3(1, 0, 0))
	m = base
	m.MultiplyBy(other)
	assert.Equal(t, base.Mul(other), m)

	m = base
	m.PremultiplyBy(other)
	assert.Equal(t, other.Mul(base), m)
}

func TestMat4AxisRotations(t *testing.T) {
	vx := NewVec3(1, 0, 0)
	vy := NewVec3(0, 1, 0)
	vz := NewVec3(0, 0, 1)

	assertVec3Tol(t, vy, NewMat4RotationAboutZDegrees(90).TransformPoint(vx), standardTol)
	assertVec3Tol(t, vz, NewMat4RotationAboutXDegrees(90).TransformPoint(vy), standardTol)
	assertVec3Tol(t, vx, NewMat4RotationAboutYDegrees(90).TransformPoint(vz), standardTol)

	for _, angle := range []float32{0.1, 0.7, 1.3, -2.2, 3.0} {
		assertMat4Tol(t, NewMat4Identity(), NewMat4RotationAboutX(angle).Mul(NewMat4RotationAboutX(-angle)), standardTol)
		assertMat4Tol(t, NewMat4Identity(), NewMat4RotationAboutY(angle).Mul(NewMat4RotationAboutY(-angle)), standardTol)
		assertMat4Tol(t, NewMat4Identity(), NewMat4RotationAboutZ(angle).Mul(NewMat4RotationAboutZ(-angle)), standardTol)

		assertMat4Tol(t, NewMat4Identity(),
			NewMat4Rotation(vz, angle).Mul(NewMat4Rotation(vz, -angle)), standardTol)

		// the axis-angle form turns the opposite way to the elemental rotations
		assertMat4Tol(t, NewMat4RotationAboutZ(-angle), NewMat4Rotation(vz, angle), standardTol)
		assertMat4Tol(t, NewMat4RotationAboutX(-angle), NewMat4Rotation(vx, angle), standardTol)
		assertMat4Tol(t, NewMat4RotationAboutY(-angle), NewMat4Rotation(vy, angle), standardTol)
	}

	assertMat4Tol(t, NewMat4RotationAboutX(0.5), NewMat4RotationAboutXForSinCos(ksin(0.5), kcos(0.5)), standardTol)
}

func TestMat4RotationBetween(t *testing.T) {
	from := NewVec3(1, 0, 0)
	to := NewVec3(0, 1, 0)
	assertVec3Tol(t, to, NewMat4RotationBetween(from, to).TransformPoint(from), standardTol)

	from = NewVec3(1, 1, 0).Normalize()
	to = NewVec3(0, 0, 1)
	assertVec3Tol(t, to, NewMat4RotationBetween(from, to).TransformPoint(from), standardTol)
}

func TestMat4RotationBetweenParallel(t *testing.T) {
	from := NewVec3(1, 0, 0)
	for _, to := range []Vec3{NewVec3(2, 0, 0), NewVec3(-1, 0, 0)} {
		var m Mat4
		assert.NotPanics(t, func() { m = NewMat4RotationBetween(from, to) })
		p := m.TransformPoint(from)
		assert.True(t, math32.IsNaN(p.X) && math32.IsNaN(p.Y) && math32.IsNaN(p.Z), "expected NaN, got %v", p)
	}
}

func TestMat4RotationObliqueAxes(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	axes := []Vec3{NewVec3(1, 2, 3).Normalize()}
	for i := 0; i < 5; i++ {
		axes = append(axes, NewVec3(r.Float32()*2-1, r.Float32()*2-1, r.Float32()*2-1).Normalize())
	}
	for _, axis := range axes {
		for _, angle := range []float32{1.1, -0.4, 2.9} {
			rotation := NewMat4Rotation(axis, angle)
			assertMat4Tol(t, NewMat4Identity(), rotation.Mul(NewMat4Rotation(axis, -angle)), standardTol)
			// the axis is left in place
			assertVec3Tol(t, axis, rotation.TransformDirection(axis), standardTol)
		}
	}
}

func TestMat4EulerZeroIsIdentity(t *testing.T) {
	for order := EulerOrderXYZ; order <= EulerOrderZYX; order++ {
		assertMat4Tol(t, NewMat4Identity(), NewMat4RotationForEuler(order, NewVec3Zero()), 0)
		assertMat4Tol(t, NewMat4Identity(), NewMat4RotationForEulerDegrees(order, NewVec3Zero()), 0)
	}
}

func TestMat4EulerMatchesAxisProducts(t *testing.T) {
	euler := NewVec3(30, -45, 60)
	rx := NewMat4RotationAboutXDegrees(euler.X)
	ry := NewMat4RotationAboutYDegrees(euler.Y)
	rz := NewMat4RotationAboutZDegrees(euler.Z)

	tests := []struct {
		order    EulerOrder
		single   func(Vec3) Mat4
		expected Mat4
	}{
		{EulerOrderXYZ, NewMat4RotationForEulerXYZDegrees, rz.Mul(ry).Mul(rx)},
		{EulerOrderYZX, NewMat4RotationForEulerYZXDegrees, rx.Mul(rz).Mul(ry)},
		{EulerOrderXZY, NewMat4RotationForEulerXZYDegrees, ry.Mul(rz).Mul(rx)},
		{EulerOrderYXZ, NewMat4RotationForEulerYXZDegrees, rz.Mul(rx).Mul(ry)},
		{EulerOrderZXY, NewMat4RotationForEulerZXYDegrees, ry.Mul(rx).Mul(rz)},
		{EulerOrderZYX, NewMat4RotationForEulerZYXDegrees, rx.Mul(ry).Mul(rz)},
	}
	for _, tt := range tests {
		t.Run(tt.order.String(), func(t *testing.T) {
			assertMat4Tol(t, tt.expected, tt.single(euler), standardTol)
			assertMat4Tol(t, tt.expected, NewMat4RotationForEulerDegrees(tt.order, euler), standardTol)
			assertMat4Tol(t, tt.expected, NewMat4RotationForEuler(tt.order, euler.DegToRad()), standardTol)
			assert.Equal(t, RightHanded, tt.expected.Handedness())
		})
	}
}

func TestMat4Transpose(t *testing.T) {
	m := NewMat4ByColumns(
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	)
	transposed := m.Transposed()
	assert.Equal(t, toMgl(m).Transpose(), mgl32.Mat4(transposed.Data))

	inPlace := m
	inPlace.Transpose()
	assert.Equal(t, transposed, inPlace)

	inPlace.Transpose()
	assert.Equal(t, m, inPlace)
}

func TestMat4AffineInverse(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		m := randomAffine(r)
		inverse := m.AffineInverse()
		assert.True(t, inverse.IsAffine())
		assertMat4Tol(t, NewMat4Identity(), m.Mul(inverse), 1e-4)
		assertMat4Tol(t, NewMat4Identity(), inverse.Mul(m), 1e-4)
		assertMat4Tol(t, Mat4{Data: toMgl(m).Inv()}, inverse, 1e-4)

		// the general inverse agrees on affine input
		assertMat4Tol(t, inverse, m.FullInverse(), 1e-4)
	}
}

func TestMat4FullInverse(t *testing.T) {
	perspective := NewMat4Perspective(DegToRad(90), 4.0/3.0, 1, 100)
	assertMat4Tol(t, Mat4{Data: mgl32.Perspective(DegToRad(90), 4.0/3.0, 1, 100)}, perspective, 1e-5)
	assert.False(t, perspective.IsAffine())

	inverse := perspective.FullInverse()
	assertMat4Tol(t, NewMat4Identity(), perspective.Mul(inverse), 1e-4)
	assertMat4Tol(t, Mat4{Data: toMgl(perspective).Inv()}, inverse, 1e-4)

	translation := NewMat4Translation(NewVec3(3, -2, 7))
	assertMat4Tol(t, NewMat4Translation(NewVec3(-3, 2, -7)), translation.FullInverse(), standardTol)

	diagonal := NewMat4Scale(NewVec3(2, 4, 8))
	assertMat4Tol(t, NewMat4Scale(NewVec3(0.5, 0.25, 0.125)), diagonal.FullInverse(), standardTol)
}

func TestMat4InverseOfSingular(t *testing.T) {
	singular := NewMat4Scale(NewVec3(1, 0, 1))

	var affine, full Mat4
	assert.NotPanics(t, func() { affine = singular.AffineInverse() })
	assert.NotPanics(t, func() { full = singular.FullInverse() })
	assert.False(t, allFinite(affine), "%v", affine)
	assert.False(t, allFinite(full), "%v", full)
}

func TestMat4Projections(t *testing.T) {
	ortho := NewMat4Orthographic(-10, 10, -5, 5, 0.1, 1000)
	assertMat4Tol(t, Mat4{Data: mgl32.Ortho(-10, 10, -5, 5, 0.1, 1000)}, ortho, 1e-5)

	eye := NewVec3(3, 4, 5)
	lookAt := NewMat4LookAt(eye, NewVec3Zero(), NewVec3Up())
	expected := mgl32.LookAtV(mgl32.Vec3{3, 4, 5}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	assertMat4Tol(t, Mat4{Data: expected}, lookAt, 1e-5)
	assertVec3Tol(t, NewVec3Zero(), lookAt.TransformPoint(eye), 1e-5)
}

func TestMat4Handedness(t *testing.T) {
	assert.Equal(t, RightHanded, NewMat4Identity().Handedness())
	assert.Equal(t, LeftHanded, NewMat4Scale(NewVec3(-1, 1, 1)).Handedness())
	assert.Equal(t, RightHanded, NewMat4Scale(NewVec3(-1, -1, 1)).Handedness())
}

func TestMat4Equality(t *testing.T) {
	a := NewMat4Translation(NewVec3(1, 2, 3))
	b := a
	b.Data[3] = 5
	assert.True(t, a.IsAffineEqual(b))
	assert.False(t, a.Equal(b))

	b = a
	b.Data[13] += 0.001
	assert.False(t, a.IsAffineEqual(b))
	assert.True(t, a.Compare(b, 0.01))
	assert.False(t, a.Compare(b, 0.0001))
}

func TestMat4TransformVec4(t *testing.T) {
	m := NewMat4Translation(NewVec3(1, 2, 3))
	assert.Equal(t, NewVec4(1, 2, 3, 1), m.TransformVec4(NewVec4(0, 0, 0, 1)))
	assert.Equal(t, NewVec4(1, 0, 0, 0), m.TransformVec4(NewVec4(1, 0, 0, 0)))
}
