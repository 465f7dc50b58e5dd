package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaneFromPoints(t *testing.T) {
	p := NewPlane3FromPoints(NewVec3(0, 0, 4), NewVec3(1, 0, 4), NewVec3(0, 1, 4))
	assert.True(t, p.Compare(NewPlane3(NewVec3(0, 0, 1), 4), standardTol))
	assert.InDelta(t, 2, p.DistanceToPoint(NewVec3(5, 5, 6)), 1e-6)
	assert.InDelta(t, -4, p.Reversed().Dist, 0)

	scaled := NewPlane3(NewVec3(0, 2, 0), 6).Normalize()
	assert.True(t, scaled.Compare(NewPlane3(NewVec3(0, 1, 0), 3), standardTol))
}

func TestMat4TransformPlane(t *testing.T) {
	plane := NewPlane3(NewVec3(0, 0, 1), 2)

	transformed := NewMat4Identity().TransformPlane(plane)
	assert.True(t, transformed.Compare(NewPlane3(NewVec3(0, 0, 1), 2), 0), "got %v", transformed)

	// dist - t·n for a pure translation
	transformed = NewMat4Translation(NewVec3(0, 0, 5)).TransformPlane(plane)
	assert.True(t, transformed.Compare(NewPlane3(NewVec3(0, 0, 1), -3), standardTol), "got %v", transformed)

	// the normal follows the rotation, the distance is preserved
	transformed = NewMat4RotationAboutXDegrees(90).TransformPlane(plane)
	assert.True(t, transformed.Compare(NewPlane3(NewVec3(0, -1, 0), 2), standardTol), "got %v", transformed)
}

func TestMat4InverseTransformPlane(t *testing.T) {
	plane := NewPlane3(NewVec3(1, 2, 3), 4)
	assert.Equal(t, plane, NewMat4Identity().InverseTransformPlane(plane))

	m := NewMat4ByColumns(
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	)
	// each component is a column dotted with (normal, dist)
	expected := NewPlane3(NewVec3(1+4+9+16, 5+12+21+32, 9+20+33+48), 13+28+45+64)
	assert.Equal(t, expected, m.InverseTransformPlane(plane))
}
