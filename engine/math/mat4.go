package math

/**
 * @brief Creates and returns an identity matrix:
 *
 * {
 *   {1, 0, 0, 0},
 *   {0, 1, 0, 0},
 *   {0, 0, 1, 0},
 *   {0, 0, 0, 1}
 * }
 *
 * @return A new identity matrix
 */
func NewMat4Identity() Mat4 {
	out_matrix := Mat4{}
	out_matrix.Data[0] = 1.0
	out_matrix.Data[5] = 1.0
	out_matrix.Data[10] = 1.0
	out_matrix.Data[15] = 1.0
	return out_matrix
}

/**
 * @brief Builds a matrix from 16 values given column by column, so the first
 * four values form the x column. This is the storage order.
 */
func NewMat4ByColumns(xx, xy, xz, xw, yx, yy, yz, yw, zx, zy, zz, zw, tx, ty, tz, tw float32) Mat4 {
	return Mat4{Data: [16]float32{
		xx, xy, xz, xw,
		yx, yy, yz, yw,
		zx, zy, zz, zw,
		tx, ty, tz, tw,
	}}
}

/**
 * @brief Builds a matrix from 16 values given row by row, the way the matrix
 * is written on paper.
 */
func NewMat4ByRows(xx, yx, zx, tx, xy, yy, zy, ty, xz, yz, zz, tz, xw, yw, zw, tw float32) Mat4 {
	return NewMat4ByColumns(
		xx, xy, xz, xw,
		yx, yy, yz, yw,
		zx, zy, zz, zw,
		tx, ty, tz, tw,
	)
}

func (mt Mat4) XX() float32 { return mt.Data[0] }
func (mt Mat4) XY() float32 { return mt.Data[1] }
func (mt Mat4) XZ() float32 { return mt.Data[2] }
func (mt Mat4) XW() float32 { return mt.Data[3] }
func (mt Mat4) YX() float32 { return mt.Data[4] }
func (mt Mat4) YY() float32 { return mt.Data[5] }
func (mt Mat4) YZ() float32 { return mt.Data[6] }
func (mt Mat4) YW() float32 { return mt.Data[7] }
func (mt Mat4) ZX() float32 { return mt.Data[8] }
func (mt Mat4) ZY() float32 { return mt.Data[9] }
func (mt Mat4) ZZ() float32 { return mt.Data[10] }
func (mt Mat4) ZW() float32 { return mt.Data[11] }
func (mt Mat4) TX() float32 { return mt.Data[12] }
func (mt Mat4) TY() float32 { return mt.Data[13] }
func (mt Mat4) TZ() float32 { return mt.Data[14] }
func (mt Mat4) TW() float32 { return mt.Data[15] }

/** @brief Returns the x basis vector (first column, without w). */
func (mt Mat4) XCol() Vec3 { return Vec3{mt.Data[0], mt.Data[1], mt.Data[2]} }

/** @brief Returns the y basis vector (second column, without w). */
func (mt Mat4) YCol() Vec3 { return Vec3{mt.Data[4], mt.Data[5], mt.Data[6]} }

/** @brief Returns the z basis vector (third column, without w). */
func (mt Mat4) ZCol() Vec3 { return Vec3{mt.Data[8], mt.Data[9], mt.Data[10]} }

/** @brief Returns the translation (fourth column, without w). */
func (mt Mat4) Translation() Vec3 { return Vec3{mt.Data[12], mt.Data[13], mt.Data[14]} }

/**
 * @brief Returns the result of mt * other. Transforming a point by the result
 * applies other first, then mt.
 *
 * @param other The right hand matrix.
 * @return The result of the matrix multiplication.
 */
func (mt Mat4) Mul(other Mat4) Mat4 {
	out_matrix := Mat4{}
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			sum := float32(0)
			for i := 0; i < 4; i++ {
				sum += mt.Data[i*4+row] * other.Data[col*4+i]
			}
			out_matrix.Data[col*4+row] = sum
		}
	}
	return out_matrix
}

/** @brief Post-multiplies mt by other in place: mt = mt * other. */
func (mt *Mat4) MultiplyBy(other Mat4) {
	*mt = mt.Mul(other)
}

/** @brief Pre-multiplies mt by other in place: mt = other * mt. */
func (mt *Mat4) PremultiplyBy(other Mat4) {
	*mt = other.Mul(*mt)
}

/** @brief Appends a translation in place: mt = mt * translation(translation). */
func (mt *Mat4) TranslateBy(translation Vec3) {
	mt.MultiplyBy(NewMat4Translation(translation))
}

/** @brief Appends a scale in place: mt = mt * scale(scale). */
func (mt *Mat4) ScaleBy(scale Vec3) {
	mt.MultiplyBy(NewMat4Scale(scale))
}

/**
 * @brief Creates and returns a translation matrix from the given position.
 *
 * @param position The position to be used to create the matrix.
 * @return A newly created translation matrix.
 */
func NewMat4Translation(position Vec3) Mat4 {
	out_matrix := NewMat4Identity()
	out_matrix.Data[12] = position.X
	out_matrix.Data[13] = position.Y
	out_matrix.Data[14] = position.Z
	return out_matrix
}

/**
 * @brief Returns a scale matrix using the provided scale.
 *
 * @param scale The 3-component scale.
 * @return A scale matrix.
 */
func NewMat4Scale(scale Vec3) Mat4 {
	out_matrix := NewMat4Identity()
	out_matrix.Data[0] = scale.X
	out_matrix.Data[5] = scale.Y
	out_matrix.Data[10] = scale.Z
	return out_matrix
}

/**
 * @brief Creates a rotation of angle radians about axis. Positive angles turn
 * clockwise when looking from the tip of axis towards the origin, the opposite
 * sense to NewMat4RotationAboutZ. The axis is used as given: a non unit axis
 * produces a non rigid transform.
 *
 * @param axis The unit rotation axis.
 * @param angle The angle in radians.
 * @return A rotation matrix.
 */
func NewMat4Rotation(axis Vec3, angle float32) Mat4 {
	cosPhi := kcos(angle)
	sinPhi := ksin(angle)
	oneMinusCosPhi := 1 - cosPhi
	x := axis.X
	y := axis.Y
	z := axis.Z
	return NewMat4ByColumns(
		cosPhi+oneMinusCosPhi*x*x, oneMinusCosPhi*x*y-sinPhi*z, oneMinusCosPhi*x*z+sinPhi*y, 0,
		oneMinusCosPhi*y*x+sinPhi*z, cosPhi+oneMinusCosPhi*y*y, oneMinusCosPhi*y*z-sinPhi*x, 0,
		oneMinusCosPhi*z*x-sinPhi*y, oneMinusCosPhi*z*y+sinPhi*x, cosPhi+oneMinusCosPhi*z*z, 0,
		0, 0, 0, 1,
	)
}

/**
 * @brief Creates the rotation that turns direction from into direction to.
 * When from and to are parallel or anti-parallel the cross product vanishes
 * and the axis (and so the matrix) is made of NaNs.
 */
func NewMat4RotationBetween(from, to Vec3) Mat4 {
	angle := from.Angle(to)
	axis := to.Cross(from).Normalize()
	return NewMat4Rotation(axis, angle)
}

func NewMat4RotationAboutXForSinCos(s, c float32) Mat4 {
	return NewMat4ByColumns(
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	)
}

func NewMat4RotationAboutYForSinCos(s, c float32) Mat4 {
	return NewMat4ByColumns(
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	)
}

func NewMat4RotationAboutZForSinCos(s, c float32) Mat4 {
	return NewMat4ByColumns(
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	)
}

/** @brief Rotation of angle radians about the x axis. */
func NewMat4RotationAboutX(angle float32) Mat4 {
	return NewMat4RotationAboutXForSinCos(ksin(angle), kcos(angle))
}

/** @brief Rotation of angle radians about the y axis. */
func NewMat4RotationAboutY(angle float32) Mat4 {
	return NewMat4RotationAboutYForSinCos(ksin(angle), kcos(angle))
}

/** @brief Rotation of angle radians about the z axis. */
func NewMat4RotationAboutZ(angle float32) Mat4 {
	return NewMat4RotationAboutZForSinCos(ksin(angle), kcos(angle))
}

func NewMat4RotationAboutXDegrees(angle float32) Mat4 {
	return NewMat4RotationAboutX(DegToRad(angle))
}

func NewMat4RotationAboutYDegrees(angle float32) Mat4 {
	return NewMat4RotationAboutY(DegToRad(angle))
}

func NewMat4RotationAboutZDegrees(angle float32) Mat4 {
	return NewMat4RotationAboutZ(DegToRad(angle))
}

/**
 * @brief Creates a rotation from euler angles in radians applied in the given order.
 *
 * @param order The axis order, the first axis is rotated about first.
 * @param euler The x, y and z angles in radians.
 * @return A rotation matrix.
 */
func NewMat4RotationForEuler(order EulerOrder, euler Vec3) Mat4 {
	switch order {
	case EulerOrderYZX:
		return NewMat4RotationForEulerYZX(euler)
	case EulerOrderXZY:
		return NewMat4RotationForEulerXZY(euler)
	case EulerOrderYXZ:
		return NewMat4RotationForEulerYXZ(euler)
	case EulerOrderZXY:
		return NewMat4RotationForEulerZXY(euler)
	case EulerOrderZYX:
		return NewMat4RotationForEulerZYX(euler)
	default:
		return NewMat4RotationForEulerXYZ(euler)
	}
}

/** @brief Same as NewMat4RotationForEuler with the angles given in degrees. */
func NewMat4RotationForEulerDegrees(order EulerOrder, euler Vec3) Mat4 {
	return NewMat4RotationForEuler(order, euler.DegToRad())
}

/**
 * @brief Rotation about X, then Y, then Z (Rz * Ry * Rx).
 */
func NewMat4RotationForEulerXYZ(euler Vec3) Mat4 {
	cx, sx := kcos(euler.X), ksin(euler.X)
	cy, sy := kcos(euler.Y), ksin(euler.Y)
	cz, sz := kcos(euler.Z), ksin(euler.Z)

	return NewMat4ByColumns(
		cy*cz,
		cy*sz,
		-sy,
		0,
		sx*sy*cz+cx*-sz,
		sx*sy*sz+cx*cz,
		sx*cy,
		0,
		cx*sy*cz+sx*sz,
		cx*sy*sz+-sx*cz,
		cx*cy,
		0,
		0,
		0,
		0,
		1,
	)
}

func NewMat4RotationForEulerXYZDegrees(euler Vec3) Mat4 {
	return NewMat4RotationForEulerXYZ(euler.DegToRad())
}

/**
 * @brief Rotation about Y, then Z, then X (Rx * Rz * Ry).
 */
func NewMat4RotationForEulerYZX(euler Vec3) Mat4 {
	cx, sx := kcos(euler.X), ksin(euler.X)
	cy, sy := kcos(euler.Y), ksin(euler.Y)
	cz, sz := kcos(euler.Z), ksin(euler.Z)

	return NewMat4ByColumns(
		cy*cz,
		cx*cy*sz+sx*sy,
		sx*cy*sz-cx*sy,
		0,
		-sz,
		cx*cz,
		sx*cz,
		0,
		sy*cz,
		cx*sy*sz-sx*cy,
		sx*sy*sz+cx*cy,
		0,
		0,
		0,
		0,
		1,
	)
}

func NewMat4RotationForEulerYZXDegrees(euler Vec3) Mat4 {
	return NewMat4RotationForEulerYZX(euler.DegToRad())
}

/**
 * @brief Rotation about X, then Z, then Y (Ry * Rz * Rx).
 */
func NewMat4RotationForEulerXZY(euler Vec3) Mat4 {
	cx, sx := kcos(euler.X), ksin(euler.X)
	cy, sy := kcos(euler.Y), ksin(euler.Y)
	cz, sz := kcos(euler.Z), ksin(euler.Z)

	return NewMat4ByColumns(
		cy*cz,
		sz,
		-sy*cz,
		0,
		sx*sy-cx*cy*sz,
		cx*cz,
		cx*sy*sz+sx*cy,
		0,
		sx*cy*sz+cx*sy,
		-sx*cz,
		cx*cy-sx*sy*sz,
		0,
		0,
		0,
		0,
		1,
	)
}

func NewMat4RotationForEulerXZYDegrees(euler Vec3) Mat4 {
	return NewMat4RotationForEulerXZY(euler.DegToRad())
}

/**
 * @brief Rotation about Y, then X, then Z (Rz * Rx * Ry).
 */
func NewMat4RotationForEulerYXZ(euler Vec3) Mat4 {
	cx, sx := kcos(euler.X), ksin(euler.X)
	cy, sy := kcos(euler.Y), ksin(euler.Y)
	cz, sz := kcos(euler.Z), ksin(euler.Z)

	return NewMat4ByColumns(
		cy*cz-sx*sy*sz,
		cy*sz+sx*sy*cz,
		-cx*sy,
		0,
		-cx*sz,
		cx*cz,
		sx,
		0,
		sy*cz+sx*cy*sz,
		sy*sz-sx*cy*cz,
		cx*cy,
		0,
		0,
		0,
		0,
		1,
	)
}

func NewMat4RotationForEulerYXZDegrees(euler Vec3) Mat4 {
	return NewMat4RotationForEulerYXZ(euler.DegToRad())
}

/**
 * @brief Rotation about Z, then X, then Y (Ry * Rx * Rz).
 */
func NewMat4RotationForEulerZXY(euler Vec3) Mat4 {
	cx, sx := kcos(euler.X), ksin(euler.X)
	cy, sy := kcos(euler.Y), ksin(euler.Y)
	cz, sz := kcos(euler.Z), ksin(euler.Z)

	return NewMat4ByColumns(
		cy*cz+sx*sy*sz,
		cx*sz,
		sx*cy*sz-sy*cz,
		0,
		sx*sy*cz-cy*sz,
		cx*cz,
		sy*sz+sx*cy*cz,
		0,
		cx*sy,
		-sx,
		cx*cy,
		0,
		0,
		0,
		0,
		1,
	)
}

func NewMat4RotationForEulerZXYDegrees(euler Vec3) Mat4 {
	return NewMat4RotationForEulerZXY(euler.DegToRad())
}

/**
 * @brief Rotation about Z, then Y, then X (Rx * Ry * Rz).
 */
func NewMat4RotationForEulerZYX(euler Vec3) Mat4 {
	cx, sx := kcos(euler.X), ksin(euler.X)
	cy, sy := kcos(euler.Y), ksin(euler.Y)
	cz, sz := kcos(euler.Z), ksin(euler.Z)

	return NewMat4ByColumns(
		cy*cz,
		cx*sz+sx*sy*cz,
		sx*sz-cx*sy*cz,
		0,
		-cy*sz,
		cx*cz-sx*sy*sz,
		sx*cz+cx*sy*sz,
		0,
		sy,
		-sx*cy,
		cx*cy,
		0,
		0,
		0,
		0,
		1,
	)
}

func NewMat4RotationForEulerZYXDegrees(euler Vec3) Mat4 {
	return NewMat4RotationForEulerZYX(euler.DegToRad())
}

/**
 * @brief Transposes the matrix in place by swapping the six off-diagonal pairs.
 */
func (mt *Mat4) Transpose() {
	m := &mt.Data
	m[1], m[4] = m[4], m[1]
	m[2], m[8] = m[8], m[2]
	m[3], m[12] = m[12], m[3]
	m[6], m[9] = m[9], m[6]
	m[7], m[13] = m[13], m[7]
	m[11], m[14] = m[14], m[11]
}

/**
 * @brief Returns a transposed copy of the matrix (rows->columns)
 */
func (mt Mat4) Transposed() Mat4 {
	return NewMat4ByColumns(
		mt.XX(), mt.YX(), mt.ZX(), mt.TX(),
		mt.XY(), mt.YY(), mt.ZY(), mt.TY(),
		mt.XZ(), mt.YZ(), mt.ZZ(), mt.TZ(),
		mt.XW(), mt.YW(), mt.ZW(), mt.TW(),
	)
}

/**
 * @brief Returns the inverse of an affine matrix. Only the upper 3x3 block and
 * the translation are read; the last row is assumed to be [0 0 0 1].
 * A singular 3x3 block produces inf/NaN elements.
 */
func (mt Mat4) AffineInverse() Mat4 {
	m := &mt.Data
	result := Mat4{}
	r := &result.Data

	// determinant of rotation submatrix
	det := m[0]*(m[5]*m[10]-m[9]*m[6]) -
		m[1]*(m[4]*m[10]-m[8]*m[6]) +
		m[2]*(m[4]*m[9]-m[8]*m[5])

	det = 1.0 / det

	r[0] = (m[5]*m[10] - m[6]*m[9]) * det
	r[1] = -(m[1]*m[10] - m[2]*m[9]) * det
	r[2] = (m[1]*m[6] - m[2]*m[5]) * det
	r[3] = 0
	r[4] = -(m[4]*m[10] - m[6]*m[8]) * det
	r[5] = (m[0]*m[10] - m[2]*m[8]) * det
	r[6] = -(m[0]*m[6] - m[2]*m[4]) * det
	r[7] = 0
	r[8] = (m[4]*m[9] - m[5]*m[8]) * det
	r[9] = -(m[0]*m[9] - m[1]*m[8]) * det
	r[10] = (m[0]*m[5] - m[1]*m[4]) * det
	r[11] = 0

	// translation is -(R^-1 * t)
	r[12] = -(m[12]*r[0] + m[13]*r[4] + m[14]*r[8])
	r[13] = -(m[12]*r[1] + m[13]*r[5] + m[14]*r[9])
	r[14] = -(m[12]*r[2] + m[13]*r[6] + m[14]*r[10])
	r[15] = 1

	return result
}

/**
 * @brief Returns the inverse of a general (possibly projective) matrix computed
 * through its adjugate. A singular matrix produces inf/NaN elements.
 */
func (mt Mat4) FullInverse() Mat4 {
	// 2x2 minors, the first six are re-used for the determinant
	minor01 := mt.ZZ()*mt.TW() - mt.ZW()*mt.TZ()
	minor02 := mt.ZY()*mt.TW() - mt.ZW()*mt.TY()
	minor03 := mt.ZX()*mt.TW() - mt.ZW()*mt.TX()
	minor04 := mt.ZY()*mt.TZ() - mt.ZZ()*mt.TY()
	minor05 := mt.ZX()*mt.TZ() - mt.ZZ()*mt.TX()
	minor06 := mt.ZX()*mt.TY() - mt.ZY()*mt.TX()

	minor07 := mt.YZ()*mt.TW() - mt.YW()*mt.TZ()
	minor08 := mt.YY()*mt.TW() - mt.YW()*mt.TY()
	minor09 := mt.YY()*mt.TZ() - mt.YZ()*mt.TY()
	minor10 := mt.YX()*mt.TW() - mt.YW()*mt.TX()
	minor11 := mt.YX()*mt.TZ() - mt.YZ()*mt.TX()
	minor12 := mt.YX()*mt.TY() - mt.YY()*mt.TX()
	minor13 := mt.YZ()*mt.ZW() - mt.YW()*mt.ZZ()
	minor14 := mt.YY()*mt.ZW() - mt.YW()*mt.ZY()
	minor15 := mt.YY()*mt.ZZ() - mt.YZ()*mt.ZY()
	minor16 := mt.YX()*mt.ZW() - mt.YW()*mt.ZX()
	minor17 := mt.YX()*mt.ZZ() - mt.YZ()*mt.ZX()
	minor18 := mt.YX()*mt.ZY() - mt.YY()*mt.ZX()

	// 3x3 minors, the first column is re-used for the determinant
	cof11 := mt.YY()*minor01 - mt.YZ()*minor02 + mt.YW()*minor04
	cof21 := mt.YX()*minor01 - mt.YZ()*minor03 + mt.YW()*minor05
	cof31 := mt.YX()*minor02 - mt.YY()*minor03 + mt.YW()*minor06
	cof41 := mt.YX()*minor04 - mt.YY()*minor05 + mt.YZ()*minor06

	cof12 := mt.XY()*minor01 - mt.XZ()*minor02 + mt.XW()*minor04
	cof22 := mt.XX()*minor01 - mt.XZ()*minor03 + mt.XW()*minor05
	cof32 := mt.XX()*minor02 - mt.XY()*minor03 + mt.XW()*minor06
	cof42 := mt.XX()*minor04 - mt.XY()*minor05 + mt.XZ()*minor06

	cof13 := mt.XY()*minor07 - mt.XZ()*minor08 + mt.XW()*minor09
	cof23 := mt.XX()*minor07 - mt.XZ()*minor10 + mt.XW()*minor11
	cof33 := mt.XX()*minor08 - mt.XY()*minor10 + mt.XW()*minor12
	cof43 := mt.XX()*minor09 - mt.XY()*minor11 + mt.XZ()*minor12

	cof14 := mt.XY()*minor13 - mt.XZ()*minor14 + mt.XW()*minor15
	cof24 := mt.XX()*minor13 - mt.XZ()*minor16 + mt.XW()*minor17
	cof34 := mt.XX()*minor14 - mt.XY()*minor16 + mt.XW()*minor18
	cof44 := mt.XX()*minor15 - mt.XY()*minor17 + mt.XZ()*minor18

	determinant := mt.XX()*cof11 - mt.XY()*cof21 + mt.XZ()*cof31 - mt.XW()*cof41
	invDet := 1.0 / determinant

	return NewMat4ByColumns(
		+cof11*invDet, -cof12*invDet, +cof13*invDet, -cof14*invDet,
		-cof21*invDet, +cof22*invDet, -cof23*invDet, +cof24*invDet,
		+cof31*invDet, -cof32*invDet, +cof33*invDet, -cof34*invDet,
		-cof41*invDet, +cof42*invDet, -cof43*invDet, +cof44*invDet,
	)
}

/**
 * @brief Transforms point as if it had a w of 1. No perspective divide is performed.
 */
func (mt Mat4) TransformPoint(point Vec3) Vec3 {
	m := &mt.Data
	return Vec3{
		m[0]*point.X + m[4]*point.Y + m[8]*point.Z + m[12],
		m[1]*point.X + m[5]*point.Y + m[9]*point.Z + m[13],
		m[2]*point.X + m[6]*point.Y + m[10]*point.Z + m[14],
	}
}

/**
 * @brief Transforms direction by the upper 3x3 block, ignoring translation.
 */
func (mt Mat4) TransformDirection(direction Vec3) Vec3 {
	m := &mt.Data
	return Vec3{
		m[0]*direction.X + m[4]*direction.Y + m[8]*direction.Z,
		m[1]*direction.X + m[5]*direction.Y + m[9]*direction.Z,
		m[2]*direction.X + m[6]*direction.Y + m[10]*direction.Z,
	}
}

/**
 * @brief Returns mt * v.
 */
func (mt Mat4) TransformVec4(v Vec4) Vec4 {
	m := &mt.Data
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

/**
 * @brief Transforms a plane by the upper 3x3 block and the translation of an
 * affine matrix. The distance is -((t - dist*n')·n') where n' is the transformed
 * normal, so a pure translation t of a unit plane gives dist - t·n.
 */
func (mt Mat4) TransformPlane(plane Plane3) Plane3 {
	m := &mt.Data
	n := plane.Normal
	transformed := Plane3{}
	transformed.Normal.X = m[0]*n.X + m[4]*n.Y + m[8]*n.Z
	transformed.Normal.Y = m[1]*n.X + m[5]*n.Y + m[9]*n.Z
	transformed.Normal.Z = m[2]*n.X + m[6]*n.Y + m[10]*n.Z
	tn := transformed.Normal
	transformed.Dist = -((-plane.Dist*tn.X+m[12])*tn.X +
		(-plane.Dist*tn.Y+m[13])*tn.Y +
		(-plane.Dist*tn.Z+m[14])*tn.Z)
	return transformed
}

/**
 * @brief Transforms a plane treated as the 4-vector (normal, dist) by the transpose
 * of mt: each component is a column of mt dotted with the plane.
 */
func (mt Mat4) InverseTransformPlane(plane Plane3) Plane3 {
	m := &mt.Data
	n := plane.Normal
	return Plane3{
		Normal: Vec3{
			m[0]*n.X + m[1]*n.Y + m[2]*n.Z + m[3]*plane.Dist,
			m[4]*n.X + m[5]*n.Y + m[6]*n.Z + m[7]*plane.Dist,
			m[8]*n.X + m[9]*n.Y + m[10]*n.Z + m[11]*plane.Dist,
		},
		Dist: m[12]*n.X + m[13]*n.Y + m[14]*n.Z + m[15]*plane.Dist,
	}
}

/**
 * @brief Reports whether the basis vectors form a right or left handed system.
 */
func (mt Mat4) Handedness() Handedness {
	if mt.XCol().Cross(mt.YCol()).Dot(mt.ZCol()) < 0.0 {
		return LeftHanded
	}
	return RightHanded
}

/** @brief Reports whether the last row is exactly [0 0 0 1]. */
func (mt Mat4) IsAffine() bool {
	return mt.Data[3] == 0 && mt.Data[7] == 0 && mt.Data[11] == 0 && mt.Data[15] == 1
}

/**
 * @brief Compares the 3x3 block and the translation for exact equality,
 * ignoring the last row.
 */
func (mt Mat4) IsAffineEqual(other Mat4) bool {
	a, b := &mt.Data, &other.Data
	return a[0] == b[0] && a[1] == b[1] && a[2] == b[2] &&
		a[4] == b[4] && a[5] == b[5] && a[6] == b[6] &&
		a[8] == b[8] && a[9] == b[9] && a[10] == b[10] &&
		a[12] == b[12] && a[13] == b[13] && a[14] == b[14]
}

/** @brief Exact element-wise equality. */
func (mt Mat4) Equal(other Mat4) bool {
	return mt.Data == other.Data
}

/**
 * @brief Compares all elements of mt and other and ensures the difference
 * is less than tolerance.
 */
func (mt Mat4) Compare(other Mat4, tolerance float32) bool {
	for i := range mt.Data {
		if kabs(mt.Data[i]-other.Data[i]) > tolerance {
			return false
		}
	}
	return true
}

/**
 * @brief Creates and returns an orthographic projection matrix. Typically used to
 * render flat or 2D scenes such as the editor's orthographic views.
 */
func NewMat4Orthographic(left, right, bottom, top, near_clip, far_clip float32) Mat4 {
	out_matrix := NewMat4Identity()

	lr := 1.0 / (left - right)
	bt := 1.0 / (bottom - top)
	nf := 1.0 / (near_clip - far_clip)

	out_matrix.Data[0] = -2.0 * lr
	out_matrix.Data[5] = -2.0 * bt
	out_matrix.Data[10] = 2.0 * nf

	out_matrix.Data[12] = (left + right) * lr
	out_matrix.Data[13] = (top + bottom) * bt
	out_matrix.Data[14] = (far_clip + near_clip) * nf
	return out_matrix
}

/**
 * @brief Creates and returns a perspective matrix. Typically used to render 3d scenes.
 *
 * @param fov_radians The field of view in radians.
 * @param aspect_ratio The aspect ratio.
 * @param near_clip The near clipping plane distance.
 * @param far_clip The far clipping plane distance.
 * @return A new perspective matrix.
 */
func NewMat4Perspective(fov_radians, aspect_ratio, near_clip, far_clip float32) Mat4 {
	half_tan_fov := ktan(fov_radians * 0.5)
	out_matrix := Mat4{}
	out_matrix.Data[0] = 1.0 / (aspect_ratio * half_tan_fov)
	out_matrix.Data[5] = 1.0 / half_tan_fov
	out_matrix.Data[10] = -((far_clip + near_clip) / (far_clip - near_clip))
	out_matrix.Data[11] = -1.0
	out_matrix.Data[14] = -((2.0 * far_clip * near_clip) / (far_clip - near_clip))
	return out_matrix
}

/**
 * @brief Creates and returns a view matrix looking at target from position.
 */
func NewMat4LookAt(position, target, up Vec3) Mat4 {
	f := target.Sub(position).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	return NewMat4ByColumns(
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(position), -u.Dot(position), f.Dot(position), 1,
	)
}
