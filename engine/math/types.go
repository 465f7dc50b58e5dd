package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

/**
 * @brief A plane in 3D space. Points p on the plane satisfy Normal.Dot(p) == Dist.
 */
type Plane3 struct {
	/** @brief The plane normal. Not required to be unit length. */
	Normal Vec3
	/** @brief The distance along the normal from the origin. */
	Dist float32
}

/**
 * @brief A 4x4 matrix stored in column-major order, typically used to represent
 * object transformations.
 *
 *	[ 0  4  8 12 ]     [ xx yx zx tx ]
 *	[ 1  5  9 13 ]  =  [ xy yy zy ty ]
 *	[ 2  6 10 14 ]     [ xz yz zz tz ]
 *	[ 3  7 11 15 ]     [ xw yw zw tw ]
 *
 * An affine matrix has a last row of [0 0 0 1].
 */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}

/** @brief The handedness of the coordinate system spanned by a matrix' basis vectors. */
type Handedness uint8

const (
	RightHanded Handedness = iota
	LeftHanded
)

/**
 * @brief The order in which three elemental axis rotations are applied.
 * EulerOrderXYZ rotates about X first, then Y, then Z.
 */
type EulerOrder uint8

const (
	EulerOrderXYZ EulerOrder = iota
	EulerOrderYZX
	EulerOrderXZY
	EulerOrderYXZ
	EulerOrderZXY
	EulerOrderZYX
)

func (o EulerOrder) String() string {
	switch o {
	case EulerOrderXYZ:
		return "XYZ"
	case EulerOrderYZX:
		return "YZX"
	case EulerOrderXZY:
		return "XZY"
	case EulerOrderYXZ:
		return "YXZ"
	case EulerOrderZXY:
		return "ZXY"
	case EulerOrderZYX:
		return "ZYX"
	}
	return "unknown"
}

/**
 * @brief Represents the transform of an object in the world.
 * Transforms can have a parent whose own transform is then
 * taken into account. NOTE: The properties of this should not
 * be edited directly, but done via the functions in transform.go
 * to ensure proper matrix generation.
 */
type Transform struct {
	/** @brief The position in the world. */
	Position Vec3
	/** @brief The rotation in degrees, applied in RotationOrder. */
	Rotation Vec3
	/** @brief The order the euler angles in Rotation are applied in. */
	RotationOrder EulerOrder
	/** @brief The scale in the world. */
	Scale Vec3
	/**
	 * @brief Indicates if the position, rotation or scale have changed,
	 * indicating that the local matrix needs to be recalculated.
	 */
	IsDirty bool
	/**
	 * @brief The local transformation matrix, updated whenever
	 * the position, rotation or scale have changed.
	 */
	Local Mat4
	/** @brief A pointer to a parent transform if one is assigned. Can also be nil. */
	Parent *Transform
}
