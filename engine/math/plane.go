package math

func NewPlane3(normal Vec3, dist float32) Plane3 {
	return Plane3{Normal: normal, Dist: dist}
}

/**
 * @brief Creates the plane through three points. The normal follows the
 * winding a -> b -> c and is unit length unless the points are collinear.
 */
func NewPlane3FromPoints(a, b, c Vec3) Plane3 {
	normal := b.Sub(a).Cross(c.Sub(a)).Normalize()
	return Plane3{Normal: normal, Dist: normal.Dot(a)}
}

/** @brief Signed distance of point from the plane, scaled by the normal length. */
func (p Plane3) DistanceToPoint(point Vec3) float32 {
	return p.Normal.Dot(point) - p.Dist
}

/** @brief Returns the plane scaled so the normal has unit length. */
func (p Plane3) Normalize() Plane3 {
	length := p.Normal.Length()
	return Plane3{Normal: p.Normal.MulScalar(1 / length), Dist: p.Dist / length}
}

/** @brief Returns the plane facing the other way. */
func (p Plane3) Reversed() Plane3 {
	return Plane3{Normal: p.Normal.Negate(), Dist: -p.Dist}
}

func (p Plane3) Compare(other Plane3, tolerance float32) bool {
	return p.Normal.Compare(other.Normal, tolerance) && kabs(p.Dist-other.Dist) <= tolerance
}
