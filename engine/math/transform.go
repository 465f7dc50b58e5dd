package math

func TransformCreate() *Transform {
	return TransformFromPositionRotationScale(NewVec3Zero(), NewVec3Zero(), NewVec3One())
}

func TransformFromPosition(position Vec3) *Transform {
	return TransformFromPositionRotationScale(position, NewVec3Zero(), NewVec3One())
}

/**
 * @brief Creates a transform at position with the given euler rotation in degrees.
 */
func TransformFromPositionRotation(position, rotation Vec3) *Transform {
	return TransformFromPositionRotationScale(position, rotation, NewVec3One())
}

func TransformFromPositionRotationScale(position, rotation, scale Vec3) *Transform {
	t := &Transform{RotationOrder: EulerOrderXYZ}
	t.SetPositionRotationScale(position, rotation, scale)
	t.Local = NewMat4Identity()
	t.Parent = nil
	return t
}

func (t *Transform) SetPosition(position Vec3) {
	t.Position = position
	t.IsDirty = true
}

func (t *Transform) Translate(translation Vec3) {
	t.Position = t.Position.Add(translation)
	t.IsDirty = true
}

/** @brief Sets the euler rotation in degrees. */
func (t *Transform) SetRotation(rotation Vec3) {
	t.Rotation = rotation
	t.IsDirty = true
}

/** @brief Adds degrees to each euler angle. */
func (t *Transform) Rotate(degrees Vec3) {
	t.Rotation = t.Rotation.Add(degrees)
	t.IsDirty = true
}

func (t *Transform) SetRotationOrder(order EulerOrder) {
	t.RotationOrder = order
	t.IsDirty = true
}

func (t *Transform) SetScale(scale Vec3) {
	t.Scale = scale
	t.IsDirty = true
}

func (t *Transform) ScaleIt(scale Vec3) {
	t.Scale = t.Scale.Mul(scale)
	t.IsDirty = true
}

func (t *Transform) SetPositionRotationScale(position, rotation, scale Vec3) {
	t.Position = position
	t.Rotation = rotation
	t.Scale = scale
	t.IsDirty = true
}

/**
 * @brief Returns the local matrix, rebuilding it as translation * rotation * scale
 * when dirty. A nil transform yields identity.
 */
func (t *Transform) GetLocal() Mat4 {
	if t != nil {
		if t.IsDirty {
			local := NewMat4Translation(t.Position)
			local.MultiplyBy(NewMat4RotationForEulerDegrees(t.RotationOrder, t.Rotation))
			local.ScaleBy(t.Scale)
			t.Local = local
			t.IsDirty = false
		}
		return t.Local
	}
	return NewMat4Identity()
}

/**
 * @brief Returns the local matrix composed with every parent's world matrix.
 */
func (t *Transform) GetWorld() Mat4 {
	if t != nil {
		l := t.GetLocal()
		if t.Parent != nil {
			p := t.Parent.GetWorld()
			return p.Mul(l)
		}
		return l
	}
	return NewMat4Identity()
}
