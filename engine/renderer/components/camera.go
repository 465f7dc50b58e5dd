package components

import (
	"github.com/spaghettifunk/brushwork/engine/math"
)

/**
 * @brief A free flying camera. Its position doubles as the viewer handed to
 * the renderer for cube mapping and lighting.
 */
type Camera struct {
	/**
	 * @brief The position of this camera.
	 * NOTE: Do not set this directly, use SetPosition() instead
	 * so the view matrix is recalculated when needed.
	 */
	position math.Vec3
	/** @brief Pitch about X and yaw about Y in radians. Z is ignored. */
	rotation math.Vec3
	isDirty  bool
	world    math.Mat4
	view     math.Mat4
}

// 89 degrees
const pitchLimit = float32(1.55334306)

func NewCamera() *Camera {
	camera := &Camera{}
	camera.Reset()
	return camera
}

func (c *Camera) Reset() {
	c.rotation = math.NewVec3Zero()
	c.position = math.NewVec3Zero()
	c.world = math.NewMat4Identity()
	c.view = math.NewMat4Identity()
	c.isDirty = false
}

func (c *Camera) Position() math.Vec3 {
	return c.position
}

func (c *Camera) SetPosition(position math.Vec3) {
	c.position = position
	c.isDirty = true
}

func (c *Camera) Rotation() math.Vec3 {
	return c.rotation
}

func (c *Camera) SetRotation(rotation math.Vec3) {
	c.rotation = rotation
	c.rotation.X = math.Clamp(c.rotation.X, -pitchLimit, pitchLimit)
	c.isDirty = true
}

func (c *Camera) update() {
	if !c.isDirty {
		return
	}
	c.world = math.NewMat4Translation(c.position)
	c.world.MultiplyBy(math.NewMat4RotationAboutY(c.rotation.Y))
	c.world.MultiplyBy(math.NewMat4RotationAboutX(c.rotation.X))
	c.view = c.world.AffineInverse()
	c.isDirty = false
}

/** @brief The world to eye transform. */
func (c *Camera) View() math.Mat4 {
	c.update()
	return c.view
}

/** @brief The direction the camera looks along, -Z in eye space. */
func (c *Camera) Forward() math.Vec3 {
	c.update()
	return c.world.ZCol().Negate().Normalize()
}

func (c *Camera) Right() math.Vec3 {
	c.update()
	return c.world.XCol().Normalize()
}

func (c *Camera) MoveForward(amount float32) {
	c.SetPosition(c.position.Add(c.Forward().MulScalar(amount)))
}

func (c *Camera) MoveBackward(amount float32) {
	c.MoveForward(-amount)
}

func (c *Camera) MoveRight(amount float32) {
	c.SetPosition(c.position.Add(c.Right().MulScalar(amount)))
}

func (c *Camera) MoveLeft(amount float32) {
	c.MoveRight(-amount)
}

func (c *Camera) MoveUp(amount float32) {
	c.SetPosition(c.position.Add(math.NewVec3Up().MulScalar(amount)))
}

func (c *Camera) MoveDown(amount float32) {
	c.MoveUp(-amount)
}

func (c *Camera) Yaw(amount float32) {
	c.rotation.Y += amount
	c.isDirty = true
}

func (c *Camera) Pitch(amount float32) {
	// Clamp to avoid Gimbal lock.
	c.rotation.X = math.Clamp(c.rotation.X+amount, -pitchLimit, pitchLimit)
	c.isDirty = true
}
