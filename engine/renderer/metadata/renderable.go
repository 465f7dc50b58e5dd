package metadata

import (
	"github.com/google/uuid"

	"github.com/spaghettifunk/brushwork/engine/math"
)

/**
 * @brief Per-draw information handed to a renderable. The flags are the state
 * that is actually set on the device when the renderable is drawn.
 */
type RenderInfo struct {
	Flags       RenderFlags
	Viewer      math.Vec3
	CubeMapMode CubeMapMode
}

/** @brief Checks whether the given flag is active. */
func (ri RenderInfo) CheckFlag(flag RenderFlags) bool {
	return ri.Flags&flag != 0
}

/**
 * @brief Something that can issue its own draw calls once the device state
 * and the world transform have been set up.
 */
type Renderable interface {
	Render(info RenderInfo)
}

/** @brief Adapts an ordinary function to the Renderable interface. */
type RenderableFunc func(info RenderInfo)

func (f RenderableFunc) Render(info RenderInfo) { f(info) }

/**
 * @brief A scene object that can be rendered in per-entity mode. Its stable ID
 * groups renderables inside a pass.
 */
type RenderEntity interface {
	EntityID() uuid.UUID
	/** @brief Flags the entity forces on every pass it is rendered through. */
	RequiredShaderFlags() RenderFlags
	/** @brief The value of shader parameter index, read by stage expressions. */
	ShaderParm(index int) float32
}

/**
 * @brief A renderable queued for one frame together with the world transform
 * it is drawn with, the light affecting it and its owning entity.
 * Light and Entity may be nil.
 */
type TransformedRenderable struct {
	Renderable Renderable
	Transform  *math.Mat4
	Light      RendererLight
	Entity     RenderEntity
}
