package metadata

import "github.com/spaghettifunk/brushwork/engine/math"

/** @brief The per-renderable inputs of a lighting program. */
type LightingParams struct {
	/** @brief The viewer position in the object space of the renderable. */
	ViewerObjectSpace math.Vec3
	ObjectTransform   math.Mat4
	LightOrigin       math.Vec3
	LightColour       math.Vec4
	WorldToLight      math.Mat4
	/** @brief 1 for ambient lights, 0 otherwise. */
	AmbientFactor float32
}

/**
 * @brief A GPU program bound while a pass requires RenderFlagProgram.
 * Compilation happens elsewhere, the renderer only switches programs and
 * feeds lighting parameters.
 *
 * Programs are compared with == when switching, so implementations must be
 * pointer types (or otherwise comparable).
 */
type Program interface {
	Enable()
	Disable()
	ApplyRenderParams(params LightingParams)
}
