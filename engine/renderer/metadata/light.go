package metadata

import "github.com/spaghettifunk/brushwork/engine/math"

/**
 * @brief The material of a light. Its first layer supplies the XY falloff
 * texture and the light colour.
 */
type LightShader interface {
	/** @brief The first stage of the light material, nil if it has none. */
	FirstLayer() Stage
	/** @brief The Z falloff texture. */
	FalloffTexture() TextureHandle
	IsAmbientLight() bool
}

/**
 * @brief A light as seen by the renderer. A light is also an entity, its
 * shader parameters drive the light material's expressions.
 */
type RendererLight interface {
	RenderEntity
	LightShader() LightShader
	/** @brief The world space origin of the light. */
	LightOrigin() math.Vec3
	/** @brief The transform from world space into the light's texture space. */
	LightTextureTransformation() math.Mat4
}
