package renderer

import (
	"github.com/spaghettifunk/brushwork/engine/math"
	"github.com/spaghettifunk/brushwork/engine/renderer/metadata"
)

/**
 * @brief The fixed-function graphics device passes emit their state changes to.
 * Every call maps to one state change on the device; the renderer keeps track
 * of what is set so implementations never need to filter redundant calls.
 */
type Device interface {
	SetCapability(capability metadata.Capability, enabled bool)
	SetClientArray(array metadata.ClientArray, enabled bool)
	SetPolygonMode(mode metadata.PolygonMode)
	SetShadeModel(model metadata.ShadeModel)
	SetDepthMask(enabled bool)
	SetColourMask(enabled bool)
	SetDepthFunc(fn metadata.CompareFunc)
	SetAlphaFunc(fn metadata.CompareFunc, threshold float32)
	SetBlendFunc(src, dst metadata.BlendFactor)
	SetLineStipple(factor int32, pattern uint16)
	SetPolygonOffset(factor, units float32)
	SetLineWidth(width float32)
	SetPointSize(size float32)
	SetColour(colour math.Vec4)

	/** @brief Makes unit the active server and client texture unit. */
	SelectTextureUnit(unit int)
	/** @brief Selects unit and binds texture to target on it. */
	BindTexture(unit int, target metadata.TextureTarget, texture metadata.TextureHandle)
	/** @brief Sets the S and T wrap mode of the texture bound on the active unit. */
	SetTextureWrap(target metadata.TextureTarget, wrap metadata.TextureWrap)
	/** @brief Selects unit and replaces its texture matrix. */
	LoadTextureMatrix(unit int, matrix math.Mat4)

	PushTransform()
	PopTransform()
	/** @brief Post-multiplies the current modelview matrix. */
	MultiplyTransform(matrix math.Mat4)
	SetFrontFace(winding metadata.Winding)

	/** @brief Draws a quad covering the viewport with identity projection and modelview. */
	DrawScreenQuad()
	/** @brief Draws renderable with the state that is currently set. */
	Submit(renderable metadata.Renderable, info metadata.RenderInfo)
}
