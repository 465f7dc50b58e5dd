// Package opengl implements the renderer device on the fixed-function
// OpenGL 2.1 API.
package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v2.1/gl"

	"github.com/spaghettifunk/brushwork/engine/core"
	"github.com/spaghettifunk/brushwork/engine/math"
	"github.com/spaghettifunk/brushwork/engine/renderer"
	"github.com/spaghettifunk/brushwork/engine/renderer/metadata"
)

var _ renderer.Device = (*Device)(nil)

var capabilities = [...]uint32{
	metadata.CapabilityLineStipple:       gl.LINE_STIPPLE,
	metadata.CapabilityLineSmooth:        gl.LINE_SMOOTH,
	metadata.CapabilityPolygonStipple:    gl.POLYGON_STIPPLE,
	metadata.CapabilityPolygonSmooth:     gl.POLYGON_SMOOTH,
	metadata.CapabilityAlphaTest:         gl.ALPHA_TEST,
	metadata.CapabilityDepthTest:         gl.DEPTH_TEST,
	metadata.CapabilityCullFace:          gl.CULL_FACE,
	metadata.CapabilityNormalize:         gl.NORMALIZE,
	metadata.CapabilityLighting:          gl.LIGHTING,
	metadata.CapabilityColourMaterial:    gl.COLOR_MATERIAL,
	metadata.CapabilityBlend:             gl.BLEND,
	metadata.CapabilityPolygonOffsetLine: gl.POLYGON_OFFSET_LINE,
	metadata.CapabilityPolygonOffsetFill: gl.POLYGON_OFFSET_FILL,
	metadata.CapabilityTexture2D:         gl.TEXTURE_2D,
	metadata.CapabilityTextureCubeMap:    gl.TEXTURE_CUBE_MAP,
}

var clientArrays = [...]uint32{
	metadata.ClientArrayNormal:   gl.NORMAL_ARRAY,
	metadata.ClientArrayColour:   gl.COLOR_ARRAY,
	metadata.ClientArrayTexCoord: gl.TEXTURE_COORD_ARRAY,
}

var compareFuncs = [...]uint32{
	metadata.CompareNever:    gl.NEVER,
	metadata.CompareLess:     gl.LESS,
	metadata.CompareEqual:    gl.EQUAL,
	metadata.CompareLEqual:   gl.LEQUAL,
	metadata.CompareGreater:  gl.GREATER,
	metadata.CompareNotEqual: gl.NOTEQUAL,
	metadata.CompareGEqual:   gl.GEQUAL,
	metadata.CompareAlways:   gl.ALWAYS,
}

var blendFactors = [...]uint32{
	metadata.BlendZero:              gl.ZERO,
	metadata.BlendOne:               gl.ONE,
	metadata.BlendSrcColour:         gl.SRC_COLOR,
	metadata.BlendOneMinusSrcColour: gl.ONE_MINUS_SRC_COLOR,
	metadata.BlendSrcAlpha:          gl.SRC_ALPHA,
	metadata.BlendOneMinusSrcAlpha:  gl.ONE_MINUS_SRC_ALPHA,
	metadata.BlendDstAlpha:          gl.DST_ALPHA,
	metadata.BlendOneMinusDstAlpha:  gl.ONE_MINUS_DST_ALPHA,
	metadata.BlendDstColour:         gl.DST_COLOR,
	metadata.BlendOneMinusDstColour: gl.ONE_MINUS_DST_COLOR,
}

var textureTargets = [...]uint32{
	metadata.TextureTargetNone:    gl.TEXTURE_2D,
	metadata.TextureTarget2D:      gl.TEXTURE_2D,
	metadata.TextureTargetCubeMap: gl.TEXTURE_CUBE_MAP,
}

var textureWraps = [...]int32{
	metadata.TextureWrapRepeat:        gl.REPEAT,
	metadata.TextureWrapClampToEdge:   gl.CLAMP_TO_EDGE,
	metadata.TextureWrapClampToBorder: gl.CLAMP_TO_BORDER,
}

/**
 * @brief A renderer device issuing fixed-function OpenGL calls. Must only be
 * used on the thread owning the GL context.
 */
type Device struct {
	width  int32
	height int32
}

/**
 * @brief Loads the GL entry points of the current context.
 */
func NewDevice() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("%s: %w", err, core.ErrGraphicsInit)
	}
	core.LogInfo("OpenGL %s (%s)", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))
	return &Device{}, nil
}

// SetViewport resizes the drawable area.
func (d *Device) SetViewport(width, height int32) {
	d.width, d.height = width, height
	gl.Viewport(0, 0, width, height)
}

/**
 * @brief Clears the frame and loads the camera matrices. Must be called before
 * the renderer flushes its passes.
 */
func (d *Device) BeginFrame(projection, view math.Mat4, background math.Vec4) {
	gl.ClearColor(background.X, background.Y, background.Z, background.W)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.MatrixMode(gl.PROJECTION)
	gl.LoadMatrixf(&projection.Data[0])
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadMatrixf(&view.Data[0])
}

// CheckErrors drains the GL error queue and reports the first error found.
func (d *Device) CheckErrors() error {
	var first uint32
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		if first == 0 {
			first = code
		}
	}
	if first != 0 {
		return fmt.Errorf("gl error 0x%04x: %w", first, core.ErrGraphicsCall)
	}
	return nil
}

func (d *Device) SetCapability(capability metadata.Capability, enabled bool) {
	if enabled {
		gl.Enable(capabilities[capability])
	} else {
		gl.Disable(capabilities[capability])
	}
	if capability == metadata.CapabilityBlend {
		d.SelectTextureUnit(0)
		gl.TexEnvi(gl.TEXTURE_ENV, gl.TEXTURE_ENV_MODE, gl.MODULATE)
	}
}

func (d *Device) SetClientArray(array metadata.ClientArray, enabled bool) {
	if enabled {
		gl.EnableClientState(clientArrays[array])
	} else {
		gl.DisableClientState(clientArrays[array])
	}
}

func (d *Device) SetPolygonMode(mode metadata.PolygonMode) {
	if mode == metadata.PolygonModeLine {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func (d *Device) SetShadeModel(model metadata.ShadeModel) {
	if model == metadata.ShadeModelSmooth {
		gl.ShadeModel(gl.SMOOTH)
	} else {
		gl.ShadeModel(gl.FLAT)
	}
}

func (d *Device) SetDepthMask(enabled bool) {
	gl.DepthMask(enabled)
}

func (d *Device) SetColourMask(enabled bool) {
	gl.ColorMask(enabled, enabled, enabled, enabled)
}

func (d *Device) SetDepthFunc(fn metadata.CompareFunc) {
	gl.DepthFunc(compareFuncs[fn])
}

func (d *Device) SetAlphaFunc(fn metadata.CompareFunc, threshold float32) {
	gl.AlphaFunc(compareFuncs[fn], threshold)
}

func (d *Device) SetBlendFunc(src, dst metadata.BlendFactor) {
	gl.BlendFunc(blendFactors[src], blendFactors[dst])
}

func (d *Device) SetLineStipple(factor int32, pattern uint16) {
	gl.LineStipple(factor, pattern)
}

func (d *Device) SetPolygonOffset(factor, units float32) {
	gl.PolygonOffset(factor, units)
}

func (d *Device) SetLineWidth(width float32) {
	gl.LineWidth(width)
}

func (d *Device) SetPointSize(size float32) {
	gl.PointSize(size)
}

func (d *Device) SetColour(colour math.Vec4) {
	gl.Color4f(colour.X, colour.Y, colour.Z, colour.W)
}

func (d *Device) SelectTextureUnit(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.ClientActiveTexture(gl.TEXTURE0 + uint32(unit))
}

func (d *Device) BindTexture(unit int, target metadata.TextureTarget, texture metadata.TextureHandle) {
	d.SelectTextureUnit(unit)
	gl.BindTexture(textureTargets[target], uint32(texture))
}

func (d *Device) SetTextureWrap(target metadata.TextureTarget, wrap metadata.TextureWrap) {
	gl.TexParameteri(textureTargets[target], gl.TEXTURE_WRAP_S, textureWraps[wrap])
	gl.TexParameteri(textureTargets[target], gl.TEXTURE_WRAP_T, textureWraps[wrap])
}

func (d *Device) LoadTextureMatrix(unit int, matrix math.Mat4) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.MatrixMode(gl.TEXTURE)
	gl.LoadMatrixf(&matrix.Data[0])
	gl.MatrixMode(gl.MODELVIEW)
}

func (d *Device) PushTransform() {
	gl.PushMatrix()
}

func (d *Device) PopTransform() {
	gl.PopMatrix()
}

func (d *Device) MultiplyTransform(matrix math.Mat4) {
	gl.MultMatrixf(&matrix.Data[0])
}

func (d *Device) SetFrontFace(winding metadata.Winding) {
	if winding == metadata.WindingCW {
		gl.FrontFace(gl.CW)
	} else {
		gl.FrontFace(gl.CCW)
	}
}

/**
 * @brief Draws a quad covering the viewport with texture coordinates spanning
 * [0, 1]. The projection and model view matrices are restored afterwards.
 */
func (d *Device) DrawScreenQuad() {
	gl.MatrixMode(gl.PROJECTION)
	gl.PushMatrix()
	gl.LoadIdentity()
	gl.Ortho(0, 1, 0, 1, -1, 1)
	gl.MatrixMode(gl.MODELVIEW)
	gl.PushMatrix()
	gl.LoadIdentity()

	gl.Begin(gl.QUADS)
	gl.TexCoord2f(0, 0)
	gl.Vertex2f(0, 0)
	gl.TexCoord2f(1, 0)
	gl.Vertex2f(1, 0)
	gl.TexCoord2f(1, 1)
	gl.Vertex2f(1, 1)
	gl.TexCoord2f(0, 1)
	gl.Vertex2f(0, 1)
	gl.End()

	gl.MatrixMode(gl.PROJECTION)
	gl.PopMatrix()
	gl.MatrixMode(gl.MODELVIEW)
	gl.PopMatrix()
}

func (d *Device) Submit(renderable metadata.Renderable, info metadata.RenderInfo) {
	renderable.Render(info)
}
