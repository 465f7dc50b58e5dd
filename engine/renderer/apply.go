package renderer

import (
	"github.com/spaghettifunk/brushwork/engine/math"
	"github.com/spaghettifunk/brushwork/engine/renderer/metadata"
)

var (
	transMinusHalf = math.NewMat4Translation(math.NewVec3(-0.5, -0.5, 0))
	transPlusHalf  = math.NewMat4Translation(math.NewVec3(+0.5, +0.5, 0))

	// swaps the Y and Z axes for cube map lookups
	cubeMapAxes = math.NewMat4ByRows(
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
	)
)

func enabling(changing, required, flag metadata.RenderFlags) bool {
	return changing&required&flag != 0
}

func disabling(changing, required, flag metadata.RenderFlags) bool {
	return changing&^required&flag != 0
}

// setState toggles capability when flag is part of the change set.
func (p *ShaderPass) setState(required, changing, flag metadata.RenderFlags, capability metadata.Capability) {
	if enabling(changing, required, flag) {
		p.device.SetCapability(capability, true)
	} else if disabling(changing, required, flag) {
		p.device.SetCapability(capability, false)
	}
}

/**
 * @brief Brings the device from the state recorded in current to the state this
 * pass requires and updates current to match. Only differences are emitted.
 *
 * @param current The state the device is in. Updated in place.
 * @param globalMask The flags allowed this frame.
 * @param viewer The world space viewer position.
 * @param time The frame time in milliseconds.
 * @param entity The entity about to be rendered, or nil.
 */
func (p *ShaderPass) ApplyState(current *metadata.RenderState, globalMask metadata.RenderFlags, viewer math.Vec3, time uint64, entity metadata.RenderEntity) {
	p.evaluateStages(time, entity)

	if p.state.Flags&metadata.RenderFlagOverride != 0 {
		globalMask |= metadata.RenderFlagFill | metadata.RenderFlagDepthWrite
	}

	required := p.state.Flags & globalMask
	if entity != nil {
		required |= entity.RequiredShaderFlags()
	}

	changing := required ^ current.Flags

	p.applyProgram(current, required)

	if changing != 0 {
		p.applyFlags(current, required, changing)
	}

	d := p.device

	if required&metadata.RenderFlagDepthTest != 0 && p.state.DepthFunc != current.DepthFunc {
		d.SetDepthFunc(p.state.DepthFunc)
		current.DepthFunc = p.state.DepthFunc
	}

	if required&metadata.RenderFlagLineStipple != 0 &&
		(p.state.LineStippleFactor != current.LineStippleFactor || p.state.LineStipplePattern != current.LineStipplePattern) {
		d.SetLineStipple(p.state.LineStippleFactor, p.state.LineStipplePattern)
		current.LineStippleFactor = p.state.LineStippleFactor
		current.LineStipplePattern = p.state.LineStipplePattern
	}

	if required&metadata.RenderFlagAlphaTest != 0 &&
		(p.state.AlphaFunc != current.AlphaFunc || p.state.AlphaThreshold != current.AlphaThreshold) {
		d.SetAlphaFunc(p.state.AlphaFunc, p.state.AlphaThreshold)
		current.AlphaFunc = p.state.AlphaFunc
		current.AlphaThreshold = p.state.AlphaThreshold
	}

	if p.state.PolygonOffset != current.PolygonOffset {
		current.PolygonOffset = p.state.PolygonOffset
		if current.PolygonOffset > 0 {
			d.SetCapability(metadata.CapabilityPolygonOffsetFill, true)
			d.SetPolygonOffset(-1, -current.PolygonOffset)
		} else {
			d.SetCapability(metadata.CapabilityPolygonOffsetFill, false)
		}
	}

	p.applyAllTextures(current, required)

	if stage := p.state.Stages[0]; stage != nil {
		p.state.Colour = stage.Colour()
	}
	if p.state.Colour != current.Colour {
		d.SetColour(p.state.Colour)
		current.Colour = p.state.Colour
	}

	p.setUpCubeMapAndTexGen(current, required, viewer)

	if required&metadata.RenderFlagBlend != 0 &&
		(p.state.BlendSrc != current.BlendSrc || p.state.BlendDst != current.BlendDst) {
		d.SetBlendFunc(p.state.BlendSrc, p.state.BlendDst)
		current.BlendSrc = p.state.BlendSrc
		current.BlendDst = p.state.BlendDst
	}

	if required&metadata.RenderFlagFill == 0 && p.state.LineWidth != current.LineWidth {
		d.SetLineWidth(p.state.LineWidth)
		current.LineWidth = p.state.LineWidth
	}

	if required&metadata.RenderFlagFill == 0 && p.state.PointSize != current.PointSize {
		d.SetPointSize(p.state.PointSize)
		current.PointSize = p.state.PointSize
	}

	current.Flags = required
}

// applyProgram switches programs. Disabling a program re-sends the current colour.
func (p *ShaderPass) applyProgram(current *metadata.RenderState, required metadata.RenderFlags) {
	var program metadata.Program
	if required&metadata.RenderFlagProgram != 0 {
		program = p.state.Program
	}
	if program == current.Program {
		return
	}
	if current.Program != nil {
		current.Program.Disable()
		p.device.SetColour(current.Colour)
	}
	current.Program = program
	if program != nil {
		program.Enable()
	}
}

func (p *ShaderPass) applyFlags(current *metadata.RenderState, required, changing metadata.RenderFlags) {
	d := p.device

	if enabling(changing, required, metadata.RenderFlagFill) {
		d.SetPolygonMode(metadata.PolygonModeFill)
	} else if disabling(changing, required, metadata.RenderFlagFill) {
		d.SetPolygonMode(metadata.PolygonModeLine)
	}

	p.setState(required, changing, metadata.RenderFlagOffsetLine, metadata.CapabilityPolygonOffsetLine)

	if enabling(changing, required, metadata.RenderFlagLighting) {
		d.SetCapability(metadata.CapabilityLighting, true)
		d.SetCapability(metadata.CapabilityColourMaterial, true)
		d.SetClientArray(metadata.ClientArrayNormal, true)
	} else if disabling(changing, required, metadata.RenderFlagLighting) {
		d.SetCapability(metadata.CapabilityLighting, false)
		d.SetCapability(metadata.CapabilityColourMaterial, false)
		d.SetClientArray(metadata.ClientArrayNormal, false)
	}

	if enabling(changing, required, metadata.RenderFlagTextureCubeMap) {
		p.enableTexturing(metadata.CapabilityTextureCubeMap)
	} else if disabling(changing, required, metadata.RenderFlagTextureCubeMap) {
		p.disableTexturing(current, metadata.CapabilityTextureCubeMap, metadata.TextureTargetCubeMap)
	}

	if enabling(changing, required, metadata.RenderFlagTexture2D) {
		p.enableTexturing(metadata.CapabilityTexture2D)
	} else if disabling(changing, required, metadata.RenderFlagTexture2D) {
		p.disableTexturing(current, metadata.CapabilityTexture2D, metadata.TextureTarget2D)
	}

	p.setState(required, changing, metadata.RenderFlagBlend, metadata.CapabilityBlend)
	p.setState(required, changing, metadata.RenderFlagCullFace, metadata.CapabilityCullFace)

	if enabling(changing, required, metadata.RenderFlagSmooth) {
		d.SetShadeModel(metadata.ShadeModelSmooth)
	} else if disabling(changing, required, metadata.RenderFlagSmooth) {
		d.SetShadeModel(metadata.ShadeModelFlat)
	}

	p.setState(required, changing, metadata.RenderFlagScaled, metadata.CapabilityNormalize)
	p.setState(required, changing, metadata.RenderFlagDepthTest, metadata.CapabilityDepthTest)

	if enabling(changing, required, metadata.RenderFlagDepthWrite) {
		d.SetDepthMask(true)
	} else if disabling(changing, required, metadata.RenderFlagDepthWrite) {
		d.SetDepthMask(false)
	}

	if enabling(changing, required, metadata.RenderFlagColourWrite) {
		d.SetColourMask(true)
	} else if disabling(changing, required, metadata.RenderFlagColourWrite) {
		d.SetColourMask(false)
	}

	p.setState(required, changing, metadata.RenderFlagAlphaTest, metadata.CapabilityAlphaTest)

	if enabling(changing, required, metadata.RenderFlagColourArray) {
		d.SetClientArray(metadata.ClientArrayColour, true)
	} else if disabling(changing, required, metadata.RenderFlagColourArray) {
		d.SetClientArray(metadata.ClientArrayColour, false)
		d.SetColour(p.state.Colour)
		current.Colour = p.state.Colour
	}

	if disabling(changing, required, metadata.RenderFlagColourChange) {
		d.SetColour(p.state.Colour)
		current.Colour = p.state.Colour
	}

	p.setState(required, changing, metadata.RenderFlagLineStipple, metadata.CapabilityLineStipple)
	p.setState(required, changing, metadata.RenderFlagLineSmooth, metadata.CapabilityLineSmooth)
	p.setState(required, changing, metadata.RenderFlagPolygonStipple, metadata.CapabilityPolygonStipple)
	p.setState(required, changing, metadata.RenderFlagPolygonSmooth, metadata.CapabilityPolygonSmooth)
}

func (p *ShaderPass) enableTexturing(capability metadata.Capability) {
	p.device.SelectTextureUnit(0)
	p.device.SetCapability(capability, true)
	p.device.SetClientArray(metadata.ClientArrayTexCoord, true)
}

// disableTexturing also unbinds unit 0 so the next enable starts from a known binding.
func (p *ShaderPass) disableTexturing(current *metadata.RenderState, capability metadata.Capability, target metadata.TextureTarget) {
	p.device.SelectTextureUnit(0)
	p.device.SetCapability(capability, false)
	p.device.BindTexture(0, target, 0)
	p.device.SetClientArray(metadata.ClientArrayTexCoord, false)
	current.Textures[0] = 0
}

/**
 * @brief Binds the textures of every unit whose handle differs from current and
 * loads each unit's texture matrix. Nothing happens unless 2D or cube map
 * texturing is required; cube maps win when both are.
 */
func (p *ShaderPass) applyAllTextures(current *metadata.RenderState, required metadata.RenderFlags) {
	target := metadata.TextureTargetNone
	if required&metadata.RenderFlagTextureCubeMap != 0 {
		target = metadata.TextureTargetCubeMap
	} else if required&metadata.RenderFlagTexture2D != 0 {
		target = metadata.TextureTarget2D
	}
	if target == metadata.TextureTargetNone {
		return
	}

	for unit := 0; unit < metadata.MaxTextureUnits; unit++ {
		if texture := p.state.Textures[unit]; texture != current.Textures[unit] {
			p.device.BindTexture(unit, target, texture)
			current.Textures[unit] = texture
		}
		p.device.LoadTextureMatrix(unit, TextureMatrix(p.state.Stages[unit]))
	}

	p.device.SelectTextureUnit(0)
}

/**
 * @brief Computes the texture matrix of a stage: scale, shear, rotation and
 * finally translation. Centre scaling, shear and rotation are each wrapped in
 * translations by -0.5 and +0.5. A nil stage yields identity.
 */
func TextureMatrix(stage metadata.Stage) math.Mat4 {
	tex := math.NewMat4Identity()
	if stage == nil {
		return tex
	}

	scale := stage.Scale()
	if stage.CenterScale() {
		tex.MultiplyBy(transMinusHalf)
		tex.ScaleBy(math.NewVec3(scale.X, scale.Y, 1))
		tex.MultiplyBy(transPlusHalf)
	} else {
		tex.ScaleBy(math.NewVec3(scale.X, scale.Y, 1))
	}

	if shear := stage.Shear(); shear.X != 0 || shear.Y != 0 {
		shearMatrix := math.NewMat4ByColumns(
			1, shear.Y, 0, 0,
			shear.X, 1, 0, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		)
		tex.MultiplyBy(transMinusHalf)
		tex.MultiplyBy(shearMatrix)
		tex.MultiplyBy(transPlusHalf)
	}

	if rotate := stage.Rotation(); rotate != 0 {
		tex.MultiplyBy(transMinusHalf)
		tex.MultiplyBy(math.NewMat4RotationAboutZ(rotate * math.K_PI_2))
		tex.MultiplyBy(transPlusHalf)
	}

	translation := stage.Translation()
	tex.TranslateBy(math.NewVec3(translation.X, translation.Y, 0))
	return tex
}

// setUpCubeMapAndTexGen points cube map lookups at the viewer.
func (p *ShaderPass) setUpCubeMapAndTexGen(current *metadata.RenderState, required metadata.RenderFlags, viewer math.Vec3) {
	if required&metadata.RenderFlagTextureCubeMap == 0 {
		return
	}
	current.CubeMapMode = p.state.CubeMapMode

	transform := cubeMapAxes
	transform.TranslateBy(viewer.Negate())
	p.device.LoadTextureMatrix(0, transform)
}
