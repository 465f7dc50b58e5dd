package renderer

import (
	"github.com/spaghettifunk/brushwork/engine/math"
	"github.com/spaghettifunk/brushwork/engine/renderer/metadata"
)

/**
 * @brief Applies the pass state and draws everything queued, then empties the
 * queues. Untagged renderables go first, then each entity group in insertion
 * order with the state re-applied for that entity. Groups whose state leaves
 * a stage hidden are skipped.
 *
 * @return The number of renderables submitted to the device.
 */
func (p *ShaderPass) Render(current *metadata.RenderState, globalMask metadata.RenderFlags, viewer math.Vec3, time uint64) int {
	defer p.Clear()

	p.device.LoadTextureMatrix(0, math.NewMat4Identity())

	p.ApplyState(current, globalMask, viewer, time, nil)

	if globalMask&p.state.Flags&metadata.RenderFlagScreen != 0 {
		p.device.DrawScreenQuad()
		return 0
	}

	submitted := 0
	if len(p.untagged) > 0 {
		submitted += p.renderAllContained(p.untagged, current, viewer, time)
	}

	for _, id := range p.order {
		group := p.groups[id]

		p.ApplyState(current, globalMask, viewer, time, group.entity)
		if !p.IsActive() {
			continue
		}

		submitted += p.renderAllContained(group.renderables, current, viewer, time)
	}
	return submitted
}

/**
 * @brief Draws renderables in order. The world transform is only re-issued
 * when a renderable's transform is a different matrix from the previous one.
 */
func (p *ShaderPass) renderAllContained(renderables []metadata.TransformedRenderable, current *metadata.RenderState, viewer math.Vec3, time uint64) int {
	d := p.device
	var transform *math.Mat4

	d.PushTransform()

	for _, r := range renderables {
		if transform == nil || (transform != r.Transform && !transform.IsAffineEqual(*r.Transform)) {
			transform = r.Transform
			d.PopTransform()
			d.PushTransform()
			d.MultiplyTransform(*transform)

			if current.Flags&metadata.RenderFlagCullFace != 0 && transform.Handedness() == math.RightHanded {
				d.SetFrontFace(metadata.WindingCW)
			} else {
				d.SetFrontFace(metadata.WindingCCW)
			}
		}

		if current.Program != nil && r.Light != nil {
			p.setUpLightingCalculation(current, r.Light, viewer, *transform, time)
		}

		d.Submit(r.Renderable, metadata.RenderInfo{
			Flags:       current.Flags,
			Viewer:      viewer,
			CubeMapMode: current.CubeMapMode,
		})
	}

	d.PopTransform()
	return len(renderables)
}

/**
 * @brief Binds the falloff textures of light and hands the per-object lighting
 * parameters to the current program.
 */
func (p *ShaderPass) setUpLightingCalculation(current *metadata.RenderState, light metadata.RendererLight, viewer math.Vec3, objTransform math.Mat4, time uint64) {
	shader := light.LightShader()
	if shader == nil {
		return
	}
	layer := shader.FirstLayer()
	if layer == nil {
		return
	}

	osViewer := objTransform.AffineInverse().TransformPoint(viewer)

	layer.EvaluateExpressions(time, light)

	p.bindFalloff(current, metadata.LightFalloffXYUnit, layer.Texture())
	p.bindFalloff(current, metadata.LightFalloffZUnit, shader.FalloffTexture())

	ambient := float32(0)
	if shader.IsAmbientLight() {
		ambient = 1
	}

	current.Program.ApplyRenderParams(metadata.LightingParams{
		ViewerObjectSpace: osViewer,
		ObjectTransform:   objTransform,
		LightOrigin:       light.LightOrigin(),
		LightColour:       layer.Colour(),
		WorldToLight:      light.LightTextureTransformation(),
		AmbientFactor:     ambient,
	})
	p.device.SelectTextureUnit(0)
}

func (p *ShaderPass) bindFalloff(current *metadata.RenderState, unit int, texture metadata.TextureHandle) {
	if texture != current.Textures[unit] {
		p.device.BindTexture(unit, metadata.TextureTarget2D, texture)
		current.Textures[unit] = texture
	} else {
		p.device.SelectTextureUnit(unit)
	}
	p.device.SetTextureWrap(metadata.TextureTarget2D, metadata.TextureWrapClampToBorder)
}
