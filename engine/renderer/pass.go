package renderer

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/spaghettifunk/brushwork/engine/math"
	"github.com/spaghettifunk/brushwork/engine/renderer/metadata"
)

type entityGroup struct {
	entity      metadata.RenderEntity
	renderables []metadata.TransformedRenderable
}

/**
 * @brief A bucket of renderables sharing one render state. Each frame the
 * scene graph fills the queues, then the renderer applies the state and
 * flushes the queues through the device.
 */
type ShaderPass struct {
	ID   uint32
	Name string

	device Device
	state  metadata.RenderState

	/** @brief Renderables without an entity, flushed first. */
	untagged []metadata.TransformedRenderable
	/** @brief Renderables grouped by entity, flushed in order of first insertion. */
	groups map[uuid.UUID]*entityGroup
	order  []uuid.UUID
}

func newShaderPass(id uint32, name string, state metadata.RenderState, device Device) *ShaderPass {
	return &ShaderPass{
		ID:     id,
		Name:   name,
		device: device,
		state:  state,
		groups: make(map[uuid.UUID]*entityGroup),
	}
}

/**
 * @brief The state of the pass. The material system may change it between
 * frames; call Renderer.Resort after changing Sort.
 */
func (p *ShaderPass) State() *metadata.RenderState {
	return &p.state
}

/**
 * @brief Queues renderable for the next flush without an entity.
 * light may be nil. Panics on a nil renderable or transform.
 */
func (p *ShaderPass) AddRenderable(renderable metadata.Renderable, transform *math.Mat4, light metadata.RendererLight) {
	mustBeDrawable(renderable, transform)
	p.untagged = append(p.untagged, metadata.TransformedRenderable{
		Renderable: renderable,
		Transform:  transform,
		Light:      light,
	})
}

/**
 * @brief Queues renderable in the group of entity, creating the group on first use.
 * light may be nil. Panics on a nil renderable, transform or entity.
 */
func (p *ShaderPass) AddEntityRenderable(renderable metadata.Renderable, transform *math.Mat4, entity metadata.RenderEntity, light metadata.RendererLight) {
	mustBeDrawable(renderable, transform)
	if entity == nil {
		panic("renderer: nil entity added to pass")
	}
	id := entity.EntityID()
	group, ok := p.groups[id]
	if !ok {
		group = &entityGroup{entity: entity}
		p.groups[id] = group
		p.order = append(p.order, id)
	}
	group.renderables = append(group.renderables, metadata.TransformedRenderable{
		Renderable: renderable,
		Transform:  transform,
		Light:      light,
		Entity:     entity,
	})
}

func mustBeDrawable(renderable metadata.Renderable, transform *math.Mat4) {
	if renderable == nil {
		panic("renderer: nil renderable added to pass")
	}
	if transform == nil {
		panic("renderer: nil transform added to pass")
	}
}

/** @brief Reports whether nothing is queued. */
func (p *ShaderPass) Empty() bool {
	return len(p.untagged) == 0 && len(p.order) == 0
}

/** @brief The number of queued renderables. */
func (p *ShaderPass) Len() int {
	n := len(p.untagged)
	for _, g := range p.groups {
		n += len(g.renderables)
	}
	return n
}

/** @brief Drops everything queued. */
func (p *ShaderPass) Clear() {
	// queued renderables and transforms are borrowed for one frame only
	clear(p.untagged)
	p.untagged = p.untagged[:0]
	clear(p.groups)
	p.order = p.order[:0]
}

/**
 * @brief Reports whether every stage of the pass is visible. A pass with a
 * hidden stage renders nothing.
 */
func (p *ShaderPass) IsActive() bool {
	for _, stage := range p.state.Stages {
		if stage != nil && !stage.IsVisible() {
			return false
		}
	}
	return true
}

func (p *ShaderPass) evaluateStages(time uint64, entity metadata.RenderEntity) {
	for i, stage := range p.state.Stages {
		if stage == nil {
			continue
		}
		stage.EvaluateExpressions(time, entity)

		// the alpha test of the first stage may change over time
		if i == 0 {
			if stage.AlphaTest() > 0 {
				p.state.Flags |= metadata.RenderFlagAlphaTest
			} else {
				p.state.Flags &^= metadata.RenderFlagAlphaTest
			}
		}
	}
}

func (p *ShaderPass) String() string {
	return fmt.Sprintf("%s - %s", p.Name, p.state.String())
}
