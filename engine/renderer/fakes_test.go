package renderer

import (
	"github.com/google/uuid"

	"github.com/spaghettifunk/brushwork/engine/math"
	"github.com/spaghettifunk/brushwork/engine/renderer/metadata"
	"github.com/spaghettifunk/brushwork/engine/renderer/recorder"
)

var _ Device = (*recorder.Device)(nil)

type fakeEntity struct {
	id    uuid.UUID
	flags metadata.RenderFlags
	parms [12]float32
}

func newFakeEntity() *fakeEntity {
	return &fakeEntity{id: uuid.New()}
}

func (e *fakeEntity) EntityID() uuid.UUID                       { return e.id }
func (e *fakeEntity) RequiredShaderFlags() metadata.RenderFlags { return e.flags }
func (e *fakeEntity) ShaderParm(index int) float32              { return e.parms[index] }

type fakeProgram struct {
	name     string
	enabled  int
	disabled int
	params   []metadata.LightingParams
}

func (p *fakeProgram) Enable()  { p.enabled++ }
func (p *fakeProgram) Disable() { p.disabled++ }
func (p *fakeProgram) ApplyRenderParams(params metadata.LightingParams) {
	p.params = append(p.params, params)
}

type fakeLightShader struct {
	layer   metadata.Stage
	falloff metadata.TextureHandle
	ambient bool
}

func (s *fakeLightShader) FirstLayer() metadata.Stage             { return s.layer }
func (s *fakeLightShader) FalloffTexture() metadata.TextureHandle { return s.falloff }
func (s *fakeLightShader) IsAmbientLight() bool                   { return s.ambient }

type fakeLight struct {
	fakeEntity
	shader    *fakeLightShader
	origin    math.Vec3
	transform math.Mat4
}

func (l *fakeLight) LightShader() metadata.LightShader { return l.shader }
func (l *fakeLight) LightOrigin() math.Vec3            { return l.origin }
func (l *fakeLight) LightTextureTransformation() math.Mat4 {
	return l.transform
}

// drawn records the order renderables were drawn in.
type drawn struct {
	names []string
	infos []metadata.RenderInfo
}

func (d *drawn) renderable(name string) metadata.Renderable {
	return metadata.RenderableFunc(func(info metadata.RenderInfo) {
		d.names = append(d.names, name)
		d.infos = append(d.infos, info)
	})
}

func noop() metadata.Renderable {
	return metadata.RenderableFunc(func(metadata.RenderInfo) {})
}

// stateWith returns a default state with flags set.
func stateWith(flags metadata.RenderFlags) metadata.RenderState {
	s := metadata.NewRenderState()
	s.Flags = flags
	return s
}

// emptyCurrent is an accumulator with nothing enabled.
func emptyCurrent() *metadata.RenderState {
	s := metadata.NewRenderState()
	return &s
}
