package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/brushwork/engine/math"
	"github.com/spaghettifunk/brushwork/engine/renderer/metadata"
	"github.com/spaghettifunk/brushwork/engine/renderer/recorder"
)

func sorted(sort int) metadata.RenderState {
	s := metadata.NewRenderState()
	s.Sort = sort
	return s
}

func names(passes []*ShaderPass) []string {
	out := make([]string, len(passes))
	for i, p := range passes {
		out[i] = p.Name
	}
	return out
}

func TestRendererPassOrder(t *testing.T) {
	r := New(recorder.New())

	b := r.CreatePass("b", sorted(metadata.SortMultiFirst))
	a := r.CreatePass("a", sorted(metadata.SortOpaque))
	c := r.CreatePass("c", sorted(metadata.SortMultiFirst))
	gui := r.CreatePass("gui", sorted(metadata.SortGuiFirst))
	assert.Equal(t, []string{"a", "b", "c", "gui"}, names(r.Passes()))

	b.State().Sort = metadata.SortFirst
	r.Resort()
	assert.Equal(t, []string{"b", "a", "c", "gui"}, names(r.Passes()))

	require.NoError(t, r.DestroyPass(a))
	assert.Equal(t, []string{"b", "c", "gui"}, names(r.Passes()))
	assert.ErrorIs(t, r.DestroyPass(a), ErrUnknownPass)

	assert.Same(t, c, r.Pass(c.ID))
	assert.Same(t, gui, r.Pass(gui.ID))
	assert.Nil(t, r.Pass(a.ID))

	// freed ids are handed out again
	d := r.CreatePass("d", sorted(metadata.SortLast))
	assert.Equal(t, a.ID, d.ID)
	assert.Equal(t, []string{"b", "c", "gui", "d"}, names(r.Passes()))
}

func TestRendererPassesIsACopy(t *testing.T) {
	r := New(recorder.New())
	r.CreatePass("only", sorted(metadata.SortOpaque))

	passes := r.Passes()
	passes[0] = nil
	assert.NotNil(t, r.Passes()[0])
}

func TestRendererTextureBindsAcrossPasses(t *testing.T) {
	dev := recorder.New()
	r := New(dev)
	transform := math.NewMat4Identity()

	for _, name := range []string{"first", "second", "third"} {
		state := stateWith(metadata.RenderFlagTexture2D)
		state.Sort = metadata.SortOpaque
		state.Textures[0] = 5
		pass := r.CreatePass(name, state)
		pass.AddRenderable(noop(), &transform, nil)
	}
	state := stateWith(metadata.RenderFlagTexture2D)
	state.Sort = metadata.SortOpaque
	state.Textures[0] = 6
	r.CreatePass("fourth", state).AddRenderable(noop(), &transform, nil)

	stats := r.Render(FrameParams{GlobalMask: metadata.RenderFlagsAll})

	assert.Equal(t, FrameStats{PassesVisited: 4, Renderables: 4}, stats)
	assert.Equal(t, 1, dev.Count(recorder.OpBindTexture, 0, metadata.TextureTarget2D, metadata.TextureHandle(5)))
	assert.Equal(t, 1, dev.Count(recorder.OpBindTexture, 0, metadata.TextureTarget2D, metadata.TextureHandle(6)))
	assert.Equal(t, 2, dev.Count(recorder.OpBindTexture))
	assert.Equal(t, 1, dev.Count(recorder.OpSetCapability, metadata.CapabilityTexture2D, true))
	assert.Equal(t, metadata.TextureHandle(6), r.Current().Textures[0])
}

func TestRendererSkipsHiddenPasses(t *testing.T) {
	dev := recorder.New()
	r := New(dev)
	transform := math.NewMat4Identity()
	d := &drawn{}

	visible := r.CreatePass("visible", sorted(metadata.SortOpaque))
	visible.AddRenderable(d.renderable("v1"), &transform, nil)
	visible.AddRenderable(d.renderable("v2"), &transform, nil)

	stage := metadata.NewExpressionStage(0)
	stage.Visible = metadata.Constant(0)
	state := sorted(metadata.SortMultiFirst)
	state.Stages[0] = stage
	hidden := r.CreatePass("hidden", state)
	hidden.AddRenderable(d.renderable("h1"), &transform, nil)

	last := r.CreatePass("last", sorted(metadata.SortGuiFirst))
	last.AddRenderable(d.renderable("l1"), &transform, nil)

	stats := r.Render(FrameParams{GlobalMask: metadata.RenderFlagsAll})

	assert.Equal(t, FrameStats{PassesVisited: 2, PassesSkipped: 1, Renderables: 3}, stats)
	assert.Equal(t, []string{"v1", "v2", "l1"}, d.names)
	assert.True(t, hidden.Empty())
	assert.True(t, visible.Empty())
	assert.True(t, last.Empty())
}

func TestRendererCarriesStateBetweenFrames(t *testing.T) {
	dev := recorder.New()
	r := New(dev)
	transform := math.NewMat4Identity()
	pass := r.CreatePass("blend", stateWith(metadata.RenderFlagBlend|metadata.RenderFlagFill|metadata.RenderFlagDepthWrite|metadata.RenderFlagColourWrite))

	pass.AddRenderable(noop(), &transform, nil)
	r.Render(FrameParams{GlobalMask: metadata.RenderFlagsAll})
	assert.Equal(t, 1, dev.Count(recorder.OpSetCapability, metadata.CapabilityBlend, true))

	dev.Reset()
	pass.AddRenderable(noop(), &transform, nil)
	r.Render(FrameParams{GlobalMask: metadata.RenderFlagsAll})
	assert.Zero(t, dev.Count(recorder.OpSetCapability))

	// a reset frame starts from scratch
	dev.Reset()
	pass.AddRenderable(noop(), &transform, nil)
	r.Render(FrameParams{GlobalMask: metadata.RenderFlagsAll, ResetState: true})
	assert.Equal(t, 1, dev.Count(recorder.OpSetCapability, metadata.CapabilityBlend, true))
	assert.Equal(t, 1, dev.Count(recorder.OpSetCapability, metadata.CapabilityBlend, false))
}

func TestRendererResetState(t *testing.T) {
	dev := recorder.New()
	r := New(dev)
	program := &fakeProgram{name: "stale"}
	r.Current().Program = program
	r.Current().Textures[2] = 4
	r.Current().Flags = metadata.RenderFlagBlend

	r.ResetState()

	assert.Equal(t, 1, program.disabled)
	assert.Equal(t, 15, dev.Count(recorder.OpSetCapability))
	for _, c := range dev.Filter(recorder.OpSetCapability) {
		assert.Equal(t, false, c.Args[1], c.String())
	}
	assert.Equal(t, 3, dev.Count(recorder.OpSetClientArray))
	assert.Equal(t, metadata.MaxTextureUnits, dev.Count(recorder.OpBindTexture))
	assert.Equal(t, metadata.MaxTextureUnits, dev.Count(recorder.OpLoadTextureMatrix))
	assert.Equal(t, 1, dev.Count(recorder.OpSetPolygonMode, metadata.PolygonModeFill))
	assert.Equal(t, 1, dev.Count(recorder.OpSetFrontFace, metadata.WindingCCW))

	current := r.Current()
	assert.Equal(t, ResetFlags, current.Flags)
	assert.Nil(t, current.Program)
	assert.Equal(t, metadata.TextureHandle(0), current.Textures[2])
	assert.Equal(t, math.NewVec4One(), current.Colour)
}

func TestRendererEmptyFrame(t *testing.T) {
	dev := recorder.New()
	r := New(dev)
	r.CreatePass("idle", sorted(metadata.SortOpaque))

	stats := r.Render(FrameParams{GlobalMask: metadata.RenderFlagsAll})
	assert.Equal(t, FrameStats{PassesVisited: 1}, stats)
	assert.Zero(t, dev.Count(recorder.OpSubmit))
}
