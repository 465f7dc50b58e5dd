package engine

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/brushwork/engine/config"
	"github.com/spaghettifunk/brushwork/engine/core"
	"github.com/spaghettifunk/brushwork/engine/math"
	"github.com/spaghettifunk/brushwork/engine/renderer/metadata"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(&Game{}, config.Default(), "")
	require.NoError(t, err)
	require.True(t, core.EventSystemInitialize())
	t.Cleanup(func() {
		_ = core.EventSystemShutdown()
		_ = e.app.Jobs.Shutdown()
		_ = e.app.Assets.Shutdown()
	})
	return e
}

func TestFrameParams(t *testing.T) {
	settings := config.Default().Render
	viewer := math.NewVec3(1, 2, 3)

	params := frameParams(settings, viewer, 1500, false)
	assert.Equal(t, metadata.RenderFlagsAll, params.GlobalMask)
	assert.Equal(t, viewer, params.Viewer)
	assert.Equal(t, uint64(1500), params.Time)
	assert.False(t, params.ResetState)

	assert.True(t, frameParams(settings, viewer, 0, true).ResetState)

	settings.ResetState = true
	settings.Wireframe = true
	params = frameParams(settings, viewer, 0, false)
	assert.True(t, params.ResetState)
	assert.False(t, params.GlobalMask.Has(metadata.RenderFlagFill))
}

func TestRemainingFrameMS(t *testing.T) {
	assert.Zero(t, remainingFrameMS(0, 0.001))
	assert.InDelta(t, 15.0, remainingFrameMS(50, 0.005), 1e-9)
	assert.Zero(t, remainingFrameMS(60, 0.5))
}

func TestProjection(t *testing.T) {
	wide := projection(1600, 800)
	square := projection(800, 800)
	assert.InDelta(t, square.XX()/2, wide.XX(), 1e-6)
	assert.Equal(t, square.YY(), wide.YY())

	// a minimised window must not divide by zero
	assert.False(t, gomath.IsNaN(float64(projection(0, 0).XX())))
}

func TestApplyConfigKeepsStartupSettings(t *testing.T) {
	e := newTestEngine(t)
	e.app.resetPending = false

	var published *config.Config
	core.EventRegister(core.EVENT_CODE_CONFIG_RELOADED, "test", func(ctx core.EventContext) bool {
		published = ctx.Data.(*config.Config)
		return true
	})

	cfg := config.Default()
	cfg.Window.Width = 320
	cfg.Assets.Dir = "elsewhere"
	cfg.Render.Wireframe = true
	e.applyConfig(cfg)

	assert.Same(t, cfg, e.app.Config)
	assert.Same(t, cfg, published)
	assert.Equal(t, 1280, e.app.Config.Window.Width)
	assert.Equal(t, "assets", e.app.Config.Assets.Dir)
	assert.True(t, e.app.Config.Render.Wireframe)
	assert.True(t, e.app.resetPending)
}

func TestRenderToggles(t *testing.T) {
	e := newTestEngine(t)

	press := func(key core.KeyCode) bool {
		return e.onKey(core.EventContext{Type: core.EVENT_CODE_KEY_PRESSED, Data: &core.KeyEvent{KeyCode: key}})
	}

	assert.True(t, press(core.KEY_F1))
	assert.True(t, e.app.Config.Render.Wireframe)
	assert.True(t, press(core.KEY_F2))
	assert.False(t, e.app.Config.Render.Lighting)
	assert.True(t, press(core.KEY_F3))
	assert.False(t, e.app.Config.Render.Textures)
	assert.True(t, press(core.KEY_F4))
	assert.True(t, e.app.Config.Render.ResetState)
	assert.False(t, press(core.KEY_W))

	e.isRunning.Store(true)
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onQuit)
	assert.True(t, press(core.KEY_ESCAPE))
	assert.False(t, e.isRunning.Load())
}
