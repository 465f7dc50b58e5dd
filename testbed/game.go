package testbed

import (
	"fmt"
	"image"
	"image/color"

	"github.com/google/uuid"

	"github.com/spaghettifunk/brushwork/engine"
	"github.com/spaghettifunk/brushwork/engine/assets/loaders"
	"github.com/spaghettifunk/brushwork/engine/core"
	"github.com/spaghettifunk/brushwork/engine/math"
	"github.com/spaghettifunk/brushwork/engine/renderer"
	"github.com/spaghettifunk/brushwork/engine/renderer/metadata"
	"github.com/spaghettifunk/brushwork/engine/renderer/opengl"
)

const (
	moveSpeed  = 256.0
	lookSpeed  = 0.005
	spinSpeed  = 45.0
	parmSelect = 0
	labelScale = 0.5
	labelFont  = "fonts/hud"
)

type TestGame struct {
	*engine.Game
}

/**
 * @brief A brush placed in the level. Selected brushes get the highlight
 * pass drawn over them.
 */
type brush struct {
	id        uuid.UUID
	box       *opengl.Box
	transform *math.Transform
	world     math.Mat4
	selected  bool
	spin      bool
}

func (b *brush) EntityID() uuid.UUID { return b.id }

func (b *brush) RequiredShaderFlags() metadata.RenderFlags { return 0 }

func (b *brush) ShaderParm(index int) float32 {
	if index == parmSelect && b.selected {
		return 1
	}
	return 0
}

type gameState struct {
	brushes  []*brush
	selected int

	grid      *opengl.Grid
	gridWorld math.Mat4

	opaque    *renderer.ShaderPass
	glass     *renderer.ShaderPass
	lines     *renderer.ShaderPass
	highlight *renderer.ShaderPass

	// nil when there is no font asset
	label      *opengl.Label
	labelWorld math.Mat4
	labels     *renderer.ShaderPass
}

func NewTestGame() *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			State: &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *TestGame) Initialize(app *engine.Application) error {
	core.LogDebug("TestGame Initialize fn....")
	state := g.state()

	brick := g.texture(app, "textures/brick", checker(64, 8, color.RGBA{R: 150, G: 80, B: 60, A: 255}))
	glass := g.texture(app, "textures/glass", checker(64, 2, color.RGBA{R: 120, G: 170, B: 220, A: 255}))
	spot := app.Textures.Upload("falloff/radial", loaders.RadialFalloff(64))

	opaque := metadata.NewRenderState()
	opaque.Flags = metadata.RenderFlagFill | metadata.RenderFlagDepthTest | metadata.RenderFlagDepthWrite |
		metadata.RenderFlagColourWrite | metadata.RenderFlagCullFace | metadata.RenderFlagTexture2D |
		metadata.RenderFlagSmooth
	opaque.Sort = metadata.SortOpaque
	opaque.Textures[0] = brick
	state.opaque = app.Renderer.CreatePass("textures/brick", opaque)

	scrolling := metadata.NewExpressionStage(glass)
	scrolling.TranslateX = metadata.Scroll(0.1)
	scrolling.Alpha = metadata.Constant(0.5)

	blended := metadata.NewRenderState()
	blended.Flags = metadata.RenderFlagFill | metadata.RenderFlagDepthTest | metadata.RenderFlagColourWrite |
		metadata.RenderFlagBlend | metadata.RenderFlagTexture2D | metadata.RenderFlagSmooth
	blended.Sort = metadata.SortMultiFirst
	blended.Textures[0] = glass
	blended.Stages[0] = scrolling
	state.glass = app.Renderer.CreatePass("textures/glass", blended)

	lines := metadata.NewRenderState()
	lines.Flags = metadata.RenderFlagDepthTest | metadata.RenderFlagDepthWrite | metadata.RenderFlagColourWrite |
		metadata.RenderFlagLineStipple
	lines.Sort = metadata.SortOpaque + 1
	lines.Colour = math.NewVec4(0.5, 0.5, 0.5, 1)
	lines.LineStipplePattern = 0xF0F0
	state.lines = app.Renderer.CreatePass("$grid", lines)

	// flashes on the selected brush only, the pass itself stays active
	flashing := metadata.NewExpressionStage(spot)
	flashing.Visible = metadata.Condition(metadata.EntityParm(parmSelect, 1))
	flashing.Alpha = func(time uint64, _ metadata.RenderEntity) float32 {
		return 0.25 + 0.25*float32(time%1000)/1000
	}

	highlight := metadata.NewRenderState()
	highlight.Flags = metadata.RenderFlagFill | metadata.RenderFlagDepthTest | metadata.RenderFlagColourWrite |
		metadata.RenderFlagBlend | metadata.RenderFlagTexture2D
	highlight.Sort = metadata.SortHighlight
	highlight.PolygonOffset = 1
	highlight.Textures[0] = spot
	highlight.Stages[0] = flashing
	state.highlight = app.Renderer.CreatePass("$highlight", highlight)

	state.brushes = []*brush{
		newBrush(math.NewVec3(-64, 0, -64), math.NewVec3(64, 16, 64), false),
		newBrush(math.NewVec3(-16, 16, -16), math.NewVec3(16, 48, 16), true),
		newBrush(math.NewVec3(96, 0, -32), math.NewVec3(160, 128, 32), false),
	}
	state.brushes[0].box.TextureScale = 4
	state.selected = -1

	state.grid = &opengl.Grid{Extent: 512, Spacing: 32}
	state.gridWorld = math.TransformFromPositionRotation(math.NewVec3Zero(), math.NewVec3(-90, 0, 0)).GetWorld()

	g.loadLabel(app)

	app.Camera.SetPosition(math.NewVec3(0, 96, 320))
	app.Camera.Pitch(math.DegToRad(-15))

	core.EventRegister(core.EVENT_CODE_ASSET_CHANGED, g, func(ctx core.EventContext) bool {
		core.LogDebug("asset changed: %v", ctx.Data)
		return false
	})

	for _, p := range app.Renderer.Passes() {
		core.LogDebug("%s", p)
	}
	return nil
}

/**
 * @brief Uploads fallback as the texture called name, then replaces it with the
 * image asset of the same name once that is decoded.
 */
func (g *TestGame) texture(app *engine.Application, name string, fallback *image.RGBA) metadata.TextureHandle {
	handle := app.Textures.Upload(name, fallback)
	if _, ok := app.Assets.Lookup(name); !ok {
		core.LogDebug("using generated texture for '%s'", name)
		return handle
	}
	err := app.LoadTextureAsync(name, func(_ metadata.TextureHandle, err error) {
		if err != nil {
			core.LogWarn("keeping generated texture for '%s': %s", name, err)
		}
	})
	if err != nil {
		core.LogWarn("loading '%s': %s", name, err)
	}
	return handle
}

/**
 * @brief Creates the pass naming the selected brush when the font asset exists.
 */
func (g *TestGame) loadLabel(app *engine.Application) {
	state := g.state()
	if _, ok := app.Assets.Lookup(labelFont); !ok {
		core.LogDebug("no '%s' font, brush labels disabled", labelFont)
		return
	}
	font, err := app.Assets.LoadFont(labelFont)
	if err != nil {
		core.LogWarn("brush labels disabled: %s", err)
		return
	}

	text := metadata.NewRenderState()
	text.Flags = metadata.RenderFlagFill | metadata.RenderFlagColourWrite | metadata.RenderFlagBlend |
		metadata.RenderFlagTexture2D
	text.Sort = metadata.SortGuiFirst
	text.Colour = math.NewVec4(1, 0.9, 0.3, 1)
	text.Textures[0] = app.Textures.Upload("$"+labelFont, font.Page)
	state.labels = app.Renderer.CreatePass("$label", text)
	state.label = &opengl.Label{Font: font, Scale: labelScale}
}

func newBrush(mins, maxs math.Vec3, spin bool) *brush {
	centre := mins.Add(maxs).MulScalar(0.5)
	return &brush{
		id:        uuid.New(),
		box:       opengl.NewBox(mins.Sub(centre), maxs.Sub(centre)),
		transform: math.TransformFromPosition(centre),
		spin:      spin,
	}
}

func (g *TestGame) Update(app *engine.Application, deltaTime float64) error {
	state := g.state()
	camera := app.Camera
	step := float32(deltaTime) * moveSpeed

	if core.InputIsKeyDown(core.KEY_W) {
		camera.MoveForward(step)
	}
	if core.InputIsKeyDown(core.KEY_S) {
		camera.MoveBackward(step)
	}
	if core.InputIsKeyDown(core.KEY_A) {
		camera.MoveLeft(step)
	}
	if core.InputIsKeyDown(core.KEY_D) {
		camera.MoveRight(step)
	}
	if core.InputIsKeyDown(core.KEY_E) || core.InputIsKeyDown(core.KEY_SPACE) {
		camera.MoveUp(step)
	}
	if core.InputIsKeyDown(core.KEY_Q) {
		camera.MoveDown(step)
	}
	if core.InputIsButtonDown(core.BUTTON_RIGHT) {
		dx, dy := core.InputGetMouseDelta()
		camera.Yaw(-float32(dx) * lookSpeed)
		camera.Pitch(-float32(dy) * lookSpeed)
	}

	if core.InputKeyPressed(core.KEY_TAB) {
		if state.selected >= 0 {
			state.brushes[state.selected].selected = false
		}
		state.selected++
		if state.selected == len(state.brushes) {
			state.selected = -1
		} else {
			state.brushes[state.selected].selected = true
		}
	}

	for _, b := range state.brushes {
		if b.spin {
			b.transform.Rotate(math.NewVec3(0, float32(deltaTime)*spinSpeed, 0))
		}
		b.world = b.transform.GetWorld()
	}

	if state.label != nil && state.selected >= 0 {
		b := state.brushes[state.selected]
		state.label.Text = fmt.Sprintf("brush %d", state.selected)
		width := float32(state.label.Font.MeasureText(state.label.Text)) * labelScale
		above := b.world.Translation().Add(math.NewVec3(-width/2, b.box.Max.Y+8, 0))
		state.labelWorld = math.NewMat4Translation(above)
	}
	return nil
}

func (g *TestGame) Render(app *engine.Application, deltaTime float64) error {
	state := g.state()

	state.lines.AddRenderable(state.grid, &state.gridWorld, nil)
	for i, b := range state.brushes {
		if i == len(state.brushes)-1 {
			state.glass.AddEntityRenderable(b.box, &b.world, b, nil)
		} else {
			state.opaque.AddEntityRenderable(b.box, &b.world, b, nil)
		}
		state.highlight.AddEntityRenderable(b.box, &b.world, b, nil)
	}
	if state.label != nil && state.selected >= 0 {
		state.labels.AddRenderable(state.label, &state.labelWorld, nil)
	}
	return nil
}

func (g *TestGame) OnResize(app *engine.Application, width, height int) error {
	core.LogDebug("testbed resized to %dx%d", width, height)
	return nil
}

func (g *TestGame) Shutdown(app *engine.Application) error {
	core.EventUnregister(core.EVENT_CODE_ASSET_CHANGED, g)
	state := g.state()
	for _, p := range []*renderer.ShaderPass{state.opaque, state.glass, state.lines, state.highlight, state.labels} {
		if p == nil {
			continue
		}
		if err := app.Renderer.DestroyPass(p); err != nil {
			return err
		}
	}
	return nil
}

// checker generates a size x size image of cells x cells squares alternating tint and white.
func checker(size, cells int, tint color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := max(1, size/cells)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, tint)
			} else {
				img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			}
		}
	}
	return img
}
