package engine

import (
	"errors"
	"os"
	"runtime"
	"sync/atomic"

	"github.com/spaghettifunk/brushwork/engine/assets"
	"github.com/spaghettifunk/brushwork/engine/config"
	"github.com/spaghettifunk/brushwork/engine/core"
	"github.com/spaghettifunk/brushwork/engine/math"
	"github.com/spaghettifunk/brushwork/engine/platform"
	"github.com/spaghettifunk/brushwork/engine/renderer"
	"github.com/spaghettifunk/brushwork/engine/renderer/components"
	"github.com/spaghettifunk/brushwork/engine/renderer/metadata"
	"github.com/spaghettifunk/brushwork/engine/renderer/opengl"
	"github.com/spaghettifunk/brushwork/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage Stage
	gameInstance *Game
	app          *Application
	isRunning    atomic.Bool
	isSuspended  bool
	platform     *platform.Platform
	device       *opengl.Device
	configPath   string
	watcher      *config.Watcher
	clock        *core.Clock
	metrics      *core.Metrics
	lastTime     float64
}

/**
 * @brief Creates an engine running g with cfg. When configPath is not empty the
 * file is watched and changes are applied between frames.
 */
func New(g *Game, cfg *config.Config, configPath string) (*Engine, error) {
	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	js, err := systems.NewJobSystem(runtime.NumCPU(), 64)
	if err != nil {
		return nil, err
	}

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		app: &Application{
			Config:   cfg,
			Assets:   am,
			Textures: opengl.NewTextures(),
			Camera:   components.NewCamera(),
			Jobs:     js,
			// the device state is unknown until the first reset
			resetPending: true,
		},
		platform:   platform.New(),
		configPath: configPath,
		clock:      core.NewClock(),
		metrics:    core.NewMetrics(),
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing
	cfg := e.app.Config

	core.SetLogLevel(cfg.LogLevel())

	if err := core.InputInitialize(); err != nil {
		return err
	}
	core.EventSystemInitialize()

	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onQuit)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	core.EventRegister(core.EVENT_CODE_RESIZED, e, e.onResized)

	w := cfg.Window
	if err := e.platform.Startup(w.Title, w.X, w.Y, w.Width, w.Height, w.VSync); err != nil {
		return err
	}

	device, err := opengl.NewDevice()
	if err != nil {
		return err
	}
	e.device = device
	e.app.Renderer = renderer.New(device)

	width, height := e.platform.FramebufferSize()
	e.device.SetViewport(int32(width), int32(height))
	e.app.resize(width, height)

	if _, err := os.Stat(cfg.Assets.Dir); err == nil {
		if err := e.app.Assets.Initialize(cfg.Assets.Dir); err != nil {
			return err
		}
	} else {
		core.LogWarn("assets directory '%s' not found, running without assets", cfg.Assets.Dir)
	}

	if e.configPath != "" {
		watcher, err := config.NewWatcher(e.configPath)
		if err != nil {
			core.LogWarn("configuration changes will not be picked up: %s", err)
		} else {
			e.watcher = watcher
		}
	}

	if err := e.gameInstance.FnInitialize(e.app); err != nil {
		return err
	}
	if err := e.gameInstance.FnOnResize(e.app, width, height); err != nil {
		return err
	}

	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.isRunning.Store(true)

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for e.isRunning.Load() {
		if !e.platform.PumpMessages() {
			break
		}
		e.applyPendingChanges()
		e.app.Jobs.Update()

		if e.isSuspended {
			e.platform.Sleep(100)
			continue
		}

		// Update clock and get delta time.
		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		frameStartTime := platform.GetAbsoluteTime()

		if err := e.gameInstance.FnUpdate(e.app, delta); err != nil {
			core.LogError("Game update failed, shutting down: %s", err)
			return err
		}

		// Call the game's render routine.
		if err := e.gameInstance.FnRender(e.app, delta); err != nil {
			core.LogError("Game render failed, shutting down: %s", err)
			return err
		}

		e.drawFrame()

		// Figure out how long the frame took and, if below the cap, give the rest back to the OS.
		frameElapsedTime := platform.GetAbsoluteTime() - frameStartTime
		e.metrics.Update(frameElapsedTime)
		if remainingMS := remainingFrameMS(e.app.Config.Render.FrameCap, frameElapsedTime); remainingMS > 1 {
			e.platform.Sleep(remainingMS - 1)
		}

		// NOTE: Input update/state copying should always be handled
		// after any input should be recorded; I.E. before this line.
		core.InputUpdate()

		e.lastTime = currentTime
	}
	return nil
}

func (e *Engine) drawFrame() {
	settings := e.app.Config.Render
	camera := e.app.Camera

	e.device.BeginFrame(e.app.Projection, camera.View(), math.Vec4{
		X: settings.ClearColour[0],
		Y: settings.ClearColour[1],
		Z: settings.ClearColour[2],
		W: settings.ClearColour[3],
	})

	stats := e.app.Renderer.Render(frameParams(settings, camera.Position(), e.clock.ElapsedMS(), e.app.resetPending))
	e.app.resetPending = false
	e.metrics.RecordRender(stats.PassesVisited, stats.PassesSkipped, stats.Renderables)

	if err := e.device.CheckErrors(); err != nil {
		core.LogError(err.Error())
	}
	e.platform.SwapBuffers()
}

// Stop asks the frame loop to return. Safe to call from any goroutine.
func (e *Engine) Stop() {
	e.isRunning.Store(false)
}

/**
 * @brief Releases everything Initialize acquired. Must run on the thread that
 * ran the frame loop.
 */
func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown

	var errs []error
	if e.gameInstance.FnShutdown != nil {
		errs = append(errs, e.gameInstance.FnShutdown(e.app))
	}
	if e.watcher != nil {
		errs = append(errs, e.watcher.Close())
	}
	errs = append(errs, e.app.Jobs.Shutdown())
	errs = append(errs, e.app.Assets.Shutdown())
	if e.device != nil {
		e.app.Textures.Destroy()
	}
	errs = append(errs, core.EventSystemShutdown())
	errs = append(errs, core.InputShutdown())
	errs = append(errs, e.platform.Shutdown())
	return errors.Join(errs...)
}

// FPS returns the frames per second and the average frame time in milliseconds.
func (e *Engine) FPS() (float64, float64) {
	return e.metrics.Frame()
}

/**
 * @brief Applies configuration and asset changes noticed since the last
 * frame. Textures that were uploaded before are decoded again in the
 * background.
 */
func (e *Engine) applyPendingChanges() {
	if e.watcher != nil {
		select {
		case cfg := <-e.watcher.Updates():
			e.applyConfig(cfg)
		default:
		}
	}

	for {
		select {
		case name := <-e.app.Assets.Changes():
			if _, uploaded := e.app.Textures.Handle(name); uploaded {
				err := e.app.LoadTextureAsync(name, func(_ metadata.TextureHandle, err error) {
					if err != nil {
						core.LogWarn("reloading texture '%s': %s", name, err)
						return
					}
					core.LogInfo("texture '%s' reloaded", name)
				})
				if err != nil {
					core.LogWarn("reloading texture '%s': %s", name, err)
				}
			}
			core.EventFire(core.EventContext{Type: core.EVENT_CODE_ASSET_CHANGED, Data: name})
		default:
			return
		}
	}
}

func (e *Engine) applyConfig(cfg *config.Config) {
	previous := e.app.Config
	if cfg.Window != previous.Window {
		core.LogWarn("window settings only apply after a restart")
	}
	if cfg.Assets != previous.Assets {
		core.LogWarn("assets directory only applies after a restart")
	}
	cfg.Window = previous.Window
	cfg.Assets = previous.Assets

	core.SetLogLevel(cfg.LogLevel())
	e.app.Config = cfg
	e.app.resetPending = true
	core.EventFire(core.EventContext{Type: core.EVENT_CODE_CONFIG_RELOADED, Data: cfg})
}

func (e *Engine) onQuit(context core.EventContext) bool {
	core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
	e.Stop()
	return true
}

func (e *Engine) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	render := &e.app.Config.Render
	switch ke.KeyCode {
	case core.KEY_ESCAPE:
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
	case core.KEY_F1:
		render.Wireframe = !render.Wireframe
		core.LogInfo("wireframe: %t", render.Wireframe)
	case core.KEY_F2:
		render.Lighting = !render.Lighting
		core.LogInfo("lighting: %t", render.Lighting)
	case core.KEY_F3:
		render.Textures = !render.Textures
		core.LogInfo("textures: %t", render.Textures)
	case core.KEY_F4:
		render.ResetState = !render.ResetState
		core.LogInfo("reset state every frame: %t", render.ResetState)
	case core.KEY_F5:
		fps, ms := e.metrics.Frame()
		core.LogInfo("%.0f fps, %.2f ms, passes %d visited %d skipped, %d renderables",
			fps, ms, e.metrics.PassesVisited, e.metrics.PassesSkipped, e.metrics.Renderables)
	default:
		return false
	}
	return true
}

func (e *Engine) onResized(context core.EventContext) bool {
	se, ok := context.Data.(*core.ResizeEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	if se.Width == e.app.Width && se.Height == e.app.Height {
		return false
	}

	core.LogDebug("Window resize: %d, %d", se.Width, se.Height)

	// Handle minimization
	if se.Width == 0 || se.Height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return false
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}

	e.device.SetViewport(int32(se.Width), int32(se.Height))
	e.app.resize(se.Width, se.Height)
	if err := e.gameInstance.FnOnResize(e.app, se.Width, se.Height); err != nil {
		core.LogError(err.Error())
	}
	return false
}

/**
 * @brief The renderer inputs for one frame under settings. Reset is forced by
 * the engine after anything touched the device outside the renderer.
 */
func frameParams(settings config.RenderSettings, viewer math.Vec3, timeMS uint64, reset bool) renderer.FrameParams {
	return renderer.FrameParams{
		GlobalMask: settings.StateMask(),
		Viewer:     viewer,
		Time:       timeMS,
		ResetState: reset || settings.ResetState,
	}
}

/**
 * @brief The milliseconds left in the frame budget of frameCap frames per
 * second after a frame that took elapsed seconds. 0 when uncapped.
 */
func remainingFrameMS(frameCap int, elapsed float64) float64 {
	if frameCap <= 0 {
		return 0
	}
	remaining := (1.0/float64(frameCap) - elapsed) * 1000
	if remaining < 0 {
		return 0
	}
	return remaining
}
