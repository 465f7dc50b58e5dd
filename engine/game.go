package engine

/**
 * @brief The callbacks a game hands to the engine. FnRender queues renderables
 * into the passes of app.Renderer; the engine flushes them after it returns.
 */
type Game struct {
	State        interface{}
	FnInitialize Initialize
	FnUpdate     Update
	FnRender     Render
	FnOnResize   OnResize
	FnShutdown   Shutdown
}

type Initialize func(app *Application) error
type Update func(app *Application, deltaTime float64) error
type Render func(app *Application, deltaTime float64) error
type OnResize func(app *Application, width, height int) error
type Shutdown func(app *Application) error
