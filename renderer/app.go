// Package renderer runs a GameState inside an ebiten window.
package renderer

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/pixelworld/config"
	"github.com/plus3/pixelworld/ecs"
	"github.com/plus3/pixelworld/ecs/debugui"
	debugui_ebiten "github.com/plus3/pixelworld/ecs/debugui/ebiten"
	"github.com/plus3/pixelworld/engine"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// App implements ebiten.Game on top of a GameState.
type App struct {
	cfg    config.Config
	state  *engine.GameState
	keys   KeyState
	frame  []byte
	logger zerolog.Logger

	debug   bool
	overlay *ecs.Singleton[debugui_ebiten.ImguiBackend]
}

// AppOption configures CreateApp.
type AppOption func(*App)

// WithLogger sets the logger used for window and input events.
func WithLogger(logger zerolog.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// WithKeyState replaces the ebiten keyboard as the input source.
func WithKeyState(keys KeyState) AppOption {
	return func(a *App) {
		a.keys = keys
	}
}

// WithDebugOverlay draws the ECS inspector windows over the game.
func WithDebugOverlay() AppOption {
	return func(a *App) {
		a.debug = true
	}
}

// CreateApp wraps state in an ebiten game sized by cfg. The window is not opened until Run.
func CreateApp(cfg config.Config, state *engine.GameState, opts ...AppOption) *App {
	app := &App{
		cfg:    cfg,
		state:  state,
		keys:   ebitenKeys{},
		frame:  make([]byte, engine.FrameLen(state.Width(), state.Height())),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(app)
	}

	if app.debug {
		width, height := app.windowSize()
		backend := debugui_ebiten.NewImguiBackend(cfg.Title, width, height)
		app.overlay = debugui_ebiten.Install(state.World(), state.Scheduler(), backend)
		app.logger.Info().Msg("debug overlay enabled")
	}

	return app
}

func (a *App) windowSize() (int, int) {
	return int(float64(a.state.Width()) * a.cfg.Scale), int(float64(a.state.Height()) * a.cfg.Scale)
}

// keyboardCaptured reports whether an ImGui widget owns the keyboard this frame.
func (a *App) keyboardCaptured() bool {
	var input *debugui.ImguiInputState
	if !a.state.World().ReadSingleton(&input) {
		return false
	}
	return input.WantCaptureKeyboard
}

func (a *App) Update() error {
	if a.keys.PressDuration(ebiten.KeyEscape) == 1 {
		a.logger.Info().Msg("escape pressed, quitting")
		return ebiten.Termination
	}

	if !a.keyboardCaptured() {
		applyInput(a.keys, a.state)
	}

	if a.overlay != nil {
		a.overlay.Get().BeginFrame()
		defer a.overlay.Get().EndFrame()
	}
	a.state.UpdateEntityPositions()
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	a.state.DrawFrame(a.frame)
	screen.WritePixels(a.frame)

	if a.overlay != nil {
		a.overlay.Get().Draw(screen)
	}
}

// Layout fixes the logical screen to the frame size; ebiten scales it to the window.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if a.overlay != nil {
		a.overlay.Get().Layout(outsideWidth, outsideHeight)
	}
	return a.state.Width(), a.state.Height()
}

// Run opens the window and blocks until it is closed.
func Run(app *App) error {
	width, height := app.windowSize()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(app.cfg.Title)
	ebiten.SetTPS(engine.TicksPerSecond)

	app.logger.Info().
		Int("width", app.state.Width()).
		Int("height", app.state.Height()).
		Float64("scale", app.cfg.Scale).
		Msg("starting game loop")

	if err := ebiten.RunGame(app); err != nil {
		return eris.Wrap(err, "game loop failed")
	}
	return nil
}
