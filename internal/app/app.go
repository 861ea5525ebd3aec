// Package app runs the interactive viewer: window, GL renderer and the frame loop.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/scenepick/internal/config"
	"github.com/Faultbox/scenepick/internal/engine/debug"
	"github.com/Faultbox/scenepick/internal/engine/input"
	"github.com/Faultbox/scenepick/internal/engine/renderer"
	"github.com/Faultbox/scenepick/internal/engine/texture"
	"github.com/Faultbox/scenepick/internal/engine/window"
	"github.com/Faultbox/scenepick/internal/logger"
	"github.com/Faultbox/scenepick/internal/viewer"
)

// Title is the window title.
const Title = "scenepick"

// App is the main viewer instance.
type App struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	skybox   *renderer.Skybox
	input    *input.Input
	ctx      *viewer.Context
	lines    debug.Lines
	keys     viewer.KeyState
	shots    *debug.Screenshotter
	log      *zap.Logger
}

// New creates the window, GL renderer and viewer context, and loads the scene.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg: cfg,
		log: logger.Named("app"),
	}
	a.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	// Create window (this also creates OpenGL context)
	var err error
	a.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	a.renderer, err = renderer.New(renderer.Config{
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		ClearColor: cfg.Graphics.ClearColor,
		Ambient:    [3]float32{0.1, 0.1, 0.1},
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if faces := cfg.Assets.Skybox; len(faces) > 0 {
		a.skybox, err = renderer.NewSkybox(faces, texture.NewFileDecoder(cfg.Assets.MaxTextureSize))
		if err != nil {
			a.log.Warn("skybox disabled", zap.Error(err))
		}
	}

	a.input = input.New()
	a.ctx = viewer.NewContext(cfg, renderer.GLTextureUploader{Anisotropy: 8})
	a.ctx.LoadScene()
	for _, m := range a.ctx.Models {
		renderer.UploadModel(m)
	}

	if w, h := a.window.GetSize(); w > 0 && h > 0 {
		a.renderer.Resize(w, h)
		a.ctx.Resize(w, h)
	}
	a.window.SetMouseCaptured(a.ctx.MouseCaptured)
	a.shots = debug.NewScreenshotter(cfg.Debug.ScreenshotDir, Title)

	a.log.Info("viewer initialized successfully")
	return a, nil
}

// Run starts the main loop.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		for _, event := range a.input.Events() {
			a.handleEvent(event)
		}
		for _, action := range pressedActions(a.input) {
			a.handleAction(action)
		}
		pollHeld(&a.keys)
		a.ctx.HandleKeys(&a.keys, dt)

		// 2. Render
		a.render()

		// 3. Present
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.window.SetTitle(fmt.Sprintf("%s - %d fps - pick: %s", Title, frameCount, a.ctx.Raycaster.Mode))
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleEvent(event input.Event) {
	switch event.Type {
	case input.EventWindowResize:
		a.renderer.Resize(event.Width, event.Height)
		a.ctx.Resize(event.Width, event.Height)
	case input.EventMouseMove:
		a.ctx.HandleMouseMotion(float32(event.DeltaX), float32(event.DeltaY))
	case input.EventMouseDown:
		if event.Button == sdl.BUTTON_LEFT {
			x, y := float32(event.MouseX), float32(event.MouseY)
			if a.ctx.MouseCaptured {
				// A captured cursor has no meaningful position; pick through the centre.
				c := a.ctx.Viewport.Center()
				x, y = c[0], c[1]
			}
			a.ctx.HandleClick(x, y)
		}
	}
}

func (a *App) handleAction(action viewer.Action) {
	switch action {
	case viewer.ActionScreenshot:
		a.screenshot()
	case viewer.ActionToggleCapture:
		a.ctx.HandleAction(action)
		a.window.SetMouseCaptured(a.ctx.MouseCaptured)
	default:
		if !a.ctx.HandleAction(action) {
			a.running = false
		}
	}
}

func (a *App) render() {
	a.renderer.Begin()

	cam := a.ctx.Camera
	view := cam.ViewMatrix()
	proj := cam.Projection(a.ctx.Viewport.Aspect())

	a.skybox.Draw(view, proj)

	a.renderer.BeginLit(renderer.Frame{
		View:       view,
		Projection: proj,
		ViewPos:    cam.Position,
		Lights:     a.ctx.Lights,
	})
	for _, m := range a.ctx.Models {
		a.renderer.DrawModel(m)
	}

	a.ctx.DebugLines(&a.lines)
	a.renderer.DrawLines(&a.lines, proj.Mul4(view))
}

func (a *App) screenshot() {
	w, h := a.renderer.Size()
	path, err := a.shots.CaptureRGBA(a.renderer.ReadPixels(), w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up viewer resources.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.ctx != nil {
		for _, m := range a.ctx.Models {
			renderer.ReleaseModel(m)
		}
		a.ctx.Close()
	}
	a.skybox.Close()
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
