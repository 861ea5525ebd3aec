// Package viewer holds the application state of the scene viewer: camera,
// picking, lights and loaded models. It has no window or GL dependency.
package viewer

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/scenepick/internal/config"
	"github.com/Faultbox/scenepick/internal/engine/camera"
	"github.com/Faultbox/scenepick/internal/engine/debug"
	"github.com/Faultbox/scenepick/internal/engine/lighting"
	"github.com/Faultbox/scenepick/internal/engine/picking"
	"github.com/Faultbox/scenepick/internal/engine/scene"
	"github.com/Faultbox/scenepick/internal/engine/texture"
	"github.com/Faultbox/scenepick/internal/logger"
)

// Rates for held light controls.
const (
	LightMoveSpeed float32 = 3 // units per second
	IntensityRate  float32 = 3 // intensity per second
)

// referenceCubePosition is where the lit reference cube sits.
var referenceCubePosition = mgl32.Vec3{0, -1, 0}

// Context owns everything a viewer session mutates: camera, picking, lights,
// texture cache and loaded models. It has no window or GL dependency.
type Context struct {
	Camera    *camera.FlyCamera
	Raycaster picking.Raycaster
	Lights    *lighting.LightSet
	Textures  *texture.Cache
	Importer  *scene.Importer
	Models    []*scene.Model
	Viewport  picking.Viewport

	// LastRay is the most recent pick ray, nil until the first click.
	LastRay *picking.Ray

	ShowRay       bool
	ShowBounds    bool
	LogPicks      bool
	MouseCaptured bool

	cfg *config.Config
	log *zap.Logger
}

// NewContext builds a session from cfg. Textures are decoded with a
// FileDecoder honoring the configured size limit and handed to uploader.
func NewContext(cfg *config.Config, uploader texture.Uploader) *Context {
	log := logger.Named("viewer")

	cam := camera.NewFlyCamera(mgl32.Vec3(cfg.Camera.Position), cfg.Camera.Yaw, cfg.Camera.Pitch)
	cam.MovementSpeed = cfg.Camera.Speed
	cam.MouseSensitivity = cfg.Camera.Sensitivity
	cam.FOV = cfg.Camera.FOV
	cam.Near = cfg.Camera.Near
	cam.Far = cfg.Camera.Far

	mode, err := picking.ParseMode(cfg.Picking.Mode)
	if err != nil {
		log.Warn("invalid picking mode, using screen", zap.Error(err))
	}

	cache := texture.NewCache(texture.NewFileDecoder(cfg.Assets.MaxTextureSize), uploader, nil)

	return &Context{
		Camera:        cam,
		Raycaster:     picking.Raycaster{Mode: mode},
		Lights:        LightsFromConfig(cfg.Lights, log),
		Textures:      cache,
		Importer:      scene.NewImporter(nil, cache, nil),
		Viewport:      picking.Viewport{Width: float32(cfg.Graphics.Width), Height: float32(cfg.Graphics.Height)},
		ShowRay:       cfg.Debug.ShowRay,
		ShowBounds:    cfg.Debug.ShowBounds,
		LogPicks:      cfg.Debug.LogPicks,
		MouseCaptured: true,
		cfg:           cfg,
		log:           log,
	}
}

// LightsFromConfig converts configured lights. Unknown kinds fall back to
// point lights; lights beyond the shader limit are dropped with a warning.
func LightsFromConfig(cfgs []config.LightConfig, log *zap.Logger) *lighting.LightSet {
	set := lighting.NewLightSet()
	for i, lc := range cfgs {
		kind, err := lighting.ParseKind(lc.Kind)
		if err != nil {
			log.Warn("invalid light kind, using point", zap.Int("light", i), zap.Error(err))
		}
		l := lighting.Light{
			Kind:        kind,
			Position:    mgl32.Vec3(lc.Position),
			Direction:   mgl32.Vec3(lc.Direction),
			Color:       mgl32.Vec3(lc.Color),
			Intensity:   lc.Intensity,
			Constant:    lc.Constant,
			Linear:      lc.Linear,
			Quadratic:   lc.Quadratic,
			CutOff:      lc.CutOff,
			OuterCutOff: lc.OuterCutOff,
		}
		if kind == lighting.Directional && l.Direction.Len() == 0 {
			l.Direction = lighting.SunDirection(lc.Longitude, lc.Latitude).Mul(-1)
		}
		if !set.Add(l) {
			log.Warn("too many lights, dropping", zap.Int("light", i), zap.Stringer("kind", kind))
		}
	}
	return set
}

// LoadScene imports every configured model, plus the reference cube when
// enabled. Import failures leave an empty model in place.
func (c *Context) LoadScene() {
	for _, mc := range c.cfg.Assets.Models {
		m := scene.LoadModel(c.Importer, mc.Path)
		m.SetTransform(mgl32.Vec3(mc.Position), mgl32.Vec3(mc.Rotation), mgl32.Vec3(mc.Scale))
		c.Models = append(c.Models, m)

		v, tris, tex := m.Stats()
		c.log.Info("model loaded",
			zap.String("path", mc.Path),
			zap.Int("meshes", len(m.Meshes)),
			zap.Int("vertices", v),
			zap.Int("triangles", tris),
			zap.Int("textures", tex))
	}

	if c.cfg.Assets.ShowCube {
		cube := scene.NewModel("cube", []*scene.MeshData{
			scene.GenerateCube(mgl32.Vec3{-0.5, -0.5, -0.5}, mgl32.Vec3{0.5, 0.5, 0.5}),
		})
		cube.Position = referenceCubePosition
		c.Models = append(c.Models, cube)
	}

	hits, misses, failures := c.Textures.Stats()
	c.log.Info("scene ready",
		zap.Int("models", len(c.Models)),
		zap.Int("textures", c.Textures.Len()),
		zap.Int("cache_hits", hits),
		zap.Int("cache_misses", misses),
		zap.Int("cache_failures", failures))
}

// SceneBounds returns the world-space union of all model bounds.
func (c *Context) SceneBounds() scene.Bounds {
	b := scene.EmptyBounds()
	for _, m := range c.Models {
		b.Union(m.WorldBounds())
	}
	return b
}

// HandleMouseMotion turns the camera by a raw mouse delta while the mouse is captured.
func (c *Context) HandleMouseMotion(dx, dy float32) {
	if !c.MouseCaptured {
		return
	}
	c.Camera.ApplyMouseDelta(dx, dy)
}

// HandleClick casts a pick ray for a click at pixel (x, y) and keeps it as LastRay.
func (c *Context) HandleClick(x, y float32) picking.Ray {
	ray := c.Raycaster.Cast(picking.PickRequest{
		Screen:   mgl32.Vec2{x, y},
		Viewport: c.Viewport,
		Camera:   c.Camera,
	})
	c.LastRay = &ray

	if c.LogPicks {
		c.log.Info("pick ray",
			zap.Stringer("mode", c.Raycaster.Mode),
			zap.Float32s("origin", ray.Origin[:]),
			zap.Float32s("direction", ray.Direction[:]))
	}
	return ray
}

// HandleKeys applies held actions for a frame lasting dt seconds.
func (c *Context) HandleKeys(keys *KeyState, dt float32) {
	moves := []struct {
		action Action
		dir    camera.Direction
	}{
		{ActionForward, camera.Forward},
		{ActionBackward, camera.Backward},
		{ActionLeft, camera.Left},
		{ActionRight, camera.Right},
		{ActionUp, camera.Up},
		{ActionDown, camera.Down},
	}
	for _, m := range moves {
		if keys.Held(m.action) {
			c.Camera.Move(m.dir, dt)
		}
	}

	var nudge mgl32.Vec3
	axes := []struct {
		action Action
		delta  mgl32.Vec3
	}{
		{ActionLightXNeg, mgl32.Vec3{-1, 0, 0}},
		{ActionLightXPos, mgl32.Vec3{1, 0, 0}},
		{ActionLightYNeg, mgl32.Vec3{0, -1, 0}},
		{ActionLightYPos, mgl32.Vec3{0, 1, 0}},
		{ActionLightZNeg, mgl32.Vec3{0, 0, -1}},
		{ActionLightZPos, mgl32.Vec3{0, 0, 1}},
	}
	for _, a := range axes {
		if keys.Held(a.action) {
			nudge = nudge.Add(a.delta)
		}
	}
	if nudge.Len() > 0 {
		c.moveKeyLight(nudge.Mul(LightMoveSpeed * dt))
	}

	if keys.Held(ActionIntensityUp) {
		c.Lights.AdjustIntensity(IntensityRate * dt)
	}
	if keys.Held(ActionIntensityDown) {
		c.Lights.AdjustIntensity(-IntensityRate * dt)
	}
}

// moveKeyLight moves the first positioned light.
func (c *Context) moveKeyLight(delta mgl32.Vec3) {
	for i := range c.Lights.Lights {
		if c.Lights.Lights[i].Kind != lighting.Directional {
			c.Lights.Lights[i].Position = c.Lights.Lights[i].Position.Add(delta)
			return
		}
	}
}

// HandleAction applies a one-shot action. It returns false when the viewer should quit.
// Screenshots need the framebuffer and are handled by the App.
func (c *Context) HandleAction(a Action) bool {
	switch a {
	case ActionQuit:
		return false
	case ActionToggleRay:
		c.ShowRay = !c.ShowRay
	case ActionToggleBounds:
		c.ShowBounds = !c.ShowBounds
	case ActionToggleCapture:
		c.MouseCaptured = !c.MouseCaptured
	case ActionTogglePickMode:
		if c.Raycaster.Mode == picking.ModeScreen {
			c.Raycaster.Mode = picking.ModeForward
		} else {
			c.Raycaster.Mode = picking.ModeScreen
		}
		c.log.Info("picking mode changed", zap.Stringer("mode", c.Raycaster.Mode))
	case ActionFrameScene:
		b := c.SceneBounds()
		if !b.IsEmpty() {
			c.Camera.FitToBounds(mgl32.Vec3(b.Min), mgl32.Vec3(b.Max))
		}
	}
	return true
}

// Resize records a new viewport size.
func (c *Context) Resize(width, height int) {
	c.Viewport = picking.Viewport{Width: float32(width), Height: float32(height)}
}

// DebugLines fills lines with the enabled overlays.
func (c *Context) DebugLines(lines *debug.Lines) {
	lines.Reset()
	lines.AddGrid(referenceCubePosition[1]-0.5, 10, 1, debug.GridColor)
	if c.ShowRay && c.LastRay != nil {
		lines.AddRay(*c.LastRay, debug.RayColor)
	}
	if c.ShowBounds {
		for _, m := range c.Models {
			lines.AddBounds(m.WorldBounds(), debug.BoundsColor)
		}
	}
}

// Close releases all textures held by the cache.
func (c *Context) Close() {
	c.Textures.Close()
}
